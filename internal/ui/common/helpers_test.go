package common

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/palemoky/decawise/internal/game/player"
)

func TestTruncateName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		maxLen   int
		expected string
	}{
		{"short name within limit", "Alice", 10, "Alice"},
		{"exact length", "HelloWorld", 10, "HelloWorld"},
		{"long name truncated", "VeryLongPlayerName", 10, "VeryLongP…"},
		{"accented name truncated", "Iñárritu Jr", 5, "Iñár…"},
		{"empty name", "", 10, ""},
		{"single char limit", "Hello", 1, "…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, TruncateName(tt.input, tt.maxLen))
		})
	}
}

func TestOptionKey(t *testing.T) {
	t.Parallel()

	for idx := range 10 {
		k := OptionKey(idx)
		got, ok := OptionIndex(k)
		assert.True(t, ok, k)
		assert.Equal(t, idx, got)
	}
	assert.Equal(t, "1", OptionKey(0))
	assert.Equal(t, "0", OptionKey(9))

	for _, k := range []string{"", "a", "10", "-", " "} {
		_, ok := OptionIndex(k)
		assert.False(t, ok, "%q", k)
	}
}

func TestShapeIcon(t *testing.T) {
	t.Parallel()

	for _, s := range player.Shapes {
		assert.NotEqual(t, "?", ShapeIcon(s))
	}
	assert.Equal(t, "?", ShapeIcon("hexagon"))
}
