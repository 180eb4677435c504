package question

import (
	"encoding/json"
	"errors"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/decawise/internal/apperrors"
)

func TestValue_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		want     Value
		rendered string
	}{
		{"string", `"Cervantes"`, StringValue("Cervantes"), "Cervantes"},
		{"integer", `26`, NumberValue(26), "26"},
		{"decimal", `3.5`, NumberValue(3.5), "3.5"},
		{"true", `true`, BoolValue(true), "true"},
		{"false", ` false `, BoolValue(false), "false"},
		{"numeric string stays string", `"10"`, StringValue("10"), "10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var v Value
			require.NoError(t, json.Unmarshal([]byte(tt.input), &v))
			assert.Equal(t, tt.want, v)
			assert.Equal(t, tt.rendered, v.String())
		})
	}
}

func TestValue_UnmarshalJSON_RejectsObjects(t *testing.T) {
	t.Parallel()

	var v Value
	assert.Error(t, json.Unmarshal([]byte(`{"a":1}`), &v))
}

func TestValue_MarshalJSON_KeepsType(t *testing.T) {
	t.Parallel()

	opts := []Option{
		{Label: "a", Value: NumberValue(8)},
		{Label: "b", Value: BoolValue(true)},
		{Label: "c", Value: StringValue("x")},
	}
	data, err := json.Marshal(opts)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"texto":"a","valor":8},{"texto":"b","valor":true},{"texto":"c","valor":"x"}]`, string(data))
}

func TestQuestion_Validate(t *testing.T) {
	t.Parallel()

	valid := NewTestQuestion(1)
	require.NoError(t, valid.Validate())

	short := NewTestQuestion(2)
	short.Options = short.Options[:9]
	assert.True(t, errors.Is(short.Validate(), apperrors.ErrInvalidQuestion))

	badKind := NewTestQuestion(3)
	badKind.Kind = "ESSAY"
	assert.True(t, errors.Is(badKind.Validate(), apperrors.ErrInvalidQuestion))
}

func TestCatalog_Draw(t *testing.T) {
	t.Parallel()

	c := NewTestCatalog(5)
	r := rand.New(rand.NewPCG(1, 2))

	seen := map[int]bool{}
	for range 200 {
		q, ok := c.Draw(r)
		require.True(t, ok)
		seen[q.ID] = true
	}
	assert.Len(t, seen, 5, "uniform draw should reach every question")

	q, _ := c.Draw(r)
	assert.Same(t, q, &c.Questions()[q.ID-1], "draw references the catalog record")
}

func TestCatalog_DrawEmpty(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewPCG(1, 2))

	q, ok := NewCatalog(nil).Draw(r)
	assert.False(t, ok)
	assert.Nil(t, q)

	var nilCatalog *Catalog
	assert.Equal(t, 0, nilCatalog.Len())
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	good := NewTestQuestion(1)
	bad := NewTestQuestion(2)
	bad.Options = bad.Options[:3]

	data, err := json.Marshal([]Question{good, bad})
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "questions.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	c, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, 1, c.Len())
	assert.Equal(t, good, c.Questions()[0])
}

func TestLoadFile_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := LoadFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	garbage := filepath.Join(dir, "garbage.json")
	require.NoError(t, os.WriteFile(garbage, []byte("not json"), 0o600))
	_, err = LoadFile(garbage)
	assert.Error(t, err)

	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, []byte("[]"), 0o600))
	_, err = LoadFile(empty)
	assert.True(t, errors.Is(err, apperrors.ErrEmptyCatalog))
}

func TestLoadOrEmpty(t *testing.T) {
	t.Parallel()

	c := LoadOrEmpty(filepath.Join(t.TempDir(), "missing.json"))
	require.NotNil(t, c)
	assert.Equal(t, 0, c.Len())
}

func TestBundledQuestions(t *testing.T) {
	t.Parallel()

	data, err := os.ReadFile(filepath.Join("..", "..", "..", "data", "questions.json"))
	require.NoError(t, err)

	qs, err := Decode(data)
	require.NoError(t, err)
	assert.NotEmpty(t, qs)
	assert.Empty(t, Check(qs))
}
