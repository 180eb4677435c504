package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/decawise/internal/storage"
)

func TestSnapshot_RoundTrip(t *testing.T) {
	t.Parallel()
	r := newTestRules(3)
	s := newPlayingState(t, r, 3, 12)
	s = answer(t, r, s)
	s = answer(t, r, s)
	s = mustApply(t, r, s, Eliminate{PlayerID: "player_0"})

	snap := ToSnapshot(s)
	assert.Equal(t, "playing", snap.Status)
	assert.Equal(t, []int{0, 1}, snap.AnsweredOptionsInRound)
	assert.Nil(t, snap.Winner)

	back, err := FromSnapshot(snap)
	require.NoError(t, err)
	assert.Equal(t, s, back)
}

func TestSnapshot_WinnerIsCopied(t *testing.T) {
	t.Parallel()
	r := newTestRules(3)
	s := newPlayingState(t, r, 2, 10)
	w := s.Players[1]
	s.Winner = &w
	s.Status = StatusGameEnd

	snap := ToSnapshot(s)
	require.NotNil(t, snap.Winner)
	snap.Winner.Score = 99
	assert.Zero(t, s.Winner.Score)
}

func TestFromSnapshot(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		snap    *storage.GameSnapshot
		wantErr bool
		check   func(t *testing.T, s GameState)
	}{
		{
			name:    "nil snapshot",
			snap:    nil,
			wantErr: true,
		},
		{
			name:    "unknown status",
			snap:    &storage.GameSnapshot{Status: "lobby"},
			wantErr: true,
		},
		{
			name: "duplicate indices collapse",
			snap: &storage.GameSnapshot{Status: "playing", AnsweredOptionsInRound: []int{3, 1, 3, 3, 1}},
			check: func(t *testing.T, s GameState) {
				assert.Equal(t, 2, s.Revealed.Len())
				assert.Equal(t, []int{1, 3}, s.Revealed.Sorted())
			},
		},
		{
			name: "missing players become empty",
			snap: &storage.GameSnapshot{Status: "menu"},
			check: func(t *testing.T, s GameState) {
				assert.NotNil(t, s.Players)
				assert.Empty(t, s.Players)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s, err := FromSnapshot(tt.snap)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, s)
		})
	}
}
