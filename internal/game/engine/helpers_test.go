package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/palemoky/decawise/internal/game/question"
)

func newTestRules(questions int) *Rules {
	r := NewRules(question.NewTestCatalog(questions), 42)
	r.NewID = func() string { return "game-1" }
	return r
}

func mustApply(t *testing.T, r *Rules, s GameState, a Action) GameState {
	t.Helper()
	next, ok := r.Apply(s, a)
	require.True(t, ok, "%T should apply in status %s", a, s.Status)
	assertInvariants(t, next)
	return next
}

func assertNoop(t *testing.T, r *Rules, s GameState, a Action) {
	t.Helper()
	next, ok := r.Apply(s, a)
	require.False(t, ok, "%T should be a no-op in status %s", a, s.Status)
	require.Equal(t, s, next)
}

// newPlayingState returns a state in round 1 with n seated players and target points.
func newPlayingState(t *testing.T, r *Rules, n, target int) GameState {
	t.Helper()
	s := mustApply(t, r, NewGameState(), StartGame{})
	s = mustApply(t, r, s, ChoosePlayers{Count: n})
	return mustApply(t, r, s, ChoosePoints{Target: target})
}

// answer reveals the lowest unrevealed option on behalf of the current player.
func answer(t *testing.T, r *Rules, s GameState) GameState {
	t.Helper()
	cur, ok := s.CurrentPlayer()
	require.True(t, ok)
	for idx := range question.OptionCount {
		if !s.Revealed.Has(idx) {
			return mustApply(t, r, s, SelectOption{Index: idx, PlayerID: cur.ID})
		}
	}
	t.Fatal("every option is already revealed")
	return s
}

func assertInvariants(t *testing.T, s GameState) {
	t.Helper()
	for _, p := range s.Players {
		if p.IsEliminated {
			require.True(t, p.HasPassedThisRound, "%s is eliminated but not passed", p.ID)
		}
		require.GreaterOrEqual(t, p.Score, 0)
		require.GreaterOrEqual(t, p.RoundScore, 0)
	}
	require.LessOrEqual(t, s.Revealed.Len(), question.OptionCount)
	for _, idx := range s.Revealed.Sorted() {
		require.True(t, idx >= 0 && idx < question.OptionCount, "revealed index %d out of range", idx)
	}
	if s.Status == StatusPlaying {
		require.NotNil(t, s.CurrentQuestion)
	}
}
