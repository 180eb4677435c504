package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/decawise/internal/game/engine"
	"github.com/palemoky/decawise/internal/game/question"
	"github.com/palemoky/decawise/internal/ui/model"
)

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func newTestApp(questions int) *model.App {
	return model.NewApp(engine.New(engine.NewRules(question.NewTestCatalog(questions), 5), nil))
}

func press(t *testing.T, m model.Model, keys ...string) tea.Cmd {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = HandleKeyPress(m, keyMsg(k))
	}
	return cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestHandleKeyPress_Menu(t *testing.T) {
	t.Parallel()

	m := newTestApp(2)
	press(t, m, "?")
	assert.Equal(t, model.OverlayHelp, m.Overlay())
	press(t, m, "esc")
	assert.Equal(t, model.OverlayNone, m.Overlay())

	press(t, m, "h")
	assert.Equal(t, model.OverlayHistory, m.Overlay())
	press(t, m, "h")
	assert.Equal(t, model.OverlayNone, m.Overlay())

	assert.True(t, isQuit(press(t, m, "q")))

	press(t, m, "n")
	assert.Equal(t, engine.StatusPlayerSetup, m.State().Status)
}

func TestHandleKeyPress_ForceQuit(t *testing.T) {
	t.Parallel()

	m := newTestApp(2)
	press(t, m, "n", "2")
	assert.True(t, isQuit(press(t, m, "ctrl+c")))

	m.SetOverlay(model.OverlayHelp)
	assert.True(t, isQuit(press(t, m, "ctrl+c")))
}

func TestHandleKeyPress_PlayerSetup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		keys  []string
		count int
	}{
		{"digit", []string{"3"}, 3},
		{"enter on default", []string{"enter"}, 2},
		{"down twice", []string{"down", "down", "enter"}, 4},
		{"up wraps", []string{"up", "enter"}, 4},
		{"down wraps", []string{"down", "down", "down", "enter"}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m := newTestApp(2)
			press(t, m, "n")
			press(t, m, tt.keys...)
			assert.Equal(t, engine.StatusPointsSetup, m.State().Status)
			assert.Len(t, m.State().Players, tt.count)
		})
	}
}

func TestHandleKeyPress_SetupBack(t *testing.T) {
	t.Parallel()

	m := newTestApp(2)
	press(t, m, "n", "esc")
	assert.Equal(t, engine.StatusMenu, m.State().Status)

	press(t, m, "n", "2", "esc")
	assert.Equal(t, engine.StatusMenu, m.State().Status)
}

func TestHandleKeyPress_PointsSetup(t *testing.T) {
	t.Parallel()

	m := newTestApp(2)
	press(t, m, "n", "2")
	require.Equal(t, 1, m.Cursor())

	press(t, m, "down", "enter")
	assert.Equal(t, engine.StatusPlaying, m.State().Status)
	assert.Equal(t, 15, m.State().PointsToWin)
}

func TestHandleKeyPress_Board(t *testing.T) {
	t.Parallel()

	m := newTestApp(3)
	press(t, m, "n", "3", "enter")
	require.Equal(t, engine.StatusPlaying, m.State().Status)

	// Option keys answer for whoever holds the turn
	press(t, m, "1")
	assert.True(t, m.State().Revealed.Has(0))
	assert.Equal(t, 1, m.State().Players[0].RoundScore)
	press(t, m, "0")
	assert.True(t, m.State().Revealed.Has(9))
	assert.Equal(t, 1, m.State().Players[1].RoundScore)
	require.Equal(t, 2, m.State().CurrentPlayerIndex)

	// Current player's card passes, anyone else's marks them wrong, again undoes
	press(t, m, "d")
	assert.True(t, m.State().Players[2].HasPassedThisRound)
	assert.False(t, m.State().Players[2].IsEliminated)
	press(t, m, "s")
	assert.True(t, m.State().Players[1].IsEliminated)
	press(t, m, "s")
	assert.True(t, m.State().Players[1].Active())

	// Seat four does not exist
	before := m.State()
	press(t, m, "f")
	assert.Equal(t, before, m.State())

	press(t, m, "x")
	assert.Zero(t, m.State().Revealed.Len())
	assert.Equal(t, engine.StatusPlaying, m.State().Status)

	handled, _ := HandleKeyPress(m, keyMsg("z"))
	assert.False(t, handled)

	press(t, m, "esc")
	assert.Equal(t, engine.StatusMenu, m.State().Status)
}

func TestHandleKeyPress_Summaries(t *testing.T) {
	t.Parallel()

	m := newTestApp(2)
	press(t, m, "n", "2", "up", "enter") // 5 points
	require.Equal(t, 5, m.State().PointsToWin)

	// player 1 answers five, then both stop
	press(t, m, "a")
	press(t, m, "1", "2", "3", "4", "5")
	press(t, m, "s")
	require.Equal(t, engine.StatusRoundEnd, m.State().Status)

	press(t, m, "enter")
	require.Equal(t, engine.StatusGameEnd, m.State().Status)
	assert.Equal(t, "player_1", m.State().Winner.ID)

	press(t, m, "enter")
	assert.Equal(t, engine.StatusPlayerSetup, m.State().Status)
}

func TestHandleKeyPress_RoundEndToNextRound(t *testing.T) {
	t.Parallel()

	m := newTestApp(2)
	press(t, m, "n", "2", "enter")
	press(t, m, "1", "a", "s") // a: wrong (not current), s: pass
	require.Equal(t, engine.StatusRoundEnd, m.State().Status)

	press(t, m, "enter")
	assert.Equal(t, engine.StatusPlaying, m.State().Status)
	assert.Equal(t, 2, m.State().CurrentRound)
	assert.Zero(t, m.State().Players[0].Score)
}

func TestWrap(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 2, wrap(-1, 3))
	assert.Equal(t, 0, wrap(3, 3))
	assert.Equal(t, 1, wrap(1, 3))
	assert.Equal(t, 0, wrap(5, 0))
}
