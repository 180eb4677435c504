// Package input handles keyboard input processing.
package input

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/decawise/internal/game/engine"
	"github.com/palemoky/decawise/internal/game/player"
	"github.com/palemoky/decawise/internal/ui/common"
	"github.com/palemoky/decawise/internal/ui/model"
)

// HandleKeyPress handles keyboard input and returns whether it was handled.
func HandleKeyPress(m model.Model, msg tea.KeyMsg) (bool, tea.Cmd) {
	keys := m.Keys()

	if key.Matches(msg, keys.ForceQuit) {
		return true, tea.Quit
	}

	if m.Overlay() != model.OverlayNone {
		if key.Matches(msg, keys.Back, keys.Help, keys.History, keys.Quit) {
			m.SetOverlay(model.OverlayNone)
			return true, nil
		}
		return false, nil
	}

	switch m.State().Status {
	case engine.StatusMenu:
		return handleMenu(m, msg)
	case engine.StatusPlayerSetup:
		return handlePlayerSetup(m, msg)
	case engine.StatusPointsSetup:
		return handlePointsSetup(m, msg)
	case engine.StatusPlaying:
		return handleBoard(m, msg)
	case engine.StatusRoundEnd:
		return handleSummary(m, msg, engine.NextRound{})
	case engine.StatusGameEnd:
		return handleSummary(m, msg, engine.StartGame{})
	}
	return false, nil
}

func handleMenu(m model.Model, msg tea.KeyMsg) (bool, tea.Cmd) {
	keys := m.Keys()
	switch {
	case key.Matches(msg, keys.New):
		return true, m.Dispatch(engine.StartGame{})
	case key.Matches(msg, keys.Continue):
		return true, m.Continue()
	case key.Matches(msg, keys.History):
		return true, m.LoadHistory()
	case key.Matches(msg, keys.Help):
		m.SetOverlay(model.OverlayHelp)
		return true, nil
	case key.Matches(msg, keys.Quit, keys.Back):
		return true, tea.Quit
	}
	return false, nil
}

func handlePlayerSetup(m model.Model, msg tea.KeyMsg) (bool, tea.Cmd) {
	keys := m.Keys()
	options := player.MaxPlayers - player.MinPlayers + 1
	switch {
	case key.Matches(msg, keys.Count):
		return true, m.Dispatch(engine.ChoosePlayers{Count: int(msg.String()[0] - '0')})
	case key.Matches(msg, keys.Up):
		m.SetCursor(wrap(m.Cursor()-1, options))
	case key.Matches(msg, keys.Down):
		m.SetCursor(wrap(m.Cursor()+1, options))
	case key.Matches(msg, keys.Confirm):
		return true, m.Dispatch(engine.ChoosePlayers{Count: player.MinPlayers + m.Cursor()})
	case key.Matches(msg, keys.Back):
		return true, m.Dispatch(engine.BackToMenu{})
	default:
		return false, nil
	}
	return true, nil
}

func handlePointsSetup(m model.Model, msg tea.KeyMsg) (bool, tea.Cmd) {
	keys := m.Keys()
	choices := m.PointChoices()
	switch {
	case key.Matches(msg, keys.Up):
		m.SetCursor(wrap(m.Cursor()-1, len(choices)))
	case key.Matches(msg, keys.Down):
		m.SetCursor(wrap(m.Cursor()+1, len(choices)))
	case key.Matches(msg, keys.Confirm):
		if c := m.Cursor(); c >= 0 && c < len(choices) {
			return true, m.Dispatch(engine.ChoosePoints{Target: choices[c]})
		}
	case key.Matches(msg, keys.Back):
		return true, m.Dispatch(engine.BackToMenu{})
	default:
		return false, nil
	}
	return true, nil
}

func handleBoard(m model.Model, msg tea.KeyMsg) (bool, tea.Cmd) {
	keys := m.Keys()
	s := m.State()

	if key.Matches(msg, keys.Option) {
		idx, ok := common.OptionIndex(msg.String())
		cur, hasCur := s.CurrentPlayer()
		if !ok || !hasCur {
			return true, nil
		}
		return true, m.Dispatch(engine.SelectOption{Index: idx, PlayerID: cur.ID})
	}

	for i := range s.Players {
		if key.Matches(msg, keys.PlayerKey(i)) {
			return true, m.Dispatch(engine.PlayerClick(s, s.Players[i].ID))
		}
	}

	switch {
	case key.Matches(msg, keys.Skip):
		return true, m.Dispatch(engine.SkipQuestion{})
	case key.Matches(msg, keys.Back):
		return true, m.Dispatch(engine.BackToMenu{})
	case key.Matches(msg, keys.Help):
		m.SetOverlay(model.OverlayHelp)
		return true, nil
	}
	return false, nil
}

// handleSummary covers the round and game summaries: confirm moves on, back leaves.
func handleSummary(m model.Model, msg tea.KeyMsg, next engine.Action) (bool, tea.Cmd) {
	keys := m.Keys()
	switch {
	case key.Matches(msg, keys.Confirm):
		return true, m.Dispatch(next)
	case key.Matches(msg, keys.Back):
		return true, m.Dispatch(engine.BackToMenu{})
	}
	return false, nil
}

func wrap(i, n int) int {
	if n <= 0 {
		return 0
	}
	return (i%n + n) % n
}
