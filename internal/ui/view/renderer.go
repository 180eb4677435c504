// Package view provides UI rendering functions.
package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/palemoky/decawise/internal/game/engine"
	"github.com/palemoky/decawise/internal/ui/common"
	"github.com/palemoky/decawise/internal/ui/model"
)

// CreateViewRenderer creates a view renderer function that can be injected into App.
func CreateViewRenderer() func(model.Model) string {
	return func(m model.Model) string {
		var body string
		switch m.Overlay() {
		case model.OverlayHelp:
			body = HelpView(m)
		case model.OverlayHistory:
			body = HistoryView(m)
		default:
			body = screenView(m)
		}

		parts := []string{body}
		if notice := m.Notice(); notice != "" {
			parts = append(parts, "", common.NoticeStyle.Render(notice))
		}
		parts = append(parts, "", m.Help().View(m.Keys().ForScreen(m.State().Status, m.Overlay())))
		return lipgloss.JoinVertical(lipgloss.Left, parts...)
	}
}

func screenView(m model.Model) string {
	switch m.State().Status {
	case engine.StatusMenu:
		return MenuView(m)
	case engine.StatusPlayerSetup:
		return PlayerSetupView(m)
	case engine.StatusPointsSetup:
		return PointsSetupView(m)
	case engine.StatusPlaying:
		return BoardView(m)
	case engine.StatusRoundEnd:
		return RoundEndView(m)
	case engine.StatusGameEnd:
		return GameEndView(m)
	default:
		return "Unknown screen"
	}
}

// choiceList renders items with a pointer at the cursor.
func choiceList(items []string, cursor int) string {
	var sb strings.Builder
	for i, item := range items {
		if i > 0 {
			sb.WriteString("\n")
		}
		if i == cursor {
			sb.WriteString(common.CurrentIcon + " " + common.SelectedStyle.Render(item))
			continue
		}
		sb.WriteString("  " + item)
	}
	return sb.String()
}
