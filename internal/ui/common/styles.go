// Package common provides shared styles and utilities for the UI.
package common

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/palemoky/decawise/internal/game/player"
)

// Icon constants
const (
	CurrentIcon    = "▶"
	PassedIcon     = "✋"
	EliminatedIcon = "✗"
	WinnerIcon     = "👑"
)

// Lipgloss Styles
var (
	DocStyle      = lipgloss.NewStyle().Margin(1, 2)
	TitleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("228")).Bold(true).Render
	BoxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	ActiveBox     = BoxStyle.BorderForeground(lipgloss.Color("228"))
	InactiveBox   = BoxStyle.BorderForeground(lipgloss.Color("240"))
	PromptStyle   = lipgloss.NewStyle().MarginTop(1)
	ErrorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	DimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	RevealedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	SelectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("228")).Bold(true)
	NoticeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

var shapeColors = map[player.Shape]lipgloss.Color{
	player.ShapeTriangle: lipgloss.Color("39"),
	player.ShapeCircle:   lipgloss.Color("205"),
	player.ShapeSquare:   lipgloss.Color("214"),
	player.ShapeStar:     lipgloss.Color("120"),
}

var shapeIcons = map[player.Shape]string{
	player.ShapeTriangle: "▲",
	player.ShapeCircle:   "●",
	player.ShapeSquare:   "■",
	player.ShapeStar:     "★",
}

// ShapeIcon renders the player's shape in its color.
func ShapeIcon(s player.Shape) string {
	icon, ok := shapeIcons[s]
	if !ok {
		return "?"
	}
	return lipgloss.NewStyle().Foreground(shapeColors[s]).Render(icon)
}
