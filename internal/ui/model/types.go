// Package model defines the core types and interfaces for the UI.
package model

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/decawise/internal/game/engine"
	"github.com/palemoky/decawise/internal/storage"
)

// Overlay is a screen drawn on top of the current game status.
type Overlay int

const (
	OverlayNone Overlay = iota
	OverlayHelp
	OverlayHistory
)

// --- Tea Messages ---

// SavedGameMsg reports whether a saved game exists.
type SavedGameMsg struct {
	Exists bool
}

// HistoryMsg carries recently finished games.
type HistoryMsg struct {
	Results []*storage.GameResult
	Err     error
}

// ClearNoticeMsg clears the transient notice.
type ClearNoticeMsg struct{}

// --- Model Interface ---

// Model is the main interface for App, used by the view and input packages.
type Model interface {
	// Game
	State() engine.GameState
	Dispatch(a engine.Action) tea.Cmd
	Continue() tea.Cmd
	HasSavedGame() bool
	CanDraw() bool

	// Setup screens
	Cursor() int
	SetCursor(int)
	PointChoices() []int

	// Overlays
	Overlay() Overlay
	SetOverlay(Overlay)
	LoadHistory() tea.Cmd
	History() []*storage.GameResult

	// Notice
	Notify(message string) tea.Cmd
	Notice() string

	// Keys and help footer
	Keys() *KeyMap
	Help() *help.Model

	// Sound
	PlaySound(name string)

	Now() time.Time
	Width() int
	Height() int
}
