package model

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"

	"github.com/palemoky/decawise/internal/game/engine"
	"github.com/palemoky/decawise/internal/game/player"
)

// KeyMap holds every binding the game uses.
type KeyMap struct {
	New       key.Binding
	Continue  key.Binding
	History   key.Binding
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding

	Up      key.Binding
	Down    key.Binding
	Confirm key.Binding
	Back    key.Binding
	Count   key.Binding

	Option  key.Binding
	Skip    key.Binding
	Players [player.MaxPlayers]key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() *KeyMap {
	km := &KeyMap{
		New:       key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new game")),
		Continue:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "continue")),
		History:   key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "history")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),

		Up:      key.NewBinding(key.WithKeys("up", "k", "left"), key.WithHelp("↑/↓", "choose")),
		Down:    key.NewBinding(key.WithKeys("down", "j", "right")),
		Confirm: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "confirm")),
		Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "menu")),
		Count:   key.NewBinding(key.WithKeys("2", "3", "4"), key.WithHelp("2-4", "players")),

		Option: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9", "0"),
			key.WithHelp("1-0", "reveal option"),
		),
		Skip: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "skip question")),
	}
	for i, k := range []string{"a", "s", "d", "f"} {
		km.Players[i] = key.NewBinding(key.WithKeys(k), key.WithHelp(k, "player "+string(rune('1'+i))))
	}
	return km
}

// PlayerKey returns the binding for the player in seat idx.
func (km *KeyMap) PlayerKey(idx int) key.Binding {
	if idx < 0 || idx >= len(km.Players) {
		return key.Binding{}
	}
	return km.Players[idx]
}

// screenKeys adapts a binding list to help.KeyMap.
type screenKeys struct {
	short []key.Binding
	full  [][]key.Binding
}

func (s screenKeys) ShortHelp() []key.Binding  { return s.short }
func (s screenKeys) FullHelp() [][]key.Binding { return s.full }

// ForScreen returns the bindings that make sense on the current screen.
func (km *KeyMap) ForScreen(status engine.Status, overlay Overlay) help.KeyMap {
	if overlay != OverlayNone {
		return screenKeys{short: []key.Binding{km.Back}}
	}

	var short []key.Binding
	switch status {
	case engine.StatusMenu:
		short = []key.Binding{km.New, km.Continue, km.History, km.Help, km.Quit}
	case engine.StatusPlayerSetup:
		short = []key.Binding{km.Count, km.Up, km.Confirm, km.Back}
	case engine.StatusPointsSetup:
		short = []key.Binding{km.Up, km.Confirm, km.Back}
	case engine.StatusPlaying:
		short = []key.Binding{km.Option, playersHelp, km.Skip, km.Back}
	case engine.StatusRoundEnd:
		short = []key.Binding{withHelp(km.Confirm, "enter", "next round"), km.Back}
	case engine.StatusGameEnd:
		short = []key.Binding{withHelp(km.Confirm, "enter", "play again"), km.Back}
	}

	full := [][]key.Binding{
		{km.New, km.Continue, km.History, km.Quit},
		{km.Option, playersHelp, km.Skip},
		{km.Up, km.Confirm, km.Back, km.Help},
	}
	return screenKeys{short: short, full: full}
}

var playersHelp = key.NewBinding(key.WithKeys("a", "s", "d", "f"), key.WithHelp("a/s/d/f", "pass · wrong · undo"))

func withHelp(b key.Binding, k, desc string) key.Binding {
	b.SetHelp(k, desc)
	return b
}
