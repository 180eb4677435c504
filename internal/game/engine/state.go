// Package engine implements the round and turn state machine.
//
// Rules.Apply is a pure transition function over GameState values: it never
// mutates the state it is given and returns a complete replacement. Engine is
// the host that owns the single mutable slot and performs the side effects
// (session persistence, result history) that follow a transition.
package engine

import (
	"maps"
	"slices"

	"github.com/palemoky/decawise/internal/game/player"
	"github.com/palemoky/decawise/internal/game/question"
)

// Status 游戏状态
type Status string

const (
	StatusMenu        Status = "menu"
	StatusPlayerSetup Status = "playerSetup"
	StatusPointsSetup Status = "pointsSetup"
	StatusPlaying     Status = "playing"
	StatusRoundEnd    Status = "roundEnd"
	StatusGameEnd     Status = "gameEnd"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusMenu, StatusPlayerSetup, StatusPointsSetup, StatusPlaying, StatusRoundEnd, StatusGameEnd:
		return true
	}
	return false
}

// DefaultPointsToWin is the target a fresh game starts with.
const DefaultPointsToWin = 10

// OptionSet is the set of revealed option indices. The zero value is empty.
// Sets are never modified in place; With returns a new set.
type OptionSet struct {
	m map[int]struct{}
}

// NewOptionSet builds a set from indices; duplicates collapse.
func NewOptionSet(indices ...int) OptionSet {
	m := make(map[int]struct{}, len(indices))
	for _, i := range indices {
		m[i] = struct{}{}
	}
	return OptionSet{m: m}
}

// Has reports whether idx is revealed.
func (s OptionSet) Has(idx int) bool {
	_, ok := s.m[idx]
	return ok
}

// Len returns the number of revealed options.
func (s OptionSet) Len() int {
	return len(s.m)
}

// With returns a copy of s that also contains idx.
func (s OptionSet) With(idx int) OptionSet {
	m := make(map[int]struct{}, len(s.m)+1)
	maps.Copy(m, s.m)
	m[idx] = struct{}{}
	return OptionSet{m: m}
}

// Sorted returns the indices in ascending order.
func (s OptionSet) Sorted() []int {
	return slices.Sorted(maps.Keys(s.m))
}

// GameState is the aggregate root. One value exists per session; every
// transition replaces it wholesale.
type GameState struct {
	GameID             string
	Status             Status
	Players            []player.Player
	PointsToWin        int
	CurrentQuestion    *question.Question
	Revealed           OptionSet
	CurrentPlayerIndex int
	CurrentRound       int
	Winner             *player.Player
}

// NewGameState returns the menu state with every field at its default.
func NewGameState() GameState {
	return GameState{
		Status:       StatusMenu,
		Players:      []player.Player{},
		PointsToWin:  DefaultPointsToWin,
		CurrentRound: 1,
	}
}

// CurrentPlayer returns the player whose turn it is.
func (s GameState) CurrentPlayer() (player.Player, bool) {
	if s.CurrentPlayerIndex < 0 || s.CurrentPlayerIndex >= len(s.Players) {
		return player.Player{}, false
	}
	return s.Players[s.CurrentPlayerIndex], true
}

// ActiveCount is player.ActiveCount over the state's players.
func (s GameState) ActiveCount() int {
	return player.ActiveCount(s.Players)
}

// InGame reports whether a game is under way (a saved game can exist).
func (s GameState) InGame() bool {
	return s.Status == StatusPlaying || s.Status == StatusRoundEnd
}
