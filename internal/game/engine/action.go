package engine

import "github.com/palemoky/decawise/internal/game/player"

// Action is an input to the state machine.
type Action interface {
	action()
}

// StartGame leaves the menu (or a finished game) for player setup.
type StartGame struct{}

// ChoosePlayers seats Count players.
type ChoosePlayers struct {
	Count int
}

// ChoosePoints sets the target score and draws the first question.
type ChoosePoints struct {
	Target int
}

// SelectOption reveals option Index on behalf of PlayerID.
type SelectOption struct {
	Index    int
	PlayerID string
}

// Pass stops PlayerID for the rest of the round, keeping round points.
type Pass struct {
	PlayerID string
}

// Eliminate marks PlayerID wrong; the round points are forfeited.
type Eliminate struct {
	PlayerID string
}

// Reactivate undoes a pass or elimination within the round.
type Reactivate struct {
	PlayerID string
}

// SkipQuestion swaps the current question without penalty.
type SkipQuestion struct{}

// NextRound banks round points and either declares a winner or deals a new question.
type NextRound struct{}

// BackToMenu abandons the game.
type BackToMenu struct{}

// Resume restores a saved game from the menu.
type Resume struct {
	State GameState
}

func (StartGame) action()     {}
func (ChoosePlayers) action() {}
func (ChoosePoints) action()  {}
func (SelectOption) action()  {}
func (Pass) action()          {}
func (Eliminate) action()     {}
func (Reactivate) action()    {}
func (SkipQuestion) action()  {}
func (NextRound) action()     {}
func (BackToMenu) action()    {}
func (Resume) action()        {}

// PlayerClick maps the board's single per-player affordance to an action:
// an inactive player is reactivated, the current player passes, anyone else
// has answered wrong.
func PlayerClick(s GameState, playerID string) Action {
	idx := player.IndexOf(s.Players, playerID)
	if idx < 0 {
		return Reactivate{PlayerID: playerID}
	}
	p := s.Players[idx]
	switch {
	case !p.Active():
		return Reactivate{PlayerID: playerID}
	case idx == s.CurrentPlayerIndex:
		return Pass{PlayerID: playerID}
	default:
		return Eliminate{PlayerID: playerID}
	}
}
