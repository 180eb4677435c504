package engine

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/google/uuid"

	"github.com/palemoky/decawise/internal/game/player"
	"github.com/palemoky/decawise/internal/game/question"
)

// WinnerRule decides who wins when several players reach the target together.
type WinnerRule int

const (
	// WinnerFirstInOrder picks the first player in seat order over the target.
	WinnerFirstInOrder WinnerRule = iota
	// WinnerHighestScore picks the highest score over the target; seat order breaks ties.
	WinnerHighestScore
)

// ParseWinnerRule maps the config names "first" and "highest".
func ParseWinnerRule(s string) (WinnerRule, error) {
	switch s {
	case "", "first":
		return WinnerFirstInOrder, nil
	case "highest":
		return WinnerHighestScore, nil
	}
	return 0, fmt.Errorf("unknown winner rule %q", s)
}

// Rules holds the collaborators a transition may consult. Apply is otherwise
// a pure function of its inputs.
type Rules struct {
	Catalog    *question.Catalog
	Rand       *rand.Rand
	NewID      func() string
	WinnerRule WinnerRule
}

// NewRules returns rules drawing from catalog with a random source seeded by seed.
func NewRules(catalog *question.Catalog, seed uint64) *Rules {
	return &Rules{
		Catalog: catalog,
		Rand:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		NewID:   uuid.NewString,
	}
}

// Apply computes the state that follows a. The input state is never modified.
// ok is false when the action does not apply to s; s is then returned as is.
func (r *Rules) Apply(s GameState, a Action) (next GameState, ok bool) {
	switch a := a.(type) {
	case StartGame:
		return r.startGame(s)
	case ChoosePlayers:
		return r.choosePlayers(s, a)
	case ChoosePoints:
		return r.choosePoints(s, a)
	case SelectOption:
		return r.selectOption(s, a)
	case Pass:
		return r.pass(s, a)
	case Eliminate:
		return r.eliminate(s, a)
	case Reactivate:
		return r.reactivate(s, a)
	case SkipQuestion:
		return r.skipQuestion(s)
	case NextRound:
		return r.nextRound(s)
	case BackToMenu:
		return r.backToMenu(s)
	case Resume:
		return r.resume(s, a)
	}
	return s, false
}

func (r *Rules) startGame(s GameState) (GameState, bool) {
	if s.Status != StatusMenu && s.Status != StatusGameEnd {
		return s, false
	}
	next := NewGameState()
	next.Status = StatusPlayerSetup
	if r.NewID != nil {
		next.GameID = r.NewID()
	}
	return next, true
}

func (r *Rules) choosePlayers(s GameState, a ChoosePlayers) (GameState, bool) {
	if s.Status != StatusPlayerSetup || a.Count < player.MinPlayers || a.Count > player.MaxPlayers {
		return s, false
	}
	s.Players = player.NewPlayers(a.Count)
	s.Status = StatusPointsSetup
	return s, true
}

func (r *Rules) choosePoints(s GameState, a ChoosePoints) (GameState, bool) {
	if s.Status != StatusPointsSetup || a.Target <= 0 {
		return s, false
	}
	q, ok := r.draw()
	if !ok {
		return s, false
	}
	s.PointsToWin = a.Target
	s.CurrentQuestion = q
	s.Revealed = OptionSet{}
	s.Status = StatusPlaying
	return s, true
}

func (r *Rules) selectOption(s GameState, a SelectOption) (GameState, bool) {
	if s.Status != StatusPlaying || s.CurrentQuestion == nil {
		return s, false
	}
	cur, ok := s.CurrentPlayer()
	if !ok || cur.ID != a.PlayerID || !cur.Active() {
		return s, false
	}
	if a.Index < 0 || a.Index >= len(s.CurrentQuestion.Options) || s.Revealed.Has(a.Index) {
		return s, false
	}

	players := slices.Clone(s.Players)
	players[s.CurrentPlayerIndex].RoundScore++

	s.Players = players
	s.Revealed = s.Revealed.With(a.Index)
	s.CurrentPlayerIndex = player.NextActiveIndex(players, s.CurrentPlayerIndex)
	return checkRoundEnd(s), true
}

func (r *Rules) pass(s GameState, a Pass) (GameState, bool) {
	if s.Status != StatusPlaying {
		return s, false
	}
	cur, ok := s.CurrentPlayer()
	if !ok || cur.ID != a.PlayerID || !cur.Active() {
		return s, false
	}

	players := slices.Clone(s.Players)
	players[s.CurrentPlayerIndex].HasPassedThisRound = true

	s.Players = players
	s.CurrentPlayerIndex = player.NextActiveIndex(players, s.CurrentPlayerIndex)
	return checkRoundEnd(s), true
}

func (r *Rules) eliminate(s GameState, a Eliminate) (GameState, bool) {
	if s.Status != StatusPlaying {
		return s, false
	}
	idx := player.IndexOf(s.Players, a.PlayerID)
	if idx < 0 || s.Players[idx].IsEliminated {
		return s, false
	}

	players := slices.Clone(s.Players)
	players[idx].IsEliminated = true
	players[idx].HasPassedThisRound = true

	s.Players = players
	if idx == s.CurrentPlayerIndex {
		s.CurrentPlayerIndex = player.NextActiveIndex(players, s.CurrentPlayerIndex)
	}
	return checkRoundEnd(s), true
}

func (r *Rules) reactivate(s GameState, a Reactivate) (GameState, bool) {
	if s.Status != StatusPlaying {
		return s, false
	}
	idx := player.IndexOf(s.Players, a.PlayerID)
	if idx < 0 {
		return s, false
	}

	players := slices.Clone(s.Players)
	players[idx].IsEliminated = false
	players[idx].HasPassedThisRound = false
	s.Players = players
	return s, true
}

func (r *Rules) skipQuestion(s GameState) (GameState, bool) {
	if s.Status != StatusPlaying {
		return s, false
	}
	q, ok := r.draw()
	if !ok {
		return s, false
	}
	s.CurrentQuestion = q
	s.Revealed = OptionSet{}
	return s, true
}

func (r *Rules) nextRound(s GameState) (GameState, bool) {
	if s.Status != StatusRoundEnd {
		return s, false
	}

	players := player.ResetForNewRound(s.Players)
	if w, ok := r.findWinner(players, s.PointsToWin); ok {
		s.Players = players
		s.Winner = &w
		s.Status = StatusGameEnd
		return s, true
	}

	q, ok := r.draw()
	if !ok {
		return s, false
	}
	s.Players = players
	s.CurrentRound++
	s.CurrentQuestion = q
	s.Revealed = OptionSet{}
	s.CurrentPlayerIndex = 0
	s.Status = StatusPlaying
	return s, true
}

func (r *Rules) backToMenu(s GameState) (GameState, bool) {
	if s.Status == StatusMenu {
		return s, false
	}
	return NewGameState(), true
}

func (r *Rules) resume(s GameState, a Resume) (GameState, bool) {
	saved := a.State
	if s.Status != StatusMenu || !saved.InGame() || len(saved.Players) == 0 {
		return s, false
	}

	players := slices.Clone(saved.Players)
	for i := range players {
		if players[i].IsEliminated {
			players[i].HasPassedThisRound = true
		}
	}
	saved.Players = players
	if saved.CurrentPlayerIndex < 0 || saved.CurrentPlayerIndex >= len(players) {
		saved.CurrentPlayerIndex = 0
	}
	if saved.PointsToWin <= 0 {
		saved.PointsToWin = DefaultPointsToWin
	}
	saved.CurrentRound = max(saved.CurrentRound, 1)
	if saved.CurrentQuestion == nil {
		q, ok := r.draw()
		if !ok {
			return s, false
		}
		saved.CurrentQuestion = q
		saved.Revealed = OptionSet{}
	}
	saved.Revealed = NewOptionSet(slices.DeleteFunc(saved.Revealed.Sorted(), func(i int) bool {
		return i < 0 || i >= len(saved.CurrentQuestion.Options)
	})...)
	saved.Winner = nil
	if saved.Status == StatusPlaying {
		saved = checkRoundEnd(saved)
	}
	return saved, true
}

// checkRoundEnd closes the round when every option is revealed or nobody is
// left to play. The two triggers are independent.
func checkRoundEnd(s GameState) GameState {
	if s.Revealed.Len() >= question.OptionCount || s.ActiveCount() == 0 {
		s.Status = StatusRoundEnd
	}
	return s
}

func (r *Rules) findWinner(players []player.Player, target int) (player.Player, bool) {
	best := -1
	for i, p := range players {
		if p.Score < target {
			continue
		}
		if r.WinnerRule == WinnerFirstInOrder {
			return p, true
		}
		if best < 0 || p.Score > players[best].Score {
			best = i
		}
	}
	if best < 0 {
		return player.Player{}, false
	}
	return players[best], true
}

func (r *Rules) draw() (*question.Question, bool) {
	if r.Rand == nil {
		return nil, false
	}
	return r.Catalog.Draw(r.Rand)
}
