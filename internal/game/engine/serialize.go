package engine

import (
	"fmt"
	"slices"

	"github.com/palemoky/decawise/internal/game/player"
	"github.com/palemoky/decawise/internal/storage"
)

// ToSnapshot converts the state to its storage form.
func ToSnapshot(s GameState) *storage.GameSnapshot {
	snap := &storage.GameSnapshot{
		GameID:                 s.GameID,
		Status:                 string(s.Status),
		Players:                slices.Clone(s.Players),
		PointsToWin:            s.PointsToWin,
		CurrentQuestion:        s.CurrentQuestion,
		CurrentRound:           s.CurrentRound,
		AnsweredOptionsInRound: s.Revealed.Sorted(),
		CurrentPlayerIndex:     s.CurrentPlayerIndex,
	}
	if s.Winner != nil {
		w := *s.Winner
		snap.Winner = &w
	}
	return snap
}

// FromSnapshot rebuilds a state from storage. Duplicate revealed indices collapse;
// range checks against the question happen on Resume.
func FromSnapshot(snap *storage.GameSnapshot) (GameState, error) {
	if snap == nil {
		return GameState{}, fmt.Errorf("nil snapshot")
	}
	status := Status(snap.Status)
	if !status.Valid() {
		return GameState{}, fmt.Errorf("unknown status %q in saved game", snap.Status)
	}

	s := GameState{
		GameID:             snap.GameID,
		Status:             status,
		Players:            slices.Clone(snap.Players),
		PointsToWin:        snap.PointsToWin,
		CurrentQuestion:    snap.CurrentQuestion,
		Revealed:           NewOptionSet(snap.AnsweredOptionsInRound...),
		CurrentPlayerIndex: snap.CurrentPlayerIndex,
		CurrentRound:       snap.CurrentRound,
	}
	if s.Players == nil {
		s.Players = []player.Player{}
	}
	if snap.Winner != nil {
		w := *snap.Winner
		s.Winner = &w
	}
	return s, nil
}
