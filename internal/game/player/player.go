// Package player holds the player record and the pure queries the turn engine
// runs over the ordered player list.
package player

import (
	"fmt"
	"slices"

	"github.com/samber/lo"
)

const (
	MinPlayers = 2
	MaxPlayers = 4
)

// Shape is the cosmetic tag that identifies a player on the shared screen.
type Shape string

const (
	ShapeTriangle Shape = "triangle"
	ShapeCircle   Shape = "circle"
	ShapeSquare   Shape = "square"
	ShapeStar     Shape = "star"
)

// Shapes is the fixed palette, assigned by seat index.
var Shapes = [MaxPlayers]Shape{ShapeTriangle, ShapeCircle, ShapeSquare, ShapeStar}

// Player 玩家
type Player struct {
	ID                 string `json:"id"`
	Shape              Shape  `json:"shape"`
	Name               string `json:"name"`
	Score              int    `json:"score"`
	RoundScore         int    `json:"roundScore"`
	IsEliminated       bool   `json:"isEliminated"`
	HasPassedThisRound bool   `json:"hasPassedThisRound"`
}

// Active reports whether the player may still take turns this round.
func (p Player) Active() bool {
	return !p.IsEliminated && !p.HasPassedThisRound
}

// BankedRoundScore is what the player will add to Score when the round closes.
func (p Player) BankedRoundScore() int {
	if p.IsEliminated {
		return 0
	}
	return p.RoundScore
}

// NewPlayers seats n players with ids player_0.., palette shapes and default names.
func NewPlayers(n int) []Player {
	n = min(max(n, 0), MaxPlayers)
	players := make([]Player, n)
	for i := range players {
		players[i] = Player{
			ID:    fmt.Sprintf("player_%d", i),
			Shape: Shapes[i],
			Name:  fmt.Sprintf("Player %d", i+1),
		}
	}
	return players
}

// ActiveCount counts players that are neither eliminated nor passed.
func ActiveCount(players []Player) int {
	return lo.CountBy(players, Player.Active)
}

// NextActiveIndex scans forward circularly from the seat after from and returns
// the first active seat. When nobody is active the turn stays at from.
func NextActiveIndex(players []Player, from int) int {
	n := len(players)
	if n == 0 {
		return from
	}
	for step := 1; step <= n; step++ {
		idx := ((from+step)%n + n) % n
		if players[idx].Active() {
			return idx
		}
	}
	return from
}

// ResetForNewRound banks round points (eliminated players forfeit theirs) and
// clears every per-round flag. The input slice is not modified.
func ResetForNewRound(players []Player) []Player {
	return lo.Map(players, func(p Player, _ int) Player {
		p.Score += p.BankedRoundScore()
		p.RoundScore = 0
		p.HasPassedThisRound = false
		p.IsEliminated = false
		return p
	})
}

// IndexOf returns the seat of the player with id, or -1.
func IndexOf(players []Player, id string) int {
	return slices.IndexFunc(players, func(p Player) bool { return p.ID == id })
}

// Standings returns a copy ordered by Score, highest first. Equal scores keep seat order.
func Standings(players []Player) []Player {
	out := slices.Clone(players)
	slices.SortStableFunc(out, func(a, b Player) int { return b.Score - a.Score })
	return out
}
