package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/palemoky/decawise/internal/apperrors"
	"github.com/palemoky/decawise/internal/game/player"
	"github.com/palemoky/decawise/internal/logger"
	"github.com/palemoky/decawise/internal/storage"
)

const defaultStoreTimeout = 2 * time.Second

// Engine owns the current GameState and persists it after each transition.
// It is driven from a single goroutine (the UI event loop) and is not safe
// for concurrent use.
type Engine struct {
	rules   *Rules
	store   storage.SessionStore
	results storage.ResultStore
	timeout time.Duration
	now     func() time.Time

	state GameState
}

// Option configures an Engine.
type Option func(*Engine)

// WithResults records finished games in rs.
func WithResults(rs storage.ResultStore) Option {
	return func(e *Engine) { e.results = rs }
}

// WithTimeout bounds each storage call.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// WithClock overrides the clock used to stamp snapshots and results.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New creates an engine in the menu state. store may be nil, in which case
// nothing is persisted.
func New(rules *Rules, store storage.SessionStore, opts ...Option) *Engine {
	e := &Engine{
		rules:   rules,
		store:   store,
		timeout: defaultStoreTimeout,
		now:     time.Now,
		state:   NewGameState(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// State returns the current state.
func (e *Engine) State() GameState {
	return e.state
}

// CanDraw reports whether the catalog has any question to deal.
func (e *Engine) CanDraw() bool {
	return e.rules.Catalog.Len() > 0
}

// Dispatch applies a and publishes the resulting state. ok is false when the
// action was a no-op.
func (e *Engine) Dispatch(ctx context.Context, a Action) (GameState, bool) {
	prev := e.state
	next, ok := e.rules.Apply(prev, a)
	if !ok {
		return prev, false
	}
	e.state = next
	e.persist(ctx, prev, next, a)
	return next, true
}

// HasSavedGame reports whether the session slot holds a game.
func (e *Engine) HasSavedGame(ctx context.Context) bool {
	if e.store == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	has, err := e.store.HasGame(ctx)
	if err != nil {
		logger.LogError("Error checking saved game: %v", err)
		return false
	}
	return has
}

// Continue restores the saved game, if any.
func (e *Engine) Continue(ctx context.Context) (GameState, error) {
	if e.store == nil {
		return e.state, apperrors.ErrNoSavedGame
	}

	loadCtx, cancel := context.WithTimeout(ctx, e.timeout)
	snap, err := e.store.LoadGame(loadCtx)
	cancel()
	if err != nil {
		logger.LogError("Error loading game state: %v", err)
		return e.state, fmt.Errorf("load saved game: %w", err)
	}
	if snap == nil {
		return e.state, apperrors.ErrNoSavedGame
	}

	saved, err := FromSnapshot(snap)
	if err != nil {
		logger.LogError("Error decoding game state: %v", err)
		return e.state, fmt.Errorf("%w: %v", apperrors.ErrNoSavedGame, err)
	}

	state, ok := e.Dispatch(ctx, Resume{State: saved})
	if !ok {
		return state, apperrors.ErrNoSavedGame
	}
	logger.LogInfo("Resumed game %s at round %d", state.GameID, state.CurrentRound)
	return state, nil
}

func (e *Engine) persist(ctx context.Context, prev, next GameState, a Action) {
	switch {
	case next.Status == StatusGameEnd:
		e.deleteGame(ctx)
		e.recordResult(ctx, next)
	case next.Status == StatusMenu:
		e.deleteGame(ctx)
	case isStart(a):
		e.deleteGame(ctx)
	case next.InGame():
		e.saveGame(ctx, next)
	}

	if prev.Status != next.Status {
		logger.LogInfo("Game %s: %s -> %s (round %d)", next.GameID, prev.Status, next.Status, next.CurrentRound)
	}
}

func isStart(a Action) bool {
	_, ok := a.(StartGame)
	return ok
}

// Store failures are logged and swallowed: the in-memory state stays authoritative.

func (e *Engine) saveGame(ctx context.Context, s GameState) {
	if e.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	snap := ToSnapshot(s)
	snap.SavedAt = e.now().Unix()
	if err := e.store.SaveGame(ctx, snap); err != nil {
		logger.LogError("Error saving game state: %v", err)
	}
}

func (e *Engine) deleteGame(ctx context.Context) {
	if e.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	if err := e.store.DeleteGame(ctx); err != nil {
		logger.LogError("Error deleting game state: %v", err)
	}
}

func (e *Engine) recordResult(ctx context.Context, s GameState) {
	if e.results == nil || s.Winner == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	result := &storage.GameResult{
		GameID:      s.GameID,
		Winner:      *s.Winner,
		Standings:   player.Standings(s.Players),
		Rounds:      s.CurrentRound,
		PointsToWin: s.PointsToWin,
		FinishedAt:  e.now().Unix(),
	}
	if err := e.results.RecordResult(ctx, result); err != nil {
		logger.LogError("Error recording game result: %v", err)
	}
}
