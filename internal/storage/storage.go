// Package storage persists the saved game slot and the finished-game history.
package storage

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/palemoky/decawise/internal/apperrors"
	"github.com/palemoky/decawise/internal/config"
	"github.com/palemoky/decawise/internal/game/player"
	"github.com/palemoky/decawise/internal/game/question"
)

const (
	// SessionKey is the single key-value slot holding the saved game.
	SessionKey = "decawise:game_state"
	// ResultsKey holds the finished-game history, newest first.
	ResultsKey = "decawise:results"

	// MaxResults caps the history length.
	MaxResults = 50
)

// GameSnapshot is the serialized form of a game. The revealed option set is
// stored as an ascending list of indices.
type GameSnapshot struct {
	GameID                 string             `json:"gameId,omitempty"`
	Status                 string             `json:"status"`
	Players                []player.Player    `json:"players"`
	PointsToWin            int                `json:"pointsToWin"`
	CurrentQuestion        *question.Question `json:"currentQuestion"`
	CurrentRound           int                `json:"currentRound"`
	AnsweredOptionsInRound []int              `json:"answeredOptionsInRound"`
	Winner                 *player.Player     `json:"winner"`
	CurrentPlayerIndex     int                `json:"currentPlayerIndex"`
	SavedAt                int64              `json:"savedAt,omitempty"`
}

// GameResult 对局结果
type GameResult struct {
	GameID      string          `json:"game_id"`
	Winner      player.Player   `json:"winner"`
	Standings   []player.Player `json:"standings"`
	Rounds      int             `json:"rounds"`
	PointsToWin int             `json:"points_to_win"`
	FinishedAt  int64           `json:"finished_at"`
}

// SessionStore is the saved-game slot. Load returns (nil, nil) when no game is saved.
type SessionStore interface {
	SaveGame(ctx context.Context, snap *GameSnapshot) error
	LoadGame(ctx context.Context) (*GameSnapshot, error)
	DeleteGame(ctx context.Context) error
	HasGame(ctx context.Context) (bool, error)
}

// ResultStore keeps the finished-game history.
type ResultStore interface {
	RecordResult(ctx context.Context, result *GameResult) error
	RecentResults(ctx context.Context, limit int) ([]*GameResult, error)
}

// Store is a backend serving both ports.
type Store interface {
	SessionStore
	ResultStore
	Close() error
}

// Open builds the backend selected by cfg.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	codec, err := NewCodec(cfg.Storage.Codec)
	if err != nil {
		return nil, err
	}

	switch cfg.Storage.Backend {
	case config.BackendFile:
		return NewFileStore(cfg.Storage.Path, codec)
	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("connect redis %s: %w", cfg.Redis.Addr, err)
		}
		return NewRedisStore(client, codec), nil
	case config.BackendSQLite:
		return OpenSQLiteStore(cfg.SQLite.Path, codec)
	case config.BackendMemory:
		return NewMemoryStore(codec), nil
	}
	return nil, fmt.Errorf("%w: %q", apperrors.ErrUnknownBackend, cfg.Storage.Backend)
}
