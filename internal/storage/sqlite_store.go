package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS kv (
	key        TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	updated_at INTEGER NOT NULL DEFAULT (unixepoch())
);
CREATE TABLE IF NOT EXISTS results (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	game_id     TEXT NOT NULL,
	data        BLOB NOT NULL,
	finished_at INTEGER NOT NULL
);
`

// SQLiteStore keeps the saved game in a key-value table and the history in a
// results table.
type SQLiteStore struct {
	sqlDB *sql.DB
	codec Codec
}

// OpenSQLiteStore opens (and creates) the database at path.
func OpenSQLiteStore(path string, codec Codec) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	if codec == nil {
		codec = JSONCodec{}
	}

	cleanPath := filepath.Clean(path)
	if dir := filepath.Dir(cleanPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite directory: %w", err)
		}
	}

	dsn := cleanPath + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(sqliteSchema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create sqlite schema: %w", err)
	}

	return &SQLiteStore{sqlDB: sqlDB, codec: codec}, nil
}

func (s *SQLiteStore) SaveGame(ctx context.Context, snap *GameSnapshot) error {
	if snap == nil {
		return nil
	}
	data, err := s.codec.Marshal(snap)
	if err != nil {
		return err
	}
	_, err = s.sqlDB.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, unixepoch())
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		SessionKey, data)
	if err != nil {
		return fmt.Errorf("save game: %w", err)
	}
	return nil
}

func (s *SQLiteStore) LoadGame(ctx context.Context) (*GameSnapshot, error) {
	var data []byte
	err := s.sqlDB.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, SessionKey).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("load game: %w", err)
	}

	var snap GameSnapshot
	if err := s.codec.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (s *SQLiteStore) DeleteGame(ctx context.Context) error {
	if _, err := s.sqlDB.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, SessionKey); err != nil {
		return fmt.Errorf("delete game: %w", err)
	}
	return nil
}

func (s *SQLiteStore) HasGame(ctx context.Context) (bool, error) {
	var n int
	if err := s.sqlDB.QueryRowContext(ctx, `SELECT COUNT(*) FROM kv WHERE key = ?`, SessionKey).Scan(&n); err != nil {
		return false, fmt.Errorf("check saved game: %w", err)
	}
	return n > 0, nil
}

func (s *SQLiteStore) RecordResult(ctx context.Context, result *GameResult) error {
	if result == nil {
		return nil
	}
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("序列化对局结果失败: %w", err)
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO results (game_id, data, finished_at) VALUES (?, ?, ?)`,
		result.GameID, data, result.FinishedAt); err != nil {
		return fmt.Errorf("record result: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM results WHERE id NOT IN (SELECT id FROM results ORDER BY id DESC LIMIT ?)`,
		MaxResults); err != nil {
		return fmt.Errorf("trim results: %w", err)
	}
	return tx.Commit()
}

func (s *SQLiteStore) RecentResults(ctx context.Context, limit int) ([]*GameResult, error) {
	if limit <= 0 {
		return nil, nil
	}
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT data FROM results ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*GameResult
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		var r GameResult
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, fmt.Errorf("反序列化对局结果失败: %w", err)
		}
		results = append(results, &r)
	}
	return results, rows.Err()
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}
