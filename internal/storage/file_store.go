package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"
)

const resultsFile = "results.json"

// FileStore keeps the saved game and the history as files in one directory.
type FileStore struct {
	fs    afero.Fs
	dir   string
	codec Codec
	mu    sync.Mutex
}

// NewFileStore opens a store rooted at dir on the OS filesystem.
func NewFileStore(dir string, codec Codec) (*FileStore, error) {
	return NewFileStoreFs(afero.NewOsFs(), dir, codec)
}

// NewFileStoreFs opens a store rooted at dir on fsys.
func NewFileStoreFs(fsys afero.Fs, dir string, codec Codec) (*FileStore, error) {
	if codec == nil {
		codec = JSONCodec{}
	}
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}
	return &FileStore{fs: fsys, dir: dir, codec: codec}, nil
}

func (fst *FileStore) sessionPath() string {
	return filepath.Join(fst.dir, "game_state."+fst.codec.Name())
}

func (fst *FileStore) SaveGame(ctx context.Context, snap *GameSnapshot) error {
	if snap == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := fst.codec.Marshal(snap)
	if err != nil {
		return err
	}

	fst.mu.Lock()
	defer fst.mu.Unlock()
	return fst.writeAtomic(fst.sessionPath(), data)
}

func (fst *FileStore) LoadGame(ctx context.Context) (*GameSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fst.mu.Lock()
	data, err := afero.ReadFile(fst.fs, fst.sessionPath())
	fst.mu.Unlock()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read saved game: %w", err)
	}

	var snap GameSnapshot
	if err := fst.codec.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (fst *FileStore) DeleteGame(ctx context.Context) error {
	fst.mu.Lock()
	defer fst.mu.Unlock()
	if err := fst.fs.Remove(fst.sessionPath()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete saved game: %w", err)
	}
	return nil
}

func (fst *FileStore) HasGame(ctx context.Context) (bool, error) {
	fst.mu.Lock()
	defer fst.mu.Unlock()
	return afero.Exists(fst.fs, fst.sessionPath())
}

func (fst *FileStore) RecordResult(ctx context.Context, result *GameResult) error {
	if result == nil {
		return nil
	}

	fst.mu.Lock()
	defer fst.mu.Unlock()

	results, err := fst.readResults()
	if err != nil {
		return err
	}
	results = append([]*GameResult{result}, results...)
	if len(results) > MaxResults {
		results = results[:MaxResults]
	}

	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("序列化对局结果失败: %w", err)
	}
	return fst.writeAtomic(filepath.Join(fst.dir, resultsFile), data)
}

func (fst *FileStore) RecentResults(ctx context.Context, limit int) ([]*GameResult, error) {
	if limit <= 0 {
		return nil, nil
	}

	fst.mu.Lock()
	defer fst.mu.Unlock()

	results, err := fst.readResults()
	if err != nil {
		return nil, err
	}
	return results[:min(limit, len(results))], nil
}

func (fst *FileStore) Close() error { return nil }

func (fst *FileStore) readResults() ([]*GameResult, error) {
	data, err := afero.ReadFile(fst.fs, filepath.Join(fst.dir, resultsFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read results: %w", err)
	}
	var results []*GameResult
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("反序列化对局结果失败: %w", err)
	}
	return results, nil
}

// writeAtomic replaces path so a crash never leaves a half-written file.
func (fst *FileStore) writeAtomic(path string, data []byte) error {
	tmp, err := afero.TempFile(fst.fs, fst.dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = fst.fs.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = fst.fs.Remove(tmpName)
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := fst.fs.Rename(tmpName, path); err != nil {
		_ = fst.fs.Remove(tmpName)
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}
