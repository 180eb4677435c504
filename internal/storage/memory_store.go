package storage

import (
	"context"
	"slices"
	"sync"
)

// MemoryStore keeps everything in process. It still runs snapshots through the
// codec so callers never share memory with a saved game.
type MemoryStore struct {
	codec   Codec
	slot    []byte
	results []*GameResult
	mu      sync.Mutex
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(codec Codec) *MemoryStore {
	if codec == nil {
		codec = JSONCodec{}
	}
	return &MemoryStore{codec: codec}
}

func (ms *MemoryStore) SaveGame(ctx context.Context, snap *GameSnapshot) error {
	if snap == nil {
		return nil
	}
	data, err := ms.codec.Marshal(snap)
	if err != nil {
		return err
	}
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.slot = data
	return nil
}

func (ms *MemoryStore) LoadGame(ctx context.Context) (*GameSnapshot, error) {
	ms.mu.Lock()
	data := ms.slot
	ms.mu.Unlock()
	if data == nil {
		return nil, nil
	}
	var snap GameSnapshot
	if err := ms.codec.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (ms *MemoryStore) DeleteGame(ctx context.Context) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.slot = nil
	return nil
}

func (ms *MemoryStore) HasGame(ctx context.Context) (bool, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return ms.slot != nil, nil
}

func (ms *MemoryStore) RecordResult(ctx context.Context, result *GameResult) error {
	if result == nil {
		return nil
	}
	ms.mu.Lock()
	defer ms.mu.Unlock()
	r := *result
	r.Standings = slices.Clone(result.Standings)
	ms.results = append([]*GameResult{&r}, ms.results...)
	if len(ms.results) > MaxResults {
		ms.results = ms.results[:MaxResults]
	}
	return nil
}

func (ms *MemoryStore) RecentResults(ctx context.Context, limit int) ([]*GameResult, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if limit <= 0 {
		return nil, nil
	}
	return slices.Clone(ms.results[:min(limit, len(ms.results))]), nil
}

func (ms *MemoryStore) Close() error { return nil }
