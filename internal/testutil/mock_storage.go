//go:build !production

package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/palemoky/decawise/internal/storage"
)

// MockSessionStore 存档 mock
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) SaveGame(ctx context.Context, snap *storage.GameSnapshot) error {
	args := m.Called(ctx, snap)
	return args.Error(0)
}

func (m *MockSessionStore) LoadGame(ctx context.Context) (*storage.GameSnapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.GameSnapshot), args.Error(1)
}

func (m *MockSessionStore) DeleteGame(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSessionStore) HasGame(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

// MockResultStore 对局记录 mock
type MockResultStore struct {
	mock.Mock
}

func (m *MockResultStore) RecordResult(ctx context.Context, result *storage.GameResult) error {
	args := m.Called(ctx, result)
	return args.Error(0)
}

func (m *MockResultStore) RecentResults(ctx context.Context, limit int) ([]*storage.GameResult, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*storage.GameResult), args.Error(1)
}
