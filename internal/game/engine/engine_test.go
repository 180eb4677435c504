package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/decawise/internal/apperrors"
	"github.com/palemoky/decawise/internal/storage"
	"github.com/palemoky/decawise/internal/testutil"
)

var fixedNow = time.Unix(1_760_000_000, 0)

func fixedClock() time.Time { return fixedNow }

func lastSnapshot(t *testing.T, store *testutil.MockSessionStore) *storage.GameSnapshot {
	t.Helper()
	for i := len(store.Calls) - 1; i >= 0; i-- {
		if store.Calls[i].Method == "SaveGame" {
			return store.Calls[i].Arguments.Get(1).(*storage.GameSnapshot)
		}
	}
	t.Fatal("SaveGame was never called")
	return nil
}

func TestEngine_PersistencePolicy(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := new(testutil.MockSessionStore)
	results := new(testutil.MockResultStore)
	store.On("DeleteGame", mock.Anything).Return(nil)
	store.On("SaveGame", mock.Anything, mock.AnythingOfType("*storage.GameSnapshot")).Return(nil)
	results.On("RecordResult", mock.Anything, mock.AnythingOfType("*storage.GameResult")).Return(nil)

	e := New(newTestRules(3), store, WithResults(results), WithClock(fixedClock))

	_, ok := e.Dispatch(ctx, StartGame{})
	require.True(t, ok)
	store.AssertNumberOfCalls(t, "DeleteGame", 1)

	_, ok = e.Dispatch(ctx, ChoosePlayers{Count: 2})
	require.True(t, ok)
	store.AssertNumberOfCalls(t, "SaveGame", 0)

	_, ok = e.Dispatch(ctx, ChoosePoints{Target: 10})
	require.True(t, ok)
	store.AssertNumberOfCalls(t, "SaveGame", 1)
	snap := lastSnapshot(t, store)
	assert.Equal(t, "playing", snap.Status)
	assert.Equal(t, fixedNow.Unix(), snap.SavedAt)
	assert.Equal(t, "game-1", snap.GameID)

	_, ok = e.Dispatch(ctx, Eliminate{PlayerID: "player_1"})
	require.True(t, ok)
	for i := range 10 {
		_, ok = e.Dispatch(ctx, SelectOption{Index: i, PlayerID: "player_0"})
		require.True(t, ok)
	}
	assert.Equal(t, StatusRoundEnd, e.State().Status)
	store.AssertNumberOfCalls(t, "SaveGame", 12)
	assert.Equal(t, "roundEnd", lastSnapshot(t, store).Status)
	assert.Len(t, lastSnapshot(t, store).AnsweredOptionsInRound, 10)

	state, ok := e.Dispatch(ctx, NextRound{})
	require.True(t, ok)
	require.Equal(t, StatusGameEnd, state.Status)
	store.AssertNumberOfCalls(t, "DeleteGame", 2)
	store.AssertNumberOfCalls(t, "SaveGame", 12)
	results.AssertNumberOfCalls(t, "RecordResult", 1)

	result := results.Calls[0].Arguments.Get(1).(*storage.GameResult)
	assert.Equal(t, "game-1", result.GameID)
	assert.Equal(t, "player_0", result.Winner.ID)
	assert.Equal(t, 1, result.Rounds)
	assert.Equal(t, 10, result.PointsToWin)
	assert.Equal(t, fixedNow.Unix(), result.FinishedAt)
	require.Len(t, result.Standings, 2)
	assert.Equal(t, "player_0", result.Standings[0].ID)

	_, ok = e.Dispatch(ctx, StartGame{})
	require.True(t, ok)
	store.AssertNumberOfCalls(t, "DeleteGame", 3)

	_, ok = e.Dispatch(ctx, BackToMenu{})
	require.True(t, ok)
	store.AssertNumberOfCalls(t, "DeleteGame", 4)
}

func TestEngine_NoopDoesNotTouchStore(t *testing.T) {
	t.Parallel()
	store := new(testutil.MockSessionStore)
	e := New(newTestRules(3), store)

	state, ok := e.Dispatch(context.Background(), ChoosePlayers{Count: 3})
	assert.False(t, ok)
	assert.Equal(t, StatusMenu, state.Status)

	_, ok = e.Dispatch(context.Background(), BackToMenu{})
	assert.False(t, ok)
	store.AssertExpectations(t)
	assert.Empty(t, store.Calls)
}

func TestEngine_StoreFailuresAreSwallowed(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	boom := errors.New("disk full")
	store := new(testutil.MockSessionStore)
	results := new(testutil.MockResultStore)
	store.On("DeleteGame", mock.Anything).Return(boom)
	store.On("SaveGame", mock.Anything, mock.Anything).Return(boom)
	store.On("HasGame", mock.Anything).Return(false, boom)
	results.On("RecordResult", mock.Anything, mock.Anything).Return(boom)

	e := New(newTestRules(3), store, WithResults(results))

	state, ok := e.Dispatch(ctx, StartGame{})
	require.True(t, ok)
	assert.Equal(t, StatusPlayerSetup, state.Status)

	e.Dispatch(ctx, ChoosePlayers{Count: 2})
	state, ok = e.Dispatch(ctx, ChoosePoints{Target: 1})
	require.True(t, ok)
	assert.Equal(t, StatusPlaying, state.Status)
	assert.Equal(t, state, e.State())

	e.Dispatch(ctx, SelectOption{Index: 0, PlayerID: "player_0"})
	e.Dispatch(ctx, Pass{PlayerID: "player_1"})
	e.Dispatch(ctx, Pass{PlayerID: "player_0"})
	require.Equal(t, StatusRoundEnd, e.State().Status)

	state, ok = e.Dispatch(ctx, NextRound{})
	require.True(t, ok)
	assert.Equal(t, StatusGameEnd, state.Status)
	results.AssertNumberOfCalls(t, "RecordResult", 1)

	assert.False(t, e.HasSavedGame(ctx))
}

func TestEngine_Continue(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := storage.NewMemoryStore(storage.JSONCodec{})
	rules := newTestRules(3)

	first := New(rules, store, WithResults(store))
	assert.False(t, first.HasSavedGame(ctx))
	first.Dispatch(ctx, StartGame{})
	first.Dispatch(ctx, ChoosePlayers{Count: 3})
	first.Dispatch(ctx, ChoosePoints{Target: 15})
	first.Dispatch(ctx, SelectOption{Index: 7, PlayerID: "player_0"})
	first.Dispatch(ctx, Eliminate{PlayerID: "player_2"})
	saved := first.State()

	second := New(rules, store)
	require.True(t, second.HasSavedGame(ctx))
	state, err := second.Continue(ctx)
	require.NoError(t, err)

	assert.Equal(t, StatusPlaying, state.Status)
	assert.Equal(t, saved.GameID, state.GameID)
	assert.Equal(t, saved.Players, state.Players)
	assert.Equal(t, []int{7}, state.Revealed.Sorted())
	assert.Equal(t, saved.CurrentPlayerIndex, state.CurrentPlayerIndex)
	assert.Equal(t, 15, state.PointsToWin)
	require.NotNil(t, state.CurrentQuestion)
	assert.Equal(t, saved.CurrentQuestion.ID, state.CurrentQuestion.ID)

	// Already in a game
	_, err = second.Continue(ctx)
	assert.ErrorIs(t, err, apperrors.ErrNoSavedGame)

	second.Dispatch(ctx, BackToMenu{})
	assert.False(t, second.HasSavedGame(ctx))
	_, err = second.Continue(ctx)
	assert.ErrorIs(t, err, apperrors.ErrNoSavedGame)
}

func TestEngine_ContinueErrors(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("no store", func(t *testing.T) {
		t.Parallel()
		e := New(newTestRules(1), nil)
		assert.False(t, e.HasSavedGame(ctx))
		_, err := e.Continue(ctx)
		assert.ErrorIs(t, err, apperrors.ErrNoSavedGame)
	})

	t.Run("load failure", func(t *testing.T) {
		t.Parallel()
		store := new(testutil.MockSessionStore)
		store.On("LoadGame", mock.Anything).Return(nil, errors.New("connection refused"))
		e := New(newTestRules(1), store)

		state, err := e.Continue(ctx)
		assert.Error(t, err)
		assert.Equal(t, StatusMenu, state.Status)
	})

	t.Run("corrupt status", func(t *testing.T) {
		t.Parallel()
		store := new(testutil.MockSessionStore)
		store.On("LoadGame", mock.Anything).Return(&storage.GameSnapshot{Status: "paused"}, nil)
		e := New(newTestRules(1), store)

		_, err := e.Continue(ctx)
		assert.ErrorIs(t, err, apperrors.ErrNoSavedGame)
		assert.Equal(t, StatusMenu, e.State().Status)
	})
}

func TestEngine_FinishedGameLandsInHistory(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := storage.NewMemoryStore(storage.ProtoCodec{})
	e := New(newTestRules(2), store, WithResults(store), WithClock(fixedClock))

	e.Dispatch(ctx, StartGame{})
	e.Dispatch(ctx, ChoosePlayers{Count: 2})
	e.Dispatch(ctx, ChoosePoints{Target: 1})
	e.Dispatch(ctx, SelectOption{Index: 3, PlayerID: "player_0"})
	e.Dispatch(ctx, PlayerClick(e.State(), "player_1"))
	e.Dispatch(ctx, PlayerClick(e.State(), "player_0"))
	require.Equal(t, StatusRoundEnd, e.State().Status)
	e.Dispatch(ctx, NextRound{})
	require.Equal(t, StatusGameEnd, e.State().Status)

	assert.False(t, e.HasSavedGame(ctx))
	recent, err := store.RecentResults(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "player_0", recent[0].Winner.ID)
	assert.Equal(t, 1, recent[0].Winner.Score)
}
