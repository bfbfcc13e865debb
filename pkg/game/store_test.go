package game

import (
	"context"
	"errors"
	"testing"
	"time"

	authmocks "github.com/cbodonnell/wayfarer/mocks/github.com/cbodonnell/wayfarer/pkg/auth/providers"
	repomocks "github.com/cbodonnell/wayfarer/mocks/github.com/cbodonnell/wayfarer/pkg/repositories"
	authproviders "github.com/cbodonnell/wayfarer/pkg/auth/providers"
	"github.com/cbodonnell/wayfarer/pkg/game/constants"
	"github.com/cbodonnell/wayfarer/pkg/game/types"
	"github.com/cbodonnell/wayfarer/pkg/repositories"
	"github.com/cbodonnell/wayfarer/pkg/workers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// newLoggedInStore returns a store for user-1 that saves synchronously to a mock repository
func newLoggedInStore(t *testing.T) (*Store, *repomocks.Repository) {
	repository := repomocks.NewRepository(t)
	store := NewStore(NewStoreOptions{Repository: repository})
	store.SetUserID("user-1")
	return store, repository
}

func TestNewStore_Defaults(t *testing.T) {
	store := NewStore(NewStoreOptions{})

	assert.Equal(t, "", store.UserID())
	assert.Equal(t, types.Player{X: 100, Y: 100, Speed: 3, Direction: types.DirectionDown, CurrentMap: "start"}, store.Player())
	assert.False(t, store.GameStarted())
	assert.Empty(t, store.Inventory())
	assert.Equal(t, 100, store.Sanity())
	assert.Empty(t, store.StoryFlags())
	assert.True(t, store.IsPlayerMoving())
	assert.Equal(t, 0, store.InventoryCount())
	assert.False(t, store.IsGameOver())
}

func TestStore_LoggedOutNeverTouchesStorage(t *testing.T) {
	// no expectations: any repository call fails the test
	repository := repomocks.NewRepository(t)
	store := NewStore(NewStoreOptions{Repository: repository})
	ctx := context.Background()

	store.AdjustSanity(ctx, -10)
	store.AddToInventory(ctx, types.InventoryItem{ID: "lamp"})
	store.RemoveFromInventory(ctx, "lamp", 1)
	store.SetStoryFlag(ctx, "intro_seen", true)
	require.NoError(t, store.SaveGameData(ctx))
	require.NoError(t, store.LoadGameData(ctx))
	assert.ErrorIs(t, store.ChangeMap(ctx, "cellar"), ErrNotLoggedIn)

	assert.Equal(t, 90, store.Sanity())
	assert.Equal(t, "start", store.Player().CurrentMap)
	assert.True(t, store.GetStoryFlag("intro_seen"))
}

func TestStore_AdjustSanity(t *testing.T) {
	tests := []struct {
		name    string
		start   int
		amounts []int
		want    int
	}{
		{name: "decrease", start: 100, amounts: []int{-30}, want: 70},
		{name: "clamp at max", start: 100, amounts: []int{10}, want: 100},
		{name: "clamp at min", start: 20, amounts: []int{-150}, want: 0},
		{name: "recover from zero", start: 0, amounts: []int{-5, 15}, want: 15},
		{name: "no change", start: 50, amounts: []int{0}, want: 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewStore(NewStoreOptions{})
			store.sanity = tt.start
			for _, amount := range tt.amounts {
				store.AdjustSanity(context.Background(), amount)
			}
			assert.Equal(t, tt.want, store.Sanity())
			assert.GreaterOrEqual(t, store.Sanity(), constants.MinSanity)
			assert.LessOrEqual(t, store.Sanity(), constants.MaxSanity)
			assert.Equal(t, tt.want == 0, store.IsGameOver())
		})
	}
}

func TestStore_AddToInventory(t *testing.T) {
	lamp := types.InventoryItem{ID: "lamp", Name: "Lamp"}
	tests := []struct {
		name     string
		existing []types.InventoryItem
		add      types.InventoryItem
		want     []types.InventoryItem
	}{
		{
			name: "append new item",
			add:  lamp,
			want: []types.InventoryItem{lamp},
		},
		{
			name:     "stack quantities",
			existing: []types.InventoryItem{{ID: "coin", Quantity: 2}},
			add:      types.InventoryItem{ID: "coin", Quantity: 3},
			want:     []types.InventoryItem{{ID: "coin", Quantity: 5}},
		},
		{
			name:     "stack onto item without quantity counts it as one",
			existing: []types.InventoryItem{{ID: "coin"}},
			add:      types.InventoryItem{ID: "coin", Quantity: 2},
			want:     []types.InventoryItem{{ID: "coin", Quantity: 3}},
		},
		{
			name:     "incoming item without quantity is appended",
			existing: []types.InventoryItem{lamp},
			add:      lamp,
			want:     []types.InventoryItem{lamp, lamp},
		},
		{
			name:     "negative quantity counts as unset",
			existing: []types.InventoryItem{{ID: "coin", Quantity: 2}},
			add:      types.InventoryItem{ID: "coin", Quantity: -4},
			want:     []types.InventoryItem{{ID: "coin", Quantity: 2}, {ID: "coin"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewStore(NewStoreOptions{})
			store.inventory = append(store.inventory, tt.existing...)
			store.AddToInventory(context.Background(), tt.add)
			assert.Equal(t, tt.want, store.Inventory())
			assert.Equal(t, len(tt.want), store.InventoryCount())
		})
	}
}

func TestStore_RemoveFromInventory(t *testing.T) {
	tests := []struct {
		name     string
		existing []types.InventoryItem
		itemID   string
		quantity int
		want     []types.InventoryItem
	}{
		{
			name:     "decrement stack",
			existing: []types.InventoryItem{{ID: "coin", Quantity: 5}},
			itemID:   "coin",
			quantity: 2,
			want:     []types.InventoryItem{{ID: "coin", Quantity: 3}},
		},
		{
			name:     "remove when quantity is exhausted",
			existing: []types.InventoryItem{{ID: "coin", Quantity: 2}},
			itemID:   "coin",
			quantity: 2,
			want:     []types.InventoryItem{},
		},
		{
			name:     "default quantity is one",
			existing: []types.InventoryItem{{ID: "coin", Quantity: 2}},
			itemID:   "coin",
			want:     []types.InventoryItem{{ID: "coin", Quantity: 1}},
		},
		{
			name:     "remove item without quantity",
			existing: []types.InventoryItem{{ID: "lamp"}, {ID: "key", IsKeyItem: true}},
			itemID:   "lamp",
			quantity: 1,
			want:     []types.InventoryItem{{ID: "key", IsKeyItem: true}},
		},
		{
			name:     "unknown item",
			existing: []types.InventoryItem{{ID: "lamp"}},
			itemID:   "sword",
			want:     []types.InventoryItem{{ID: "lamp"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewStore(NewStoreOptions{})
			store.inventory = append(store.inventory, tt.existing...)
			store.RemoveFromInventory(context.Background(), tt.itemID, tt.quantity)
			assert.Equal(t, tt.want, store.Inventory())
		})
	}
}

func TestStore_StoryFlags(t *testing.T) {
	store := NewStore(NewStoreOptions{})
	ctx := context.Background()

	assert.False(t, store.GetStoryFlag("met_keeper"))

	store.SetStoryFlag(ctx, "met_keeper", true)
	store.SetStoryFlag(ctx, "door_open", false)
	assert.True(t, store.GetStoryFlag("met_keeper"))
	assert.False(t, store.GetStoryFlag("door_open"))

	store.SetStoryFlag(ctx, "met_keeper", false)
	assert.False(t, store.GetStoryFlag("met_keeper"))
	assert.Len(t, store.StoryFlags(), 2)
}

func TestStore_MutationsAutoSave(t *testing.T) {
	store, repository := newLoggedInStore(t)
	ctx := context.Background()

	repository.EXPECT().SaveGameData(mock.Anything, mock.MatchedBy(func(data *types.GameData) bool {
		return data.UserID == "user-1" && data.Sanity == 75
	})).Return(nil).Once()
	store.AdjustSanity(ctx, -25)

	repository.EXPECT().SaveGameData(mock.Anything, mock.MatchedBy(func(data *types.GameData) bool {
		return len(data.Inventory) == 1 && data.Inventory[0].ID == "lamp"
	})).Return(nil).Once()
	store.AddToInventory(ctx, types.InventoryItem{ID: "lamp"})
}

func TestStore_SaveErrorKeepsState(t *testing.T) {
	store, repository := newLoggedInStore(t)
	ctx := context.Background()

	repository.EXPECT().SaveGameData(mock.Anything, mock.Anything).Return(errors.New("connection refused"))

	store.SetStoryFlag(ctx, "intro_seen", true)
	assert.True(t, store.GetStoryFlag("intro_seen"))

	err := store.SaveGameData(ctx)
	assert.ErrorContains(t, err, "connection refused")
}

func TestStore_AutoSaveThroughWorkerChannel(t *testing.T) {
	saveDataChan := make(chan workers.SaveGameDataRequest, 1)
	store := NewStore(NewStoreOptions{SaveDataChan: saveDataChan})
	store.SetUserID("user-1")

	store.AdjustSanity(context.Background(), -1)
	select {
	case req := <-saveDataChan:
		assert.Equal(t, "user-1", req.Data.UserID)
		assert.Equal(t, 99, req.Data.Sanity)
	default:
		t.Fatal("expected a save request")
	}

	// a full queue drops the request instead of blocking
	store.AdjustSanity(context.Background(), -1)
	store.AdjustSanity(context.Background(), -1)
	assert.Len(t, saveDataChan, 1)
	assert.Equal(t, 97, store.Sanity())
}

func TestStore_LoadGameData(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		store, repository := newLoggedInStore(t)
		saved := types.NewGameData("user-1")
		saved.Sanity = 42
		saved.Player.CurrentMap = "cellar"
		saved.Inventory = []types.InventoryItem{{ID: "key", IsKeyItem: true}}
		repository.EXPECT().LoadGameData(mock.Anything, "user-1").Return(saved, nil).Once()

		require.NoError(t, store.LoadGameData(context.Background()))
		assert.Equal(t, 42, store.Sanity())
		assert.Equal(t, "cellar", store.Player().CurrentMap)
		assert.Equal(t, 1, store.InventoryCount())
	})

	t.Run("never saved keeps defaults", func(t *testing.T) {
		store, repository := newLoggedInStore(t)
		repository.EXPECT().LoadGameData(mock.Anything, "user-1").Return(nil, &repositories.ErrNotFound{}).Once()

		require.NoError(t, store.LoadGameData(context.Background()))
		assert.Equal(t, 100, store.Sanity())
	})

	t.Run("error keeps state", func(t *testing.T) {
		store, repository := newLoggedInStore(t)
		store.sanity = 12
		repository.EXPECT().LoadGameData(mock.Anything, "user-1").Return(nil, errors.New("timeout")).Once()

		assert.Error(t, store.LoadGameData(context.Background()))
		assert.Equal(t, 12, store.Sanity())
	})
}

func TestStore_FetchUser(t *testing.T) {
	t.Run("valid session loads game", func(t *testing.T) {
		authProvider := authmocks.NewAuthProvider(t)
		repository := repomocks.NewRepository(t)
		store := NewStore(NewStoreOptions{AuthProvider: authProvider, Repository: repository})

		authProvider.EXPECT().VerifyToken(mock.Anything, "good").Return(&authproviders.TokenClaims{UID: "user-1"}, nil).Once()
		saved := types.NewGameData("user-1")
		saved.Sanity = 64
		repository.EXPECT().LoadGameData(mock.Anything, "user-1").Return(saved, nil).Once()

		require.NoError(t, store.FetchUser(context.Background(), "good"))
		assert.Equal(t, "user-1", store.UserID())
		assert.Equal(t, 64, store.Sanity())
	})

	t.Run("invalid session logs out", func(t *testing.T) {
		authProvider := authmocks.NewAuthProvider(t)
		store := NewStore(NewStoreOptions{AuthProvider: authProvider})
		store.SetUserID("stale")

		authProvider.EXPECT().VerifyToken(mock.Anything, "bad").Return(nil, errors.New("expired")).Once()

		err := store.FetchUser(context.Background(), "bad")
		assert.ErrorIs(t, err, ErrNotLoggedIn)
		assert.Equal(t, "", store.UserID())
	})

	t.Run("empty token", func(t *testing.T) {
		store := NewStore(NewStoreOptions{AuthProvider: authmocks.NewAuthProvider(t)})
		assert.ErrorIs(t, store.FetchUser(context.Background(), ""), ErrNotLoggedIn)
	})
}

func TestStore_ClearGameData(t *testing.T) {
	store, repository := newLoggedInStore(t)
	repository.EXPECT().SaveGameData(mock.Anything, mock.Anything).Return(nil)
	ctx := context.Background()

	store.StartGame(ctx)
	store.AdjustSanity(ctx, -50)
	store.AddToInventory(ctx, types.InventoryItem{ID: "lamp"})
	store.SetStoryFlag(ctx, "intro_seen", true)

	_, updates := store.Subscribe()
	store.ClearGameData()

	select {
	case _, ok := <-updates:
		assert.False(t, ok, "subscriptions are closed on logout")
	case <-time.After(time.Second):
		t.Fatal("subscription was not closed")
	}
	assert.Equal(t, "", store.UserID())
	assert.False(t, store.GameStarted())
	assert.Equal(t, 100, store.Sanity())
	assert.Empty(t, store.Inventory())
	assert.Empty(t, store.StoryFlags())
	assert.Equal(t, types.NewPlayer(), store.Player())
}

func TestStore_MovePlayer(t *testing.T) {
	tests := []struct {
		name      string
		direction types.Direction
		wantX     float64
		wantY     float64
		wantErr   bool
	}{
		{name: "up", direction: types.DirectionUp, wantX: 100, wantY: 97},
		{name: "down", direction: types.DirectionDown, wantX: 100, wantY: 103},
		{name: "left", direction: types.DirectionLeft, wantX: 97, wantY: 100},
		{name: "right", direction: types.DirectionRight, wantX: 103, wantY: 100},
		{name: "invalid", direction: "diagonal", wantX: 100, wantY: 100, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewStore(NewStoreOptions{})
			err := store.MovePlayer(context.Background(), tt.direction)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDirection)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.direction, store.Player().Direction)
			}
			assert.Equal(t, tt.wantX, store.Player().X)
			assert.Equal(t, tt.wantY, store.Player().Y)
		})
	}
}

func TestStore_SetSpeed(t *testing.T) {
	store := NewStore(NewStoreOptions{})
	ctx := context.Background()

	require.NoError(t, store.SetSpeed(ctx, 0))
	assert.False(t, store.IsPlayerMoving())
	assert.ErrorIs(t, store.SetSpeed(ctx, -1), ErrInvalidSpeed)

	store.SetPosition(ctx, 12, 34)
	assert.Equal(t, 12.0, store.Player().X)
	assert.Equal(t, 34.0, store.Player().Y)
}

func TestStore_ChangeMap(t *testing.T) {
	ctx := context.Background()

	t.Run("accessible", func(t *testing.T) {
		store, repository := newLoggedInStore(t)
		repository.EXPECT().GetMap(mock.Anything, "cellar").Return(&types.MapInfo{Name: "cellar", Accessible: true}, nil).Once()
		repository.EXPECT().SaveGameData(mock.Anything, mock.Anything).Return(nil).Once()

		require.NoError(t, store.ChangeMap(ctx, "cellar"))
		assert.Equal(t, "cellar", store.Player().CurrentMap)
	})

	t.Run("locked", func(t *testing.T) {
		store, repository := newLoggedInStore(t)
		repository.EXPECT().GetMap(mock.Anything, "vault").Return(&types.MapInfo{Name: "vault"}, nil).Once()

		assert.ErrorIs(t, store.ChangeMap(ctx, "vault"), ErrMapLocked)
		assert.Equal(t, "start", store.Player().CurrentMap)
	})

	t.Run("unknown", func(t *testing.T) {
		store, repository := newLoggedInStore(t)
		repository.EXPECT().GetMap(mock.Anything, "void").Return(nil, &repositories.ErrNotFound{}).Once()

		assert.ErrorIs(t, store.ChangeMap(ctx, "void"), ErrMapNotFound)
	})
}

func TestStore_Subscribe(t *testing.T) {
	store := NewStore(NewStoreOptions{})
	id, updates := store.Subscribe()

	store.AdjustSanity(context.Background(), -10)
	store.AdjustSanity(context.Background(), -10)

	select {
	case data := <-updates:
		// only the latest snapshot is kept
		assert.Equal(t, 80, data.Sanity)
	case <-time.After(time.Second):
		t.Fatal("expected a snapshot")
	}

	store.Unsubscribe(id)
	_, ok := <-updates
	assert.False(t, ok)
}

func TestStore_SnapshotIsDeepCopy(t *testing.T) {
	store := NewStore(NewStoreOptions{})
	store.AddToInventory(context.Background(), types.InventoryItem{ID: "lamp"})

	snapshot := store.Snapshot()
	snapshot.Inventory[0].ID = "changed"

	assert.Equal(t, "lamp", store.Inventory()[0].ID)
}
