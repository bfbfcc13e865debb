package state

import (
	"context"
	"errors"
	"sync"

	authproviders "github.com/cbodonnell/wayfarer/pkg/auth/providers"
	"github.com/cbodonnell/wayfarer/pkg/game"
	"github.com/cbodonnell/wayfarer/pkg/game/types"
	"github.com/cbodonnell/wayfarer/pkg/log"
	"github.com/cbodonnell/wayfarer/pkg/repositories"
	"github.com/cbodonnell/wayfarer/pkg/workers"
)

var _ SessionManager = &InMemorySessionManager{}
var _ workers.GameDataSource = &InMemorySessionManager{}

type InMemorySessionManager struct {
	lock   sync.RWMutex
	stores map[string]*game.Store

	authProvider authproviders.AuthProvider
	repository   repositories.Repository
	saveDataChan chan<- workers.SaveGameDataRequest
}

type NewInMemorySessionManagerOptions struct {
	AuthProvider authproviders.AuthProvider
	Repository   repositories.Repository
	SaveDataChan chan<- workers.SaveGameDataRequest
}

func NewInMemorySessionManager(opts NewInMemorySessionManagerOptions) *InMemorySessionManager {
	return &InMemorySessionManager{
		stores:       make(map[string]*game.Store),
		authProvider: opts.AuthProvider,
		repository:   opts.Repository,
		saveDataChan: opts.SaveDataChan,
	}
}

func (m *InMemorySessionManager) FetchUser(ctx context.Context, token string) (*game.Store, error) {
	if token == "" {
		return nil, game.ErrNotLoggedIn
	}
	claims, err := m.authProvider.VerifyToken(ctx, token)
	if err != nil {
		log.Debug("Failed to verify session token: %v", err)
		return nil, game.ErrNotLoggedIn
	}

	if store, ok := m.Get(claims.UID); ok {
		return store, nil
	}

	store := game.NewStore(game.NewStoreOptions{
		AuthProvider: m.authProvider,
		Repository:   m.repository,
		SaveDataChan: m.saveDataChan,
	})
	if err := store.FetchUser(ctx, token); err != nil {
		if errors.Is(err, game.ErrNotLoggedIn) {
			return nil, err
		}
		// a failed load keeps the defaults; the error is logged by the store
	}

	m.lock.Lock()
	if existing, ok := m.stores[claims.UID]; ok {
		// another request won the race
		m.lock.Unlock()
		return existing, nil
	}
	m.stores[claims.UID] = store
	m.lock.Unlock()
	log.Debug("Created session for user %s", claims.UID)

	if claims.Email != "" {
		if err := m.repository.SaveUserEmail(ctx, claims.UID, claims.Email); err != nil {
			log.Error("Failed to record email for user %s: %v", claims.UID, err)
		}
	}
	return store, nil
}

func (m *InMemorySessionManager) Get(userID string) (*game.Store, bool) {
	m.lock.RLock()
	defer m.lock.RUnlock()
	store, ok := m.stores[userID]
	return store, ok
}

// Logout clears the user's store and forgets it. Providers that can revoke
// sessions also end the user's refresh tokens.
func (m *InMemorySessionManager) Logout(ctx context.Context, userID string) {
	m.lock.Lock()
	store, ok := m.stores[userID]
	delete(m.stores, userID)
	m.lock.Unlock()

	if ok {
		store.ClearGameData()
		log.Debug("Removed session for user %s", userID)
	}

	if revoker, ok := m.authProvider.(SessionRevoker); ok {
		if err := revoker.RevokeSessions(ctx, userID); err != nil {
			log.Error("Failed to revoke sessions of user %s: %v", userID, err)
		}
	}
}

// Snapshots returns the game data of every live session
func (m *InMemorySessionManager) Snapshots() []*types.GameData {
	m.lock.RLock()
	defer m.lock.RUnlock()
	snapshots := make([]*types.GameData, 0, len(m.stores))
	for _, store := range m.stores {
		if data := store.Snapshot(); data.UserID != "" {
			snapshots = append(snapshots, data)
		}
	}
	return snapshots
}
