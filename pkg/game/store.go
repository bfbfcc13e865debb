package game

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	authproviders "github.com/cbodonnell/wayfarer/pkg/auth/providers"
	"github.com/cbodonnell/wayfarer/pkg/game/constants"
	"github.com/cbodonnell/wayfarer/pkg/game/types"
	"github.com/cbodonnell/wayfarer/pkg/log"
	"github.com/cbodonnell/wayfarer/pkg/repositories"
	"github.com/cbodonnell/wayfarer/pkg/workers"
	"github.com/google/uuid"
)

var (
	ErrNotLoggedIn      = errors.New("not logged in")
	ErrInvalidDirection = errors.New("invalid direction")
	ErrInvalidSpeed     = errors.New("speed must not be negative")
	ErrMapNotFound      = errors.New("map not found")
	ErrMapLocked        = errors.New("map is not accessible")
)

// Store holds the game state of one player and mirrors every change to the
// repository. Saves are fire-and-forget: their errors are logged and the
// in-memory state is kept either way.
type Store struct {
	lock        sync.RWMutex
	userID      string
	player      types.Player
	gameStarted bool
	inventory   []types.InventoryItem
	sanity      int
	storyFlags  []types.StoryFlag

	authProvider authproviders.AuthProvider
	repository   repositories.Repository
	saveDataChan chan<- workers.SaveGameDataRequest

	subscribersLock sync.Mutex
	subscribers     map[uuid.UUID]chan *types.GameData
}

type NewStoreOptions struct {
	AuthProvider authproviders.AuthProvider
	Repository   repositories.Repository
	// SaveDataChan receives auto-save requests. When nil, mutations save synchronously.
	SaveDataChan chan<- workers.SaveGameDataRequest
}

// NewStore creates a logged out store holding the default game state
func NewStore(opts NewStoreOptions) *Store {
	s := &Store{
		authProvider: opts.AuthProvider,
		repository:   opts.Repository,
		saveDataChan: opts.SaveDataChan,
		subscribers:  make(map[uuid.UUID]chan *types.GameData),
	}
	s.reset()
	return s
}

// reset restores the defaults; callers hold the lock or own s exclusively
func (s *Store) reset() {
	s.userID = ""
	s.player = types.NewPlayer()
	s.gameStarted = false
	s.inventory = []types.InventoryItem{}
	s.sanity = constants.MaxSanity
	s.storyFlags = []types.StoryFlag{}
}

// FetchUser resolves the session token and, when it is valid, loads the
// user's saved game. An invalid or empty token logs the store out.
func (s *Store) FetchUser(ctx context.Context, token string) error {
	if token == "" || s.authProvider == nil {
		s.setUserID("")
		return ErrNotLoggedIn
	}
	claims, err := s.authProvider.VerifyToken(ctx, token)
	if err != nil {
		log.Debug("No session: %v", err)
		s.setUserID("")
		return ErrNotLoggedIn
	}
	s.setUserID(claims.UID)
	return s.LoadGameData(ctx)
}

// SetUserID attaches the store to an already verified user
func (s *Store) SetUserID(userID string) {
	s.setUserID(userID)
}

func (s *Store) setUserID(userID string) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.userID = userID
}

// SaveGameData upserts the current state. It does nothing when logged out.
func (s *Store) SaveGameData(ctx context.Context) error {
	data := s.Snapshot()
	if data.UserID == "" {
		return nil
	}
	if err := s.repository.SaveGameData(ctx, data); err != nil {
		log.Error("Error saving game data: %v", err)
		return fmt.Errorf("failed to save game data: %v", err)
	}
	return nil
}

// LoadGameData replaces the state with the user's saved row. A user who has
// never saved keeps the current state. It does nothing when logged out.
func (s *Store) LoadGameData(ctx context.Context) error {
	userID := s.UserID()
	if userID == "" {
		return nil
	}

	data, err := s.repository.LoadGameData(ctx, userID)
	if err != nil {
		if repositories.IsNotFound(err) {
			log.Debug("No saved game for user %s", userID)
			return nil
		}
		log.Error("Error loading game data: %v", err)
		return fmt.Errorf("failed to load game data: %v", err)
	}

	s.lock.Lock()
	if s.userID != userID {
		// logged out or switched user while the select was in flight
		s.lock.Unlock()
		return nil
	}
	s.player = data.Player
	s.inventory = data.Inventory
	s.sanity = data.Sanity
	s.storyFlags = data.StoryFlags
	s.lock.Unlock()

	s.notify()
	return nil
}

// ClearGameData logs the store out and restores the default state without saving.
// Every subscription is closed; the store no longer belongs to a session.
func (s *Store) ClearGameData() {
	s.lock.Lock()
	s.reset()
	s.lock.Unlock()
	s.unsubscribeAll()
}

// StartGame marks the game as started
func (s *Store) StartGame(ctx context.Context) {
	s.mutate(ctx, func() {
		s.gameStarted = true
	})
}

// AddToInventory stacks item onto an entry with the same id when item carries
// a quantity, and appends it otherwise. Negative quantities count as unset.
func (s *Store) AddToInventory(ctx context.Context, item types.InventoryItem) {
	if item.Quantity < 0 {
		item.Quantity = 0
	}
	s.mutate(ctx, func() {
		for i := range s.inventory {
			if s.inventory[i].ID != item.ID || item.Quantity <= 0 {
				continue
			}
			existing := s.inventory[i].Quantity
			if existing <= 0 {
				existing = 1
			}
			s.inventory[i].Quantity = existing + item.Quantity
			return
		}
		s.inventory = append(s.inventory, item)
	})
}

// RemoveFromInventory takes quantity (default 1) from the item, dropping the
// entry when no more than quantity remain. Unknown ids leave the inventory unchanged.
func (s *Store) RemoveFromInventory(ctx context.Context, itemID string, quantity int) {
	if quantity <= 0 {
		quantity = 1
	}
	s.mutate(ctx, func() {
		for i := range s.inventory {
			if s.inventory[i].ID != itemID {
				continue
			}
			if s.inventory[i].Quantity > quantity {
				s.inventory[i].Quantity -= quantity
			} else {
				s.inventory = append(s.inventory[:i], s.inventory[i+1:]...)
			}
			return
		}
	})
}

// AdjustSanity adds amount to sanity, clamped to [MinSanity, MaxSanity]
func (s *Store) AdjustSanity(ctx context.Context, amount int) {
	s.mutate(ctx, func() {
		s.sanity = clamp(s.sanity+amount, constants.MinSanity, constants.MaxSanity)
	})
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}

// SetStoryFlag records the flag, overwriting any previous value
func (s *Store) SetStoryFlag(ctx context.Context, flagID string, value bool) {
	s.mutate(ctx, func() {
		for i := range s.storyFlags {
			if s.storyFlags[i].ID == flagID {
				s.storyFlags[i].Value = value
				return
			}
		}
		s.storyFlags = append(s.storyFlags, types.StoryFlag{ID: flagID, Value: value})
	})
}

// GetStoryFlag returns the flag value, false when it was never set
func (s *Store) GetStoryFlag(flagID string) bool {
	s.lock.RLock()
	defer s.lock.RUnlock()
	for _, flag := range s.storyFlags {
		if flag.ID == flagID {
			return flag.Value
		}
	}
	return false
}

// MovePlayer turns the player and steps Speed units in the direction
func (s *Store) MovePlayer(ctx context.Context, direction types.Direction) error {
	if _, err := types.ParseDirection(string(direction)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDirection, err)
	}
	s.mutate(ctx, func() {
		dx, dy := direction.Delta()
		s.player.Direction = direction
		s.player.X += dx * s.player.Speed
		s.player.Y += dy * s.player.Speed
	})
	return nil
}

func (s *Store) SetPosition(ctx context.Context, x, y float64) {
	s.mutate(ctx, func() {
		s.player.X = x
		s.player.Y = y
	})
}

func (s *Store) SetSpeed(ctx context.Context, speed float64) error {
	if speed < 0 {
		return ErrInvalidSpeed
	}
	s.mutate(ctx, func() {
		s.player.Speed = speed
	})
	return nil
}

// ChangeMap moves the player to the named map if its row marks it accessible.
// Logged out stores cannot change maps.
func (s *Store) ChangeMap(ctx context.Context, name string) error {
	if s.UserID() == "" {
		return ErrNotLoggedIn
	}
	m, err := s.repository.GetMap(ctx, name)
	if err != nil {
		if repositories.IsNotFound(err) {
			return fmt.Errorf("%w: %s", ErrMapNotFound, name)
		}
		return fmt.Errorf("failed to get map %s: %v", name, err)
	}
	if !m.Accessible {
		return fmt.Errorf("%w: %s", ErrMapLocked, name)
	}
	s.mutate(ctx, func() {
		s.player.CurrentMap = name
	})
	return nil
}

// mutate applies fn under the write lock, then auto-saves and notifies subscribers
func (s *Store) mutate(ctx context.Context, fn func()) {
	s.lock.Lock()
	fn()
	s.lock.Unlock()

	s.autoSave(ctx)
	s.notify()
}

func (s *Store) autoSave(ctx context.Context) {
	if s.saveDataChan == nil {
		// errors are already logged
		_ = s.SaveGameData(ctx)
		return
	}
	data := s.Snapshot()
	if data.UserID == "" {
		return
	}
	select {
	case s.saveDataChan <- workers.NewSaveGameDataRequest(data):
	default:
		log.Warn("Save queue full, dropping save for user %s until the next flush", data.UserID)
	}
}

func (s *Store) UserID() string {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.userID
}

func (s *Store) Player() types.Player {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.player
}

func (s *Store) GameStarted() bool {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.gameStarted
}

func (s *Store) Sanity() int {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.sanity
}

func (s *Store) Inventory() []types.InventoryItem {
	s.lock.RLock()
	defer s.lock.RUnlock()
	inventory := make([]types.InventoryItem, len(s.inventory))
	copy(inventory, s.inventory)
	return inventory
}

func (s *Store) StoryFlags() []types.StoryFlag {
	s.lock.RLock()
	defer s.lock.RUnlock()
	flags := make([]types.StoryFlag, len(s.storyFlags))
	copy(flags, s.storyFlags)
	return flags
}

func (s *Store) IsPlayerMoving() bool {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.player.Speed > 0
}

func (s *Store) InventoryCount() int {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return len(s.inventory)
}

func (s *Store) IsGameOver() bool {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.sanity <= constants.MinSanity
}

// Snapshot returns a deep copy of the persisted part of the state
func (s *Store) Snapshot() *types.GameData {
	s.lock.RLock()
	defer s.lock.RUnlock()
	data := &types.GameData{
		UserID:     s.userID,
		Player:     s.player,
		Inventory:  s.inventory,
		Sanity:     s.sanity,
		StoryFlags: s.storyFlags,
		UpdatedAt:  time.Now(),
	}
	return data.Copy()
}
