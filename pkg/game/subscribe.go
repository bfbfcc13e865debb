package game

import (
	"github.com/cbodonnell/wayfarer/pkg/game/types"
	"github.com/google/uuid"
)

// Subscribe returns a channel that receives a snapshot after every change.
// Only the latest snapshot is buffered; a slow reader skips intermediate ones.
func (s *Store) Subscribe() (uuid.UUID, <-chan *types.GameData) {
	id := uuid.New()
	ch := make(chan *types.GameData, 1)

	s.subscribersLock.Lock()
	s.subscribers[id] = ch
	s.subscribersLock.Unlock()

	return id, ch
}

// Unsubscribe closes the channel returned by Subscribe
func (s *Store) Unsubscribe(id uuid.UUID) {
	s.subscribersLock.Lock()
	defer s.subscribersLock.Unlock()
	if ch, ok := s.subscribers[id]; ok {
		close(ch)
		delete(s.subscribers, id)
	}
}

func (s *Store) unsubscribeAll() {
	s.subscribersLock.Lock()
	defer s.subscribersLock.Unlock()
	for id, ch := range s.subscribers {
		close(ch)
		delete(s.subscribers, id)
	}
}

func (s *Store) notify() {
	s.subscribersLock.Lock()
	defer s.subscribersLock.Unlock()
	if len(s.subscribers) == 0 {
		return
	}

	snapshot := s.Snapshot()
	for _, ch := range s.subscribers {
		select {
		case <-ch:
		default:
		}
		ch <- snapshot
	}
}
