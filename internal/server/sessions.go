package server

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/tui-match3/internal/games/match3"
)

// entry guards one session. Requests on the same session are serialized by
// mu; different sessions proceed in parallel.
type entry struct {
	mu       sync.Mutex
	session  *match3.Session
	lastUsed time.Time
	saved    bool // the finished run was persisted
}

type sessionStore struct {
	mu    sync.RWMutex
	items map[uuid.UUID]*entry
}

func newSessionStore() *sessionStore {
	return &sessionStore{items: make(map[uuid.UUID]*entry)}
}

func (s *sessionStore) add(sess *match3.Session) *entry {
	e := &entry{session: sess, lastUsed: time.Now()}
	s.mu.Lock()
	s.items[sess.ID()] = e
	s.mu.Unlock()
	return e
}

func (s *sessionStore) get(id uuid.UUID) (*entry, bool) {
	s.mu.RLock()
	e, ok := s.items[id]
	s.mu.RUnlock()
	return e, ok
}

func (s *sessionStore) remove(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return false
	}
	delete(s.items, id)
	return true
}

func (s *sessionStore) len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// sweep drops sessions idle since before cutoff and returns how many went.
func (s *sessionStore) sweep(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, e := range s.items {
		if !e.mu.TryLock() {
			continue // in use
		}
		idle := e.lastUsed.Before(cutoff)
		e.mu.Unlock()
		if idle {
			delete(s.items, id)
			n++
		}
	}
	return n
}
