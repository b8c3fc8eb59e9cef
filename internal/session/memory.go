package session

import (
	"context"
	"sync"
	"time"
)

// memoryEntry pairs a session user with its expiry.
type memoryEntry struct {
	user      *User
	expiresAt time.Time
}

// MemoryStore is a process-wide in-memory session store.
//
// Safe for concurrent use. Expired entries are rejected on read and
// reaped by a background janitor so abandoned sessions don't accumulate
// for the life of the process.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]memoryEntry
	stop     chan struct{}
	stopOnce sync.Once
}

// compile-time check that *MemoryStore implements Store
var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates a MemoryStore and starts its cleanup worker.
// cleanupInterval <= 0 disables the janitor (useful in tests).
func NewMemoryStore(cleanupInterval time.Duration) *MemoryStore {
	s := &MemoryStore{
		sessions: make(map[string]memoryEntry),
		stop:     make(chan struct{}),
	}
	if cleanupInterval > 0 {
		go s.janitor(cleanupInterval)
	}
	return s
}

func (s *MemoryStore) Get(_ context.Context, id string) (*User, error) {
	s.mu.RLock()
	entry, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return nil, ErrNoSession
	}

	// Return a copy so callers can't mutate the stored record.
	u := *entry.user
	return &u, nil
}

func (s *MemoryStore) Put(_ context.Context, id string, user *User, expiresAt time.Time) error {
	u := *user
	s.mu.Lock()
	s.sessions[id] = memoryEntry{user: &u, expiresAt: expiresAt}
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	return nil
}

// Close stops the cleanup worker. Safe to call more than once.
func (s *MemoryStore) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
}

// janitor periodically removes expired sessions.
func (s *MemoryStore) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case now := <-ticker.C:
			s.mu.Lock()
			for id, entry := range s.sessions {
				if now.After(entry.expiresAt) {
					delete(s.sessions, id)
				}
			}
			s.mu.Unlock()
		}
	}
}
