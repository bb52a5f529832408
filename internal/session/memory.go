package session

import (
	"context"
	"sync"
	"time"
)

// sweepInterval is the minimum time between two sweeps of the expired
// entries.
const sweepInterval = time.Minute

type memoryEntry struct {
	state     State
	expiresAt time.Time
}

// MemoryStorage keeps the sessions in the process memory.
//
// It is meant for a single web instance; use RedisStorage when the web
// server is scaled out.
type MemoryStorage struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]memoryEntry
	running map[string]time.Time

	lastSweep time.Time
	now       func() time.Time
}

// NewMemoryStorage creates a MemoryStorage. A non-positive ttl means DefaultTTL.
func NewMemoryStorage(ttl time.Duration) *MemoryStorage {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &MemoryStorage{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
		running: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (s *MemoryStorage) Get(_ context.Context, id string) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[id]
	if !ok {
		return State{}, ErrNotFound
	}
	if !s.now().Before(entry.expiresAt) {
		delete(s.entries, id)
		return State{}, ErrNotFound
	}

	return entry.state, nil
}

func (s *MemoryStorage) Save(_ context.Context, state State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[state.ID] = memoryEntry{
		state:     state,
		expiresAt: s.now().Add(s.ttl),
	}
	if s.now().Sub(s.lastSweep) >= sweepInterval {
		s.sweep()
	}

	return nil
}

func (s *MemoryStorage) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, id)
	delete(s.running, id)

	return nil
}

func (s *MemoryStorage) BeginRun(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if expiresAt, ok := s.running[id]; ok && s.now().Before(expiresAt) {
		return ErrBusy
	}

	s.running[id] = s.now().Add(RunGuardTTL)
	return nil
}

func (s *MemoryStorage) EndRun(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.running, id)
	return nil
}

// sweep drops the expired entries. The caller must hold s.mu.
func (s *MemoryStorage) sweep() {
	now := s.now()
	s.lastSweep = now

	for id, entry := range s.entries {
		if !now.Before(entry.expiresAt) {
			delete(s.entries, id)
		}
	}
	for id, expiresAt := range s.running {
		if !now.Before(expiresAt) {
			delete(s.running, id)
		}
	}
}

var _ Storage = (*MemoryStorage)(nil)
