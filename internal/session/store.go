// Package session keeps wizard state per browser session and issues the
// signed tokens that identify a session in its cookie.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/internship-finder/internal/types"
)

// Store persists SessionState by session ID.
type Store interface {
	// Load returns the state for id, or a new empty state if none exists.
	Load(ctx context.Context, id uuid.UUID) (*types.SessionState, error)
	// Save replaces the state for id.
	Save(ctx context.Context, id uuid.UUID, state *types.SessionState) error
}

type memoryEntry struct {
	state     types.SessionState
	updatedAt time.Time
}

// MemoryStore is an in-process Store. Entries idle longer than the TTL are
// swept periodically.
type MemoryStore struct {
	mu        sync.RWMutex
	entries   map[uuid.UUID]*memoryEntry
	ttl       time.Duration
	sweepStop chan struct{}
	stopOnce  sync.Once
	now       func() time.Time
}

// NewMemoryStore creates a MemoryStore. A positive ttl starts a sweeper that
// runs every sweepInterval; call Stop to end it.
func NewMemoryStore(ttl, sweepInterval time.Duration) *MemoryStore {
	s := &MemoryStore{
		entries: make(map[uuid.UUID]*memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
	if ttl > 0 && sweepInterval > 0 {
		s.sweepStop = make(chan struct{})
		go s.sweepLoop(sweepInterval)
	}
	return s
}

// Load implements Store. The returned state is a copy.
func (s *MemoryStore) Load(_ context.Context, id uuid.UUID) (*types.SessionState, error) {
	s.mu.RLock()
	entry, ok := s.entries[id]
	s.mu.RUnlock()

	if !ok || s.expired(entry) {
		return &types.SessionState{}, nil
	}
	state := cloneState(entry.state)
	return &state, nil
}

// Save implements Store.
func (s *MemoryStore) Save(_ context.Context, id uuid.UUID, state *types.SessionState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[id] = &memoryEntry{state: cloneState(*state), updatedAt: s.now()}
	return nil
}

// Len returns the number of stored sessions, including expired ones not yet swept.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Stop ends the sweeper goroutine.
func (s *MemoryStore) Stop() {
	s.stopOnce.Do(func() {
		if s.sweepStop != nil {
			close(s.sweepStop)
		}
	})
}

func (s *MemoryStore) expired(entry *memoryEntry) bool {
	return s.ttl > 0 && s.now().Sub(entry.updatedAt) > s.ttl
}

func (s *MemoryStore) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.sweepStop:
			return
		}
	}
}

func (s *MemoryStore) sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, entry := range s.entries {
		if s.expired(entry) {
			delete(s.entries, id)
		}
	}
}

func cloneState(in types.SessionState) types.SessionState {
	out := in
	if in.Skills != nil {
		out.Skills = append(types.SkillSet(nil), in.Skills...)
	}
	if in.Contact != nil {
		contact := *in.Contact
		out.Contact = &contact
	}
	return out
}
