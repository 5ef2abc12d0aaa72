// Package session keeps the layout editing sessions ("workspaces") of the
// HTTP server in memory.
//
// Each [Session] wraps one layout.State behind a mutex, so concurrent requests
// against the same workspace are serialized while different workspaces
// proceed independently. Sessions expire after a period of inactivity;
// [MemoryStore.Cleanup] drops expired ones and is typically run on a ticker
// (see [MemoryStore.Janitor]).
//
// Layouts are not persisted: a restart discards every session.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/roomgrid/pkg/errors"
	"github.com/matzehuels/roomgrid/pkg/layout"
)

// DefaultTTL is the default idle lifetime of a session.
const DefaultTTL = 2 * time.Hour

// Session is one workspace.
type Session struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	mu        sync.Mutex
	state     *layout.State
	expiresAt time.Time
}

// Do runs fn with exclusive access to the session's layout state.
func (s *Session) Do(fn func(st *layout.State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.state)
}

// ExpiresAt returns when the session expires unless touched again.
func (s *Session) ExpiresAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expiresAt
}

func (s *Session) expired(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.After(s.expiresAt)
}

func (s *Session) touch(now time.Time, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expiresAt = now.Add(ttl)
}

// Store is the interface for session storage backends.
type Store interface {
	// Create starts a new session with a fresh layout.
	Create(ctx context.Context, opts layout.Options) (*Session, error)

	// Get retrieves a live session and extends its lifetime.
	// Unknown or expired sessions fail with SESSION_NOT_FOUND.
	Get(ctx context.Context, id uuid.UUID) (*Session, error)

	// Delete removes a session. Deleting an unknown session is not an error.
	Delete(ctx context.Context, id uuid.UUID) error

	// Cleanup removes expired sessions and returns how many were dropped.
	Cleanup(ctx context.Context) (int, error)
}

// MemoryStore is an in-process Store.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	ttl      time.Duration
	now      func() time.Time
}

// NewMemoryStore creates a store whose sessions expire after ttl of
// inactivity. A non-positive ttl uses DefaultTTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		sessions: make(map[uuid.UUID]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create implements Store.
func (m *MemoryStore) Create(ctx context.Context, opts layout.Options) (*Session, error) {
	st, err := layout.New(opts)
	if err != nil {
		return nil, err
	}
	now := m.now()
	sess := &Session{
		ID:        uuid.New(),
		CreatedAt: now,
		state:     st,
		expiresAt: now.Add(m.ttl),
	}

	m.mu.Lock()
	m.sessions[sess.ID] = sess
	m.mu.Unlock()
	return sess, nil
}

// Get implements Store.
func (m *MemoryStore) Get(ctx context.Context, id uuid.UUID) (*Session, error) {
	m.mu.RLock()
	sess, ok := m.sessions[id]
	m.mu.RUnlock()

	now := m.now()
	if !ok || sess.expired(now) {
		return nil, errors.New(errors.ErrCodeSessionNotFound, "no workspace with id %s", id)
	}
	sess.touch(now, m.ttl)
	return sess, nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// Cleanup implements Store.
func (m *MemoryStore) Cleanup(ctx context.Context) (int, error) {
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for id, sess := range m.sessions {
		if sess.expired(now) {
			delete(m.sessions, id)
			n++
		}
	}
	return n, nil
}

// Len returns the number of stored sessions, expired or not.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Janitor runs Cleanup every interval until ctx is done. onCleanup, if not
// nil, receives the number of sessions dropped by each non-empty pass.
func (m *MemoryStore) Janitor(ctx context.Context, interval time.Duration, onCleanup func(n int)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, _ := m.Cleanup(ctx)
			if n > 0 && onCleanup != nil {
				onCleanup(n)
			}
		}
	}
}

var _ Store = (*MemoryStore)(nil)
