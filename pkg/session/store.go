package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/factybot/facty/pkg/metrics"
)

// Store holds live sessions keyed by conversation identity. It is injected
// into the front-ends rather than held as ambient global state so lifecycle
// is explicit and testable.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewStore creates an empty in-memory session store.
func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*Session),
	}
}

// GetOrCreate returns the session for the identity, creating a fresh one in
// the awaiting-name state when none exists. The second result reports
// whether the session was just created.
func (st *Store) GetOrCreate(identity string) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if s, ok := st.sessions[identity]; ok {
		return s, false
	}
	s := &Session{
		ID:        uuid.New().String(),
		Identity:  identity,
		State:     StateAwaitingName,
		StartTime: time.Now(),
	}
	st.sessions[identity] = s
	metrics.DefaultRecorder().SetSessionsActive(len(st.sessions))
	return s, true
}

// Get returns the session for the identity, if any.
func (st *Store) Get(identity string) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[identity]
	return s, ok
}

// Reset deletes the identity's session. The next message re-enters
// onboarding from scratch.
func (st *Store) Reset(identity string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()

	if _, ok := st.sessions[identity]; !ok {
		return false
	}
	delete(st.sessions, identity)
	metrics.DefaultRecorder().SetSessionsActive(len(st.sessions))
	return true
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
