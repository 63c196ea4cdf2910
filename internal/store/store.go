// Package store holds per-user conversation state in memory.
package store

import (
	"sync"

	"github.com/yoobic-labs/helpdesk-bot/internal/model"
	"github.com/yoobic-labs/helpdesk-bot/pkg/metrics"
)

// Store maps user identifiers to their conversation state. Entries live
// for the process lifetime or until cleared; there is no expiry and no
// persistence. At most one state exists per user; Set replaces the prior
// entry wholesale.
type Store struct {
	mu     sync.RWMutex
	states map[string]model.ConversationState

	userLocks sync.Map // userID -> *sync.Mutex
}

// New creates an empty store.
func New() *Store {
	return &Store{
		states: make(map[string]model.ConversationState),
	}
}

// Get returns the state for a user, reporting whether one exists. A user
// without state is at the implicit initial step.
func (s *Store) Get(userID string) (model.ConversationState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.states[userID]
	return state, ok
}

// Set replaces the user's state.
func (s *Store) Set(userID string, state model.ConversationState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.states[userID]; !exists {
		metrics.ActiveConversations.Inc()
	}
	s.states[userID] = state
}

// Clear removes the user's state entirely. A subsequent Get reports
// absent, never a stale step.
func (s *Store) Clear(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.states[userID]; exists {
		metrics.ActiveConversations.Dec()
	}
	delete(s.states, userID)
}

// Lock serializes a user's dialogue turns. The webhook handler holds the
// returned release function across its read-decide-write sequence so
// parallel requests from the same user cannot interleave; distinct users
// proceed independently.
func (s *Store) Lock(userID string) (release func()) {
	v, _ := s.userLocks.LoadOrStore(userID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
