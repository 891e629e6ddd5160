// Package memory provides the in-memory single-use OAuth state store.
package memory

import (
	"sync"
	"time"

	"github.com/custodia-labs/connect-cli/internal/core/domain"
	"github.com/custodia-labs/connect-cli/internal/core/ports/driven"
)

// Ensure StateStore implements the interface.
var _ driven.StateStore = (*StateStore)(nil)

// StateStore keeps live OAuth state nonces in a mutex-guarded map.
// Expiry is lazy: entries are checked against the TTL when taken, and
// expired entries are pruned on each Take to bound memory growth when a
// user abandons flows without calling back.
type StateStore struct {
	mu      sync.Mutex
	entries map[string]domain.OAuthState

	// Clock is swappable for tests. Defaults to time.Now.
	Clock func() time.Time
}

// NewStateStore creates an empty state store.
func NewStateStore() *StateStore {
	return &StateStore{
		entries: make(map[string]domain.OAuthState),
		Clock:   time.Now,
	}
}

// Put registers a nonce for a started flow.
func (s *StateStore) Put(nonce string, state domain.OAuthState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[nonce] = state
}

// Take consumes the entry for nonce. The entry is deleted whether or not
// it is still valid, so a replayed nonce always fails closed.
func (s *StateStore) Take(nonce string) (domain.OAuthState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.Clock()
	entry, ok := s.entries[nonce]
	if ok {
		delete(s.entries, nonce)
	}

	// Opportunistic sweep of abandoned entries.
	for n, e := range s.entries {
		if e.Expired(now) {
			delete(s.entries, n)
		}
	}

	if !ok || entry.Expired(now) {
		return domain.OAuthState{}, false
	}
	return entry, true
}

// Len returns the number of live entries.
func (s *StateStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
