package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/aretw0/formwise/pkg/domain"
	"github.com/aretw0/formwise/pkg/ports"
)

// Store implements ports.SessionStore with an in-process map. It is
// the default backend for tests and single-instance deployments.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]map[string]domain.Values
}

var _ ports.SessionStore = (*Store)(nil)

// NewStore creates an empty in-memory session store.
func NewStore() *Store {
	return &Store{
		sessions: make(map[string]map[string]domain.Values),
	}
}

// Get retrieves the mapping stored under (sessionID, key).
func (s *Store) Get(ctx context.Context, sessionID, key string) (domain.Values, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	values, ok := session[key]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return values.Clone(), nil
}

// Put stores a copy of the mapping under (sessionID, key).
func (s *Store) Put(ctx context.Context, sessionID, key string, values domain.Values) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		session = make(map[string]domain.Values)
		s.sessions[sessionID] = session
	}
	session[key] = values.Clone()
	return nil
}

// Clear removes every key of the session starting with keyPrefix.
func (s *Store) Clear(ctx context.Context, sessionID, keyPrefix string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return nil
	}
	for key := range session {
		if strings.HasPrefix(key, keyPrefix) {
			delete(session, key)
		}
	}
	if len(session) == 0 {
		delete(s.sessions, sessionID)
	}
	return nil
}
