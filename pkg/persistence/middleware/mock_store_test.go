package middleware_test

import (
	"context"
	"strings"

	"github.com/aretw0/formwise/pkg/domain"
	"github.com/aretw0/formwise/pkg/ports"
)

// MockStore is a simple map-based store for testing middleware.
type MockStore struct {
	data map[string]domain.Values
}

func NewMockStore() *MockStore {
	return &MockStore{
		data: make(map[string]domain.Values),
	}
}

func (s *MockStore) Put(ctx context.Context, sessionID, key string, values domain.Values) error {
	s.data[sessionID+"/"+key] = values
	return nil
}

func (s *MockStore) Get(ctx context.Context, sessionID, key string) (domain.Values, error) {
	values, ok := s.data[sessionID+"/"+key]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return values, nil
}

func (s *MockStore) Clear(ctx context.Context, sessionID, keyPrefix string) error {
	for k := range s.data {
		if strings.HasPrefix(k, sessionID+"/"+keyPrefix) {
			delete(s.data, k)
		}
	}
	return nil
}

var _ ports.SessionStore = (*MockStore)(nil)
