package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aretw0/formwise/pkg/domain"
	"github.com/aretw0/formwise/pkg/ports"
	backend "github.com/redis/go-redis/v9"
)

// Store implements ports.SessionStore using Redis. Each (session, key)
// pair maps to one Redis key so a step re-submission overwrites only
// its own slot.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

var _ ports.SessionStore = (*Store)(nil)

type Option func(*Store)

// WithTTL sets the expiration for session keys.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for sessions.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "formwise:session:",
		ttl:    0, // No expiration by default
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

// Locker returns a distributed locker sharing this store's client and
// key prefix.
func (s *Store) Locker() *Locker {
	return NewLocker(s.client, s.prefix)
}

func (s *Store) key(sessionID, key string) string {
	return s.prefix + sessionID + ":" + key
}

// Get retrieves the mapping stored under (sessionID, key).
func (s *Store) Get(ctx context.Context, sessionID, key string) (domain.Values, error) {
	val, err := s.client.Get(ctx, s.key(sessionID, key)).Result()
	if err != nil {
		if err == backend.Nil {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var values domain.Values
	if err := json.Unmarshal([]byte(val), &values); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session data: %w", err)
	}
	return values, nil
}

// Put stores the mapping under (sessionID, key) with the configured TTL.
func (s *Store) Put(ctx context.Context, sessionID, key string, values domain.Values) error {
	data, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("failed to marshal session data: %w", err)
	}

	if err := s.client.Set(ctx, s.key(sessionID, key), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Clear removes every key of the session starting with keyPrefix,
// scanning in batches so large sessions never block Redis.
func (s *Store) Clear(ctx context.Context, sessionID, keyPrefix string) error {
	pattern := s.key(sessionID, keyPrefix) + "*"

	var cursor uint64
	for {
		keys, next, err := s.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return fmt.Errorf("failed to scan session keys: %w", err)
		}
		if len(keys) > 0 {
			if err := s.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("failed to delete session keys: %w", err)
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
