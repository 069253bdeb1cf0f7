package session

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"log/slog"

	"github.com/aretw0/formwise/internal/logging"
	"github.com/aretw0/formwise/pkg/domain"
	"github.com/aretw0/formwise/pkg/ports"
)

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager is the typed step data store. It owns the persisted wizard
// state of every session and serializes writes per session; two
// concurrent submissions for the same session are last-write-wins,
// but the consolidated view is always rebuilt from the step slots so
// re-submission of an already-processed step cannot corrupt it.
type Manager struct {
	store ports.SessionStore

	mu    sync.Mutex            // Global lock for the map
	locks map[string]*lockEntry // Map of active locks

	locker ports.DistributedLocker // Optional distributed locker
	logger *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a new step data manager over the given store.
func NewManager(store ports.SessionStore, opts ...Option) *Manager {
	m := &Manager{
		store:  store,
		locks:  make(map[string]*lockEntry),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func stepKey(formID string, n int) string {
	return fmt.Sprintf("form:%s:step:%d", formID, n)
}

func consolidatedKey(formID string) string {
	return fmt.Sprintf("form:%s:consolidated", formID)
}

func visitedKey(formID string) string {
	return fmt.Sprintf("form:%s:visited", formID)
}

func formPrefix(formID string) string {
	return fmt.Sprintf("form:%s:", formID)
}

// StepData returns the validated values stored for one step, or an
// empty mapping if the step was never submitted.
func (m *Manager) StepData(ctx context.Context, sessionID, formID string, n int) (domain.Values, error) {
	values, err := m.store.Get(ctx, sessionID, stepKey(formID, n))
	if errors.Is(err, domain.ErrSessionNotFound) {
		return domain.Values{}, nil
	}
	return values, err
}

// PutStep stores the validated values for step n and rebuilds the
// consolidated view and visited set under the session lock. Writing
// the same data twice yields the same consolidated state as writing
// it once.
func (m *Manager) PutStep(ctx context.Context, sessionID string, form *domain.Form, n int, values domain.Values) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		if err := m.store.Put(ctx, sessionID, stepKey(form.ID, n), values); err != nil {
			return fmt.Errorf("failed to store step data: %w", err)
		}

		visited, err := m.visited(ctx, sessionID, form.ID)
		if err != nil {
			return err
		}
		visited[strconv.Itoa(n)] = true
		if err := m.store.Put(ctx, sessionID, visitedKey(form.ID), visited); err != nil {
			return fmt.Errorf("failed to store visited set: %w", err)
		}

		consolidated, err := m.rebuild(ctx, sessionID, form, visited)
		if err != nil {
			return err
		}
		if err := m.store.Put(ctx, sessionID, consolidatedKey(form.ID), consolidated); err != nil {
			return fmt.Errorf("failed to store consolidated view: %w", err)
		}
		return nil
	})
}

// rebuild merges all visited step slots in step order. Each answer is
// stored under both the step-qualified key and the bare field name;
// with unique field names the bare keys never genuinely collide, and
// when they do the later step wins.
func (m *Manager) rebuild(ctx context.Context, sessionID string, form *domain.Form, visited domain.Values) (domain.Values, error) {
	steps := make([]int, 0, len(visited))
	for key := range visited {
		if n, err := strconv.Atoi(key); err == nil {
			steps = append(steps, n)
		}
	}
	sort.Ints(steps)

	consolidated := make(domain.Values)
	for _, n := range steps {
		if n < 1 || n > form.StepCount() {
			continue
		}
		slot, err := m.store.Get(ctx, sessionID, stepKey(form.ID, n))
		if errors.Is(err, domain.ErrSessionNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read step %d: %w", n, err)
		}
		stepID := form.Steps[n-1].ID
		for field, value := range slot {
			consolidated[stepID+"."+field] = value
			consolidated[field] = value
		}
	}
	return consolidated, nil
}

// Consolidated returns the merged view of all answers collected so
// far, or an empty mapping for a fresh session.
func (m *Manager) Consolidated(ctx context.Context, sessionID, formID string) (domain.Values, error) {
	values, err := m.store.Get(ctx, sessionID, consolidatedKey(formID))
	if errors.Is(err, domain.ErrSessionNotFound) {
		return domain.Values{}, nil
	}
	return values, err
}

// Visited returns the 1-based step numbers submitted so far, sorted.
func (m *Manager) Visited(ctx context.Context, sessionID, formID string) ([]int, error) {
	visited, err := m.visited(ctx, sessionID, formID)
	if err != nil {
		return nil, err
	}
	steps := make([]int, 0, len(visited))
	for key := range visited {
		if n, err := strconv.Atoi(key); err == nil {
			steps = append(steps, n)
		}
	}
	sort.Ints(steps)
	return steps, nil
}

func (m *Manager) visited(ctx context.Context, sessionID, formID string) (domain.Values, error) {
	visited, err := m.store.Get(ctx, sessionID, visitedKey(formID))
	if errors.Is(err, domain.ErrSessionNotFound) {
		return domain.Values{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read visited set: %w", err)
	}
	return visited, nil
}

// Reset clears all wizard state of the session for one form. This is
// the only place state is dropped; it happens when the user re-enters
// step 1.
func (m *Manager) Reset(ctx context.Context, sessionID, formID string) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		return m.store.Clear(ctx, sessionID, formPrefix(formID))
	})
}

// Store returns the underlying raw session store.
func (m *Manager) Store() ports.SessionStore {
	return m.store
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(sessionID) after unlocking.
func (m *Manager) acquire(sessionID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		entry = &lockEntry{}
		m.locks[sessionID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		return // Should not happen if paired correctly
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, sessionID)
	}
}

// WithLock executes a function while holding the lock for the session.
func (m *Manager) WithLock(ctx context.Context, sessionID string, fn func(context.Context) error) error {
	entry := m.acquire(sessionID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(sessionID)
	}()

	// Distributed Locking
	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, sessionID, 30*time.Second)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"session_id", sessionID,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}
