package ports

import (
	"context"

	"github.com/aretw0/formwise/pkg/domain"
)

// SessionStore defines the interface for persisting per-session
// wizard data. The store is the exclusive owner of persisted state;
// the engine reads and writes it only through these three operations.
//
// Keys are engine-chosen strings scoped to a session (for example
// "form:benefits:step:3"). Implementations must treat them as opaque.
type SessionStore interface {
	// Get retrieves the mapping stored under (sessionID, key).
	// Returns domain.ErrSessionNotFound if nothing is stored there.
	Get(ctx context.Context, sessionID, key string) (domain.Values, error)

	// Put stores the mapping under (sessionID, key), replacing any
	// previous value for that key only.
	Put(ctx context.Context, sessionID, key string, values domain.Values) error

	// Clear removes every key of the session that starts with
	// keyPrefix. Clearing a prefix with no matches is not an error.
	Clear(ctx context.Context, sessionID, keyPrefix string) error
}
