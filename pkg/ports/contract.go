package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/formwise/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSessionStoreContract runs a suite of tests to verify that a
// SessionStore implementation adheres to the defined interface contract.
func RunSessionStoreContract(t *testing.T, store SessionStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	t.Run("Put and Get", func(t *testing.T) {
		values := domain.Values{"full_name": "Ada Lovelace", "tags": []string{"a", "b"}}

		err := store.Put(ctx, sessionID, "form:demo:step:1", values)
		require.NoError(t, err, "Put should not return error")

		loaded, err := store.Get(ctx, sessionID, "form:demo:step:1")
		require.NoError(t, err, "Get should not return error")
		assert.Equal(t, "Ada Lovelace", loaded["full_name"])
		// JSON-backed stores may come back with []any instead of []string.
		assert.Equal(t, "a", domain.First(loaded["tags"]))
	})

	t.Run("Get Missing Key", func(t *testing.T) {
		_, err := store.Get(ctx, sessionID, "form:demo:step:99")
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Put Overwrites Slot Only", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, sessionID, "form:demo:step:1", domain.Values{"full_name": "Grace Hopper"}))
		require.NoError(t, store.Put(ctx, sessionID, "form:demo:step:2", domain.Values{"city": "York"}))

		step1, err := store.Get(ctx, sessionID, "form:demo:step:1")
		require.NoError(t, err)
		assert.Equal(t, "Grace Hopper", step1["full_name"])

		step2, err := store.Get(ctx, sessionID, "form:demo:step:2")
		require.NoError(t, err)
		assert.Equal(t, "York", step2["city"])
	})

	t.Run("Clear By Prefix", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, sessionID, "form:demo:step:1", domain.Values{"a": "1"}))
		require.NoError(t, store.Put(ctx, sessionID, "form:other:step:1", domain.Values{"b": "2"}))

		err := store.Clear(ctx, sessionID, "form:demo:")
		require.NoError(t, err, "Clear should not return error")

		_, err = store.Get(ctx, sessionID, "form:demo:step:1")
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "cleared key should be gone")

		other, err := store.Get(ctx, sessionID, "form:other:step:1")
		require.NoError(t, err, "other form's data must survive")
		assert.Equal(t, "2", other["b"])

		// Clearing again is a no-op, not an error.
		assert.NoError(t, store.Clear(ctx, sessionID, "form:demo:"))
	})

	t.Run("Sessions Are Isolated", func(t *testing.T) {
		otherSession := sessionID + "-other"
		require.NoError(t, store.Put(ctx, otherSession, "form:demo:step:1", domain.Values{"x": "y"}))
		require.NoError(t, store.Clear(ctx, sessionID, "form:"))

		loaded, err := store.Get(ctx, otherSession, "form:demo:step:1")
		require.NoError(t, err)
		assert.Equal(t, "y", loaded["x"])
	})
}
