package middleware

import (
	"context"
	"regexp"

	"github.com/aretw0/formwise/pkg/domain"
	"github.com/aretw0/formwise/pkg/ports"
)

type piiMiddleware struct {
	next     ports.SessionStore
	patterns []*regexp.Regexp
}

// NewPIIMiddleware creates a middleware that masks values of fields
// whose names match the patterns before they reach the backing store.
// Intended for secondary stores (analytics or debug replicas), not
// the primary wizard store: masked answers do not round-trip.
func NewPIIMiddleware(patternStrings []string) Middleware {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		patterns[i] = regexp.MustCompile(p)
	}
	return func(next ports.SessionStore) ports.SessionStore {
		return &piiMiddleware{next: next, patterns: patterns}
	}
}

func (m *piiMiddleware) Put(ctx context.Context, sessionID, key string, values domain.Values) error {
	// Clone so the in-memory values used by the engine keep their
	// real content.
	masked := values.Clone()
	maskValues(masked, m.patterns)
	return m.next.Put(ctx, sessionID, key, masked)
}

func (m *piiMiddleware) Get(ctx context.Context, sessionID, key string) (domain.Values, error) {
	return m.next.Get(ctx, sessionID, key)
}

func (m *piiMiddleware) Clear(ctx context.Context, sessionID, keyPrefix string) error {
	return m.next.Clear(ctx, sessionID, keyPrefix)
}

func maskValues(values domain.Values, patterns []*regexp.Regexp) {
	for k := range values {
		for _, p := range patterns {
			if p.MatchString(k) {
				values[k] = "***"
				break
			}
		}
	}
}
