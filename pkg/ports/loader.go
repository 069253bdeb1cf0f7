package ports

import (
	"context"

	"github.com/aretw0/formwise/pkg/domain"
)

// DefinitionSource defines how the engine retrieves form definitions.
// Implementations must return only definitions that already passed
// Form.Validate: a structurally invalid definition fails at load with
// a domain.ConfigError, never per-request.
type DefinitionSource interface {
	// Load retrieves the form with the given identifier. Returns
	// domain.ErrFormNotFound if the source has no such form.
	Load(ctx context.Context, formID string) (*domain.Form, error)

	// List returns the identifiers of all available forms.
	List(ctx context.Context) ([]string, error)
}
