package ports

import (
	"context"

	"github.com/aretw0/formwise/pkg/domain"
)

// OptionSource fetches the option list for a choice field from an
// external service. Implementations must apply a bounded timeout; the
// caller degrades a failed fetch to an empty option list rather than
// failing the request.
type OptionSource interface {
	Fetch(ctx context.Context, endpoint *domain.OptionsEndpoint) ([]domain.Option, error)
}
