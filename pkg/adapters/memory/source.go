package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/aretw0/formwise/pkg/domain"
	"github.com/aretw0/formwise/pkg/ports"
)

// Source implements ports.DefinitionSource from in-memory forms.
// This improves DX for tests: no fixture files needed.
type Source struct {
	forms map[string]*domain.Form
}

var _ ports.DefinitionSource = (*Source)(nil)

// NewSource builds a source from domain objects. Every form is
// validated up front, matching the file-backed loader's guarantee
// that only structurally sound definitions are served.
func NewSource(forms ...*domain.Form) (*Source, error) {
	m := make(map[string]*domain.Form, len(forms))
	for _, form := range forms {
		if err := form.Validate(); err != nil {
			return nil, err
		}
		if _, dup := m[form.ID]; dup {
			return nil, fmt.Errorf("duplicate form id %q", form.ID)
		}
		m[form.ID] = form
	}
	return &Source{forms: m}, nil
}

// Load returns the form with the given identifier.
func (s *Source) Load(ctx context.Context, formID string) (*domain.Form, error) {
	form, ok := s.forms[formID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrFormNotFound, formID)
	}
	return form, nil
}

// List returns all form identifiers in deterministic order.
func (s *Source) List(ctx context.Context) ([]string, error) {
	ids := make([]string, 0, len(s.forms))
	for id := range s.forms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
