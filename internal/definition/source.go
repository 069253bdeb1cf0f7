package definition

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/formwise/pkg/domain"
	"github.com/aretw0/formwise/pkg/ports"
)

// DirSource loads every form definition from a directory once, at
// construction, and serves the parsed forms from memory. The registry
// is immutable after load; every request receives the same *Form by
// reference and must not mutate it.
type DirSource struct {
	forms map[string]*domain.Form
}

var _ ports.DefinitionSource = (*DirSource)(nil)

// NewDirSource reads all .yaml/.yml/.json files under dir. A single
// invalid definition fails the whole load: configuration errors are
// fatal at startup, never surfaced per-request.
func NewDirSource(dir string) (*DirSource, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read definitions directory: %w", err)
	}

	parser := NewParser()
	forms := make(map[string]*domain.Form)

	for _, entry := range entries {
		if entry.IsDir() || !isDefinitionFile(entry.Name()) {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}

		form, err := parser.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", entry.Name(), err)
		}
		if _, dup := forms[form.ID]; dup {
			return nil, &domain.ConfigError{Form: form.ID, Reason: fmt.Sprintf("duplicate form id in %s", entry.Name())}
		}
		forms[form.ID] = form
	}

	if len(forms) == 0 {
		return nil, fmt.Errorf("no form definitions found in %s", dir)
	}

	return &DirSource{forms: forms}, nil
}

func isDefinitionFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}

// Load returns the form with the given identifier.
func (s *DirSource) Load(ctx context.Context, formID string) (*domain.Form, error) {
	form, ok := s.forms[formID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrFormNotFound, formID)
	}
	return form, nil
}

// List returns all loaded form identifiers in deterministic order.
func (s *DirSource) List(ctx context.Context) ([]string, error) {
	ids := make([]string, 0, len(s.forms))
	for id := range s.forms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
