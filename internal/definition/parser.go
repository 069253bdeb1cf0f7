package definition

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/formwise/pkg/domain"
)

// Parser converts raw definition bytes into a validated Form.
// YAML is a superset of JSON, so both formats go through one path.
type Parser struct{}

// NewParser creates a new parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// Parse decodes and validates a form definition. Any structural
// problem, including dangling step references, is a ConfigError here
// at load time, never at request time.
func (p *Parser) Parse(data []byte) (*domain.Form, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &domain.ConfigError{Reason: fmt.Sprintf("malformed definition: %v", err)}
	}

	var form domain.Form
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &form,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, &domain.ConfigError{Reason: fmt.Sprintf("malformed definition: %v", err)}
	}

	if err := form.Validate(); err != nil {
		return nil, err
	}
	return &form, nil
}
