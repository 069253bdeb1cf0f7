package domain

// Step represents one page of the wizard.
type Step struct {
	// ID is unique across the form. Rule conditions and targets refer
	// to steps by ID, never by position.
	ID string `json:"id" yaml:"id" mapstructure:"id"`

	Title       string `json:"title" yaml:"title" mapstructure:"title"`
	Description string `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`

	// Fields in declaration order. Declaration order also defines
	// error-summary order on validation failure.
	Fields []Field `json:"fields,omitempty" yaml:"fields,omitempty" mapstructure:"fields"`

	// Termination marks a step that ends the wizard. Termination steps
	// are reachable only via rules, never by sequential advance, and
	// offer no "next" action.
	Termination bool `json:"termination,omitempty" yaml:"termination,omitempty" mapstructure:"termination"`

	// FieldNavigation is the legacy per-step routing scheme:
	// field name -> submitted value -> target step ID. An exact value
	// entry wins over the reserved "default" entry. Consulted only
	// when no global rule fires.
	FieldNavigation map[string]map[string]string `json:"field_navigation,omitempty" yaml:"field_navigation,omitempty" mapstructure:"field_navigation"`
}

// Field returns the named field, or nil if the step has no such field.
func (s *Step) Field(name string) *Field {
	for i := range s.Fields {
		if s.Fields[i].Name == name {
			return &s.Fields[i]
		}
	}
	return nil
}
