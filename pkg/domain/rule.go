package domain

// Condition is a single predicate of a global navigation rule. It
// matches when the answer stored for (StepID, Field) equals Equals.
// Conditions may reference any step answered so far, not just the
// step being submitted.
type Condition struct {
	StepID string `json:"step_id" yaml:"step_id" mapstructure:"step_id"`
	Field  string `json:"field" yaml:"field" mapstructure:"field"`
	Equals string `json:"equals" yaml:"equals" mapstructure:"equals"`
}

// Rule is a global navigation rule. All conditions must hold (AND)
// for the rule to fire; the winning rule redirects the wizard to
// Target instead of the default sequential step.
type Rule struct {
	ID         string      `json:"id,omitempty" yaml:"id,omitempty" mapstructure:"id"`
	Conditions []Condition `json:"conditions" yaml:"conditions" mapstructure:"conditions"`
	Target     string      `json:"target" yaml:"target" mapstructure:"target"`
}
