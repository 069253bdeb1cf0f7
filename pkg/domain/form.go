package domain

import "fmt"

// Form is the immutable parsed definition of a wizard. It is loaded
// once, validated, and then passed by reference into every
// request-scoped operation; nothing mutates it after load.
type Form struct {
	ID          string `json:"id" yaml:"id" mapstructure:"id"`
	Title       string `json:"title" yaml:"title" mapstructure:"title"`
	Description string `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`

	// Steps in declaration order. Order defines the default
	// sequential progression.
	Steps []Step `json:"steps" yaml:"steps" mapstructure:"steps"`

	// Rules in declaration order. Declaration order is the tie-break
	// when two matching rules reference the same latest step.
	Rules []Rule `json:"rules,omitempty" yaml:"rules,omitempty" mapstructure:"rules"`
}

// StepCount returns the number of steps in the form.
func (f *Form) StepCount() int {
	return len(f.Steps)
}

// StepAt returns the 1-based step n, or ErrStepOutOfRange.
func (f *Form) StepAt(n int) (*Step, error) {
	if n < 1 || n > len(f.Steps) {
		return nil, fmt.Errorf("%w: step %d of %d", ErrStepOutOfRange, n, len(f.Steps))
	}
	return &f.Steps[n-1], nil
}

// StepIndex returns the 1-based position of the step with the given
// ID, or 0 if the form has no such step.
func (f *Form) StepIndex(id string) int {
	for i := range f.Steps {
		if f.Steps[i].ID == id {
			return i + 1
		}
	}
	return 0
}

// StepByID returns the step with the given ID, or nil.
func (f *Form) StepByID(id string) *Step {
	if n := f.StepIndex(id); n != 0 {
		return &f.Steps[n-1]
	}
	return nil
}

// Validate checks the structural integrity of the form definition.
// A dangling reference is a configuration error at load time, never a
// runtime one.
func (f *Form) Validate() error {
	if f.ID == "" {
		return &ConfigError{Form: f.ID, Reason: "form id is required"}
	}
	if len(f.Steps) == 0 {
		return &ConfigError{Form: f.ID, Reason: "form has no steps"}
	}

	seen := make(map[string]bool, len(f.Steps))
	for i := range f.Steps {
		step := &f.Steps[i]
		if step.ID == "" {
			return &ConfigError{Form: f.ID, Reason: fmt.Sprintf("step %d has no id", i+1)}
		}
		if seen[step.ID] {
			return &ConfigError{Form: f.ID, Step: step.ID, Reason: "duplicate step id"}
		}
		seen[step.ID] = true

		if err := f.validateStep(step); err != nil {
			return err
		}
	}

	for i, rule := range f.Rules {
		name := rule.ID
		if name == "" {
			name = fmt.Sprintf("#%d", i+1)
		}
		if rule.Target == "" {
			return &ConfigError{Form: f.ID, Reason: fmt.Sprintf("rule %s has no target", name)}
		}
		if f.StepIndex(rule.Target) == 0 {
			return &ConfigError{Form: f.ID, Reason: fmt.Sprintf("rule %s targets unknown step %q", name, rule.Target)}
		}
		if len(rule.Conditions) == 0 {
			return &ConfigError{Form: f.ID, Reason: fmt.Sprintf("rule %s has no conditions", name)}
		}
		for _, cond := range rule.Conditions {
			// An empty step id is allowed: the condition then matches
			// the answer by bare field name.
			if cond.StepID != "" && f.StepIndex(cond.StepID) == 0 {
				return &ConfigError{Form: f.ID, Reason: fmt.Sprintf("rule %s condition references unknown step %q", name, cond.StepID)}
			}
			if cond.Field == "" {
				return &ConfigError{Form: f.ID, Reason: fmt.Sprintf("rule %s condition on step %q has no field", name, cond.StepID)}
			}
		}
	}

	return nil
}

func (f *Form) validateStep(step *Step) error {
	fields := make(map[string]bool, len(step.Fields))
	for i := range step.Fields {
		field := &step.Fields[i]
		if field.Name == "" {
			return &ConfigError{Form: f.ID, Step: step.ID, Reason: "field has no name"}
		}
		if fields[field.Name] {
			return &ConfigError{Form: f.ID, Step: step.ID, Field: field.Name, Reason: "duplicate field name"}
		}
		fields[field.Name] = true

		if !KnownFieldType(field.Type) {
			return &ConfigError{Form: f.ID, Step: step.ID, Field: field.Name, Reason: fmt.Sprintf("unknown field type %q", field.Type)}
		}
		if IsChoiceField(field.Type) && len(field.Options) == 0 && field.OptionsFrom == nil {
			return &ConfigError{Form: f.ID, Step: step.ID, Field: field.Name, Reason: "choice field needs options or an options source"}
		}
	}

	if step.Termination && len(step.FieldNavigation) > 0 {
		return &ConfigError{Form: f.ID, Step: step.ID, Reason: "termination step cannot carry navigation"}
	}

	for fieldName, targets := range step.FieldNavigation {
		if !fields[fieldName] {
			return &ConfigError{Form: f.ID, Step: step.ID, Field: fieldName, Reason: "navigation references unknown field"}
		}
		for value, target := range targets {
			if f.StepIndex(target) == 0 {
				return &ConfigError{Form: f.ID, Step: step.ID, Field: fieldName,
					Reason: fmt.Sprintf("navigation for value %q targets unknown step %q", value, target)}
			}
		}
	}

	return nil
}
