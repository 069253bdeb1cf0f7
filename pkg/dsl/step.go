package dsl

import "github.com/aretw0/formwise/pkg/domain"

// StepBuilder provides a fluent API for configuring a step and its
// fields. Field modifiers (Required, Hint, OptionsFrom, ...) apply to
// the most recently added field.
type StepBuilder struct {
	step    domain.Step
	builder *Builder
}

// Title sets the step title.
func (s *StepBuilder) Title(title string) *StepBuilder {
	s.step.Title = title
	return s
}

// Description sets the step description.
func (s *StepBuilder) Description(description string) *StepBuilder {
	s.step.Description = description
	return s
}

// Termination marks the step as a wizard exit. Termination steps are
// reachable only through rules and offer no onward navigation.
func (s *StepBuilder) Termination() *StepBuilder {
	s.step.Termination = true
	return s
}

// Text adds a single-line text field.
func (s *StepBuilder) Text(name, question string) *StepBuilder {
	return s.field(name, question, domain.FieldText)
}

// Textarea adds a multi-line text field.
func (s *StepBuilder) Textarea(name, question string) *StepBuilder {
	return s.field(name, question, domain.FieldTextarea)
}

// Radio adds a single-choice field with static options.
func (s *StepBuilder) Radio(name, question string, options ...string) *StepBuilder {
	return s.field(name, question, domain.FieldRadio).Options(options...)
}

// Checkboxes adds a multi-choice field with static options.
func (s *StepBuilder) Checkboxes(name, question string, options ...string) *StepBuilder {
	return s.field(name, question, domain.FieldCheckboxes).Options(options...)
}

// Select adds a dropdown field with static options.
func (s *StepBuilder) Select(name, question string, options ...string) *StepBuilder {
	return s.field(name, question, domain.FieldSelect).Options(options...)
}

// Date adds a day/month/year date field.
func (s *StepBuilder) Date(name, question string) *StepBuilder {
	return s.field(name, question, domain.FieldDate)
}

func (s *StepBuilder) field(name, question, fieldType string) *StepBuilder {
	s.step.Fields = append(s.step.Fields, domain.Field{
		Name:     name,
		Question: question,
		Type:     fieldType,
	})
	return s
}

// Required marks the last added field as required.
func (s *StepBuilder) Required() *StepBuilder {
	if f := s.last(); f != nil {
		f.Required = true
	}
	return s
}

// Hint sets the hint text of the last added field.
func (s *StepBuilder) Hint(hint string) *StepBuilder {
	if f := s.last(); f != nil {
		f.Hint = hint
	}
	return s
}

// Options replaces the static option list of the last added field.
// The label of each option equals its value.
func (s *StepBuilder) Options(values ...string) *StepBuilder {
	f := s.last()
	if f == nil {
		return s
	}
	f.Options = make([]domain.Option, 0, len(values))
	for _, v := range values {
		f.Options = append(f.Options, domain.Option{Value: v, Label: v})
	}
	return s
}

// OptionsFrom points the last added field at an external option source
// instead of a static list.
func (s *StepBuilder) OptionsFrom(endpoint domain.OptionsEndpoint) *StepBuilder {
	if f := s.last(); f != nil {
		f.Options = nil
		f.OptionsFrom = &endpoint
	}
	return s
}

// Navigate adds a legacy per-field navigation entry: when the named
// field is submitted with the given value, go to target. Use
// domain.DefaultTarget as the value for the fallback entry.
func (s *StepBuilder) Navigate(field, value, target string) *StepBuilder {
	if s.step.FieldNavigation == nil {
		s.step.FieldNavigation = make(map[string]map[string]string)
	}
	if s.step.FieldNavigation[field] == nil {
		s.step.FieldNavigation[field] = make(map[string]string)
	}
	s.step.FieldNavigation[field][value] = target
	return s
}

func (s *StepBuilder) last() *domain.Field {
	if len(s.step.Fields) == 0 {
		return nil
	}
	return &s.step.Fields[len(s.step.Fields)-1]
}

// RuleBuilder provides a fluent API for configuring a navigation rule.
type RuleBuilder struct {
	rule    domain.Rule
	builder *Builder
}

// ID sets the rule identifier used in logs and diagnostics.
func (r *RuleBuilder) ID(id string) *RuleBuilder {
	r.rule.ID = id
	return r
}

// When adds a condition. All conditions of a rule must hold for it to
// fire. Pass an empty stepID to match the field by bare name.
func (r *RuleBuilder) When(stepID, field, equals string) *RuleBuilder {
	r.rule.Conditions = append(r.rule.Conditions, domain.Condition{
		StepID: stepID,
		Field:  field,
		Equals: equals,
	})
	return r
}
