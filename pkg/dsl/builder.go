package dsl

import (
	"github.com/aretw0/formwise/pkg/domain"
)

// Builder manages the form construction.
type Builder struct {
	form  domain.Form
	steps map[string]*StepBuilder
	order []string
	rules []*RuleBuilder
}

// NewForm creates a new form builder.
func NewForm(id string) *Builder {
	return &Builder{
		form:  domain.Form{ID: id},
		steps: make(map[string]*StepBuilder),
	}
}

// Title sets the form title.
func (b *Builder) Title(title string) *Builder {
	b.form.Title = title
	return b
}

// Description sets the form description.
func (b *Builder) Description(description string) *Builder {
	b.form.Description = description
	return b
}

// Step creates a new step in the form. Steps appear in the order they
// are first declared; calling Step again with the same id returns the
// existing builder.
func (b *Builder) Step(id string) *StepBuilder {
	if sb, ok := b.steps[id]; ok {
		return sb
	}
	sb := &StepBuilder{
		step:    domain.Step{ID: id},
		builder: b,
	}
	b.steps[id] = sb
	b.order = append(b.order, id)
	return sb
}

// Rule appends a global navigation rule pointing at the target step.
// Conditions are attached via When on the returned builder.
func (b *Builder) Rule(target string) *RuleBuilder {
	rb := &RuleBuilder{
		rule:    domain.Rule{Target: target},
		builder: b,
	}
	b.rules = append(b.rules, rb)
	return rb
}

// Build compiles and validates the form definition.
func (b *Builder) Build() (*domain.Form, error) {
	form := b.form
	form.Steps = make([]domain.Step, 0, len(b.order))
	for _, id := range b.order {
		form.Steps = append(form.Steps, b.steps[id].step)
	}
	form.Rules = make([]domain.Rule, 0, len(b.rules))
	for _, rb := range b.rules {
		form.Rules = append(form.Rules, rb.rule)
	}
	if err := form.Validate(); err != nil {
		return nil, err
	}
	return &form, nil
}
