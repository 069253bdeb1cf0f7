package validator

import (
	"fmt"
	"strings"

	"github.com/aretw0/formwise/pkg/domain"
)

// ValidateReachability checks that every step of a structurally valid
// form can be reached from step 1. Reachability follows the same
// edges the wizard can take at runtime: sequential advance (skipping
// termination steps), global rule targets, and legacy field
// navigation targets.
//
// An unreachable step is not a configuration error, only dead weight,
// so this is a lint on top of Form.Validate rather than part of it.
func ValidateReachability(form *domain.Form) error {
	if len(form.Steps) == 0 {
		return nil
	}

	visited := make(map[string]bool)
	queue := []string{form.Steps[0].ID}

	for len(queue) > 0 {
		currentID := queue[0]
		queue = queue[1:]

		if visited[currentID] {
			continue
		}
		visited[currentID] = true

		step := form.StepByID(currentID)
		if step == nil {
			// Form.Validate rejects dangling targets; guard anyway.
			continue
		}

		for _, target := range stepTargets(form, step) {
			if !visited[target] {
				queue = append(queue, target)
			}
		}
	}

	var unreachable []string
	for i := range form.Steps {
		if !visited[form.Steps[i].ID] {
			unreachable = append(unreachable, fmt.Sprintf("'%s'", form.Steps[i].ID))
		}
	}

	if len(unreachable) > 0 {
		return fmt.Errorf("form '%s' has %d unreachable step(s): %s",
			form.ID, len(unreachable), strings.Join(unreachable, ", "))
	}
	return nil
}

// stepTargets enumerates every step ID the wizard could move to after
// the given step.
func stepTargets(form *domain.Form, step *domain.Step) []string {
	var targets []string

	if step.Termination {
		// Termination steps end the wizard.
		return nil
	}

	// Sequential advance skips termination steps.
	idx := form.StepIndex(step.ID)
	for i := idx; i < len(form.Steps); i++ {
		if form.Steps[i].Termination {
			continue
		}
		targets = append(targets, form.Steps[i].ID)
		break
	}

	// Any rule whose conditions read an answer this step collects can
	// fire on submit of this step or of a later one.
	for _, rule := range form.Rules {
		if ruleReadsStep(form, &rule, step) {
			targets = append(targets, rule.Target)
		}
	}

	for _, byValue := range step.FieldNavigation {
		for _, target := range byValue {
			targets = append(targets, target)
		}
	}

	return targets
}

func ruleReadsStep(form *domain.Form, rule *domain.Rule, step *domain.Step) bool {
	for _, cond := range rule.Conditions {
		if cond.StepID == step.ID {
			return true
		}
		if cond.StepID == "" && step.Field(cond.Field) != nil {
			return true
		}
	}
	return false
}
