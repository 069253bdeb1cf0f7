package runtime

import (
	"fmt"

	"github.com/aretw0/formwise/pkg/domain"
)

// Resolver decides the next step after a successful submission. It
// evaluates the priority chain: global rules, then the current step's
// legacy per-field navigation, then sequential advance.
type Resolver struct {
	form *domain.Form
}

// NewResolver creates a resolver bound to one validated form.
func NewResolver(form *domain.Form) *Resolver {
	return &Resolver{form: form}
}

// Next returns the 1-based destination step number. ok is false when
// the wizard completes (sequential advance past the last step).
//
// Guarantees, for any input: the destination is inside [1, StepCount],
// is never the current step, and is never behind the current step
// unless the target is a termination step.
func (r *Resolver) Next(data domain.Values, currentStepID, action string) (next int, ok bool, err error) {
	cur := r.form.StepIndex(currentStepID)
	if cur == 0 {
		return 0, false, fmt.Errorf("unknown step %q", currentStepID)
	}

	// Global rules govern forward progress only.
	if domain.IsForwardAction(action) {
		if target := r.matchRules(data); target != 0 && r.accept(cur, target) {
			return target, true, nil
		}
	}

	if target := r.matchFieldNavigation(data, cur); target != 0 && r.accept(cur, target) {
		return target, true, nil
	}

	return r.sequential(cur)
}

// matchRules evaluates the global rules against the consolidated data
// and returns the winning target index, or 0. Among matching rules the
// one whose conditions reference the latest step wins: the rule
// informed by the user's most recent answer. Declaration order breaks
// ties.
func (r *Resolver) matchRules(data domain.Values) int {
	bestTarget := 0
	bestLatest := -1

	for _, rule := range r.form.Rules {
		latest, matched := r.evaluate(&rule, data)
		if !matched {
			continue
		}
		if latest > bestLatest {
			bestLatest = latest
			bestTarget = r.form.StepIndex(rule.Target)
		}
	}

	return bestTarget
}

// evaluate reports whether every condition of the rule holds, and the
// highest step index any condition references.
func (r *Resolver) evaluate(rule *domain.Rule, data domain.Values) (latest int, matched bool) {
	if len(rule.Conditions) == 0 {
		return 0, false
	}
	for _, cond := range rule.Conditions {
		value, ok := data.Lookup(cond.StepID, cond.Field)
		if !ok {
			return 0, false
		}
		// Array answers match on their first element only.
		if domain.First(value) != cond.Equals {
			return 0, false
		}
		if idx := r.form.StepIndex(cond.StepID); idx > latest {
			latest = idx
		}
	}
	return latest, true
}

// matchFieldNavigation consults the current step's legacy per-field
// map: field declaration order, exact value entry before "default".
func (r *Resolver) matchFieldNavigation(data domain.Values, cur int) int {
	step := &r.form.Steps[cur-1]
	if len(step.FieldNavigation) == 0 {
		return 0
	}

	for i := range step.Fields {
		targets, ok := step.FieldNavigation[step.Fields[i].Name]
		if !ok {
			continue
		}
		value, ok := data.Lookup(step.ID, step.Fields[i].Name)
		if !ok {
			continue
		}
		if target, ok := targets[domain.First(value)]; ok {
			return r.form.StepIndex(target)
		}
		if target, ok := targets[domain.DefaultTarget]; ok {
			return r.form.StepIndex(target)
		}
	}

	return 0
}

// accept applies the cycle/regression guard: no self-redirect, and no
// backward jump unless the target ends the wizard.
func (r *Resolver) accept(cur, target int) bool {
	if target == 0 || target == cur {
		return false
	}
	if target < cur && !r.form.Steps[target-1].Termination {
		return false
	}
	return true
}

// sequential advances to the next non-termination step. Termination
// steps are reachable only via rules, so the default progression
// skips them; running out of steps completes the wizard.
func (r *Resolver) sequential(cur int) (int, bool, error) {
	for n := cur + 1; n <= r.form.StepCount(); n++ {
		if !r.form.Steps[n-1].Termination {
			return n, true, nil
		}
	}
	return 0, false, nil
}
