package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/formwise/pkg/domain"
)

// GenerateMermaid produces a Mermaid flowchart syntax string from a
// form definition. It applies semantic styling:
// - First step: ((Circle))
// - Termination step: [[Subroutine]]
// - Default: [Rectangle]
// Sequential progression is drawn with solid arrows, global rules with
// dotted labeled arrows, and legacy field navigation with solid
// labeled arrows.
func GenerateMermaid(form *domain.Form) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for i := range form.Steps {
		step := &form.Steps[i]
		safeID := sanitizeMermaidID(step.ID)

		// Node shape
		opener, closer := "[", "]"
		switch {
		case i == 0:
			opener, closer = "((", "))" // Circle
		case step.Termination:
			opener, closer = "[[", "]]" // Subroutine
		}

		label := step.ID
		if step.Title != "" {
			label = fmt.Sprintf("%d: %s", i+1, step.Title)
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, escapeMermaidLabel(label), closer))

		// Default sequential progression, skipping termination steps
		// on both ends.
		if !step.Termination {
			for j := i + 1; j < len(form.Steps); j++ {
				if form.Steps[j].Termination {
					continue
				}
				sb.WriteString(fmt.Sprintf("    %s --> %s\n", safeID, sanitizeMermaidID(form.Steps[j].ID)))
				break
			}
		}

		// Legacy field navigation
		for field, targets := range step.FieldNavigation {
			values := make([]string, 0, len(targets))
			for v := range targets {
				values = append(values, v)
			}
			sort.Strings(values)
			for _, v := range values {
				safeTo := sanitizeMermaidID(targets[v])
				sb.WriteString(fmt.Sprintf("    %s -- \"%s=%s\" --> %s\n", safeID, escapeMermaidLabel(field), escapeMermaidLabel(v), safeTo))
			}
		}
	}

	// Global rules: dotted arrows from every step whose answer a rule
	// reads toward the rule target.
	for _, rule := range form.Rules {
		safeTo := sanitizeMermaidID(rule.Target)
		for _, cond := range rule.Conditions {
			from := rule.Target
			if cond.StepID != "" {
				from = cond.StepID
			} else if owner := stepOwningField(form, cond.Field); owner != "" {
				from = owner
			}
			label := fmt.Sprintf("%s=%s", cond.Field, cond.Equals)
			sb.WriteString(fmt.Sprintf("    %s -. \"%s\" .-> %s\n", sanitizeMermaidID(from), escapeMermaidLabel(label), safeTo))
		}
	}

	return sb.String()
}

// stepOwningField resolves a bare condition field name to the first
// step declaring a field of that name, mirroring how the resolver
// falls back when a condition omits the step qualifier.
func stepOwningField(form *domain.Form, field string) string {
	for i := range form.Steps {
		if form.Steps[i].Field(field) != nil {
			return form.Steps[i].ID
		}
	}
	return ""
}

func escapeMermaidLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	return s
}
