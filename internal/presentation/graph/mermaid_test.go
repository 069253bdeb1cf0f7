package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/formwise/internal/presentation/graph"
	"github.com/aretw0/formwise/pkg/domain"
)

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name     string
		form     *domain.Form
		contains []string
	}{
		{
			name: "First Step Shape",
			form: &domain.Form{
				ID:    "demo",
				Steps: []domain.Step{{ID: "intro"}, {ID: "details"}},
			},
			contains: []string{
				"intro((\"intro\"))",
				"details[\"details\"]",
				"intro --> details",
			},
		},
		{
			name: "Termination Step Shape",
			form: &domain.Form{
				ID: "demo",
				Steps: []domain.Step{
					{ID: "intro"},
					{ID: "ineligible", Termination: true},
					{ID: "details"},
				},
			},
			contains: []string{
				"ineligible[[\"ineligible\"]]",
				// Sequential advance skips the termination step.
				"intro --> details",
			},
		},
		{
			name: "ID Sanitization",
			form: &domain.Form{
				ID:    "demo",
				Steps: []domain.Step{{ID: "personal-details"}},
			},
			contains: []string{
				"personal_details((\"personal-details\"))",
			},
		},
		{
			name: "Rule Arrow With Escaped Label",
			form: &domain.Form{
				ID: "demo",
				Steps: []domain.Step{
					{ID: "intro", Fields: []domain.Field{{Name: "applying_for_other", Type: domain.FieldRadio}}},
					{ID: "other-details"},
				},
				Rules: []domain.Rule{
					{
						Conditions: []domain.Condition{{StepID: "intro", Field: "applying_for_other", Equals: `"Yes"`}},
						Target:     "other-details",
					},
				},
			},
			contains: []string{
				`intro -. "applying_for_other='Yes'" .-> other_details`,
			},
		},
		{
			name: "Bare Field Condition Resolves Owning Step",
			form: &domain.Form{
				ID: "demo",
				Steps: []domain.Step{
					{ID: "intro", Fields: []domain.Field{{Name: "country", Type: domain.FieldSelect}}},
					{ID: "uk-details"},
				},
				Rules: []domain.Rule{
					{
						Conditions: []domain.Condition{{Field: "country", Equals: "UK"}},
						Target:     "uk-details",
					},
				},
			},
			contains: []string{
				`intro -. "country=UK" .-> uk_details`,
			},
		},
		{
			name: "Field Navigation Arrows",
			form: &domain.Form{
				ID: "demo",
				Steps: []domain.Step{
					{
						ID:     "intro",
						Fields: []domain.Field{{Name: "route", Type: domain.FieldRadio}},
						FieldNavigation: map[string]map[string]string{
							"route": {"a": "branch-a", "default": "branch-b"},
						},
					},
					{ID: "branch-a"},
					{ID: "branch-b"},
				},
			},
			contains: []string{
				`intro -- "route=a" --> branch_a`,
				`intro -- "route=default" --> branch_b`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(tt.form)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("GenerateMermaid() = \n%v\nWant substring: %v", got, want)
				}
			}
		})
	}
}
