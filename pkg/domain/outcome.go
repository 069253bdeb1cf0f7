package domain

// OutcomeKind classifies what the transport layer should do with the
// result of a wizard operation.
type OutcomeKind string

const (
	// OutcomeRender asks the host to render the step view (first
	// visit, or re-render with errors after a failed submission).
	OutcomeRender OutcomeKind = "render"

	// OutcomeRedirect asks the host to redirect to another step.
	OutcomeRedirect OutcomeKind = "redirect"

	// OutcomeCompleted signals the wizard finished past its last
	// step; redirect to the success view.
	OutcomeCompleted OutcomeKind = "completed"

	// OutcomeTerminated signals a termination step was reached;
	// redirect to the exit view.
	OutcomeTerminated OutcomeKind = "terminated"
)

// StepView is the render context for one step. Values carries the
// prefill on GET, or the user's unsaved input after a failed POST so
// nothing they typed is lost.
type StepView struct {
	FormID      string            `json:"form_id"`
	FormTitle   string            `json:"form_title"`
	StepNumber  int               `json:"step_number"`
	StepCount   int               `json:"step_count"`
	Step        *Step             `json:"step"`
	Fields      []Field           `json:"fields"`
	Values      Values            `json:"values"`
	Errors      *ValidationResult `json:"errors,omitempty"`
	Termination bool              `json:"termination"`
}

// Outcome is the result of a wizard operation.
type Outcome struct {
	Kind OutcomeKind `json:"kind"`

	// Step is the redirect target for OutcomeRedirect (1-based).
	Step int `json:"step,omitempty"`

	// View is set for OutcomeRender.
	View *StepView `json:"view,omitempty"`
}

// RenderOutcome builds a render outcome for the given view.
func RenderOutcome(view *StepView) *Outcome {
	return &Outcome{Kind: OutcomeRender, View: view}
}

// RedirectOutcome builds a redirect outcome to the given step number.
func RedirectOutcome(step int) *Outcome {
	return &Outcome{Kind: OutcomeRedirect, Step: step}
}
