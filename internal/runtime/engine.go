package runtime

import (
	"context"
	"fmt"
	"time"

	"log/slog"

	"github.com/aretw0/formwise/internal/logging"
	"github.com/aretw0/formwise/pkg/domain"
	"github.com/aretw0/formwise/pkg/observability"
	"github.com/aretw0/formwise/pkg/ports"
	"github.com/aretw0/formwise/pkg/session"
)

// DefaultFetchTimeout bounds a single option source call. A slow
// upstream degrades the field to an empty option list instead of
// hanging the request.
const DefaultFetchTimeout = 3 * time.Second

// Engine orchestrates a single wizard request: load the definition,
// resolve the requested step, validate, persist, route. It holds no
// per-request state of its own; everything lives in the session store
// or on the stack.
type Engine struct {
	definitions  ports.DefinitionSource
	sessions     *session.Manager
	options      ports.OptionSource
	logger       *slog.Logger
	metrics      *observability.Metrics
	fetchTimeout time.Duration
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets a structured logger for the engine.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithOptionSource sets the external option list fetcher.
func WithOptionSource(source ports.OptionSource) EngineOption {
	return func(e *Engine) {
		e.options = source
	}
}

// WithMetrics enables Prometheus instrumentation.
func WithMetrics(m *observability.Metrics) EngineOption {
	return func(e *Engine) {
		e.metrics = m
	}
}

// WithFetchTimeout overrides the option source timeout.
func WithFetchTimeout(d time.Duration) EngineOption {
	return func(e *Engine) {
		if d > 0 {
			e.fetchTimeout = d
		}
	}
}

// NewEngine creates the wizard engine.
func NewEngine(definitions ports.DefinitionSource, sessions *session.Manager, opts ...EngineOption) *Engine {
	e := &Engine{
		definitions:  definitions,
		sessions:     sessions,
		logger:       logging.NewNop(),
		fetchTimeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Sessions exposes the step data manager (for the success view and
// transport-level helpers).
func (e *Engine) Sessions() *session.Manager {
	return e.sessions
}

// Form loads a validated form definition.
func (e *Engine) Form(ctx context.Context, formID string) (*domain.Form, error) {
	return e.definitions.Load(ctx, formID)
}

// ShowStep handles a GET for step n: render the step with the
// consolidated data so far as prefill. Requesting step 1 resets the
// session's wizard state for this form; it is the only reset point.
func (e *Engine) ShowStep(ctx context.Context, sessionID, formID string, n int) (*domain.Outcome, error) {
	form, err := e.definitions.Load(ctx, formID)
	if err != nil {
		return nil, err
	}
	step, err := form.StepAt(n)
	if err != nil {
		return nil, err
	}

	if n == 1 {
		if err := e.sessions.Reset(ctx, sessionID, form.ID); err != nil {
			return nil, fmt.Errorf("failed to reset session: %w", err)
		}
	}

	prefill, err := e.sessions.StepData(ctx, sessionID, form.ID, n)
	if err != nil {
		return nil, err
	}

	view := e.buildView(ctx, form, step, n, prefill, nil)
	e.metrics.RenderObserved(form.ID)
	e.logger.Debug("step rendered", "form", form.ID, "step", step.ID, "n", n)
	return domain.RenderOutcome(view), nil
}

// SubmitStep handles a POST for step n. On validation failure it
// re-renders the step with errors and the user's unsaved input; on
// success it persists the cleaned values and resolves the next step.
func (e *Engine) SubmitStep(ctx context.Context, sessionID, formID string, n int, submitted domain.Values, action string) (*domain.Outcome, error) {
	started := time.Now()
	form, err := e.definitions.Load(ctx, formID)
	if err != nil {
		return nil, err
	}
	step, err := form.StepAt(n)
	if err != nil {
		return nil, err
	}
	defer func() {
		e.metrics.ObserveSubmit(form.ID, time.Since(started).Seconds())
	}()

	// A termination step ends the wizard regardless of rules; the
	// resolver is never consulted.
	if step.Termination {
		e.metrics.Decided(form.ID, string(domain.OutcomeTerminated))
		return &domain.Outcome{Kind: domain.OutcomeTerminated, Step: n}, nil
	}

	result, clean := ValidateStep(step, submitted)
	if !result.Valid() {
		// Nothing is persisted; the response carries the submitted
		// values back so the user loses no input.
		e.metrics.ValidationFailed(form.ID)
		e.logger.Debug("step validation failed",
			"form", form.ID, "step", step.ID, "errors", len(result.Ordered))
		view := e.buildView(ctx, form, step, n, submitted, result)
		return domain.RenderOutcome(view), nil
	}

	if err := e.sessions.PutStep(ctx, sessionID, form, n, clean); err != nil {
		return nil, err
	}

	consolidated, err := e.sessions.Consolidated(ctx, sessionID, form.ID)
	if err != nil {
		return nil, err
	}

	next, ok, err := NewResolver(form).Next(consolidated, step.ID, action)
	if err != nil {
		return nil, err
	}
	if !ok {
		e.metrics.Decided(form.ID, string(domain.OutcomeCompleted))
		e.metrics.Completed(form.ID)
		e.logger.Info("wizard completed", "form", form.ID, "session", sessionID)
		return &domain.Outcome{Kind: domain.OutcomeCompleted}, nil
	}

	if form.Steps[next-1].Termination {
		e.metrics.Decided(form.ID, string(domain.OutcomeTerminated))
		e.logger.Info("wizard terminated", "form", form.ID, "session", sessionID, "exit_step", form.Steps[next-1].ID)
		return &domain.Outcome{Kind: domain.OutcomeTerminated, Step: next}, nil
	}

	e.metrics.Decided(form.ID, string(domain.OutcomeRedirect))
	return domain.RedirectOutcome(next), nil
}

// Summary returns the consolidated data for the success view.
func (e *Engine) Summary(ctx context.Context, sessionID, formID string) (domain.Values, error) {
	form, err := e.definitions.Load(ctx, formID)
	if err != nil {
		return nil, err
	}
	return e.sessions.Consolidated(ctx, sessionID, form.ID)
}

// buildView assembles the render context for a step, resolving
// external option lists with a bounded timeout.
func (e *Engine) buildView(ctx context.Context, form *domain.Form, step *domain.Step, n int, values domain.Values, errs *domain.ValidationResult) *domain.StepView {
	fields := make([]domain.Field, len(step.Fields))
	copy(fields, step.Fields)

	for i := range fields {
		if !fields[i].NeedsOptions() {
			continue
		}
		fields[i].Options = e.fetchOptions(ctx, fields[i].OptionsFrom)
	}

	if values == nil {
		values = domain.Values{}
	}

	return &domain.StepView{
		FormID:      form.ID,
		FormTitle:   form.Title,
		StepNumber:  n,
		StepCount:   form.StepCount(),
		Step:        step,
		Fields:      fields,
		Values:      values,
		Errors:      errs,
		Termination: step.Termination,
	}
}

// fetchOptions calls the option source with a bounded timeout and
// degrades to an empty list on any failure.
func (e *Engine) fetchOptions(ctx context.Context, endpoint *domain.OptionsEndpoint) []domain.Option {
	if e.options == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, e.fetchTimeout)
	defer cancel()

	options, err := e.options.Fetch(ctx, endpoint)
	if err != nil {
		e.metrics.OptionFetchFailed()
		e.logger.Warn("option fetch failed, degrading to empty list",
			"url", endpoint.URL, "err", err)
		return nil
	}
	return options
}
