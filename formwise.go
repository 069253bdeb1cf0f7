package formwise

import (
	"context"
	"fmt"
	"time"

	"log/slog"

	"github.com/aretw0/formwise/internal/definition"
	"github.com/aretw0/formwise/internal/logging"
	"github.com/aretw0/formwise/internal/runtime"
	"github.com/aretw0/formwise/pkg/adapters/memory"
	"github.com/aretw0/formwise/pkg/domain"
	"github.com/aretw0/formwise/pkg/observability"
	"github.com/aretw0/formwise/pkg/ports"
	"github.com/aretw0/formwise/pkg/session"
)

// Version of the library.
const Version = "0.3.0"

// Engine is the high-level entry point for the Formwise library.
// It wraps the internal runtime and provides a simplified API for consumers.
type Engine struct {
	runtime      *runtime.Engine
	definitions  ports.DefinitionSource
	store        ports.SessionStore
	locker       ports.DistributedLocker
	options      ports.OptionSource
	metrics      *observability.Metrics
	logger       *slog.Logger
	fetchTimeout time.Duration
	sessions     *session.Manager
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithDefinitionSource injects a custom DefinitionSource, bypassing
// the default directory loader.
func WithDefinitionSource(src ports.DefinitionSource) Option {
	return func(e *Engine) {
		e.definitions = src
	}
}

// WithSessionStore sets the session backend (default: in-memory).
func WithSessionStore(store ports.SessionStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithLocker enables distributed locking on the session manager.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(e *Engine) {
		e.locker = locker
	}
}

// WithOptionSource sets the external option list fetcher for choice
// fields that declare an options endpoint.
func WithOptionSource(src ports.OptionSource) Option {
	return func(e *Engine) {
		e.options = src
	}
}

// WithMetrics enables Prometheus instrumentation.
func WithMetrics(m *observability.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithFetchTimeout bounds each option source call.
func WithFetchTimeout(d time.Duration) Option {
	return func(e *Engine) {
		e.fetchTimeout = d
	}
}

// New initializes a new Formwise Engine.
// By default it loads form definitions from the given directory; a
// load failure (malformed JSON/YAML, dangling references) is fatal
// here, at process start, and never surfaces per-request.
// If WithDefinitionSource is provided, dir may be empty.
func New(dir string, opts ...Option) (*Engine, error) {
	eng := &Engine{
		fetchTimeout: runtime.DefaultFetchTimeout,
	}

	// Apply options first to check what was injected.
	for _, opt := range opts {
		opt(eng)
	}

	if eng.definitions == nil {
		if dir == "" {
			return nil, fmt.Errorf("dir is required when no custom definition source is provided")
		}
		src, err := definition.NewDirSource(dir)
		if err != nil {
			return nil, err
		}
		eng.definitions = src
	}

	if eng.store == nil {
		eng.store = memory.NewStore()
	}
	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}

	sessionOpts := []session.Option{session.WithLogger(eng.logger)}
	if eng.locker != nil {
		sessionOpts = append(sessionOpts, session.WithLocker(eng.locker))
	}
	eng.sessions = session.NewManager(eng.store, sessionOpts...)

	eng.runtime = runtime.NewEngine(
		eng.definitions,
		eng.sessions,
		runtime.WithLogger(eng.logger),
		runtime.WithOptionSource(eng.options),
		runtime.WithMetrics(eng.metrics),
		runtime.WithFetchTimeout(eng.fetchTimeout),
	)

	return eng, nil
}

// ShowStep renders step n of a form for a session. Requesting step 1
// resets the session's wizard state for that form.
func (e *Engine) ShowStep(ctx context.Context, sessionID, formID string, n int) (*domain.Outcome, error) {
	return e.runtime.ShowStep(ctx, sessionID, formID, n)
}

// SubmitStep validates and persists a step submission, then resolves
// the destination: a render outcome with errors, a redirect to the
// next step, completion, or termination.
func (e *Engine) SubmitStep(ctx context.Context, sessionID, formID string, n int, submitted domain.Values, action string) (*domain.Outcome, error) {
	return e.runtime.SubmitStep(ctx, sessionID, formID, n, submitted, action)
}

// Summary returns the consolidated data collected so far, for the
// success view.
func (e *Engine) Summary(ctx context.Context, sessionID, formID string) (domain.Values, error) {
	return e.runtime.Summary(ctx, sessionID, formID)
}

// Form returns a loaded form definition.
func (e *Engine) Form(ctx context.Context, formID string) (*domain.Form, error) {
	return e.definitions.Load(ctx, formID)
}

// Forms returns the identifiers of all loaded forms.
func (e *Engine) Forms(ctx context.Context) ([]string, error) {
	return e.definitions.List(ctx)
}

// Sessions returns the step data manager.
func (e *Engine) Sessions() *session.Manager {
	return e.sessions
}
