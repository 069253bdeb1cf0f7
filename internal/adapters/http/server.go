// Package http adapts the wizard engine to an HTTP transport. It owns
// routing, session cookies, and status mapping; all wizard semantics
// stay in the engine.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/formwise/internal/logging"
	"github.com/aretw0/formwise/pkg/domain"
	"github.com/aretw0/formwise/pkg/ports"
)

// SessionCookie is the cookie carrying the wizard session identifier.
const SessionCookie = "formwise_session"

// Engine defines the interface for the wizard core consumed by this adapter.
type Engine interface {
	ShowStep(ctx context.Context, sessionID, formID string, n int) (*domain.Outcome, error)
	SubmitStep(ctx context.Context, sessionID, formID string, n int, submitted domain.Values, action string) (*domain.Outcome, error)
	Summary(ctx context.Context, sessionID, formID string) (domain.Values, error)
}

// Server wires the engine to chi routes.
type Server struct {
	engine   Engine
	renderer ports.Renderer
	logger   *slog.Logger
	gatherer prometheus.Gatherer
}

// ServerOption configures the Server.
type ServerOption func(*Server)

// WithRenderer installs an external template renderer. Without one,
// the adapter answers with JSON render contexts.
func WithRenderer(r ports.Renderer) ServerOption {
	return func(s *Server) {
		s.renderer = r
	}
}

// WithLogger sets the adapter logger.
func WithLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetricsGatherer sets the registry /metrics exposes. The engine
// collectors must be registered on the same registry, or scrapes will
// not see them.
func WithMetricsGatherer(g prometheus.Gatherer) ServerOption {
	return func(s *Server) {
		if g != nil {
			s.gatherer = g
		}
	}
}

// NewHandler creates the HTTP handler for the engine.
func NewHandler(engine Engine, opts ...ServerOption) http.Handler {
	server := &Server{
		engine:   engine,
		logger:   logging.NewNop(),
		gatherer: prometheus.DefaultGatherer,
	}
	for _, opt := range opts {
		opt(server)
	}

	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(server.gatherer, promhttp.HandlerOpts{}))

	r.Route("/forms/{formID}", func(r chi.Router) {
		r.Get("/steps/{n}", server.showStep)
		r.Post("/steps/{n}", server.submitStep)
		r.Get("/success", server.success)
	})

	return r
}

// sessionID reads the session cookie, minting one when absent.
func (s *Server) sessionID(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func stepNumber(r *http.Request) (int, error) {
	n, err := strconv.Atoi(chi.URLParam(r, "n"))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a step number", domain.ErrStepOutOfRange, chi.URLParam(r, "n"))
	}
	return n, nil
}

func (s *Server) showStep(w http.ResponseWriter, r *http.Request) {
	formID := chi.URLParam(r, "formID")
	n, err := stepNumber(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	outcome, err := s.engine.ShowStep(r.Context(), s.sessionID(w, r), formID, n)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeOutcome(w, r, formID, outcome)
}

func (s *Server) submitStep(w http.ResponseWriter, r *http.Request) {
	formID := chi.URLParam(r, "formID")
	n, err := stepNumber(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	values := make(domain.Values, len(r.PostForm))
	action := domain.ActionNext
	for name, vals := range r.PostForm {
		if name == "action" {
			if len(vals) > 0 && vals[0] != "" {
				action = vals[0]
			}
			continue
		}
		if len(vals) == 1 {
			values[name] = vals[0]
		} else {
			values[name] = append([]string(nil), vals...)
		}
	}

	outcome, err := s.engine.SubmitStep(r.Context(), s.sessionID(w, r), formID, n, values, action)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeOutcome(w, r, formID, outcome)
}

func (s *Server) success(w http.ResponseWriter, r *http.Request) {
	formID := chi.URLParam(r, "formID")
	summary, err := s.engine.Summary(r.Context(), s.sessionID(w, r), formID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	if s.renderer != nil {
		body, err := s.renderer.Render("success", summary)
		if err != nil {
			s.writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(body)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(summary); err != nil {
		s.logger.Warn("failed to encode summary", "err", err)
	}
}

// writeOutcome maps an engine outcome to an HTTP response: render
// contexts answer in place, everything else becomes a redirect.
func (s *Server) writeOutcome(w http.ResponseWriter, r *http.Request, formID string, outcome *domain.Outcome) {
	switch outcome.Kind {
	case domain.OutcomeRender:
		s.writeView(w, outcome.View)
	case domain.OutcomeRedirect, domain.OutcomeTerminated:
		http.Redirect(w, r, fmt.Sprintf("/forms/%s/steps/%d", formID, outcome.Step), http.StatusSeeOther)
	case domain.OutcomeCompleted:
		http.Redirect(w, r, fmt.Sprintf("/forms/%s/success", formID), http.StatusSeeOther)
	default:
		s.writeError(w, fmt.Errorf("unknown outcome kind %q", outcome.Kind))
	}
}

func (s *Server) writeView(w http.ResponseWriter, view *domain.StepView) {
	status := http.StatusOK
	if view.Errors != nil && !view.Errors.Valid() {
		status = http.StatusUnprocessableEntity
	}

	if s.renderer != nil {
		body, err := s.renderer.Render("step", view)
		if err != nil {
			s.writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		w.Write(body)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(view); err != nil {
		s.logger.Warn("failed to encode step view", "err", err)
	}
}

// writeError maps domain errors to statuses. Validation never reaches
// here; it is a render outcome, not an error.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrStepOutOfRange):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, domain.ErrFormNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		s.logger.Error("request failed", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
