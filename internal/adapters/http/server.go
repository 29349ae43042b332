package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aretw0/valueprop"
	"github.com/aretw0/valueprop/internal/logging"
	"github.com/aretw0/valueprop/internal/presentation/graph"
	"github.com/aretw0/valueprop/pkg/compose"
	"github.com/aretw0/valueprop/pkg/domain"
	"github.com/aretw0/valueprop/pkg/wizard"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server exposes a Wizard as a JSON API.
type Server struct {
	Wizard  *valueprop.Wizard
	metrics http.Handler
	logger  *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithMetrics mounts a Prometheus handler on /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithLogger configures a logger for the Server.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewHandler creates the HTTP handler for w.
func NewHandler(w *valueprop.Wizard, opts ...Option) http.Handler {
	s := &Server{Wizard: w, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.Health)
	r.Get("/info", s.Info)

	r.Get("/state", s.GetState)
	r.Patch("/data", s.PatchData)
	r.Post("/items/{field}", s.AddItem)
	r.Delete("/items/{field}/{index}", s.RemoveItem)

	r.Get("/steps", s.GetSteps)
	r.Get("/graph", s.GetGraph)
	r.Put("/step", s.SetStep)
	r.Post("/step/next", s.NextStep)
	r.Post("/step/prev", s.PrevStep)
	r.Post("/complete", s.Complete)
	r.Post("/reset", s.Reset)

	r.Get("/proposition", s.GetProposition)
	r.Post("/proposition/regenerate", s.RegenerateProposition)
	r.Get("/summary", s.GetSummary)
	r.Get("/share", s.GetShare)
	r.Get("/storage", s.GetStorage)

	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}
	return r
}

// ItemRequest is the body of POST /items/{field}.
type ItemRequest struct {
	Value string `json:"value"`
}

// ItemResponse reports whether an entry was appended.
type ItemResponse struct {
	Added bool        `json:"added"`
	View  wizard.View `json:"view"`
}

// StepRequest is the body of PUT /step.
type StepRequest struct {
	Step int `json:"step"`
}

// PropositionResponse is the body of GET /proposition.
type PropositionResponse struct {
	Text   string `json:"text"`
	Edited bool   `json:"edited"`
}

// Health handles GET /healthz.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Info handles GET /info.
func (s *Server) Info(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "valueprop-http",
		"version": valueprop.Version,
	})
}

// GetState handles GET /state.
func (s *Server) GetState(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Wizard.Sequencer.Current())
}

// PatchData handles PATCH /data with a partial answer record.
func (s *Server) PatchData(w http.ResponseWriter, r *http.Request) {
	var p domain.Patch
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	p, err := wizard.SanitizePatch(p)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	s.Wizard.Store.UpdateData(r.Context(), p)
	s.writeJSON(w, http.StatusOK, s.Wizard.Sequencer.Current())
}

// AddItem handles POST /items/{field}. Blank entries are ignored and reported with added=false.
func (s *Server) AddItem(w http.ResponseWriter, r *http.Request) {
	field := domain.Field(chi.URLParam(r, "field"))
	if !field.IsList() {
		s.writeDomainError(w, fmt.Errorf("%w: %q is not a list", domain.ErrUnknownField, field))
		return
	}

	var body ItemRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	value, err := wizard.SanitizeEntry(body.Value)
	if errors.Is(err, domain.ErrEmptyEntry) {
		s.writeJSON(w, http.StatusOK, ItemResponse{Added: false, View: s.Wizard.Sequencer.Current()})
		return
	}
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	added, err := s.Wizard.Store.AddItem(r.Context(), field, value)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, ItemResponse{Added: added, View: s.Wizard.Sequencer.Current()})
}

// RemoveItem handles DELETE /items/{field}/{index}.
func (s *Server) RemoveItem(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid index: %w", err))
		return
	}

	field := domain.Field(chi.URLParam(r, "field"))
	if err := s.Wizard.Store.RemoveItem(r.Context(), field, index); err != nil {
		s.writeDomainError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, s.Wizard.Sequencer.Current())
}

// GetSteps handles GET /steps.
func (s *Server) GetSteps(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, wizard.Steps())
}

// GetGraph handles GET /graph with a Mermaid diagram of the live session.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	out := graph.GenerateMermaid(wizard.Steps(), graph.FromState(s.Wizard.Store.Snapshot()))
	if _, err := w.Write([]byte(out)); err != nil {
		s.logger.Error("Failed to write graph", "error", err)
	}
}

// SetStep handles PUT /step. Out-of-range steps are clamped.
func (s *Server) SetStep(w http.ResponseWriter, r *http.Request) {
	var body StepRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	s.writeJSON(w, http.StatusOK, s.Wizard.Sequencer.Jump(r.Context(), body.Step))
}

// NextStep handles POST /step/next.
func (s *Server) NextStep(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Wizard.Sequencer.Next(r.Context()))
}

// PrevStep handles POST /step/prev.
func (s *Server) PrevStep(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Wizard.Sequencer.Back(r.Context()))
}

// Complete handles POST /complete. Only the last step can be completed.
func (s *Server) Complete(w http.ResponseWriter, r *http.Request) {
	if !s.Wizard.Sequencer.Finish(r.Context()) {
		s.writeError(w, http.StatusConflict, errors.New("the wizard can only be completed from the last step"))
		return
	}
	s.writeJSON(w, http.StatusOK, s.Wizard.Sequencer.Current())
}

// Reset handles POST /reset.
func (s *Server) Reset(w http.ResponseWriter, r *http.Request) {
	s.Wizard.Store.Reset(r.Context())
	s.writeJSON(w, http.StatusOK, s.Wizard.Sequencer.Current())
}

// GetProposition handles GET /proposition.
func (s *Server) GetProposition(w http.ResponseWriter, r *http.Request) {
	st := s.Wizard.Store.Snapshot()
	s.writeJSON(w, http.StatusOK, PropositionResponse{
		Text:   st.Data.ValueProposition,
		Edited: st.PropositionEdited,
	})
}

// RegenerateProposition handles POST /proposition/regenerate.
func (s *Server) RegenerateProposition(w http.ResponseWriter, r *http.Request) {
	if _, ok := compose.Proposition(s.Wizard.Store.Data()); !ok {
		s.writeDomainError(w, fmt.Errorf("%w: audience, problem and unique approach are required", domain.ErrIncomplete))
		return
	}
	s.Wizard.Store.RegenerateProposition(r.Context())
	s.GetProposition(w, r)
}

// GetSummary handles GET /summary as a plain-text download.
func (s *Server) GetSummary(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", compose.SummaryFilename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(compose.Summary(s.Wizard.Store.Data()))); err != nil {
		s.logger.Error("Failed to write summary", "error", err)
	}
}

// GetShare handles GET /share.
func (s *Server) GetShare(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, compose.Share(s.Wizard.Store.Data()))
}

// GetStorage handles GET /storage.
func (s *Server) GetStorage(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Wizard.Storage.Info(r.Context()))
}

// -- Helpers --

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrUnknownField):
		s.writeError(w, http.StatusBadRequest, err)
	case errors.Is(err, domain.ErrIndexOutOfRange):
		s.writeError(w, http.StatusNotFound, err)
	case errors.Is(err, domain.ErrIncomplete):
		s.writeError(w, http.StatusConflict, err)
	default:
		s.logger.Error("Request failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, err)
	}
}
