// Package httpapi exposes the template catalog, field extraction, rendering
// and live preview sessions over HTTP.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"

	"github.com/goliatone/go-contractgen/pkg/model"
	"github.com/goliatone/go-contractgen/pkg/orchestrator"
	"github.com/goliatone/go-contractgen/pkg/render"
)

// Option customises a Server.
type Option func(*Server)

// WithLogger sets the request logger. Pass nil to silence request logs.
func WithLogger(logger *log.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithContract replaces the embedded OpenAPI document served at
// /openapi.json.
func WithContract(doc *openapi3.T) Option {
	return func(s *Server) {
		s.contract = doc
	}
}

// Server serves the contractgen API.
type Server struct {
	orch         *orchestrator.Orchestrator
	sessions     *sessionStore
	contract     *openapi3.T
	contractJSON []byte
	logger       *log.Logger
	router       chi.Router
}

// New builds the API around an orchestrator.
func New(ctx context.Context, orch *orchestrator.Orchestrator, options ...Option) (*Server, error) {
	if orch == nil {
		return nil, errors.New("httpapi: orchestrator is required")
	}
	s := &Server{
		orch:   orch,
		logger: log.Default(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	if s.contract == nil {
		doc, err := LoadContract(ctx)
		if err != nil {
			return nil, err
		}
		s.contract = doc
	}
	data, err := contractJSON(s.contract)
	if err != nil {
		return nil, err
	}
	s.contractJSON = data
	s.sessions = newSessionStore(orch)
	s.router = s.routes()
	return s, nil
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close cancels every live preview session.
func (s *Server) Close() {
	s.sessions.closeAll()
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(s.logRequests)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"request_id": newRequestID(), "status": "ok"})
	})
	r.Get("/openapi.json", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("content-type", "application/json")
		_, _ = w.Write(s.contractJSON)
	})

	r.Get("/templates", s.listTemplates)
	r.Get("/templates/{id}", s.getTemplate)
	r.Post("/templates/{id}/fields", s.templateFields)
	r.Post("/templates/{id}/preview", s.previewTemplate)
	r.Post("/templates/{id}/render", s.renderTemplate)

	r.Post("/sessions", s.createSession)
	r.Delete("/sessions/{id}", s.closeSession)
	r.Put("/sessions/{id}/state", s.updateSessionState)
	r.Get("/sessions/{id}/preview", s.sessionPreview)
	return r
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.logger == nil {
			next.ServeHTTP(w, r)
			return
		}
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Printf("%s %s %d %s", r.Method, r.URL.Path, rec.status, time.Since(start).Round(time.Microsecond))
	})
}

type templateSummary struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Version     string   `json:"version,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Capsules    int      `json:"capsules"`
}

func summarize(tpl model.Template) templateSummary {
	return templateSummary{
		ID:          tpl.ID,
		Name:        tpl.Name,
		Description: tpl.Description,
		Version:     tpl.Version,
		Tags:        tpl.Tags,
		Capsules:    len(tpl.Capsules),
	}
}

func (s *Server) listTemplates(w http.ResponseWriter, r *http.Request) {
	catalog := s.orch.Catalog()
	if catalog == nil {
		writeJSON(w, http.StatusOK, map[string]any{"request_id": newRequestID(), "templates": []templateSummary{}})
		return
	}

	var templates []model.Template
	if q := r.URL.Query().Get("q"); q != "" {
		templates = catalog.Search(q)
	} else {
		templates = catalog.List()
	}

	out := make([]templateSummary, 0, len(templates))
	for _, tpl := range templates {
		out = append(out, summarize(tpl))
	}
	writeJSON(w, http.StatusOK, map[string]any{"request_id": newRequestID(), "templates": out})
}

func (s *Server) getTemplate(w http.ResponseWriter, r *http.Request) {
	tpl, err := s.orch.Template(r.Context(), orchestrator.Request{TemplateID: chi.URLParam(r, "id")})
	if err != nil {
		s.writeOrchestratorError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"request_id": newRequestID(), "template": tpl})
}

type stateRequest struct {
	State model.State `json:"state"`
}

func (s *Server) templateFields(w http.ResponseWriter, r *http.Request) {
	var req stateRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_JSON", err.Error(), nil)
		return
	}
	fields, err := s.orch.Fields(r.Context(), orchestrator.Request{
		TemplateID: chi.URLParam(r, "id"),
		State:      req.State,
	})
	if err != nil {
		s.writeOrchestratorError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"request_id": newRequestID(), "fields": fields})
}

func (s *Server) previewTemplate(w http.ResponseWriter, r *http.Request) {
	var req stateRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_JSON", err.Error(), nil)
		return
	}
	preview, err := s.orch.Preview(r.Context(), orchestrator.Request{
		TemplateID: chi.URLParam(r, "id"),
		State:      req.State,
	})
	if err != nil {
		s.writeOrchestratorError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"request_id": newRequestID(), "preview": preview})
}

type renderRequest struct {
	State    model.State `json:"state"`
	Renderer string      `json:"renderer"`
	Theme    string      `json:"theme"`
	Variant  string      `json:"variant"`
	Fragment bool        `json:"fragment"`
}

func (s *Server) renderTemplate(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_JSON", err.Error(), nil)
		return
	}

	out, err := s.orch.Generate(r.Context(), orchestrator.Request{
		TemplateID:   chi.URLParam(r, "id"),
		State:        req.State,
		Renderer:     req.Renderer,
		ThemeName:    req.Theme,
		ThemeVariant: req.Variant,
		Fragment:     req.Fragment,
	})
	if err != nil {
		s.writeOrchestratorError(w, err)
		return
	}
	contentType, err := s.orch.ContentType(req.Renderer)
	if err != nil {
		s.writeOrchestratorError(w, err)
		return
	}
	w.Header().Set("content-type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

type sessionRequest struct {
	TemplateID string      `json:"template_id"`
	State      model.State `json:"state"`
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_JSON", err.Error(), nil)
		return
	}
	id, gen, err := s.sessions.open(r.Context(), req.TemplateID, req.State)
	if err != nil {
		s.writeOrchestratorError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"request_id": newRequestID(), "session_id": id, "generation": gen})
}

func (s *Server) closeSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.close(chi.URLParam(r, "id")); err != nil {
		s.writeOrchestratorError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) updateSessionState(w http.ResponseWriter, r *http.Request) {
	var req stateRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_JSON", err.Error(), nil)
		return
	}
	id := chi.URLParam(r, "id")
	gen, err := s.sessions.submit(id, req.State)
	if err != nil {
		s.writeOrchestratorError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]any{"request_id": newRequestID(), "session_id": id, "generation": gen})
}

func (s *Server) sessionPreview(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	snap, err := s.sessions.latest(id)
	if err != nil {
		s.writeOrchestratorError(w, err)
		return
	}
	resp := map[string]any{
		"request_id": newRequestID(),
		"session_id": id,
		"generation": snap.Generation,
		"preview":    snap.Value,
	}
	if snap.Err != nil {
		resp["error"] = snap.Err.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) writeOrchestratorError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, orchestrator.ErrTemplateNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
	case errors.Is(err, ErrSessionNotFound):
		writeError(w, http.StatusNotFound, "SESSION_NOT_FOUND", err.Error(), nil)
	case errors.Is(err, render.ErrRendererNotFound):
		writeError(w, http.StatusBadRequest, "UNKNOWN_RENDERER", err.Error(), map[string]any{"available": s.orch.Registry().List()})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusServiceUnavailable, "CANCELLED", err.Error(), nil)
	default:
		writeError(w, http.StatusInternalServerError, "RENDER_ERROR", fmt.Sprint(err), nil)
	}
}
