// Package web serves the HTML search form, the search results and the operational endpoints.
package web

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/moviesearch/internal/domain/search/mode"
	"github.com/kailas-cloud/moviesearch/internal/logger"
	"github.com/kailas-cloud/moviesearch/internal/metrics"
	"github.com/kailas-cloud/moviesearch/internal/usecase/dispatch"
	healthuc "github.com/kailas-cloud/moviesearch/internal/usecase/health"
)

// Dispatcher maps a search form to a renderable page.
type Dispatcher interface {
	Dispatch(ctx context.Context, f dispatch.Form) dispatch.Page
	DefaultMode() mode.Mode
}

// HealthChecker reports component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// Server holds the HTTP handlers.
type Server struct {
	dispatcher Dispatcher
	health     HealthChecker
	views      *Views
	logger     *zap.Logger
}

// NewServer creates the web server. health may be nil, which disables /health.
func NewServer(d Dispatcher, health HealthChecker, views *Views, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{dispatcher: d, health: health, views: views, logger: logger}
}

// Routes builds the chi router with the middleware chain.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(htmlRecoverer(s.logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(s.logger))
	r.Use(metrics.Middleware)

	r.Get("/", s.Home)
	r.Post("/search", s.Search)
	if s.health != nil {
		r.Get("/health", s.Health)
	}
	r.Handle("/metrics", metrics.Handler())

	return r
}

// Home handles GET /.
func (s *Server) Home(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, viewIndex, homeData{
		Modes:       mode.All(),
		DefaultMode: s.dispatcher.DefaultMode(),
	})
}

// Search handles POST /search. Provider failures render the error page with status 200.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	form, err := parseSearchForm(r)
	if err != nil {
		logger.FromContext(r.Context()).Info("Malformed search form", zap.Error(err))
		s.render(w, r, viewError, errorData{Error: "invalid form submission: " + err.Error()})
		return
	}

	page := s.dispatcher.Dispatch(r.Context(), form)

	switch page.Outcome {
	case dispatch.OutcomeResults:
		s.render(w, r, viewSearch, searchData{
			Query:      page.Query,
			IndexType:  page.IndexType,
			Results:    page.Results,
			SearchTime: page.SearchTime.Seconds(),
		})
	default:
		s.render(w, r, viewError, errorData{
			Query:     page.Query,
			IndexType: page.IndexType,
			Error:     page.Error,
		})
	}
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
	Errors map[string]string `json:"errors,omitempty"`
}

// Health handles GET /health: 200 when every component is up, 503 otherwise.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	resp := healthResponse{
		Status: string(report.Status),
		Checks: make(map[string]string, len(report.Checks)),
		Errors: report.Errors,
	}
	for k, v := range report.Checks {
		resp.Checks[k] = string(v)
	}

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, resp)
}

// render writes a full page or a 500 when the template fails.
func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	if err := s.views.Render(w, name, data); err != nil {
		logger.FromContext(r.Context()).Error("Template render failed",
			zap.String("template", name),
			zap.Error(err),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
