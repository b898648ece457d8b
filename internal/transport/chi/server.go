package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/mediadex/internal/domain"
	"github.com/kailas-cloud/mediadex/internal/domain/search/page"
	"github.com/kailas-cloud/mediadex/internal/usecase/fast"
	healthuc "github.com/kailas-cloud/mediadex/internal/usecase/health"
	searchuc "github.com/kailas-cloud/mediadex/internal/usecase/search"
)

// Error codes returned in ErrorResponse.
const (
	codeBadRequest        = "bad_request"
	codeNotFound          = "not_found"
	codeSourceUnavailable = "source_unavailable"
	codeInternalError     = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves the read-only HTTP surface over the cache.
type Server struct {
	stack         TierStack
	search        *searchuc.Service
	health        *healthuc.Service
	visibility    VisibilityFunc
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP server. A nil visibility restricts every caller.
func NewServer(
	stack TierStack,
	search *searchuc.Service,
	health *healthuc.Service,
	visibility VisibilityFunc,
	logger *zap.Logger,
) *Server {
	if visibility == nil {
		visibility = RestrictedVisibility
	}
	s := &Server{
		stack:      stack,
		search:     search,
		health:     health,
		visibility: visibility,
		logger:     logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, codeNotFound),
		sentinelHandler(domain.ErrSourceUnavailable, http.StatusServiceUnavailable, codeSourceUnavailable),
	}
	return s
}

// Routes registers every route on r. Cache-backed routes get their own
// orchestrator per request.
func (s *Server) Routes(r chi.Router) {
	r.Get("/healthz", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.Group(func(r chi.Router) {
		r.Use(FastMiddleware(s.stack, s.logger))
		r.Get("/media/{id}", s.GetMedium)
		r.Get("/tags/searchable", s.SearchableTags)
		r.Get("/search", s.Search)
	})
}

// GetMedium handles GET /media/{id}. Media the caller may not see are reported missing.
func (s *Server) GetMedium(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, codeBadRequest, "medium id must be a positive integer")
		return
	}

	f, ok := s.fast(w, r)
	if !ok {
		return
	}
	doc, found, err := f.GetDocument(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	if !found || !s.visibility(r).Allows(doc.Rating) {
		writeError(w, http.StatusNotFound, codeNotFound, "medium not found")
		return
	}

	writeJSON(w, http.StatusOK, mediumToView(&doc))
}

// SearchableTags handles GET /tags/searchable.
func (s *Server) SearchableTags(w http.ResponseWriter, r *http.Request) {
	f, ok := s.fast(w, r)
	if !ok {
		return
	}
	names, err := f.GetAllSearchableTagNames(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"tags": names})
}

// Search handles GET /search?q=&pageNumber=&pageSize=.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	number, err := optionalInt(q.Get("pageNumber"))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "pageNumber must be an integer")
		return
	}
	size, err := optionalInt(q.Get("pageSize"))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "pageSize must be an integer")
		return
	}

	f, ok := s.fast(w, r)
	if !ok {
		return
	}
	res, err := s.search.Search(r.Context(), f, q.Get("q"), page.Request{Number: number, Size: size}, s.visibility(r))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pageToView(res))
}

// HealthCheck handles GET /healthz.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}
	writeJSON(w, httpStatus, healthView{Status: string(report.Status), Checks: report.Checks})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func (s *Server) fast(w http.ResponseWriter, r *http.Request) (*fast.Fast, bool) {
	f := FastFromContext(r.Context())
	if f == nil {
		s.logger.Error("no cache orchestrator in request context", zap.String("path", r.URL.Path))
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
		return nil, false
	}
	return f, true
}

func optionalInt(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrNotFound,
		domain.ErrSourceUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
