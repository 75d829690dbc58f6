package chi

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/reelmatch/internal/domain"
	domcat "github.com/kailas-cloud/reelmatch/internal/domain/catalog"
	"github.com/kailas-cloud/reelmatch/internal/domain/search/request"
	logpkg "github.com/kailas-cloud/reelmatch/internal/logger"
	browseuc "github.com/kailas-cloud/reelmatch/internal/usecase/browse"
	healthuc "github.com/kailas-cloud/reelmatch/internal/usecase/health"
	recommenduc "github.com/kailas-cloud/reelmatch/internal/usecase/recommend"
	searchuc "github.com/kailas-cloud/reelmatch/internal/usecase/search"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Reloader re-reads the catalog tables.
type Reloader interface {
	Reload(ctx context.Context) (*domcat.Catalog, error)
}

// Server serves the recommendation HTTP API.
type Server struct {
	recommend     *recommenduc.Service
	search        *searchuc.Service
	browse        *browseuc.Service
	health        *healthuc.Service
	reloader      Reloader
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	recommend *recommenduc.Service,
	search *searchuc.Service,
	browse *browseuc.Service,
	health *healthuc.Service,
	reloader Reloader,
	logger *zap.Logger,
) *Server {
	s := &Server{
		recommend: recommend,
		search:    search,
		browse:    browse,
		health:    health,
		reloader:  reloader,
		logger:    logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrItemNotFound, http.StatusNotFound, ErrorCodeItemNotFound),
		sentinelHandler(domain.ErrInvalidRequest, http.StatusBadRequest, ErrorCodeValidationFailed),
		sentinelHandler(domain.ErrCatalogUnavailable, http.StatusServiceUnavailable, ErrorCodeCatalogUnavailable),
		sentinelHandler(context.DeadlineExceeded, http.StatusGatewayTimeout, ErrorCodeTimeout),
		sentinelHandler(context.Canceled, http.StatusServiceUnavailable, ErrorCodeCanceled),
	}
	return s
}

// Routes mounts the API on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/recommend", s.Recommend)
	r.Get("/search", s.Search)
	r.Get("/featured", s.Featured)
	r.Get("/items/{id}", s.GetItem)
	r.Post("/catalog/reload", s.ReloadCatalog)
	r.Get("/health", s.HealthCheck)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
}

// Recommend handles GET /recommend?title=&limit=.
func (s *Server) Recommend(w http.ResponseWriter, r *http.Request) {
	limit, ok := intParam(w, r, "limit")
	if !ok {
		return
	}
	req, err := request.NewRecommend(r.URL.Query().Get("title"), limit)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, err.Error())
		return
	}

	res, err := s.recommend.Recommend(r.Context(), &req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listFromResults(res, true))
}

// Search handles GET /search?q=&limit=.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	limit, ok := intParam(w, r, "limit")
	if !ok {
		return
	}
	req, err := request.NewSearch(r.URL.Query().Get("q"), limit)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, err.Error())
		return
	}

	res, err := s.search.Search(r.Context(), &req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listFromResults(res, true))
}

// Featured handles GET /featured?n=.
func (s *Server) Featured(w http.ResponseWriter, r *http.Request) {
	n, ok := intParam(w, r, "n")
	if !ok {
		return
	}

	res, err := s.browse.Featured(r.Context(), n)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listFromResults(res, false))
}

// GetItem handles GET /items/{id}.
func (s *Server) GetItem(w http.ResponseWriter, r *http.Request) {
	res, err := s.browse.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, itemFromResult(&res, false))
}

// ReloadCatalog handles POST /catalog/reload.
func (s *Server) ReloadCatalog(w http.ResponseWriter, r *http.Request) {
	c, err := s.reloader.Reload(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}
	logpkg.FromContext(r.Context(), s.logger).Info("Catalog reloaded",
		zap.Uint64("version", c.Version()),
		zap.Int("items", c.Len()),
	)
	writeJSON(w, http.StatusOK, ReloadResponse{
		Version:   c.Version(),
		Items:     c.Len(),
		ImageRows: c.ImageRows(),
	})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// intParam parses an optional integer query parameter. Absent means 0.
func intParam(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, name+" must be an integer")
		return 0, false
	}
	return v, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a client message without exposing internals.
// Not-found and validation errors carry user input only, so their full text is kept.
func safeDomainMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrItemNotFound), errors.Is(err, domain.ErrInvalidRequest):
		return err.Error()
	case errors.Is(err, domain.ErrCatalogUnavailable):
		return domain.ErrCatalogUnavailable.Error()
	case errors.Is(err, context.DeadlineExceeded):
		return "ranking timed out"
	case errors.Is(err, context.Canceled):
		return "request canceled"
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logpkg.FromContext(r.Context(), s.logger)
	log.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
}
