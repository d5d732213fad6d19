package chi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	gochi "github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/kailas-cloud/faqmatch/internal/domain"
	"github.com/kailas-cloud/faqmatch/internal/domain/corpus"
	"github.com/kailas-cloud/faqmatch/internal/metrics"
	"github.com/kailas-cloud/faqmatch/internal/usecase/chat"
	healthuc "github.com/kailas-cloud/faqmatch/internal/usecase/health"
)

// maxBodyBytes bounds the chat request body; the query limit itself is enforced by the router.
const maxBodyBytes = 64 << 10

// ErrorPrefix is prepended to every query-time error message shown to users.
const ErrorPrefix = "Error generating response: "

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// IndexInfo describes the fitted matching model.
type IndexInfo interface {
	VocabularySize() int
	MinDF() int
}

// Renderer converts reply markdown to HTML.
type Renderer interface {
	HTML(text string) (string, error)
}

// HealthChecker reports component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// Options configures the router middlewares.
type Options struct {
	APIKeys        []string
	AllowedOrigins []string
}

// Server serves the chat, FAQ inspection and health endpoints.
type Server struct {
	answerer      chat.Answerer
	corpus        *corpus.Corpus
	index         IndexInfo
	renderer      Renderer
	health        HealthChecker
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	answerer chat.Answerer,
	c *corpus.Corpus,
	index IndexInfo,
	renderer Renderer,
	health HealthChecker,
	logger *zap.Logger,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		answerer: answerer,
		corpus:   c,
		index:    index,
		renderer: renderer,
		health:   health,
		logger:   logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, CodeValidationFailed),
		sentinelHandler(domain.ErrFAQNotFound, http.StatusNotFound, CodeFAQNotFound),
	}
	return s
}

// Router builds the chi router with the full middleware stack.
func (s *Server) Router(opts Options) http.Handler {
	r := gochi.NewRouter()
	r.Use(jsonRecoverer(s.logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(s.logger))
	if len(opts.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}))
	}
	r.Use(BearerAuthMiddleware(opts.APIKeys))
	r.Use(metrics.Middleware())

	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.Route("/v1", func(r gochi.Router) {
		r.Post("/chat", s.Chat)
		r.Get("/faqs/{id}", s.GetFAQ)
		r.Get("/collections", s.ListCollections)
		r.Get("/index", s.GetIndex)
	})
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, CodeBadRequest, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, CodeBadRequest, "method not allowed")
	})
	return r
}

// Chat handles POST /v1/chat.
func (s *Server) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	reply, err := s.answerer.Answer(r.Context(), req.Query)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	html, err := s.renderer.HTML(reply.Text)
	if err != nil {
		// The markdown reply is still usable without its HTML rendering.
		s.logger.Warn("render reply", zap.Error(err))
	}

	writeJSON(w, http.StatusOK, chatToResponse(reply, html))
}

// GetFAQ handles GET /v1/faqs/{id}.
func (s *Server) GetFAQ(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(gochi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "faq id must be an integer")
		return
	}

	rec, ok := s.corpus.ByID(id)
	if !ok {
		s.handleDomainError(w, domain.ErrFAQNotFound)
		return
	}

	writeJSON(w, http.StatusOK, faqToResponse(&rec))
}

// ListCollections handles GET /v1/collections.
func (s *Server) ListCollections(w http.ResponseWriter, _ *http.Request) {
	names := s.corpus.Collections()
	items := make([]CollectionResponse, len(names))
	for i, n := range names {
		items[i] = CollectionResponse{Name: n, Records: len(s.corpus.InCollection(n))}
	}
	writeJSON(w, http.StatusOK, CollectionListResponse{Items: items})
}

// GetIndex handles GET /v1/index.
func (s *Server) GetIndex(w http.ResponseWriter, _ *http.Request) {
	resp := IndexResponse{
		Records:     s.corpus.Len(),
		Fingerprint: s.corpus.Fingerprint(),
	}
	if s.index != nil {
		resp.VocabularySize = s.index.VocabularySize()
		resp.MinDF = s.index.MinDF()
	}
	writeJSON(w, http.StatusOK, resp)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{Status: string(report.Status), Checks: checks})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	metrics.Handler().ServeHTTP(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}

// safeDomainMessage returns the user-facing message without exposing internals.
func safeDomainMessage(err error) string {
	if errors.Is(err, domain.ErrInvalidQuery) {
		// e.g. "invalid query: query exceeds 2000 bytes"
		return ErrorPrefix + closestWrap(err, domain.ErrInvalidQuery).Error()
	}
	if errors.Is(err, domain.ErrFAQNotFound) {
		return domain.ErrFAQNotFound.Error()
	}
	return ErrorPrefix + "internal error"
}

// closestWrap walks a single-wrap chain and returns the error that directly wraps sentinel,
// dropping the outer layer prefixes added on the way up.
func closestWrap(err, sentinel error) error {
	for {
		u := errors.Unwrap(err)
		if u == nil || u == sentinel { //nolint:errorlint // identity check on the chain
			return err
		}
		err = u
	}
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

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, CodeInternalError, msg)
}
