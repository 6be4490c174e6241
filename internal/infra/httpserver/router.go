package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	appai "github.com/bryanwahyu/lexguard/internal/application/ai"
	appanalysis "github.com/bryanwahyu/lexguard/internal/application/analysis"
	"github.com/bryanwahyu/lexguard/internal/application/session"
	domai "github.com/bryanwahyu/lexguard/internal/domain/ai"
	"github.com/bryanwahyu/lexguard/internal/domain/analysis"
	"github.com/bryanwahyu/lexguard/internal/domain/chat"
	"github.com/bryanwahyu/lexguard/internal/middleware"
)

var (
	errBadRequest         = errors.New("bad request")
	errGenerationDisabled = errors.New("text generation is not configured")
)

// Deps are the services the HTTP layer talks to. AI may be nil when the
// server runs without a generator.
type Deps struct {
	Sessions       *session.Manager
	Analysis       *appanalysis.Service
	AI             *appai.Service
	Greeting       bool
	MaxUploadBytes int64
	HealthCheckers map[string]middleware.HealthChecker
}

type Router struct {
	sessions  *session.Manager
	analysis  *appanalysis.Service
	ai        *appai.Service
	greeting  bool
	maxUpload int64
}

func NewRouter(d Deps) http.Handler {
	r := &Router{
		sessions:  d.Sessions,
		analysis:  d.Analysis,
		ai:        d.AI,
		greeting:  d.Greeting,
		maxUpload: d.MaxUploadBytes,
	}
	if r.maxUpload <= 0 {
		r.maxUpload = middleware.MaxDocumentBytes
	}

	mux := chi.NewRouter()

	mux.Get("/health", middleware.HealthHandler(d.HealthCheckers))
	mux.Get("/ready", middleware.ReadinessHandler)
	mux.Get("/live", middleware.LivenessHandler)
	mux.Get("/metrics", middleware.MetricsHandler)

	mux.Route("/api", func(rt chi.Router) {
		rt.Post("/generate", r.wrap(r.handleGenerate))
		rt.Post("/analyze", r.wrap(r.handleAnalyze))

		rt.Post("/sessions", r.wrap(r.handleCreateSession))
		rt.Route("/sessions/{id}", func(s chi.Router) {
			s.Delete("/", r.wrap(r.handleDeleteSession))
			s.Get("/messages", r.wrap(r.handleMessages))
			s.Post("/messages", r.wrap(r.handleSubmit))
			s.Get("/quick-actions", r.wrap(r.handleQuickActions))
			s.Post("/documents", r.wrap(r.handleUpload))
			s.Post("/documents/demo", r.wrap(r.handleDemo))
			s.Get("/analysis", r.wrap(r.handleAnalysis))
			s.Post("/translate", r.wrap(r.handleTranslate))
		})

		rt.Get("/risk/classify", r.wrap(r.handleClassify))
		rt.Get("/languages", r.wrap(r.handleLanguages))
		rt.Get("/languages/{code}/sample", r.wrap(r.handleLanguageSample))
		rt.Get("/analytics", r.wrap(r.handleAnalytics))
		rt.Get("/history", r.wrap(r.handleHistory))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := h(w, req)
		if err == nil {
			return
		}

		var ae *analysis.Error
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &ae):
			writeJSON(w, http.StatusBadGateway, map[string]string{
				"error": err.Error(),
				"kind":  string(ae.Kind),
			})
		case errors.As(err, &tooLarge):
			writeError(w, http.StatusRequestEntityTooLarge, err)
		case errors.Is(err, session.ErrNotFound), errors.Is(err, analysis.ErrNoAnalysis):
			writeError(w, http.StatusNotFound, err)
		case errors.Is(err, chat.ErrEmptyUtterance), errors.Is(err, errBadRequest):
			writeError(w, http.StatusBadRequest, err)
		case errors.Is(err, chat.ErrPending):
			writeError(w, http.StatusConflict, err)
		case errors.Is(err, analysis.ErrUnsupportedFormat):
			writeError(w, http.StatusUnsupportedMediaType, err)
		case errors.Is(err, domai.ErrQuotaExceeded):
			writeError(w, http.StatusTooManyRequests, err)
		case errors.Is(err, errGenerationDisabled):
			writeError(w, http.StatusServiceUnavailable, err)
		default:
			slog.Error("request failed", "method", req.Method, "path", req.URL.Path, "error", err)
			writeError(w, http.StatusInternalServerError, err)
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	_ = writeJSON(w, status, map[string]string{"error": err.Error()})
}

// decodeJSON reads a JSON body; an empty body leaves v untouched.
func decodeJSON(req *http.Request, v any) error {
	if req.Body == nil {
		return nil
	}
	if err := json.NewDecoder(req.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return badRequest("invalid JSON body: " + err.Error())
	}
	return nil
}

func badRequest(msg string) error {
	return &requestError{msg: msg}
}

type requestError struct{ msg string }

func (e *requestError) Error() string        { return e.msg }
func (e *requestError) Is(target error) bool { return target == errBadRequest }
