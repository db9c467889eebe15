package httpapi

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"bhasharag/internal/config"
	"bhasharag/internal/history"
	"bhasharag/internal/lang"
	"bhasharag/internal/model"
	"bhasharag/internal/pipeline"
	"bhasharag/internal/upstream/openai"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type PipelineService interface {
	Process(ctx context.Context, in pipeline.ProcessInput) (pipeline.ProcessResult, error)
}

type UpstreamChecker interface {
	CheckModels(ctx context.Context) error
}

// HistoryStore is optional; a nil store disables the history endpoint.
type HistoryStore interface {
	Record(ctx context.Context, e history.Entry) (string, error)
	Recent(ctx context.Context, limit int) ([]history.Entry, error)
}

type MetricsObserver interface {
	ObserveHTTP(route, method string, status int, duration time.Duration)
	ObserveStage(stage string, duration time.Duration)
	ObserveProcessed(detectedLang, outputLang string, retrievedCount int)
}

// UIHandler is optional; a nil handler leaves the service API-only.
type UIHandler interface {
	Index(http.ResponseWriter, *http.Request)
	ProcessFragment(http.ResponseWriter, *http.Request)
	Static() http.Handler
}

type Dependencies struct {
	Pipeline       PipelineService
	Upstream       UpstreamChecker
	History        HistoryStore
	Metrics        MetricsObserver
	MetricsHandler http.Handler
	UI             UIHandler
}

type server struct {
	cfg          config.Config
	logger       *slog.Logger
	pipeline     PipelineService
	upstream     UpstreamChecker
	historyStore HistoryStore
	metrics      MetricsObserver
	metricsRoute http.Handler
}

type ctxKey string

const (
	requestIDHeader  = "X-Request-Id"
	requestIDContext = ctxKey("request_id")
	maxHistoryLimit  = 100
)

func NewServer(cfg config.Config, logger *slog.Logger, deps Dependencies) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	if deps.Pipeline == nil || deps.Upstream == nil {
		panic("httpapi: pipeline and upstream dependencies are required")
	}

	s := &server{
		cfg:          cfg,
		logger:       logger,
		pipeline:     deps.Pipeline,
		upstream:     deps.Upstream,
		historyStore: deps.History,
		metrics:      deps.Metrics,
		metricsRoute: deps.MetricsHandler,
	}

	r := chi.NewRouter()
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, r, http.StatusNotFound, "not_found", "route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		s.writeError(w, r, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed", nil)
	})

	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoverMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Accept", requestIDHeader},
	}))

	r.Get("/healthz", s.handleHealthz)
	r.Get("/readyz", s.handleReadyz)
	if s.metricsRoute != nil {
		r.Handle("/metrics", s.metricsRoute)
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/process", s.handleProcess)
		r.Get("/history", s.handleHistory)
	})

	if deps.UI != nil {
		r.Get("/", deps.UI.Index)
		r.Post("/ui/process", deps.UI.ProcessFragment)
		r.Handle("/static/*", deps.UI.Static())
	}

	return r
}

func (s *server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, model.HealthResponse{OK: true})
}

func (s *server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := s.upstream.CheckModels(ctx); err != nil {
		s.writeError(w, r, http.StatusServiceUnavailable, "not_ready", "upstream check failed", detailsForError(err))
		return
	}
	writeJSON(w, http.StatusOK, model.ReadyResponse{OK: true, ServiceName: "BhashaRAG"})
}

func (s *server) handleProcess(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	defer func() { _ = r.Body.Close() }()

	var req model.ProcessRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		s.handleJSONDecodeError(w, r, err)
		return
	}
	if err := ensureBodyFullyConsumed(decoder); err != nil {
		s.handleJSONDecodeError(w, r, err)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		s.writeError(w, r, http.StatusBadRequest, "invalid_request", "text is required", nil)
		return
	}

	result, err := s.pipeline.Process(r.Context(), pipeline.ProcessInput{
		Text:       req.Text,
		TargetLang: req.TargetLang,
	})
	if err != nil {
		s.writeMappedError(w, r, err)
		return
	}

	if s.metrics != nil {
		s.metrics.ObserveStage("translation", result.Timings.Translation)
		s.metrics.ObserveStage("retrieval", result.Timings.Retrieval)
		s.metrics.ObserveProcessed(result.DetectedLang, result.OutputLang, len(result.Retrieved))
	}
	s.recordHistory(r.Context(), result)

	items := make([]model.RetrievedItem, 0, len(result.Retrieved))
	for _, item := range result.Retrieved {
		items = append(items, model.RetrievedItem{
			Domain: item.Domain,
			Lang:   item.Lang,
			Score:  item.Score,
			Text:   item.Text,
		})
	}

	writeJSON(w, http.StatusOK, model.ProcessResponse{
		OriginalText:         result.OriginalText,
		DetectedLanguageName: lang.Name(result.DetectedLang),
		NormalizedText:       result.NormalizedText,
		RetrievedItems:       items,
		TranslatedText:       result.TranslatedText,
		Metrics: model.Metrics{
			LatencyMS:    result.Timings.Total.Milliseconds(),
			DetectedLang: result.DetectedLang,
			TargetLang:   result.OutputLang,
			NumRetrieved: len(result.Retrieved),
		},
	})
}

// recordHistory is best-effort; a store failure never fails the request.
func (s *server) recordHistory(ctx context.Context, result pipeline.ProcessResult) {
	if s.historyStore == nil {
		return
	}
	_, err := s.historyStore.Record(context.WithoutCancel(ctx), history.Entry{
		OriginalText:   result.OriginalText,
		NormalizedText: result.NormalizedText,
		DetectedLang:   result.DetectedLang,
		TargetLang:     result.OutputLang,
		TranslatedText: result.TranslatedText,
		NumRetrieved:   len(result.Retrieved),
		LatencyMS:      result.Timings.Total.Milliseconds(),
	})
	if err != nil {
		s.logger.Error("history record failed", "request_id", requestIDFromContext(ctx), "error", err)
	}
}

func (s *server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.historyStore == nil {
		s.writeError(w, r, http.StatusNotFound, "not_found", "history is disabled", nil)
		return
	}

	limit := 20
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			s.writeError(w, r, http.StatusBadRequest, "invalid_request", "limit must be a positive integer", nil)
			return
		}
		limit = min(parsed, maxHistoryLimit)
	}

	entries, err := s.historyStore.Recent(r.Context(), limit)
	if err != nil {
		s.writeMappedError(w, r, err)
		return
	}

	out := make([]model.HistoryEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, model.HistoryEntry{
			ID:             e.ID,
			OriginalText:   e.OriginalText,
			NormalizedText: e.NormalizedText,
			DetectedLang:   e.DetectedLang,
			TargetLang:     e.TargetLang,
			TranslatedText: e.TranslatedText,
			NumRetrieved:   e.NumRetrieved,
			LatencyMS:      e.LatencyMS,
			CreatedAt:      e.CreatedAt.Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, model.HistoryResponse{Entries: out})
}

func (s *server) handleJSONDecodeError(w http.ResponseWriter, r *http.Request, err error) {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		s.writeError(w, r, http.StatusRequestEntityTooLarge, "request_too_large", "JSON body too large", nil)
		return
	}
	s.writeError(w, r, http.StatusBadRequest, "invalid_request", "invalid JSON body", nil)
}

func (s *server) writeMappedError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	code := "internal_error"
	message := "request failed"
	details := detailsForError(err)

	var upstreamErr *openai.Error
	switch {
	case errors.As(err, &upstreamErr):
		status = http.StatusBadGateway
		code = "upstream_request_failed"
		message = "upstream request failed"
	case errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
		code = "timeout"
		message = "request timed out"
	case errors.Is(err, context.Canceled):
		status = 499
		code = "canceled"
		message = "request canceled"
	}

	s.writeError(w, r, status, code, message, details)
}

func (s *server) writeError(w http.ResponseWriter, r *http.Request, status int, code, message string, details map[string]any) {
	if rid := requestIDFromContext(r.Context()); rid != "" {
		w.Header().Set(requestIDHeader, rid)
	}
	writeJSON(w, status, model.ErrorResponse{
		Error:     model.APIError{Code: code, Message: message, Details: details},
		RequestID: requestIDFromContext(r.Context()),
	})
}

func (s *server) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := strings.TrimSpace(r.Header.Get(requestIDHeader))
		if requestID == "" {
			requestID = newRequestID()
		}
		w.Header().Set(requestIDHeader, requestID)
		ctx := context.WithValue(r.Context(), requestIDContext, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}

		duration := time.Since(started)
		if s.metrics != nil {
			s.metrics.ObserveHTTP(route, r.Method, status, duration)
		}

		s.logger.Info("http_request",
			"request_id", requestIDFromContext(r.Context()),
			"method", r.Method,
			"route", route,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration_ms", duration.Milliseconds(),
		)
	})
}

func (s *server) recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("panic recovered", "request_id", requestIDFromContext(r.Context()), "panic", rec)
				s.writeError(w, r, http.StatusInternalServerError, "internal_error", "internal server error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func ensureBodyFullyConsumed(decoder *json.Decoder) error {
	var extra any
	if err := decoder.Decode(&extra); err != io.EOF {
		if err == nil {
			return fmt.Errorf("multiple JSON values")
		}
		return err
	}
	return nil
}

func requestIDFromContext(ctx context.Context) string {
	value, _ := ctx.Value(requestIDContext).(string)
	return value
}

func newRequestID() string {
	buf := make([]byte, 12)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("req-%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(buf)
}

func detailsForError(err error) map[string]any {
	if err == nil {
		return nil
	}
	details := map[string]any{"error": err.Error()}
	var upstreamErr *openai.Error
	if errors.As(err, &upstreamErr) {
		details["upstream_status"] = upstreamErr.StatusCode
		if upstreamErr.Body != "" {
			details["upstream_body"] = upstreamErr.Body
		}
	}
	return details
}
