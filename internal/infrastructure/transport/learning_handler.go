package transport

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"learnassist/app/usecase"
	"learnassist/internal/domain/entity"
	"learnassist/internal/infrastructure/metrics"
	"learnassist/internal/infrastructure/validator"
)

type LearningHandler struct {
	learning usecase.LearningUsecase
	journal  usecase.JournalUsecase
	logger   *slog.Logger
}

func NewLearningHandler(
	learning usecase.LearningUsecase,
	journal usecase.JournalUsecase,
	logger *slog.Logger,
) *LearningHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &LearningHandler{
		learning: learning,
		journal:  journal,
		logger:   logger,
	}
}

// withMetrics records HTTP metrics. The path label is the route template so
// /api/history/{id} stays one series.
func (h *LearningHandler) withMetrics(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rw, r)

		metrics.ObserveHTTP(r.Method, routePath(r), rw.status, time.Since(start))
	}
}

func routePath(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return r.URL.Path
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (h *LearningHandler) RegisterRoutes(r *mux.Router) {
	api := r.PathPrefix("/api").Subrouter()

	// mux only answers 405 from the router that owns the route
	r.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)
	api.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)

	api.HandleFunc("/analyze-content", h.withMetrics(
		handleGeneration(h, entity.EndpointAnalyzeContent, h.learning.AnalyzeContent))).Methods(http.MethodPost)
	api.HandleFunc("/generate-content", h.withMetrics(
		handleGeneration(h, entity.EndpointGenerateContent, h.learning.GenerateContent))).Methods(http.MethodPost)
	api.HandleFunc("/recommendations", h.withMetrics(
		handleGeneration(h, entity.EndpointRecommendations, h.learning.Recommend))).Methods(http.MethodPost)
	api.HandleFunc("/schedule", h.withMetrics(
		handleGeneration(h, entity.EndpointSchedule, h.learning.Schedule))).Methods(http.MethodPost)

	api.HandleFunc("/history", h.withMetrics(h.handleHistory)).Methods(http.MethodGet)
	api.HandleFunc("/history/{id}", h.withMetrics(h.handleGetRecord)).Methods(http.MethodGet)
	api.HandleFunc("/dashboard", h.withMetrics(h.handleDashboard)).Methods(http.MethodGet)
	api.HandleFunc("/onboarding/options", h.withMetrics(h.handleOnboardingOptions)).Methods(http.MethodGet)
	api.HandleFunc("/health", h.withMetrics(h.handleHealth)).Methods(http.MethodGet)

	// Prometheus
	r.Handle("/metrics", metrics.Handler())
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]string{"error": err.Error()})
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
}

// handleGeneration is the single pipeline behind every POST: decode, run, write.
// Whatever fails, the caller gets the endpoint's static message and a 500. The
// cause only reaches the log. Strict-mode rejections are the exception and get a 400.
func handleGeneration[Req entity.Request, Res any](
	h *LearningHandler,
	endpoint entity.Endpoint,
	run func(context.Context, Req) (Res, error),
) http.HandlerFunc {
	failure := errors.New(endpoint.FailureMessage())

	return func(w http.ResponseWriter, r *http.Request) {
		var req Req
		if err := decodeBody(r.Body, &req); err != nil {
			h.logger.Error("Error "+endpoint.Action(), "endpoint", endpoint, "err", err)
			metrics.IncError("transport", "decode_body")
			writeError(w, http.StatusInternalServerError, failure)
			return
		}

		res, err := run(r.Context(), req)
		if err != nil {
			if errors.Is(err, validator.ErrMissingFields) {
				h.logger.Info("request rejected", "endpoint", endpoint, "err", err)
				writeError(w, http.StatusBadRequest, errors.Unwrap(err))
				return
			}
			h.logger.Error("Error "+endpoint.Action(), "endpoint", endpoint, "mode", req.Mode(), "err", err)
			writeError(w, http.StatusInternalServerError, failure)
			return
		}

		writeJSON(w, http.StatusOK, res)
	}
}

var (
	errNullBody     = errors.New("request body is null")
	errTrailingData = errors.New("unexpected data after request body")
)

// decodeBody treats an empty body as an empty object, so every field is absent.
// The body must hold exactly one JSON object.
func decodeBody(body io.Reader, v interface{}) error {
	dec := json.NewDecoder(body)

	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	if string(raw) == "null" {
		return errNullBody
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errTrailingData
	}
	return json.Unmarshal(raw, v)
}

// GET /api/history?limit=N
func (h *LearningHandler) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, errors.New("limit must be a non-negative integer"))
			return
		}
		limit = n
	}

	history, err := h.journal.History(r.Context(), limit)
	if err != nil {
		h.logger.Error("list history failed", "err", err)
		writeError(w, http.StatusInternalServerError, errors.New("failed to load history"))
		return
	}
	writeJSON(w, http.StatusOK, history)
}

// GET /api/history/{id}
func (h *LearningHandler) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	rec, err := h.journal.GetRecord(r.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrRecordNotFound) {
			writeError(w, http.StatusNotFound, err)
			return
		}
		h.logger.Error("get record failed", "id", id, "err", err)
		writeError(w, http.StatusInternalServerError, errors.New("failed to load record"))
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// GET /api/dashboard
func (h *LearningHandler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, entity.SampleDashboard())
}

// GET /api/onboarding/options
func (h *LearningHandler) handleOnboardingOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, entity.DefaultOnboardingOptions())
}

// GET /api/health
func (h *LearningHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"ok": true,
		"ts": time.Now().UTC(),
	}
	writeJSON(w, http.StatusOK, status)
}
