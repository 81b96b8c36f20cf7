// Package handler exposes the sweep engine over HTTP for operators: trigger
// a run, list run history, and fetch one run's full report.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"privsweep/internal/input"
	"privsweep/internal/platform/middleware"
	"privsweep/internal/report/store"
	"privsweep/internal/sweep/models"
	dErrors "privsweep/pkg/domain-errors"
	"privsweep/pkg/httputil"
)

const defaultListLimit = 20

// Service defines the sweep operation the handler drives.
type Service interface {
	Sweep(ctx context.Context, accounts []models.AccountRecord, dryRun bool) (*models.RunResult, error)
}

// Handler handles sweep-related endpoints.
type Handler struct {
	logger     *slog.Logger
	service    Service
	runs       store.Store
	adminToken string
}

type Option func(*Handler)

// WithAdminToken gates the run endpoints behind a shared bearer token.
func WithAdminToken(token string) Option {
	return func(h *Handler) {
		h.adminToken = token
	}
}

// New creates a new sweep Handler.
func New(service Service, runs store.Store, logger *slog.Logger, opts ...Option) (*Handler, error) {
	if service == nil {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "service is required")
	}
	if runs == nil {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "run store is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handler{logger: logger, service: service, runs: runs}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// Register registers all routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	runRouter := chi.NewRouter()
	runRouter.Use(middleware.Recovery(h.logger))
	runRouter.Use(middleware.RequestID)
	runRouter.Use(middleware.Logger(h.logger))
	if h.adminToken != "" {
		runRouter.Use(middleware.RequireAuth(h.adminToken, h.logger))
	}
	runRouter.Post("/runs", h.handleStartRun)
	runRouter.Get("/runs", h.handleListRuns)
	runRouter.Get("/runs/{runID}", h.handleGetRun)

	r.Mount("/v1", runRouter)
	r.Get("/healthz", h.handleHealth)
	r.Handle("/metrics", promhttp.Handler())
}

type startRunRequest struct {
	Accounts []models.AccountRecord `json:"accounts"`
	DryRun   bool                   `json:"dry_run"`
}

// handleStartRun triggers a sweep over the posted batch. The body is either
// a JSON envelope or a raw identity export (Content-Type: text/csv, with
// dry_run as a query parameter). The run is synchronous; the response is the
// full run result.
func (h *Handler) handleStartRun(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	accounts, dryRun, err := h.decodeBatch(r)
	if err != nil {
		h.logger.WarnContext(ctx, "invalid run request",
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}
	if len(accounts) == 0 {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "batch contains no accounts"))
		return
	}

	result, err := h.service.Sweep(ctx, accounts, dryRun)
	if err != nil {
		h.logger.ErrorContext(ctx, "sweep rejected",
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) decodeBatch(r *http.Request) ([]models.AccountRecord, bool, error) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "text/csv") {
		accounts, err := input.Load(r.Body)
		if err != nil {
			return nil, false, err
		}
		dryRun, _ := strconv.ParseBool(r.URL.Query().Get("dry_run"))
		return accounts, dryRun, nil
	}

	var req startRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, false, dErrors.New(dErrors.CodeBadRequest, "invalid request body")
	}
	return req.Accounts, req.DryRun, nil
}

func (h *Handler) handleListRuns(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	runs, err := h.runs.List(ctx, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "list runs",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to list runs"))
		return
	}

	// Trim per-account detail from the listing; the full report stays one
	// GET away.
	summaries := make([]runListing, 0, len(runs))
	for _, run := range runs {
		summaries = append(summaries, runListing{
			RunID:      run.RunID,
			Success:    run.Success,
			DryRun:     run.DryRun,
			StartedAt:  run.StartedAt,
			FinishedAt: run.FinishedAt,
			Summary:    run.Summary,
		})
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"runs": summaries})
}

type runListing struct {
	RunID      string            `json:"run_id"`
	Success    bool              `json:"success"`
	DryRun     bool              `json:"dry_run"`
	StartedAt  time.Time         `json:"started_at"`
	FinishedAt time.Time         `json:"finished_at"`
	Summary    models.RunSummary `json:"summary"`
}

func (h *Handler) handleGetRun(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	runID := chi.URLParam(r, "runID")

	run, err := h.runs.Get(ctx, runID)
	if err != nil {
		if dErrors.IsNotFound(err) {
			httputil.WriteError(w, err)
			return
		}
		h.logger.ErrorContext(ctx, "get run",
			"request_id", middleware.GetRequestID(ctx),
			"run_id", runID,
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "failed to load run"))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, run)
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
