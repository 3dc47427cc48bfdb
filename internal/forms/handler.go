package forms

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"dotaznik/internal/audit"
	"dotaznik/internal/domain"
	"dotaznik/internal/export"
	"dotaznik/internal/platform/metrics"
	"dotaznik/internal/platform/middleware"
	"dotaznik/pkg/apperrors"
	"dotaznik/pkg/platform/httputil"
)

// Handler exposes the form endpoints. Submission is public, everything
// else is reserved for the admin dashboard.
type Handler struct {
	logger       *slog.Logger
	service      *Service
	metrics      *metrics.Metrics
	auditor      *audit.Service
	jwtValidator middleware.JWTValidator
	clock        func() time.Time
}

// New creates a new forms Handler.
func New(
	service *Service,
	logger *slog.Logger,
	m *metrics.Metrics,
	auditor *audit.Service,
	jwtValidator middleware.JWTValidator) *Handler {
	return &Handler{
		logger:       logger,
		service:      service,
		metrics:      m,
		auditor:      auditor,
		jwtValidator: jwtValidator,
		clock:        time.Now,
	}
}

// Register registers the form routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	public := chi.NewRouter()
	public.Use(middleware.Recovery(h.logger))
	public.Use(middleware.RequestID)
	public.Use(middleware.Logger(h.logger))
	public.Use(middleware.Timeout(30 * time.Second))
	public.Use(middleware.ContentTypeJSON)
	if h.metrics != nil {
		public.Use(middleware.Latency(h.metrics))
	}
	public.Post("/forms", h.handleCreateForm)

	admin := chi.NewRouter()
	admin.Use(middleware.Recovery(h.logger))
	admin.Use(middleware.RequestID)
	admin.Use(middleware.Logger(h.logger))
	admin.Use(middleware.Timeout(30 * time.Second))
	admin.Use(middleware.ContentTypeJSON)
	if h.metrics != nil {
		admin.Use(middleware.Latency(h.metrics))
	}
	admin.Use(middleware.RequireAdmin(h.jwtValidator, h.logger))
	admin.Get("/", h.handleListForms)
	admin.Get("/new-count", h.handleNewCount)
	admin.Post("/mark-viewed", h.handleMarkViewed)
	admin.Get("/export/{format}", h.handleExport)
	admin.Get("/{id}", h.handleGetForm)
	admin.Put("/{id}", h.handleUpdateForm)
	admin.Delete("/{id}", h.handleDeleteForm)

	r.Mount("/", public)
	r.Mount("/admin/forms", admin)
}

func (h *Handler) handleCreateForm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var form domain.Form
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		h.logger.WarnContext(ctx, "invalid create form request",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, apperrors.New(apperrors.CodeBadRequest, "invalid request body"))
		return
	}

	if err := h.service.Create(ctx, form); err != nil {
		if apperrors.Is(err, apperrors.CodeBadRequest) {
			httputil.WriteError(w, err)
			return
		}
		h.logger.ErrorContext(ctx, "failed to create form",
			"request_id", middleware.GetRequestID(ctx),
			"form_id", form.ID,
			"error", err.Error(),
		)
		httputil.WriteError(w, apperrors.New(apperrors.CodeInternal, "failed to create form"))
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, form)
}

func (h *Handler) handleListForms(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var (
		forms []domain.Form
		err   error
	)
	if status := r.URL.Query().Get("status"); status != "" {
		forms, err = h.service.GetByStatus(ctx, domain.FormStatus(status))
	} else {
		forms, err = h.service.GetAll(ctx)
	}
	if err != nil {
		if apperrors.Is(err, apperrors.CodeBadRequest) {
			httputil.WriteError(w, err)
			return
		}
		h.logger.ErrorContext(ctx, "failed to list forms",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, apperrors.New(apperrors.CodeInternal, "failed to list forms"))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, forms)
}

func (h *Handler) handleGetForm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	form, err := h.service.GetByID(ctx, id)
	if err != nil {
		if apperrors.Is(err, apperrors.CodeNotFound) {
			httputil.WriteError(w, err)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get form",
			"request_id", middleware.GetRequestID(ctx),
			"form_id", id,
			"error", err.Error(),
		)
		httputil.WriteError(w, apperrors.New(apperrors.CodeInternal, "failed to get form"))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, form)
}

func (h *Handler) handleUpdateForm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	var form domain.Form
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		httputil.WriteError(w, apperrors.New(apperrors.CodeBadRequest, "invalid request body"))
		return
	}
	form.ID = id

	updated, err := h.service.Update(ctx, form)
	if err != nil {
		if apperrors.Is(err, apperrors.CodeNotFound) || apperrors.Is(err, apperrors.CodeBadRequest) {
			httputil.WriteError(w, err)
			return
		}
		h.logger.ErrorContext(ctx, "failed to update form",
			"request_id", middleware.GetRequestID(ctx),
			"form_id", id,
			"error", err.Error(),
		)
		httputil.WriteError(w, apperrors.New(apperrors.CodeInternal, "failed to update form"))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) handleDeleteForm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(ctx, id); err != nil {
		if apperrors.Is(err, apperrors.CodeNotFound) {
			httputil.WriteError(w, err)
			return
		}
		h.logger.ErrorContext(ctx, "failed to delete form",
			"request_id", middleware.GetRequestID(ctx),
			"form_id", id,
			"error", err.Error(),
		)
		httputil.WriteError(w, apperrors.New(apperrors.CodeInternal, "failed to delete form"))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleNewCount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	count, err := h.service.NewCount(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to count new forms",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, apperrors.New(apperrors.CodeInternal, "failed to count new forms"))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]int{"count": count})
}

func (h *Handler) handleMarkViewed(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.service.MarkAllViewed(ctx); err != nil {
		h.logger.ErrorContext(ctx, "failed to mark forms viewed",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, apperrors.New(apperrors.CodeInternal, "failed to mark forms viewed"))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	format := chi.URLParam(r, "format")

	forms, err := h.service.GetAll(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to load forms for export",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, apperrors.New(apperrors.CodeInternal, "failed to export forms"))
		return
	}

	var (
		body        []byte
		contentType string
	)
	switch format {
	case "csv":
		body, err = export.CSV(forms)
		contentType = "text/csv; charset=utf-8"
	case "json":
		body, err = export.JSON(forms)
		contentType = "application/json"
	default:
		httputil.WriteError(w, apperrors.New(apperrors.CodeBadRequest, "unknown export format"))
		return
	}
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.ExportsGenerated.WithLabelValues(format).Inc()
	}
	h.auditor.Emit(ctx, audit.Event{
		Action:    audit.ActionFormsExported,
		Actor:     middleware.GetUserID(ctx),
		RequestID: middleware.GetRequestID(ctx),
	})

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", export.FileName(format, h.clock())))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
