package profile

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"dotaznik/internal/platform/middleware"
	"dotaznik/pkg/apperrors"
	"dotaznik/pkg/platform/httputil"
)

// Handler exposes login, the caller's profile and role administration.
type Handler struct {
	logger       *slog.Logger
	service      *Service
	jwtValidator middleware.JWTValidator
}

func NewHandler(service *Service, logger *slog.Logger, jwtValidator middleware.JWTValidator) *Handler {
	return &Handler{
		logger:       logger,
		service:      service,
		jwtValidator: jwtValidator,
	}
}

// Register registers the profile routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	public := chi.NewRouter()
	public.Use(middleware.Recovery(h.logger))
	public.Use(middleware.RequestID)
	public.Use(middleware.Logger(h.logger))
	public.Use(middleware.Timeout(10 * time.Second))
	public.Use(middleware.ContentTypeJSON)
	public.Post("/login", h.handleLogin)

	authed := chi.NewRouter()
	authed.Use(middleware.Recovery(h.logger))
	authed.Use(middleware.RequestID)
	authed.Use(middleware.Logger(h.logger))
	authed.Use(middleware.Timeout(10 * time.Second))
	authed.Use(middleware.ContentTypeJSON)
	authed.Use(middleware.RequireAuth(h.jwtValidator, h.logger))
	authed.Get("/profile", h.handleGetProfile)
	authed.Put("/profile", h.handleSaveProfile)
	authed.Get("/role", h.handleGetRole)
	authed.Get("/is-admin", h.handleIsAdmin)

	admin := chi.NewRouter()
	admin.Use(middleware.Recovery(h.logger))
	admin.Use(middleware.RequestID)
	admin.Use(middleware.Logger(h.logger))
	admin.Use(middleware.Timeout(10 * time.Second))
	admin.Use(middleware.ContentTypeJSON)
	admin.Use(middleware.RequireAdmin(h.jwtValidator, h.logger))
	admin.Post("/", h.handleAssignRole)

	r.Mount("/auth", public)
	r.Mount("/me", authed)
	r.Mount("/admin/roles", admin)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, apperrors.New(apperrors.CodeBadRequest, "invalid request body"))
		return
	}

	token, err := h.service.Login(ctx, req.Username, req.Password)
	if err != nil {
		if apperrors.Is(err, apperrors.CodeUnauthorized) {
			h.logger.WarnContext(ctx, "login rejected",
				"request_id", middleware.GetRequestID(ctx),
				"username", req.Username,
			)
			httputil.WriteError(w, err)
			return
		}
		h.logger.ErrorContext(ctx, "login failed",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, apperrors.New(apperrors.CodeInternal, "login failed"))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{"accessToken": token})
}

func (h *Handler) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	prof, err := h.service.GetProfile(ctx, middleware.GetUserID(ctx))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, prof)
}

func (h *Handler) handleSaveProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var prof UserProfile
	if err := json.NewDecoder(r.Body).Decode(&prof); err != nil {
		httputil.WriteError(w, apperrors.New(apperrors.CodeBadRequest, "invalid request body"))
		return
	}

	saved, err := h.service.SaveProfile(ctx, middleware.GetUserID(ctx), prof)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to save profile",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, apperrors.New(apperrors.CodeInternal, "failed to save profile"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, saved)
}

func (h *Handler) handleGetRole(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	role, err := h.service.RoleOf(ctx, middleware.GetUserID(ctx))
	if err != nil {
		httputil.WriteError(w, apperrors.New(apperrors.CodeInternal, "failed to resolve role"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"role": string(role)})
}

func (h *Handler) handleIsAdmin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	isAdmin, err := h.service.IsAdmin(ctx, middleware.GetUserID(ctx))
	if err != nil {
		httputil.WriteError(w, apperrors.New(apperrors.CodeInternal, "failed to resolve role"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]bool{"isAdmin": isAdmin})
}

type assignRoleRequest struct {
	UserID string `json:"userId"`
	Role   Role   `json:"role"`
}

func (h *Handler) handleAssignRole(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req assignRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, apperrors.New(apperrors.CodeBadRequest, "invalid request body"))
		return
	}

	if err := h.service.AssignRole(ctx, req.UserID, req.Role); err != nil {
		if apperrors.Is(err, apperrors.CodeBadRequest) {
			httputil.WriteError(w, err)
			return
		}
		h.logger.ErrorContext(ctx, "failed to assign role",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, apperrors.New(apperrors.CodeInternal, "failed to assign role"))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
