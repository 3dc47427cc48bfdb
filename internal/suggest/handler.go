package suggest

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"dotaznik/internal/platform/middleware"
	"dotaznik/pkg/platform/httputil"
)

// Handler exposes the typeahead endpoints consumed by the intake form.
// All routes are public; suggestions carry no sensitive data.
type Handler struct {
	addresses *AddressService
	logger    *slog.Logger
}

func NewHandler(addresses *AddressService, logger *slog.Logger) *Handler {
	return &Handler{addresses: addresses, logger: logger}
}

// Register registers the suggestion routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	sub := chi.NewRouter()
	sub.Use(middleware.Recovery(h.logger))
	sub.Use(middleware.RequestID)
	sub.Use(middleware.Timeout(10 * time.Second))
	sub.Get("/address", h.handleAddress)
	sub.Get("/brands", h.handleBrands)
	sub.Get("/models", h.handleModels)

	r.Mount("/suggest", sub)
}

func (h *Handler) handleAddress(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	results := h.addresses.Suggest(r.Context(), query)
	if results == nil {
		results = []string{}
	}
	httputil.WriteJSON(w, http.StatusOK, results)
}

func (h *Handler) handleBrands(w http.ResponseWriter, r *http.Request) {
	results := Brands(r.URL.Query().Get("q"))
	if results == nil {
		results = []string{}
	}
	httputil.WriteJSON(w, http.StatusOK, results)
}

func (h *Handler) handleModels(w http.ResponseWriter, r *http.Request) {
	results := Models(r.URL.Query().Get("brand"), r.URL.Query().Get("q"))
	if results == nil {
		results = []string{}
	}
	httputil.WriteJSON(w, http.StatusOK, results)
}
