package analytics

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/billfold/billfold/internal/platform/httpx"
	"github.com/billfold/billfold/internal/shared"
)

type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers the dashboard endpoint.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/analytics/dashboard", h.Dashboard)
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ownerID := shared.OwnerFromContext(r.Context())

	dash, err := h.service.Dashboard(r.Context(), ownerID)
	if err != nil {
		h.logger.Error("build analytics dashboard", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "failed to build dashboard")
		return
	}
	httpx.JSON(w, http.StatusOK, dash)
}
