package auth

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/billfold/billfold/internal/platform/httpx"
)

// Handler exposes the session exchange endpoint. The upstream identity
// provider authenticates the owner; this endpoint trades the verified owner
// id for a Billfold session token.
type Handler struct {
	logger   *slog.Logger
	manager  *Manager
	validate *validator.Validate
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, manager *Manager) *Handler {
	return &Handler{
		logger:   logger,
		manager:  manager,
		validate: validator.New(),
	}
}

type createSessionRequest struct {
	OwnerID string `json:"owner_id" validate:"required,uuid4"`
}

type createSessionResponse struct {
	Token string `json:"token"`
}

// MountRoutes registers the auth endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/auth/sessions", h.CreateSession)
}

// CreateSession issues a session token for a verified owner id.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "owner_id must be a UUID")
		return
	}

	ownerID, err := uuid.Parse(req.OwnerID)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "owner_id must be a UUID")
		return
	}

	token, err := h.manager.Create(r.Context(), ownerID)
	if err != nil {
		h.logger.Error("create session", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}

	httpx.JSON(w, http.StatusCreated, createSessionResponse{Token: token})
}
