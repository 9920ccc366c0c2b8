package theme

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/billfold/billfold/internal/platform/httpx"
	"github.com/billfold/billfold/internal/shared"
)

type ThemeForm struct {
	PrimaryColor   string `json:"primary_color" validate:"required,hexcolor"`
	SecondaryColor string `json:"secondary_color" validate:"required,hexcolor"`
	AccentColor    string `json:"accent_color" validate:"required,hexcolor"`
	FontFamily     string `json:"font_family" validate:"required,max=100"`
	Layout         string `json:"layout" validate:"required,oneof=compact standard detailed"`
	LogoPosition   string `json:"logo_position" validate:"required,oneof=left right center"`
}

type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		validate: validator.New(),
	}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/template", h.Show)
	r.Put("/template", h.Update)
}

// Show returns the theme, provisioning the default row on first access.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	ownerID := shared.OwnerFromContext(r.Context())

	t, err := h.service.GetOrCreate(r.Context(), ownerID)
	if err != nil {
		h.logger.Error("load template settings", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "failed to load template settings")
		return
	}
	httpx.JSON(w, http.StatusOK, t)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ownerID := shared.OwnerFromContext(r.Context())

	var form ThemeForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}
	if err := h.validate.Struct(form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	updated, err := h.service.Update(r.Context(), Theme{
		OwnerID:        ownerID,
		PrimaryColor:   form.PrimaryColor,
		SecondaryColor: form.SecondaryColor,
		AccentColor:    form.AccentColor,
		FontFamily:     form.FontFamily,
		Layout:         Layout(form.Layout),
		LogoPosition:   LogoPosition(form.LogoPosition),
	})
	if err != nil {
		h.logger.Error("update template settings", slog.Any("error", err))
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}
