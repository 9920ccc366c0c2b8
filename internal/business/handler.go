package business

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/billfold/billfold/internal/platform/httpx"
	"github.com/billfold/billfold/internal/shared"
)

type InfoForm struct {
	BusinessName    string  `json:"business_name" validate:"required,max=200"`
	Address         *string `json:"address,omitempty" validate:"omitempty,max=500"`
	TaxNumber       *string `json:"tax_number,omitempty" validate:"omitempty,max=100"`
	Phone           *string `json:"phone,omitempty" validate:"omitempty,max=50"`
	Email           *string `json:"email,omitempty" validate:"omitempty,email"`
	LogoURL         *string `json:"logo_url,omitempty" validate:"omitempty,max=2000"`
	DefaultCurrency string  `json:"default_currency" validate:"required,len=3,uppercase"`
	TaxRate         float64 `json:"tax_rate" validate:"gte=0,lte=100"`
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
	r.Get("/business", h.Show)
	r.Put("/business", h.Update)
}

// Show returns the profile, provisioning the default row on first access.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	ownerID := shared.OwnerFromContext(r.Context())

	info, err := h.service.GetOrCreate(r.Context(), ownerID)
	if err != nil {
		h.logger.Error("load business info", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "failed to load business info")
		return
	}
	httpx.JSON(w, http.StatusOK, info)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ownerID := shared.OwnerFromContext(r.Context())

	var form InfoForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}
	if err := h.validate.Struct(form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	updated, err := h.service.Update(r.Context(), Info{
		OwnerID:         ownerID,
		BusinessName:    form.BusinessName,
		Address:         form.Address,
		TaxNumber:       form.TaxNumber,
		Phone:           form.Phone,
		Email:           form.Email,
		LogoURL:         form.LogoURL,
		DefaultCurrency: form.DefaultCurrency,
		TaxRate:         form.TaxRate,
	})
	if err != nil {
		h.logger.Error("update business info", slog.Any("error", err))
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}
