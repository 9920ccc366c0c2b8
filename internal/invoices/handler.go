package invoices

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/billfold/billfold/internal/platform/httpx"
	"github.com/billfold/billfold/internal/shared"
)

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

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ownerID := shared.OwnerFromContext(r.Context())

	list, err := h.service.List(r.Context(), ownerID)
	if err != nil {
		h.logger.Error("list invoices", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "failed to load invoices")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"invoices": list})
}

func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	ownerID := shared.OwnerFromContext(r.Context())

	list, err := h.service.Refresh(r.Context(), ownerID)
	if err != nil {
		h.logger.Error("refresh invoices", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "failed to load invoices")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"invoices": list})
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	ownerID := shared.OwnerFromContext(r.Context())
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid invoice id")
		return
	}

	invoice, err := h.service.Get(r.Context(), ownerID, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			httpx.Problem(w, http.StatusNotFound, "Not Found", "invoice not found")
			return
		}
		h.logger.Error("get invoice", slog.Any("error", err), slog.String("id", id.String()))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, invoice)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID := shared.OwnerFromContext(r.Context())

	var form CreateInvoiceForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}
	if err := h.validate.Struct(form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	input, err := inputFromForm(ownerID, form)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	created, err := h.service.Create(r.Context(), input)
	if err != nil {
		h.logger.Error("create invoice", slog.Any("error", err))
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "failed to create invoice")
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ownerID := shared.OwnerFromContext(r.Context())
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid invoice id")
		return
	}

	var form UpdateInvoiceForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}
	if err := h.validate.Struct(form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	patch := UpdateInvoiceInput{Notes: form.Notes, DueDate: form.DueDate}
	if form.Status != nil {
		status := Status(*form.Status)
		patch.Status = &status
	}

	if err := h.service.Update(r.Context(), ownerID, id, patch); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			httpx.Problem(w, http.StatusNotFound, "Not Found", "invoice not found")
			return
		}
		h.logger.Error("update invoice", slog.Any("error", err), slog.String("id", id.String()))
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID := shared.OwnerFromContext(r.Context())
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid invoice id")
		return
	}

	if err := h.service.Delete(r.Context(), ownerID, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			httpx.Problem(w, http.StatusNotFound, "Not Found", "invoice not found")
			return
		}
		h.logger.Error("delete invoice", slog.Any("error", err), slog.String("id", id.String()))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Preview computes per-currency totals for the composition screen without
// persisting anything.
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	var form PreviewForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}
	if err := h.validate.Struct(form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	items, err := itemsFromForms(form.Items)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"totals": h.service.Preview(items)})
}

func inputFromForm(ownerID uuid.UUID, form CreateInvoiceForm) (CreateInvoiceInput, error) {
	items, err := itemsFromForms(form.Items)
	if err != nil {
		return CreateInvoiceInput{}, err
	}
	return CreateInvoiceInput{
		OwnerID:       ownerID,
		CustomerName:  form.CustomerName,
		CustomerEmail: form.CustomerEmail,
		DueDate:       form.DueDate,
		Notes:         form.Notes,
		Items:         items,
	}, nil
}

func itemsFromForms(forms []ItemForm) ([]ItemInput, error) {
	items := make([]ItemInput, 0, len(forms))
	for _, f := range forms {
		item := ItemInput{
			Description:  f.Description,
			Quantity:     f.Quantity,
			UnitPrice:    f.UnitPrice,
			CurrencyCode: f.CurrencyCode,
		}
		if f.ProductID != nil {
			pid, err := uuid.Parse(*f.ProductID)
			if err != nil {
				return nil, errors.New("invalid product id")
			}
			item.ProductID = &pid
		}
		items = append(items, item)
	}
	return items, nil
}
