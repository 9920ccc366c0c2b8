package document

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/google/uuid"

	"github.com/billfold/billfold/internal/business"
	"github.com/billfold/billfold/internal/invoices"
	"github.com/billfold/billfold/internal/platform/httpx"
	"github.com/billfold/billfold/internal/shared"
	"github.com/billfold/billfold/internal/theme"
)

// Handler serves rendered invoice documents. PDF conversion goes through
// Gotenberg, so the routes carry their own rate limit.
type Handler struct {
	logger    *slog.Logger
	renderer  *Renderer
	invoices  *invoices.Service
	themes    *theme.Service
	business  *business.Service
	rateLimit func(http.Handler) http.Handler
}

func NewHandler(logger *slog.Logger, renderer *Renderer, inv *invoices.Service, themes *theme.Service, biz *business.Service) *Handler {
	limiter := httprate.Limit(20, time.Minute, httprate.WithKeyFuncs(func(r *http.Request) (string, error) {
		ownerID := shared.OwnerFromContext(r.Context())
		if ownerID != uuid.Nil {
			return "owner:" + ownerID.String(), nil
		}
		return httprate.KeyByIP(r)
	}))
	return &Handler{
		logger:    logger,
		renderer:  renderer,
		invoices:  inv,
		themes:    themes,
		business:  biz,
		rateLimit: limiter,
	}
}

// MountRoutes registers the document endpoints.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.rateLimit)
		r.Get("/invoices/{id}/document", h.Render)
	})
}

// Render returns the invoice document as HTML or, with ?format=pdf, as a
// PDF produced by the report client.
func (h *Handler) Render(w http.ResponseWriter, r *http.Request) {
	ownerID := shared.OwnerFromContext(r.Context())
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid invoice id")
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "html"
	}
	if format != "html" && format != "pdf" {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "format must be html or pdf")
		return
	}

	invoice, err := h.invoices.Get(r.Context(), ownerID, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			httpx.Problem(w, http.StatusNotFound, "Not Found", "invoice not found")
			return
		}
		h.logger.Error("load invoice for document", slog.Any("error", err), slog.String("id", id.String()))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}

	th, err := h.themes.GetOrCreate(r.Context(), ownerID)
	if err != nil {
		h.logger.Error("load template settings", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	info, err := h.business.GetOrCreate(r.Context(), ownerID)
	if err != nil {
		h.logger.Error("load business info", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}

	switch format {
	case "pdf":
		pdf, err := h.renderer.RenderPDF(r.Context(), invoice, th, info)
		if err != nil {
			h.logger.Error("render invoice pdf", slog.Any("error", err), slog.String("number", invoice.Number))
			httpx.Problem(w, http.StatusBadGateway, "Render Failed", "pdf conversion failed")
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", invoice.Number+".pdf"))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(pdf)
	default:
		html, err := h.renderer.RenderHTML(invoice, th, info)
		if err != nil {
			h.logger.Error("render invoice html", slog.Any("error", err), slog.String("number", invoice.Number))
			httpx.Problem(w, http.StatusInternalServerError, "Render Failed", "")
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(html))
	}
}
