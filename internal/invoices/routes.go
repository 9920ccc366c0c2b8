package invoices

import (
	"github.com/go-chi/chi/v5"
)

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/invoices", h.List)
	r.Post("/invoices/refresh", h.Refresh)
	r.Post("/invoices/preview", h.Preview)
	r.Post("/invoices", h.Create)
	r.Get("/invoices/{id}", h.Show)
	r.Patch("/invoices/{id}", h.Update)
	r.Delete("/invoices/{id}", h.Delete)
}
