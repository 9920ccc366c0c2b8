package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/billfold/billfold/internal/analytics"
	"github.com/billfold/billfold/internal/auth"
	"github.com/billfold/billfold/internal/business"
	"github.com/billfold/billfold/internal/customers"
	"github.com/billfold/billfold/internal/document"
	"github.com/billfold/billfold/internal/invoices"
	"github.com/billfold/billfold/internal/products"
	"github.com/billfold/billfold/internal/theme"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger           *slog.Logger
	Config           *Config
	AuthManager      *auth.Manager
	AuthHandler      *auth.Handler
	CustomerHandler  *customers.Handler
	ProductHandler   *products.Handler
	InvoiceHandler   *invoices.Handler
	BusinessHandler  *business.Handler
	ThemeHandler     *theme.Handler
	DocumentHandler  *document.Handler
	AnalyticsHandler *analytics.Handler
	Pool             *pgxpool.Pool
}

// NewRouter constructs the chi.Router with Billfold defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	params.AuthHandler.MountRoutes(r)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireOwner(params.Logger, params.AuthManager))

		params.CustomerHandler.MountRoutes(r)
		params.ProductHandler.MountRoutes(r)
		params.InvoiceHandler.MountRoutes(r)
		params.BusinessHandler.MountRoutes(r)
		params.ThemeHandler.MountRoutes(r)
		params.DocumentHandler.MountRoutes(r)
		params.AnalyticsHandler.MountRoutes(r)
	})

	return r
}
