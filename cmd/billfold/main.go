package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/billfold/billfold/internal/analytics"
	"github.com/billfold/billfold/internal/app"
	"github.com/billfold/billfold/internal/auth"
	"github.com/billfold/billfold/internal/business"
	"github.com/billfold/billfold/internal/customers"
	"github.com/billfold/billfold/internal/document"
	"github.com/billfold/billfold/internal/invoices"
	"github.com/billfold/billfold/internal/platform/cache"
	"github.com/billfold/billfold/internal/platform/db"
	"github.com/billfold/billfold/internal/products"
	"github.com/billfold/billfold/internal/theme"
	"github.com/billfold/billfold/report"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	authManager := auth.NewManager(redisClient, cfg.SessionTTL)
	authHandler := auth.NewHandler(logger, authManager)

	customerService := customers.NewService(customers.NewRepository(pool))
	productService := products.NewService(products.NewRepository(pool))
	invoiceService := invoices.NewService(invoices.NewRepository(pool))
	businessService := business.NewService(business.NewRepository(pool))
	themeService := theme.NewService(theme.NewRepository(pool))

	analyticsCache := analytics.NewCache(redisClient, 5*time.Minute)
	analyticsService := analytics.NewService(analytics.NewRepository(pool), analyticsCache)

	pdfClient := report.NewClient(cfg.GotenbergURL)
	if err := pdfClient.Ping(ctx); err != nil {
		logger.Warn("gotenberg unreachable, pdf rendering degraded", slog.Any("error", err))
	}
	renderer, err := document.NewRenderer(pdfClient)
	if err != nil {
		logger.Error("parse document templates", slog.Any("error", err))
		os.Exit(1)
	}

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		AuthManager:      authManager,
		AuthHandler:      authHandler,
		CustomerHandler:  customers.NewHandler(logger, customerService),
		ProductHandler:   products.NewHandler(logger, productService),
		InvoiceHandler:   invoices.NewHandler(logger, invoiceService),
		BusinessHandler:  business.NewHandler(logger, businessService),
		ThemeHandler:     theme.NewHandler(logger, themeService),
		DocumentHandler:  document.NewHandler(logger, renderer, invoiceService, themeService, businessService),
		AnalyticsHandler: analytics.NewHandler(logger, analyticsService),
		Pool:             pool,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", slog.Any("error", err))
	}
}
