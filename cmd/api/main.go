package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/sangkips/billdesk-api/internal/application/service"
	"github.com/sangkips/billdesk-api/internal/config"
	"github.com/sangkips/billdesk-api/internal/infrastructure/database"
	"github.com/sangkips/billdesk-api/internal/infrastructure/repository"
	"github.com/sangkips/billdesk-api/internal/presentation/http/handler"
	"github.com/sangkips/billdesk-api/internal/presentation/http/middleware"
	"github.com/sangkips/billdesk-api/internal/presentation/http/routes"
	"github.com/sangkips/billdesk-api/pkg/logger"
	"github.com/sangkips/billdesk-api/pkg/printer"
	"github.com/sangkips/billdesk-api/pkg/utils"
)

const (
	shutdownTimeout   = 10 * time.Second
	janitorInterval   = time.Hour
	readHeaderTimeout = 5 * time.Second
)

func main() {
	// Load configuration
	cfg := config.Load()

	if err := logger.Setup(logger.LogConfig{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: cfg.Log.Output}); err != nil {
		log.Fatal().Err(err).Msg("failed to set up logger")
	}

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database, cfg.App.Debug)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.ExpiryHours)

	// Initialize repositories
	productRepo := repository.NewProductRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	documentRepo := repository.NewDocumentRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)

	// Initialize thermal printer
	thermalPrinter, err := printer.New(printer.Config{
		Type:    cfg.Printer.Type,
		USBPath: cfg.Printer.USBPath,
		Address: cfg.Printer.Address,
	})
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialize printer, printing disabled")
		thermalPrinter = printer.NewNullPrinter()
	}
	defer thermalPrinter.Close()

	// Initialize services
	billingService := service.NewBillingService(cfg.Billing.DefaultTaxMode)
	documentService := service.NewDocumentService(documentRepo, productRepo, customerRepo, cfg.Billing.DefaultTaxMode)
	exportService := service.NewExportService(documentRepo)
	productService := service.NewProductService(productRepo, cfg.Billing)
	customerService := service.NewCustomerService(customerRepo)
	dashboardService := service.NewDashboardService(analyticsRepo)
	printerService := service.NewPrinterService(thermalPrinter, documentRepo, cfg.Store, cfg.Printer.Width)

	handlers := &routes.Handlers{
		Billing:   handler.NewBillingHandler(billingService),
		Document:  handler.NewDocumentHandler(documentService, exportService),
		Product:   handler.NewProductHandler(productService),
		Customer:  handler.NewCustomerHandler(customerService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		Printer:   handler.NewPrinterHandler(printerService),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfigFrom(cfg.RateLimit))
	rateLimiter.StartCleanup(ctx.Done())

	go service.NewIdempotencyJanitor(idempotencyRepo, janitorInterval).Run(ctx)

	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		RateLimiter:     rateLimiter,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info().Str("app", cfg.App.Name).Str("env", cfg.App.Env).Str("port", port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
