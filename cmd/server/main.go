package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/config"
	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/database"
	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/logging"
	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/routes"
	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/services"
	"github.com/ahmetcoskunkizilkaya/reportdesk/internal/tenant"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

func main() {
	cfg := config.Load()

	// Structured logging (JSON to stdout)
	stdoutHandler := logging.Setup(cfg.LogLevel)

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Tenant registry
	registry, err := tenant.LoadFromFile(cfg.TenantsConfigPath)
	if err != nil {
		slog.Error("failed to load tenant registry", "path", cfg.TenantsConfigPath, "error", err)
		os.Exit(1)
	}
	slog.Info("tenant registry loaded", "tenants", len(registry.All()))

	tenantWatcher, err := tenant.Watch(cfg.TenantsConfigPath, registry)
	if err != nil {
		slog.Warn("tenant registry hot reload disabled", "error", err)
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(database.DB); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(database.DB)
	slog.SetDefault(slog.New(logging.NewMultiHandler(stdoutHandler, pgLogHandler)))

	// System log retention
	cleanup, err := logging.StartCleanup(database.DB, cfg.LogCleanupSchedule, cfg.LogRetentionDays)
	if err != nil {
		slog.Error("log cleanup schedule invalid", "schedule", cfg.LogCleanupSchedule, "error", err)
		os.Exit(1)
	}

	if cfg.MetricsEnabled {
		metrics.Register()
	}

	// Services
	authService := services.NewAuthService(database.DB, cfg)
	reportService := services.NewReportService(database.DB, cfg)
	commentService := services.NewCommentService(database.DB, cfg)
	projectService := services.NewProjectService(database.DB, cfg)
	userService := services.NewUserService(database.DB, cfg)
	categoryService := services.NewCategoryService(database.DB)
	tagService := services.NewTagService(database.DB)

	// Handlers
	h := routes.Handlers{
		Auth:     handlers.NewAuthHandler(authService, registry),
		Health:   handlers.NewHealthHandler(registry),
		Reports:  handlers.NewReportHandler(reportService, commentService),
		Comments: handlers.NewCommentHandler(reportService, commentService),
		Projects: handlers.NewProjectHandler(projectService),
		Users:    handlers.NewUserHandler(userService),
		Catalog:  handlers.NewCatalogHandler(categoryService, tagService, reportService),
	}

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${locals:requestid}\n",
	}))
	if cfg.MetricsEnabled {
		app.Use(middleware.Metrics())
	}
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})
	app.Use(middleware.TenantMiddleware(registry))

	routes.Setup(app, cfg, database.DB, registry, h)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.AppEnv)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	// Drain in-flight requests first so their error logs still reach the sink.
	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	<-cleanup.Stop().Done()
	if tenantWatcher != nil {
		tenantWatcher.Close()
	}
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	// Close database connections
	if sqlDB, err := database.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error",
			"method", c.Method(),
			"path", c.Path(),
			"request_id", c.Locals("requestid"),
			"tenant_id", tenant.GetTenantID(c),
			"error", err.Error(),
		)
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
