package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"gecapi/docs"
	"gecapi/internal/config"
	"gecapi/internal/database"
	"gecapi/internal/database/migration"
	"gecapi/internal/directory"
	"gecapi/internal/events"
	handlers "gecapi/internal/http/handler"
	"gecapi/internal/http/middleware"
	"gecapi/internal/lock"
	"gecapi/internal/logging"
	"gecapi/internal/otel"
	"gecapi/internal/repository/postgres"
	"gecapi/internal/service"
	"gecapi/internal/storage"
)

// @title GEC API
// @version 1.0
// @description Courrier registry and routing workflow.
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	logger := logging.Setup(cfg.Location(), cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, cfg, logger)
	stop()
	if err != nil {
		logger.Error("server_failed", "error", err.Error())
		os.Exit(1)
	}
}

// run wires the service and serves until ctx is done. Every resource opened
// here is released before it returns, including on startup failures.
func run(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger) error {
	loc := cfg.Location()

	shutdownTracing, err := otel.Init(ctx, logger)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			logger.Warn("tracing_shutdown_failed", "error", err.Error())
		}
	}()

	db, err := database.NewPostgres(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, logger, cfg.Database.Host); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	objStore, err := storage.NewMinIO(ctx, cfg.MinIO, logger)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}

	// Courrier locks live in Redis when several replicas share the database.
	var locker lock.Locker = lock.NewLocal()
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		locker = lock.NewRedis(rdb, cfg.Redis.LockPrefix)
	}
	logger.Info("locker_configured", "distributed", cfg.Redis.Addr != "")

	bus := events.NewGoChannel(cfg.Events.OutputBuffer, logger)
	defer bus.Close()
	if err := events.RunAuditLog(ctx, bus, cfg.Events.Topic, logger); err != nil {
		return fmt.Errorf("start audit log: %w", err)
	}

	metrics, err := service.NewMetrics(prometheus.DefaultRegisterer)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}
	prom, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	courrierSvc := service.NewCourrierService(service.CourrierDeps{
		Repo:      postgres.NewCourrierPostgres(db),
		Directory: directory.NewPostgres(db),
		Locker:    locker,
		Publisher: events.NewWatermillPublisher(bus, cfg.Events.Topic),
		Metrics:   metrics,
		Logger:    logger,
		Now:       func() time.Time { return time.Now().In(loc) },
		LockTTL:   cfg.Redis.LockTTL,
		LockWait:  cfg.Redis.LockWait,
	})
	docSvc := service.NewDocumentService(objStore, cfg.MinIO.PresignExpiry)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		// Route params and query strings are kept by the service past the handler.
		Immutable: true,
	})

	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(loc))
	app.Use(prom.Handler())
	app.Use(otelfiber.Middleware())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	handlers.RegisterRoutes(app, db, courrierSvc, docSvc)

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	go func() {
		<-ctx.Done()
		logger.Info("server_stopping")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logger.Error("server_shutdown_failed", "error", err.Error())
		}
	}()

	addr := ":" + cfg.Port
	logger.Info("server_starting", "addr", addr, "timezone", loc.String())
	if err := app.Listen(addr); err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return nil
}
