package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/SscSPs/invoice_ai_app/internal/adapters/database/file"
	"github.com/SscSPs/invoice_ai_app/internal/adapters/database/memory"
	"github.com/SscSPs/invoice_ai_app/internal/adapters/database/pgsql"
	redisrepo "github.com/SscSPs/invoice_ai_app/internal/adapters/database/redis"
	"github.com/SscSPs/invoice_ai_app/internal/adapters/llm/gemini"
	"github.com/SscSPs/invoice_ai_app/internal/adapters/render/pdf"
	portsrepo "github.com/SscSPs/invoice_ai_app/internal/core/ports/repositories"
	"github.com/SscSPs/invoice_ai_app/internal/core/services"
	"github.com/SscSPs/invoice_ai_app/internal/dto"
	"github.com/SscSPs/invoice_ai_app/internal/handlers"
	"github.com/SscSPs/invoice_ai_app/internal/middleware"
	"github.com/SscSPs/invoice_ai_app/internal/platform/config"
	"github.com/SscSPs/invoice_ai_app/internal/platform/metrics"
	"github.com/SscSPs/invoice_ai_app/internal/utils"
	"github.com/SscSPs/invoice_ai_app/pkg/database"
	"github.com/SscSPs/invoice_ai_app/pkg/logger"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	limitermemory "github.com/ulule/limiter/v3/drivers/store/memory"
	limiterredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

// @title Invoice AI Backend API
// @version 1.0
// @description Invoice management with AI assisted descriptions, emails and dashboard insights.

// @host localhost:8080
// @BasePath /api/v1
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(os.Stdout, cfg.LogLevel)
	slog.SetDefault(log)

	if err := run(context.Background(), cfg, log, prometheus.DefaultRegisterer); err != nil {
		log.Error("Server stopped", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// run wires the application and serves until the listener fails. Every
// resource it opens is released before it returns.
func run(ctx context.Context, cfg *config.Config, log *slog.Logger, registerer prometheus.Registerer) error {
	if err := dto.RegisterValidators(); err != nil {
		return fmt.Errorf("failed to register validators: %w", err)
	}

	repos, redisClient, cleanup, err := setupStorage(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize %s storage: %w", cfg.StorageBackend, err)
	}
	defer cleanup()
	log.Info("Storage initialized", slog.String("backend", cfg.StorageBackend), slog.String("slot_key", cfg.StorageKey))

	appMetrics := metrics.New(registerer)

	tracker := utils.InitializePosthogClient(cfg.PostHogAPIKey, cfg.InstallationID, log)
	defer tracker.Close()

	container := services.NewServiceContainer(cfg, repos, services.Collaborators{
		TextGenerator: gemini.NewClient(cfg.GeminiAPIKey),
		Renderer:      pdf.NewRenderer(),
		Tracker:       tracker,
		Metrics:       appMetrics,
	})

	// Startup read; a missing or corrupt slot yields an empty collection
	container.Invoice.Load(middleware.WithLogger(ctx, log))

	insightLimiter, err := newInsightLimiter(cfg.InsightRateLimit, redisClient)
	if err != nil {
		return fmt.Errorf("failed to create insight rate limiter %q: %w", cfg.InsightRateLimit, err)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, cors, metrics, analytics)
	r.Use(middleware.StructuredLoggingMiddleware(log), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSAllowedOrigins
	corsConfig.ExposeHeaders = []string{"Content-Disposition", "X-Request-ID"}
	r.Use(cors.New(corsConfig))

	r.Use(metrics.GinMiddleware(appMetrics), middleware.PosthogMiddleware(tracker))

	if err := r.SetTrustedProxies(nil); err != nil {
		return fmt.Errorf("failed to set trusted proxies: %w", err)
	}

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(prometheusGatherer(registerer), promhttp.HandlerOpts{})))

	handlers.RegisterRoutes(r, cfg, container, middleware.RateLimit(insightLimiter))

	log.Info("Server starting", slog.String("port", cfg.Port))
	return r.Run(":" + cfg.Port)
}

// prometheusGatherer returns the gatherer paired with registerer.
func prometheusGatherer(registerer prometheus.Registerer) prometheus.Gatherer {
	if g, ok := registerer.(prometheus.Gatherer); ok {
		return g
	}
	return prometheus.DefaultGatherer
}

// setupStorage opens the configured slot backend. The returned redis client
// is non-nil only for the redis backend and is shared with the rate limiter.
func setupStorage(ctx context.Context, cfg *config.Config, log *slog.Logger) (portsrepo.RepositoryProvider, *goredis.Client, func(), error) {
	noop := func() {}

	switch cfg.StorageBackend {
	case config.StorageMemory:
		log.Warn("Using in-memory storage. Invoices will be lost on restart.")
		return portsrepo.RepositoryProvider{SlotRepo: memory.NewSlotRepository()}, nil, noop, nil

	case config.StorageFile:
		repo, err := file.NewSlotRepository(cfg.StorageFileDir)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, noop, err
		}
		return portsrepo.RepositoryProvider{SlotRepo: repo}, nil, noop, nil

	case config.StorageRedis:
		client, err := database.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, noop, err
		}
		closeClient := func() {
			if cerr := client.Close(); cerr != nil {
				log.Error("Error closing redis client", slog.String("error", cerr.Error()))
			}
		}
		return portsrepo.RepositoryProvider{SlotRepo: redisrepo.NewSlotRepository(client, "")}, client, closeClient, nil

	case config.StoragePostgres:
		dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, true)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, noop, err
		}
		log.Info("Database connection pool established.")

		log.Info("Running database migrations...")
		if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, log); err != nil {
			database.ClosePgxPool(dbPool)
			return portsrepo.RepositoryProvider{}, nil, noop, err
		}
		return pgsql.NewRepositoryProvider(dbPool), nil, func() { database.ClosePgxPool(dbPool) }, nil

	default:
		return portsrepo.RepositoryProvider{}, nil, noop, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

// newInsightLimiter builds the limiter guarding the AI endpoints. Counters are
// shared through redis when that backend is in use.
func newInsightLimiter(formatted string, redisClient *goredis.Client) (*limiter.Limiter, error) {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, err
	}

	if redisClient == nil {
		return limiter.New(limitermemory.NewStore(), rate), nil
	}

	store, err := limiterredis.NewStoreWithOptions(redisClient, limiter.StoreOptions{Prefix: "invoice_insight_limiter"})
	if err != nil {
		return nil, err
	}
	return limiter.New(store, rate), nil
}
