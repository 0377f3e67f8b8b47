package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/bcv_rates/internal/bcv"
	"github.com/SscSPs/bcv_rates/internal/cache"
	"github.com/SscSPs/bcv_rates/internal/core/domain"
	"github.com/SscSPs/bcv_rates/internal/core/services"
	"github.com/SscSPs/bcv_rates/internal/events"
	"github.com/SscSPs/bcv_rates/internal/handlers"
	"github.com/SscSPs/bcv_rates/internal/metrics"
	"github.com/SscSPs/bcv_rates/internal/middleware"
	"github.com/SscSPs/bcv_rates/internal/platform/config"
	"github.com/SscSPs/bcv_rates/internal/repositories/database/pgsql"
	"github.com/SscSPs/bcv_rates/internal/scheduler"
	"github.com/SscSPs/bcv_rates/internal/utils"
	"github.com/SscSPs/bcv_rates/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

const shutdownTimeout = 30 * time.Second

// @title BCV Rates API
// @version 1.0
// @description Official Bolívar exchange rates scraped from the BCV homepage, plus per-user custom rates.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()

	logger.Info("Running database migrations...")
	if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	pipelineMetrics := metrics.NewPipelineMetrics(registry)

	if cfg.BCVAllowInsecureTLS {
		logger.Warn("BCV insecure TLS fallback is enabled; certificate chain errors will be retried without verification",
			slog.String("env", bcv.InsecureTLSEnvVar))
	}
	fetcher := bcv.NewResilientFetcher(bcv.FetcherConfig{
		AllowInsecureTLS: cfg.BCVAllowInsecureTLS,
		Timeout:          cfg.BCVFetchTimeout,
		MaxRedirects:     cfg.BCVMaxRedirects,
	}, logger, bcv.WithInsecureFallbackHook(func(code bcv.TLSErrorCode) {
		pipelineMetrics.RecordInsecureFallback(string(code))
	}))

	deps := services.Dependencies{
		Fetcher:   fetcher,
		Extractor: bcv.NewPatternExtractor(),
		Metrics:   pipelineMetrics,
	}

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient, err = cache.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logger.Error("Failed to connect to redis", slog.String("addr", cfg.RedisAddr), slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer redisClient.Close()
		deps.Cache = cache.NewRedisAdapter(redisClient, cfg.RedisCacheTTL)
		logger.Info("Redis cache enabled", slog.String("addr", cfg.RedisAddr))
	}

	if len(cfg.KafkaBrokers) > 0 {
		publisher := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaRatesTopic)
		defer func() {
			if cerr := publisher.Close(); cerr != nil {
				logger.Error("Error closing kafka publisher", slog.String("error", cerr.Error()))
			}
		}()
		deps.Publisher = publisher
		logger.Info("Kafka publisher enabled", slog.String("topic", cfg.KafkaRatesTopic))
	}

	serviceContainer := services.NewServiceContainer(cfg, pgsql.NewRepositoryProvider(dbPool), deps)

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, cfg.PosthogEndpoint, logger)
	defer posthogClient.Close()

	rateLimiter, err := middleware.NewRateLimiter(cfg.RateLimit, redisClient)
	if err != nil {
		logger.Error("Invalid RATE_LIMIT", slog.String("value", cfg.RateLimit), slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery(), cors.New(corsConfig(cfg)))
	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, rateLimiter,
		promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}), posthogClient)

	sched, err := scheduler.New(serviceContainer.Refresh, cfg.BCVCronSchedule, cfg.BCVCronTimezone, logger)
	if err != nil {
		logger.Error("Failed to create scheduler", slog.String("error", err.Error()))
		os.Exit(1)
	}
	sched.Start()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	if cfg.BCVRefreshOnStartup {
		serviceContainer.Refresh.RunAsync(domain.TriggerStartup)
	}

	<-ctx.Done()
	logger.Info("Shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	sched.Stop(shutdownCtx)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", slog.String("error", err.Error()))
	}
	logger.Info("Shutdown complete")
}

func corsConfig(cfg *config.Config) cors.Config {
	c := cors.DefaultConfig()
	c.AllowHeaders = append(c.AllowHeaders, "Authorization")
	c.ExposeHeaders = []string{"X-RateLimit-Limit", "X-RateLimit-Remaining"}
	c.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions}
	if len(cfg.CORSOrigins) == 0 {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = cfg.CORSOrigins
	}
	return c
}
