package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"golang.org/x/sync/errgroup"

	"github.com/shenikar/dispatch_console/internal/apiclient"
	"github.com/shenikar/dispatch_console/internal/config"
	"github.com/shenikar/dispatch_console/internal/geocode"
	v1 "github.com/shenikar/dispatch_console/internal/handler/http/v1"
	"github.com/shenikar/dispatch_console/internal/metrics"
	"github.com/shenikar/dispatch_console/internal/models"
	"github.com/shenikar/dispatch_console/internal/repository"
	"github.com/shenikar/dispatch_console/internal/service"
	"github.com/shenikar/dispatch_console/pkg/logger"
	"github.com/shenikar/dispatch_console/pkg/postgres"
	redisclient "github.com/shenikar/dispatch_console/pkg/redis"
	"github.com/sirupsen/logrus"

	_ "github.com/shenikar/dispatch_console/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Dispatch Console API
// @version 1.0
// @description Backend for the emergency dispatch console: role views, incident selection and map sync.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func runMigrations(cfg *config.Config, log *logrus.Logger) error {
	log.Info("Running database migrations...")

	migrationURL := cfg.DatabaseURL
	if !strings.HasPrefix(migrationURL, "pgx5://") {
		migrationURL = strings.Replace(migrationURL, "postgres://", "pgx5://", 1)
		migrationURL = strings.Replace(migrationURL, "postgresql://", "pgx5://", 1)
	}

	m, err := migrate.New(
		"file://migrations",
		migrationURL,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Database migrations applied successfully")
	return nil
}

func main() {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	log := logger.New(cfg.LogLevel)

	// Контекст для graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Журнал действий (опционально)
	var journal service.ActionJournal
	if cfg.DatabaseURL != "" {
		if err := runMigrations(cfg, log); err != nil {
			log.Fatalf("Failed to run database migrations: %v", err)
		}

		dbpool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to PostgreSQL: %v", err)
		}
		defer dbpool.Close()
		log.Info("Successfully connected to PostgreSQL")

		journal = repository.NewActionJournal(dbpool)
	} else {
		log.Warn("DATABASE_URL is not set, action journal disabled")
	}

	// Кеш геокодера в Redis (опционально)
	var geocodeStore geocode.Store
	if cfg.RedisAddr != "" {
		redisClient, err := redisclient.NewRedisClient(ctx, redisclient.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		log.Info("Successfully connected to Redis")

		geocodeStore = geocode.NewRedisCache(redisClient)
	} else {
		log.Warn("REDIS_ADDR is not set, geocode cache disabled")
	}

	// Метрики
	collector, err := metrics.NewCollector()
	if err != nil {
		log.Fatalf("Failed to register metrics: %v", err)
	}

	// Клиенты внешних сервисов
	incidentAPI := apiclient.NewClient(cfg.IncidentAPIURL, cfg.APITimeout, log)
	nominatim := geocode.NewClient(cfg.GeocoderURL, cfg.GeocoderUserAgent, cfg.APITimeout)
	resolver := geocode.NewResolver(nominatim, geocodeStore, cfg.GeocodeCacheTTL, log)

	// Инициализация сервисов
	consoleService := service.NewConsoleService(incidentAPI, resolver, journal, collector, log, service.Options{
		PollInterval: cfg.PollInterval,
		IdleTimeout:  cfg.ViewIdleTimeout,
		MapFallback:  models.Location{Latitude: cfg.MapFallbackLat, Longitude: cfg.MapFallbackLon},
	})

	// Инициализация хэндлеров
	handler := v1.NewHandler(consoleService, log, cfg)

	// Настройка Gin роутера
	router := gin.New()
	router.Use(gin.Recovery(), collector.GinMiddleware())
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	router.GET("/metrics", gin.WrapH(collector.Handler()))
	// Добавление маршрута для Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Infof("HTTP server started on port %s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Received shutdown signal, shutting down server...")

		// представления закрываются первыми, иначе SSE-потоки держат Shutdown
		consoleService.Close()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Errorf("Server stopped with error: %v", err)
		return
	}
	log.Info("Server gracefully stopped")
}
