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

	"github.com/shenikar/rescue_chain/internal/authz"
	"github.com/shenikar/rescue_chain/internal/config"
	v1 "github.com/shenikar/rescue_chain/internal/handler/http/v1"
	"github.com/shenikar/rescue_chain/internal/media"
	"github.com/shenikar/rescue_chain/internal/notify"
	"github.com/shenikar/rescue_chain/internal/payout"
	"github.com/shenikar/rescue_chain/internal/ratelimit"
	"github.com/shenikar/rescue_chain/internal/repository"
	"github.com/shenikar/rescue_chain/internal/repository/memory"
	"github.com/shenikar/rescue_chain/internal/scheduler"
	"github.com/shenikar/rescue_chain/internal/service"
	"github.com/shenikar/rescue_chain/pkg/logger"
	"github.com/shenikar/rescue_chain/pkg/postgres"
	redisclient "github.com/shenikar/rescue_chain/pkg/redis"
	"github.com/sirupsen/logrus"

	_ "github.com/shenikar/rescue_chain/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Rescue Chain API
// @version 1.0
// @description Crowd-sourced emergency response: incident lifecycle and volunteer incentives.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func runMigrations(cfg *config.Config, log *logrus.Logger) error {
	log.Info("Running database migrations...")

	migrationURL := cfg.DatabaseURL
	if !strings.HasPrefix(migrationURL, "pgx5://") {
		migrationURL = strings.Replace(migrationURL, "postgres://", "pgx5://", 1)
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

// storage - набор хранилищ и фоновых задач выбранного драйвера
type storage struct {
	incidents     service.IncidentRepository
	ledger        service.LedgerRepository
	notifications service.NotificationRepository
	notifier      service.Notifier
	limiter       ratelimit.Limiter
	background    []func(ctx context.Context) error
	close         func()
}

func newMemoryStorage(cfg *config.Config) *storage {
	store := memory.NewStore()
	notifications := memory.NewNotificationStore()
	return &storage{
		incidents:     store,
		ledger:        store,
		notifications: notifications,
		notifier:      notify.NewDirectSink(notifications),
		limiter:       ratelimit.NewMemoryLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow),
		close:         func() {},
	}
}

func newPostgresStorage(ctx context.Context, cfg *config.Config, log *logrus.Logger) (*storage, error) {
	// Запуск миграций
	if err := runMigrations(cfg, log); err != nil {
		return nil, err
	}

	// Подключение к PostgreSQL
	dbpool, err := postgres.NewPostgresDB(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	log.Info("Successfully connected to PostgreSQL")

	// Инициализация Redis клиента
	redisClient, err := redisclient.NewRedisClient(ctx, cfg)
	if err != nil {
		dbpool.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	log.Info("Successfully connected to Redis")

	notifications := repository.NewNotificationRepository(dbpool)
	worker := notify.NewWorker(redisClient, notifications, log)

	return &storage{
		incidents:     repository.NewIncidentRepository(dbpool, redisClient, cfg.CacheTTL),
		ledger:        repository.NewLedgerRepository(dbpool),
		notifications: notifications,
		notifier:      notify.NewQueueSink(redisClient),
		limiter:       ratelimit.NewRedisLimiter(redisClient, cfg.RateLimitRequests, cfg.RateLimitWindow),
		background:    []func(ctx context.Context) error{worker.Run},
		close: func() {
			_ = redisClient.Close()
			dbpool.Close()
		},
	}, nil
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

	var store *storage
	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		log.Warn("Using in-memory storage, data is lost on restart")
		store = newMemoryStorage(cfg)
	default:
		store, err = newPostgresStorage(ctx, cfg, log)
		if err != nil {
			log.Fatalf("Failed to initialize storage: %v", err)
		}
	}
	defer store.close()

	mediaStore, err := media.NewLocalStore(cfg.MediaDir, cfg.MediaBaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize media store: %v", err)
	}

	authorizer, err := authz.New()
	if err != nil {
		log.Fatalf("Failed to initialize authorizer: %v", err)
	}

	// Инициализация сервисов
	incentiveService := service.NewIncentiveService(store.ledger, payout.NewClient(cfg, log), store.notifier, log, cfg)
	incidentService := service.NewIncidentService(store.incidents, incentiveService, store.notifier, mediaStore, log, cfg)
	notificationService := service.NewNotificationService(store.notifications, log)

	reconciler, err := scheduler.New(cfg.ReconcileSchedule, incentiveService, log)
	if err != nil {
		log.Fatalf("Failed to initialize scheduler: %v", err)
	}

	// Инициализация хэндлеров
	handler := v1.NewHandler(incidentService, incentiveService, notificationService, authorizer, store.limiter, log, cfg)

	// Настройка Gin роутера
	router := gin.Default()
	router.MaxMultipartMemory = 8 << 20
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)
	router.Static(cfg.MediaBaseURL, mediaStore.Dir())

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
			return fmt.Errorf("error starting HTTP server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Received shutdown signal, shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		return reconciler.Run(gctx)
	})
	for _, run := range store.background {
		g.Go(func() error {
			return run(gctx)
		})
	}

	if err := g.Wait(); err != nil {
		log.Errorf("Server stopped with error: %v", err)
		return
	}
	log.Info("Server gracefully stopped")
}
