package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	goredis "github.com/redis/go-redis/v9"

	"github.com/shenikar/emergency_dispatch_system/internal/config"
	v1 "github.com/shenikar/emergency_dispatch_system/internal/handler/http/v1"
	"github.com/shenikar/emergency_dispatch_system/internal/matcher"
	"github.com/shenikar/emergency_dispatch_system/internal/metrics"
	"github.com/shenikar/emergency_dispatch_system/internal/notifier"
	"github.com/shenikar/emergency_dispatch_system/internal/pending"
	"github.com/shenikar/emergency_dispatch_system/internal/realtime"
	"github.com/shenikar/emergency_dispatch_system/internal/relay"
	"github.com/shenikar/emergency_dispatch_system/internal/repository"
	"github.com/shenikar/emergency_dispatch_system/internal/repository/memory"
	"github.com/shenikar/emergency_dispatch_system/internal/scheduler"
	"github.com/shenikar/emergency_dispatch_system/internal/service"
	"github.com/shenikar/emergency_dispatch_system/internal/webhook"
	"github.com/shenikar/emergency_dispatch_system/pkg/logger"
	natsclient "github.com/shenikar/emergency_dispatch_system/pkg/nats"
	"github.com/shenikar/emergency_dispatch_system/pkg/postgres"
	redisclient "github.com/shenikar/emergency_dispatch_system/pkg/redis"
	"github.com/sirupsen/logrus"

	_ "github.com/shenikar/emergency_dispatch_system/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Emergency Dispatch System API
// @version 1.0
// @description Ambulance and hospital dispatch with realtime room notifications.
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
	}

	m, err := migrate.New(
		"file://migrations",
		migrationURL,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Database migrations applied successfully")
	return nil
}

// repositories - хранилища инцидентов, машин и больниц
type repositories struct {
	incidents  service.IncidentRepository
	ambulances service.AmbulanceRepository
	hospitals  service.HospitalRepository
	close      func()
}

func openStorage(ctx context.Context, cfg *config.Config, log *logrus.Logger) (*repositories, error) {
	if cfg.StorageDriver == config.StorageDriverMemory {
		log.Warn("Using in-memory storage, data will be lost on restart")
		store := memory.NewStore()
		return &repositories{
			incidents:  store.Incidents(),
			ambulances: store.Ambulances(),
			hospitals:  store.Hospitals(),
			close:      func() {},
		}, nil
	}

	// Запуск миграций
	if err := runMigrations(cfg, log); err != nil {
		return nil, err
	}

	// Подключение к PostgreSQL
	dbpool, err := postgres.NewPostgresDB(ctx, cfg.DatabaseURL, postgres.PoolOptions{
		MaxConns:        20,
		MaxConnIdleTime: 5 * time.Minute,
	})
	if err != nil {
		return nil, err
	}
	log.Info("Successfully connected to PostgreSQL")

	return &repositories{
		incidents:  repository.NewIncidentRepository(dbpool),
		ambulances: repository.NewAmbulanceRepository(dbpool),
		hospitals:  repository.NewHospitalRepository(dbpool),
		close:      dbpool.Close,
	}, nil
}

func main() {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	log := logger.New("emergency-dispatch", cfg.LogLevel)

	// Контекст для graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repos, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer repos.close()

	appMetrics := metrics.New()
	hub := realtime.NewHub(log)
	sinks := []notifier.Sink{hub}

	// Redis: кэш инцидентов и очередь вебхуков
	var (
		redisClient   *goredis.Client
		incidentCache service.IncidentCache
	)
	if cfg.RedisAddr != "" {
		redisClient, err = redisclient.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		log.Info("Successfully connected to Redis")

		incidentCache = repository.NewIncidentCache(redisClient, cfg.IncidentCacheTTL)

		// Инициализация и запуск воркера вебхуков
		sinks = append(sinks, webhook.NewSink(webhook.NewRedisWebhookPublisher(redisClient), log, 0))
		webhookWorker := webhook.NewWebhookWorker(redisClient, log, cfg)
		webhookWorker.Start(ctx)
	} else {
		log.Warn("REDIS_ADDR is empty, incident cache and webhooks are disabled")
	}

	// NATS: ретрансляция событий комнат
	if cfg.NATSURL != "" {
		nc, err := natsclient.NewConnection(cfg.NATSURL, "emergency-dispatch", log)
		if err != nil {
			log.Fatalf("Failed to connect to NATS: %v", err)
		}
		sinks = append(sinks, relay.NewNATSSink(nc, cfg.NATSSubjectPrefix))
		log.Infof("Relaying room events to NATS under %s", cfg.NATSSubjectPrefix)
	}

	events := notifier.New(log, appMetrics, sinks...)
	registry := pending.NewRegistry()

	resourceMatcher := matcher.New(repos.ambulances, repos.hospitals, matcher.Config{
		AmbulanceRadiusKm: cfg.AmbulanceRadiusKm,
		HospitalRadiusKm:  cfg.HospitalRadiusKm,
	})

	// Инициализация сервисов
	coordinator := service.NewCoordinator(service.Deps{
		Incidents:  repos.incidents,
		Ambulances: repos.ambulances,
		Hospitals:  repos.hospitals,
		Matcher:    resourceMatcher,
		Events:     events,
		Pending:    registry,
		Cache:      incidentCache,
		Observer:   appMetrics,
		Logger:     log,
	}, service.Config{
		IncludeOffline:  cfg.IncludeOffline,
		AverageSpeedKmh: cfg.AverageSpeedKmh,
	})

	watchdog := scheduler.NewWatchdog(registry, coordinator, log, cfg.WatchdogInterval, cfg.ConfirmationTimeout)
	watchdog.Start(ctx)

	// Инициализация хэндлеров
	handler := v1.NewHandler(coordinator, hub, log, cfg)

	// Настройка Gin роутера
	router := gin.Default()
	router.Use(v1.MetricsMiddleware(appMetrics))
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	router.GET("/metrics", gin.WrapH(appMetrics.Handler()))
	// Добавление маршрута для Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Запуск HTTP-сервера
	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

	srv := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	// Запуск сервера в горутине
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.Infof("HTTP server started on port %s", cfg.HTTPPort)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}

	// Сторож останавливается до закрытия транспортов, чтобы не рассылать в закрытые каналы
	watchdog.Stop()
	events.Close()
	cancel()

	log.Info("Server gracefully stopped")
}
