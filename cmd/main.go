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
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/riders-app/pinchazo-backend/internal/config"
	v1 "github.com/riders-app/pinchazo-backend/internal/handler/http/v1"
	"github.com/riders-app/pinchazo-backend/internal/janitor"
	"github.com/riders-app/pinchazo-backend/internal/push"
	"github.com/riders-app/pinchazo-backend/internal/repository"
	"github.com/riders-app/pinchazo-backend/internal/service"
	"github.com/riders-app/pinchazo-backend/pkg/logger"
	"github.com/riders-app/pinchazo-backend/pkg/postgres"
	redisclient "github.com/riders-app/pinchazo-backend/pkg/redis"
	"github.com/sirupsen/logrus"

	_ "github.com/riders-app/pinchazo-backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Pinchazo Backend API
// @version 1.0
// @description Roadside flat tire assistance API server.
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

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	log := logger.New(cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := runMigrations(cfg, log); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	dbpool, err := postgres.NewPostgresDB(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer dbpool.Close()
	log.Info("Successfully connected to PostgreSQL")

	redisClient, err := redisclient.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Info("Successfully connected to Redis")

	// Repositories
	alertRepo := repository.NewAlertRepository(dbpool)
	userRepo := repository.NewUserRepository(dbpool)
	tokenRepo := repository.NewDeviceTokenRepository(dbpool)

	// Push pipeline: publisher hands jobs to Redis, the dispatcher
	// drains them and talks to the Expo push API
	pushPublisher := push.NewRedisPublisher(redisClient)
	transport := push.NewExpoTransport(cfg.ExpoPushURL, cfg.PushTimeout)
	dispatcher := push.NewDispatcher(redisClient, tokenRepo, transport, log, cfg)
	dispatcher.Start(ctx)

	// Services
	notifier := service.NewPushNotifier(pushPublisher, tokenRepo, log)
	resolver := service.NewGomeroResolver(userRepo, cfg.GomeroSearchRadiusMeters, cfg.GomeroMaxCandidates)
	alertService := service.NewAlertService(alertRepo, userRepo, resolver, notifier, log, cfg)

	// Janitor sweeps expired pending alerts
	jan := janitor.New(alertService, log, cfg)
	if err := jan.Start(ctx); err != nil {
		log.Fatalf("Failed to start janitor: %v", err)
	}
	defer jan.Stop()

	handler := v1.NewHandler(alertService, notifier, log, cfg)

	router := gin.Default()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

	srv := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.Infof("HTTP server started on port %s", cfg.HTTPPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server gracefully stopped")
}
