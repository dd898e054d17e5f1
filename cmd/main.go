package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/mikeodnis/core-service/config"
	"github.com/mikeodnis/core-service/internal/container"
	pginfra "github.com/mikeodnis/core-service/internal/infrastructure/postgres"
	"github.com/mikeodnis/core-service/internal/infrastructure/telemetry"
	"github.com/mikeodnis/core-service/internal/router"
	"github.com/mikeodnis/core-service/pkg/helpers"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	logger := helpers.NewLogger(cfg.AppName, cfg.Env, cfg.LogLevel)
	gin.SetMode(cfg.GinMode)

	ctx := context.Background()

	// Tracing must be installed before the pool so query spans are exported
	shutdownTracing, err := telemetry.Init(ctx, cfg.OtelEndpoint, cfg.OtelServiceName)
	if err != nil {
		logger.WithError(err).Warn("tracing disabled: exporter init failed")
	} else if cfg.TracingEnabled() {
		logger.WithField("endpoint", telemetry.TracesURL(cfg.OtelEndpoint)).Info("tracing enabled")
	}

	// Initialize Postgres pool
	pool, err := pginfra.NewPool(ctx, pginfra.PoolConfig{
		DSN:            cfg.DatabaseURL,
		MaxConns:       cfg.DBMaxConns,
		MinConns:       cfg.DBMinConns,
		MaxConnLife:    cfg.DBMaxConnLife,
		MaxConnIdle:    cfg.DBMaxConnIdle,
		ConnectTimeout: cfg.DBConnectTimeout,
	})
	if err != nil {
		logger.Fatalf("failed to connect to postgres: %v", err)
	}

	if cfg.DBAutoMigrate {
		if err := pginfra.RunMigrations(cfg.DatabaseURL, logger); err != nil {
			logger.Fatalf("migration failed: %v", err)
		}
	}

	// RabbitMQ user events are optional; a broker outage at boot only disables them
	var rabbitPub *helpers.RabbitPublisher
	if cfg.EventsEnabled() {
		rabbitPub, err = helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQExchange)
		if err != nil {
			logger.WithError(err).Warn("user events disabled: rabbitmq unavailable")
			rabbitPub = nil
		}
	}

	if cfg.UsingDefaultJWTSecret() {
		logger.Warn("JWT_SECRET not set, using the development secret")
	}
	jwtManager := helpers.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	c := container.New(cfg, logger, pool, jwtManager, rabbitPub)
	r := router.NewEngine(c)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Infof("server starting on :%s%s", cfg.Port, cfg.APIPrefix)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.WithError(err).Error("server forced to shutdown")
	}
	if err := shutdownTracing(ctxShutdown); err != nil {
		logger.WithError(err).Warn("tracer flush failed")
	}
	rabbitPub.Close()
	pool.Close()
	logger.Info("server exited properly")
}
