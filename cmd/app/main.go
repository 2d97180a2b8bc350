package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"courier-tracker/cmd"
	"courier-tracker/internal/adapters/out/kafka"
	"courier-tracker/internal/adapters/out/postgres/sessionrepo"
	"courier-tracker/internal/core/ports"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: configs.LogLevel}))

	gormDB, err := gorm.Open(gorm_postgres.Open(configs.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	if err = gormDB.AutoMigrate(&sessionrepo.SessionDTO{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	rdb := newRedisClient(configs, logger)
	publisher, closePublisher := newPublisher(configs, logger)
	defer closePublisher()

	app, err := cmd.NewCompositionRoot(configs, gormDB, rdb, publisher, logger)
	if err != nil {
		log.Fatalf("Failed to build application: %v", err)
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}

	e := startWebServer(app, configs.HTTPPort)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logger.Info("Shutting down")
	jobManager.StopAll()
	app.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err = e.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
	if rdb != nil {
		_ = rdb.Close()
	}
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Infof("No .env file loaded: %v", err)
	}
	config, err := cmd.NewConfig(os.Getenv)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	return config
}

// newRedisClient returns nil when no address is configured.
func newRedisClient(configs cmd.Config, logger *slog.Logger) *redis.Client {
	if configs.RedisAddr == "" {
		logger.Info("REDIS_ADDR not set, geocoding results are not cached")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{Addr: configs.RedisAddr})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect redis: %v", err)
	}
	return rdb
}

// newPublisher falls back to a no-op publisher when no brokers are configured.
func newPublisher(configs cmd.Config, logger *slog.Logger) (ports.EventPublisher, func()) {
	if len(configs.KafkaBrokers) == 0 {
		logger.Info("KAFKA_BROKERS not set, domain events are not published")
		return kafka.NopPublisher{}, func() {}
	}

	producer, err := kafka.NewSyncProducer(configs.KafkaBrokers)
	if err != nil {
		log.Fatalf("Failed to create kafka producer: %v", err)
	}
	publisher, err := kafka.NewPublisher(producer, kafka.Topics{
		Orders:    configs.KafkaOrderTopic,
		Locations: configs.KafkaLocationTopic,
	}, logger)
	if err != nil {
		log.Fatalf("Failed to create kafka publisher: %v", err)
	}
	return publisher, func() {
		if closeErr := publisher.Close(); closeErr != nil {
			logger.Error("Kafka publisher close failed", "error", closeErr)
		}
	}
}

func startWebServer(app *cmd.CompositionRoot, port string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	app.CreateServer().Register(e)

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()
	return e
}
