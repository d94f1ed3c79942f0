package main

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BloggingApp/friends-service/internal/broker"
	"github.com/BloggingApp/friends-service/internal/config"
	"github.com/BloggingApp/friends-service/internal/handler"
	"github.com/BloggingApp/friends-service/internal/rabbitmq"
	"github.com/BloggingApp/friends-service/internal/repository"
	"github.com/BloggingApp/friends-service/internal/repository/memory"
	"github.com/BloggingApp/friends-service/internal/repository/postgres"
	"github.com/BloggingApp/friends-service/internal/repository/redisrepo"
	"github.com/BloggingApp/friends-service/internal/service"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := loadEnv(); err != nil {
		log.Fatalf("failed to load environment variables: %s", err.Error())
	}

	cfg, err := config.Load(newViper())
	if err != nil {
		log.Fatalf("failed to initialize config: %s", err.Error())
	}

	logger, err := newLogger(cfg.LogPath)
	if err != nil {
		log.Fatalf("failed to create zap logger: %s", err.Error())
	}
	defer logger.Sync()

	var repo *repository.Repository
	switch cfg.Storage {
	case "postgres":
		db, err := postgres.Connect(ctx, cfg.Postgres)
		if err != nil {
			log.Panicf("db connection error: %s", err.Error())
		}
		defer db.Close()
		if err := db.Ping(ctx); err != nil {
			log.Panicf("couldn't ping postgres db: %s", err.Error())
		}
		log.Println("Successfully connected to PostgreSQL")

		if err := postgres.Migrate(cfg.Postgres); err != nil {
			log.Panicf("failed to run migrations: %s", err.Error())
		}
		repo = postgres.New(db)
	case "memory":
		repo, _ = memory.New()
		log.Println("Using in-memory storage")
	}

	var cache service.UserCache
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr: cfg.Redis.Addr,
			DB:   cfg.Redis.DB,
		})
		defer rdb.Close()
		pong, err := rdb.Ping(ctx).Result()
		if err != nil {
			log.Panicf("failed to ping redis: %s", err.Error())
		}
		log.Printf("Successfully connected to Redis: %s\n", pong)
		cache = redisrepo.NewUserCache(rdb, cfg.Redis.UserTTL)
	}

	publisher, closer, err := newPublisher(cfg.Events, logger)
	if err != nil {
		log.Panicf("failed to create event publisher: %s", err.Error())
	}
	defer closer.Close()

	services := service.New(logger, repo, cache, publisher, cfg.Outbox)
	handlers := handler.New(services, logger, cfg.AccessSecret)

	if err := services.StartJobs(); err != nil {
		log.Panicf("failed to start outbox jobs: %s", err.Error())
	}

	srv := &http.Server{
		Addr:    cfg.Port,
		Handler: handlers.SetupRoutes(),
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Sugar().Fatalf("failed to serve http: %s", err.Error())
		}
	}()

	log.Printf("Friends service started on %s\n", cfg.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	log.Println("Friends service shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("failed to shut down http server: %s", err.Error())
	}
	if err := services.StopJobs(); err != nil {
		logger.Sugar().Errorf("failed to stop outbox jobs: %s", err.Error())
	}
}

func newPublisher(cfg config.EventsConfig, logger *zap.Logger) (service.EventPublisher, io.Closer, error) {
	switch cfg.Driver {
	case "rabbitmq":
		mq, err := rabbitmq.New(cfg.RabbitMQURL, cfg.Queue)
		if err != nil {
			return nil, nil, err
		}
		return mq, mq, nil
	case "kafka":
		p := broker.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		return p, p, nil
	}
	return service.NewLogPublisher(logger), noopCloser{}, nil
}

type noopCloser struct{}

func (noopCloser) Close() error { return nil }

// loadEnv loads .env when it exists.
func loadEnv() error {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AddConfigPath(".")
	v.SetConfigType("yaml")
	v.SetConfigName("app")
	return v
}

func newLogger(path string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{
		path,
	}
	return cfg.Build()
}
