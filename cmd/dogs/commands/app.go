package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Kilat-Pet-Delivery/service-dog-registry/internal/application"
	"github.com/Kilat-Pet-Delivery/service-dog-registry/internal/config"
	"github.com/Kilat-Pet-Delivery/service-dog-registry/internal/database"
	"github.com/Kilat-Pet-Delivery/service-dog-registry/internal/events"
	"github.com/Kilat-Pet-Delivery/service-dog-registry/internal/logger"
	"github.com/Kilat-Pet-Delivery/service-dog-registry/internal/repository"
)

const serviceName = "dog-registry"

// app holds the wired components for one command invocation.
type app struct {
	log       *zap.Logger
	db        *gorm.DB
	publisher events.Publisher
	service   *application.DogService
}

func loadConfigAndLogger() (*config.ServiceConfig, *zap.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	log, err := logger.NewNamed(cfg.AppEnv, level, serviceName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return cfg, log, nil
}

func newApp() (*app, error) {
	cfg, log, err := loadConfigAndLogger()
	if err != nil {
		return nil, err
	}

	db, err := database.Connect(cfg.DBConfig, log)
	if err != nil {
		_ = log.Sync()
		return nil, err
	}

	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.KafkaConfig.Enabled() {
		publisher = events.NewProducer(cfg.KafkaConfig.Brokers, cfg.KafkaConfig.Topic, log)
		log.Debug("change events enabled",
			zap.Strings("brokers", cfg.KafkaConfig.Brokers),
			zap.String("topic", cfg.KafkaConfig.Topic),
		)
	}

	repo := repository.NewGormDogRepository(db, log)
	return &app{
		log:       log,
		db:        db,
		publisher: publisher,
		service:   application.NewDogService(repo, publisher, log),
	}, nil
}

func (a *app) Close() {
	if err := a.publisher.Close(); err != nil {
		a.log.Warn("failed to close event publisher", zap.Error(err))
	}
	if err := database.Close(a.db); err != nil {
		a.log.Warn("failed to close database", zap.Error(err))
	}
	_ = a.log.Sync()
}

// withService wires the app, runs fn, and releases everything afterwards.
func withService(ctx context.Context, fn func(ctx context.Context, svc *application.DogService) error) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(ctx, a.service)
}
