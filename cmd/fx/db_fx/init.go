package db_fx

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"serenestays/internal/config"
	"serenestays/internal/infra"
	"serenestays/internal/repositories"
)

var Module = fx.Provide(provideStore)

// provideStore opens the storage connection once at start-up; it is closed
// when the application stops.
func provideStore(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (repositories.Store, error) {
	store, err := openStore(cfg, logger)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Info("closing storage", zap.String("driver", cfg.StorageDriver))
			return store.Close(ctx)
		},
	})
	return store, nil
}

func openStore(cfg *config.Config, logger *zap.Logger) (repositories.Store, error) {
	switch cfg.StorageDriver {
	case config.DriverMongo:
		client, err := infra.InitMongo(context.Background(), cfg.MongoURI, logger)
		if err != nil {
			return nil, err
		}
		return repositories.NewMongoStore(client, cfg.MongoDatabase), nil

	case config.DriverPostgres:
		db, err := infra.InitPostgresql(cfg.PostgresURL, logger)
		if err != nil {
			return nil, err
		}
		return repositories.NewPostgresStore(db, func() error {
			return infra.ClosePostgresql(db, logger)
		}), nil

	case config.DriverMemory:
		logger.Warn("using in-memory storage, data is lost on restart")
		return repositories.NewMemoryStore(), nil

	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}
