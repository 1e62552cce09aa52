package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"parking-marketplace/internal/data/gormstore"
	"parking-marketplace/internal/data/repository"
	"parking-marketplace/internal/usecase"
	"parking-marketplace/internal/wire"
	"parking-marketplace/pkg/cache"
	"parking-marketplace/pkg/database"
	"parking-marketplace/pkg/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := bindFlags(cmd); err != nil {
				return err
			}
			config, err := utils.LoadConfig(envFile(cmd))
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServer(ctx, config)
		},
	}
}

func runServer(ctx context.Context, config *utils.Config) error {
	logger, err := utils.InitLogger(config.App.Name, config.App.LogPath, config.App.Debug)
	if err != nil {
		logger, _ = zap.NewProduction()
		logger.Warn("Failed to init file logger, using stdout", zap.Error(err))
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
		zap.String("store", config.Database.Driver),
	)

	store, closeStore, err := openStore(ctx, config, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	var rewardCache usecase.RewardCache
	if config.Redis.Addr != "" {
		client, err := cache.NewRedisClient(ctx, config.Redis)
		if err != nil {
			// rewards are still served from the store
			logger.Warn("Redis unavailable, reward cache disabled", zap.Error(err))
		} else {
			defer client.Close()
			rewardCache = cache.NewRewardCache(client, config.Redis.TTL)
			logger.Info("Reward cache enabled", zap.String("addr", config.Redis.Addr))
		}
	}

	app := wire.Wiring(ctx, store, rewardCache, config, logger)
	return APIServer(ctx, app.Router, config.App.Port, logger)
}

// openStore selects the pgx or GORM store from DB_DRIVER.
func openStore(ctx context.Context, config *utils.Config, logger *zap.Logger) (repository.Store, func(), error) {
	switch config.Database.Driver {
	case utils.StoreDriverGorm:
		db, driver, err := database.OpenGorm(config.Database.URL, config.Database.MaxConns, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("open gorm store: %w", err)
		}
		closeDB := func() {
			if sqlDB, err := db.DB(); err == nil {
				sqlDB.Close()
			}
		}
		// PostgreSQL schemas come from the migrate command.
		if driver == database.DriverSQLite {
			if err := gormstore.AutoMigrate(db); err != nil {
				closeDB()
				return nil, nil, fmt.Errorf("migrate sqlite schema: %w", err)
			}
		}
		return gormstore.New(db, logger), closeDB, nil

	default:
		db, err := database.InitDB(ctx, config.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("connect database: %w", err)
		}
		logger.Info("Database connected successfully")
		return repository.NewRepository(db, logger), db.Close, nil
	}
}
