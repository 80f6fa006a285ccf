package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mcoot/playerroster/internal/api"
	"github.com/mcoot/playerroster/internal/config"
	"github.com/mcoot/playerroster/internal/factory"
	mongostorage "github.com/mcoot/playerroster/internal/storage/mongo"
	redisstorage "github.com/mcoot/playerroster/internal/storage/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := cfg.NewLogger(os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid logging configuration: %v\n", err)
		os.Exit(1)
	}
	slog.SetDefault(logger)

	// Handle graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("server stopped")
}

func run(ctx context.Context, cfg config.Server, logger *slog.Logger) error {
	app, err := factory.New(ctx, factoryConfig(cfg, logger))
	if err != nil {
		return fmt.Errorf("create application: %w", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Warn("close storage", slog.String("error", err.Error()))
		}
	}()

	logger.Info("storage ready", slog.String("backend", cfg.Storage), slog.String("addr", cfg.Addr()))

	if err := app.SeedIfEmpty(ctx, cfg.SeedCount); err != nil {
		return fmt.Errorf("seed roster: %w", err)
	}

	router := api.NewRouter(api.RouterConfig{
		Logger:        logger,
		PlayerService: app.PlayerService,
	})

	serverConfig := api.DefaultServerConfig()
	serverConfig.Host = cfg.Host
	serverConfig.Port = cfg.Port

	return api.NewServer(router, serverConfig, logger).Run(ctx)
}

// factoryConfig maps environment settings onto the selected backend
func factoryConfig(cfg config.Server, logger *slog.Logger) factory.Config {
	fc := factory.Config{
		Logger:      logger,
		StorageType: cfg.Storage,
	}

	switch cfg.Storage {
	case config.StorageRedis:
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		fc.RedisConfig = &redisCfg
	case config.StorageSQLite:
		fc.SQLitePath = cfg.SQLitePath
	case config.StorageMongo:
		mongoCfg := mongostorage.DefaultConfig()
		mongoCfg.URI = cfg.MongoURI
		mongoCfg.Database = cfg.MongoDatabase
		fc.MongoConfig = &mongoCfg
	}

	return fc
}
