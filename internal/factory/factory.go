package factory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mcoot/playerroster/internal/dependencies/clock"
	"github.com/mcoot/playerroster/internal/dependencies/random"
	"github.com/mcoot/playerroster/internal/filter"
	"github.com/mcoot/playerroster/internal/seed"
	"github.com/mcoot/playerroster/internal/services/player"
	"github.com/mcoot/playerroster/internal/storage"
	"github.com/mcoot/playerroster/internal/storage/memory"
	mongostorage "github.com/mcoot/playerroster/internal/storage/mongo"
	redisstorage "github.com/mcoot/playerroster/internal/storage/redis"
	sqlitestorage "github.com/mcoot/playerroster/internal/storage/sqlite"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
	StorageTypeSQLite = "sqlite"
	StorageTypeMongo  = "mongo"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	PlayerService *player.Service
	Generator     *seed.Generator

	logger *slog.Logger
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// SQLitePath is the database file (required if StorageType is "sqlite")
	SQLitePath string
	// MongoConfig holds MongoDB settings (required if StorageType is "mongo")
	MongoConfig *mongostorage.Config
}

// New creates a new application with all dependencies wired
func New(ctx context.Context, cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	store, err := newStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return newWithDependencies(store, clock.New(), random.New(), logger), nil
}

func newStorage(ctx context.Context, cfg Config) (storage.Storage, error) {
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		return memory.New(), nil
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		return redisstorage.New(*cfg.RedisConfig)
	case StorageTypeSQLite:
		if cfg.SQLitePath == "" {
			return nil, errors.New("SQLitePath required when StorageType is sqlite")
		}
		return sqlitestorage.Open(ctx, cfg.SQLitePath)
	case StorageTypeMongo:
		if cfg.MongoConfig == nil {
			return nil, errors.New("MongoConfig required when StorageType is mongo")
		}
		return mongostorage.New(ctx, *cfg.MongoConfig)
	}
	return nil, fmt.Errorf("invalid StorageType %q: must be memory, redis, sqlite or mongo", storageType)
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, logger *slog.Logger) *App {
	return &App{
		Storage:       store,
		Clock:         clk,
		Random:        rnd,
		PlayerService: player.New(store, logger),
		Generator:     seed.NewGenerator(rnd, clk),
		logger:        logger,
	}
}

// SeedIfEmpty creates n generated players when the roster has none
func (a *App) SeedIfEmpty(ctx context.Context, n int) error {
	if n <= 0 {
		return nil
	}
	existing, err := a.PlayerService.Count(ctx, filter.Criteria{})
	if err != nil {
		return err
	}
	if existing > 0 {
		a.logger.Info("roster already populated, skipping seed", slog.Int("players", existing))
		return nil
	}

	created, err := seed.Populate(ctx, a.PlayerService, a.Generator, n)
	if err != nil {
		return err
	}
	a.logger.Info("roster seeded", slog.Int("players", len(created)))
	return nil
}

// Close releases the storage backend
func (a *App) Close() error {
	return a.Storage.Close()
}
