// Package config loads server settings from ROSTER_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Storage backends
const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
	StorageSQLite = "sqlite"
	StorageMongo  = "mongo"
)

// Server holds everything cmd/server needs to start
type Server struct {
	Host string `env:"ROSTER_HOST"`
	Port int    `env:"ROSTER_PORT" envDefault:"8080"`

	Storage       string `env:"ROSTER_STORAGE" envDefault:"memory"`
	RedisURL      string `env:"ROSTER_REDIS_URL"`
	SQLitePath    string `env:"ROSTER_SQLITE_PATH" envDefault:"data/roster.db"`
	MongoURI      string `env:"ROSTER_MONGO_URI"`
	MongoDatabase string `env:"ROSTER_MONGO_DATABASE" envDefault:"roster"`

	// SeedCount players are generated at startup when the roster is empty
	SeedCount int `env:"ROSTER_SEED_COUNT" envDefault:"0"`

	LogLevel  string `env:"ROSTER_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"ROSTER_LOG_FORMAT" envDefault:"json"`
}

// Load parses the environment and validates the result
func Load() (Server, error) {
	var cfg Server
	if err := env.Parse(&cfg); err != nil {
		return Server{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

// Validate checks that the selected backend has what it needs
func (c Server) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("ROSTER_PORT must be between 1 and 65535, got %d", c.Port)
	}
	if c.SeedCount < 0 {
		return errors.New("ROSTER_SEED_COUNT must not be negative")
	}

	switch c.Storage {
	case StorageMemory:
	case StorageRedis:
		if strings.TrimSpace(c.RedisURL) == "" {
			return errors.New("ROSTER_REDIS_URL required when ROSTER_STORAGE=redis")
		}
	case StorageSQLite:
		if strings.TrimSpace(c.SQLitePath) == "" {
			return errors.New("ROSTER_SQLITE_PATH required when ROSTER_STORAGE=sqlite")
		}
	case StorageMongo:
		if strings.TrimSpace(c.MongoURI) == "" {
			return errors.New("ROSTER_MONGO_URI required when ROSTER_STORAGE=mongo")
		}
		if strings.TrimSpace(c.MongoDatabase) == "" {
			return errors.New("ROSTER_MONGO_DATABASE required when ROSTER_STORAGE=mongo")
		}
	default:
		return fmt.Errorf("invalid ROSTER_STORAGE %q: must be memory, redis, sqlite or mongo", c.Storage)
	}

	if _, err := c.level(); err != nil {
		return err
	}
	if c.LogFormat != "json" && c.LogFormat != "text" {
		return fmt.Errorf("invalid ROSTER_LOG_FORMAT %q: must be json or text", c.LogFormat)
	}
	return nil
}

// Addr is the listen address
func (c Server) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// NewLogger builds the process logger writing to w
func (c Server) NewLogger(w io.Writer) (*slog.Logger, error) {
	level, err := c.level()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == "text" {
		return slog.New(slog.NewTextHandler(w, opts)), nil
	}
	return slog.New(slog.NewJSONHandler(w, opts)), nil
}

func (c Server) level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid ROSTER_LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	return level, nil
}
