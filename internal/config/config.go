package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
)

const (
	StorageBackendFile     = "file"
	StorageBackendPostgres = "postgres"
)

type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Storage   StorageConfig   `koanf:"storage"`
	Database  DatabaseConfig  `koanf:"database"`
	Processor ProcessorConfig `koanf:"processor"`
	Peer      PeerConfig      `koanf:"peer"`
	Logger    LoggerConfig    `koanf:"logger"`
}

type ServerConfig struct {
	Port         string        `koanf:"port" validate:"required"`
	BaseURL      string        `koanf:"base_url"`
	ReadTimeout  time.Duration `koanf:"read_timeout" validate:"required"`
	WriteTimeout time.Duration `koanf:"write_timeout" validate:"required"`
	IdleTimeout  time.Duration `koanf:"idle_timeout" validate:"required"`
}

type StorageConfig struct {
	Backend string `koanf:"backend" validate:"required,oneof=file postgres"`
	DataDir string `koanf:"data_dir"`
}

type DatabaseConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	User            string        `koanf:"user"`
	Password        string        `koanf:"password"`
	Name            string        `koanf:"name"`
	SSLMode         string        `koanf:"ssl_mode"`
	MaxConns        int           `koanf:"max_conns"`
	MinConns        int           `koanf:"min_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
}

type ProcessorConfig struct {
	Timeout time.Duration `koanf:"timeout" validate:"required"`
}

type PeerConfig struct {
	ConnectTimeout time.Duration `koanf:"connect_timeout" validate:"required"`
	RelayTimeout   time.Duration `koanf:"relay_timeout" validate:"required"`
}

type LoggerConfig struct {
	Level string `koanf:"level"`
}

// NewLogger builds the process logger from the configured level.
func (c LoggerConfig) NewLogger() *slog.Logger {
	var level slog.Level
	switch strings.ToLower(c.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// defaults are what a bare `go run ./cmd/gateway` gets: file storage under
// ./data, local-only processing until an apiUrl is configured at runtime.
var defaults = map[string]interface{}{
	"server.port":          "3000",
	"server.base_url":      "",
	"server.read_timeout":  "15s",
	"server.write_timeout": "15s",
	"server.idle_timeout":  "60s",
	"storage.backend":      StorageBackendFile,
	"storage.data_dir":     "data",
	"database.host":        "localhost",
	"database.port":        5432,
	"database.ssl_mode":    "disable",
	"database.max_conns":   10,
	"database.min_conns":   2,
	"database.conn_max_lifetime": "30m",
	"processor.timeout":          "10s",
	"peer.connect_timeout":       "5s",
	"peer.relay_timeout":         "10s",
	"logger.level":               "info",
}

// LoadConfig layers environment variables (GATEWAY_ prefix, `__` as the
// nesting separator) over built-in defaults, then validates the result.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	err := k.Load(env.Provider("GATEWAY_", ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "GATEWAY_")),
			"__",
			".",
		)
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("loading environment variables: %w", err)
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	if mainConfig.Storage.Backend == StorageBackendPostgres {
		if mainConfig.Database.User == "" || mainConfig.Database.Name == "" {
			return nil, fmt.Errorf("postgres backend requires database.user and database.name")
		}
	}

	return mainConfig, nil
}
