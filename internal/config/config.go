package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Prefix is the environment variable prefix (UCANFIRE_LOG_LEVEL, ...).
const Prefix = "UCANFIRE"

// Config holds process-wide settings for the CLI and servers.
// Command-line flags take precedence over these values.
type Config struct {
	LogLevel     string      `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat    string      `envconfig:"LOG_FORMAT" default:"text"`
	MaxInputSize int         `envconfig:"MAX_INPUT_SIZE" default:"4096"`
	Store        string      `envconfig:"STORE" default:"memory"`
	DataDir      string      `envconfig:"DATA_DIR" default:".ucanfire/sessions"`
	HTTP         HTTPConfig  `envconfig:"HTTP"`
	Redis        RedisConfig `envconfig:"REDIS"`
}

// Session store backends accepted in Config.Store.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
)

// HTTPConfig configures the HTTP adapter.
type HTTPConfig struct {
	Port            string        `envconfig:"PORT" default:"8080"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"5s"`
}

// RedisConfig configures the Redis session store and distributed lock.
type RedisConfig struct {
	Addr     string        `envconfig:"ADDR" default:"localhost:6379"`
	Password string        `envconfig:"PASSWORD"`
	DB       int           `envconfig:"DB" default:"0"`
	Prefix   string        `envconfig:"PREFIX" default:"ucanfire:session:"`
	TTL      time.Duration `envconfig:"TTL" default:"24h"`
}

// Load reads .env files (if present) into the environment and then decodes
// the UCANFIRE_* variables. With no files given, ".env" is tried.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("error processing environment configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values envconfig cannot.
func (c *Config) Validate() error {
	switch c.Store {
	case StoreMemory, StoreFile, StoreRedis:
	default:
		return fmt.Errorf("invalid store %q: want %s, %s or %s", c.Store, StoreMemory, StoreFile, StoreRedis)
	}
	if c.MaxInputSize <= 0 {
		return fmt.Errorf("max input size must be positive, got %d", c.MaxInputSize)
	}
	return nil
}
