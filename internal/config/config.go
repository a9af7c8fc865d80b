// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// Store drivers.
const (
	DriverFile     = "file"
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// Duration decodes "10s", "5m" or a bare number of seconds.
type Duration time.Duration

// SetValue implements cleanenv.Setter.
func (d *Duration) SetValue(data string) error {
	v, err := parseDuration(data)
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Duration returns the value as a time.Duration.
func (d Duration) Duration() time.Duration { return time.Duration(d) }

func parseDuration(s string) (time.Duration, error) {
	s = strings.Trim(strings.TrimSpace(s), `"'`)
	if s == "" {
		return 0, errors.New("empty duration")
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("duration must be like 10s, 5m or a number of seconds: %w", err)
	}
	return d, nil
}

// Config is the full runtime configuration.
type Config struct {
	HTTP     HTTPConfig
	Store    StoreConfig
	Postgres PGConfig
	Redis    RedisConfig
}

// HTTPConfig configures the API server.
type HTTPConfig struct {
	Addr         string   `env:"ADDR" env-default:":8080"`
	ReadTimeout  Duration `env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"10s"`
	IdleTimeout  Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

// StoreConfig selects the persistence backend.
type StoreConfig struct {
	Driver   string `env:"STORE_DRIVER" env-default:"file"`
	Key      string `env:"STORE_KEY" env-default:"weightData"`
	DataFile string `env:"DATA_FILE" env-default:""`
}

// PGConfig configures the postgres driver.
type PGConfig struct {
	URL string `env:"DATABASE_URL" env-default:""`
}

// RedisConfig configures the redis driver. URL, when set, overrides Addr,
// Password and DB.
type RedisConfig struct {
	URL      string `env:"REDIS_URL" env-default:""`
	Addr     string `env:"REDIS_ADDR" env-default:""`
	Password string `env:"REDIS_PASSWORD" env-default:""`
	DB       int    `env:"REDIS_DB" env-default:"0"`
	Prefix   string `env:"REDIS_PREFIX" env-default:"weightlog:"`
}

// Load reads an optional .env file, then the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("read .env: %w", err)
	}
	return FromEnv()
}

// FromEnv decodes and validates the environment.
func FromEnv() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}
	if err := cfg.resolve(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) resolve() error {
	switch c.Store.Driver {
	case DriverMemory:
	case DriverFile:
		if c.Store.DataFile == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("DATA_FILE: %w", err)
			}
			c.Store.DataFile = filepath.Join(home, ".weightlog", "data.json")
		}
	case DriverPostgres:
		if c.Postgres.URL == "" {
			return errors.New("DATABASE_URL is required for the postgres store")
		}
	case DriverRedis:
		if c.Redis.URL != "" {
			opts, err := redis.ParseURL(c.Redis.URL)
			if err != nil {
				return fmt.Errorf("REDIS_URL: %w", err)
			}
			c.Redis.Addr = opts.Addr
			c.Redis.Password = opts.Password
			c.Redis.DB = opts.DB
		}
		if c.Redis.Addr == "" {
			return errors.New("REDIS_ADDR or REDIS_URL is required for the redis store")
		}
	default:
		return fmt.Errorf("STORE_DRIVER: unknown driver %q", c.Store.Driver)
	}
	if c.Store.Key == "" {
		return errors.New("STORE_KEY must not be empty")
	}
	return nil
}
