// Package config содержит логику чтения конфигурации сервера и клиента venueops.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Значения по умолчанию.
const (
	DefaultRunAddress           = "localhost:8080"
	DefaultRoomCount            = 7
	DefaultRateLimit            = "600-M"
	DefaultOverrunCheckInterval = 30 * time.Second
	DefaultCatalogTTL           = 5 * time.Minute
	DefaultClientTimeout        = 10 * time.Second
)

// Config содержит параметры конфигурации сервера venueops.
type Config struct {
	RunAddress           string        `env:"RUN_ADDRESS"`
	DatabaseURI          string        `env:"DATABASE_URI"`
	RedisAddr            string        `env:"REDIS_ADDR"`
	LogLevel             string        `env:"LOG_LEVEL"`
	LogFormat            string        `env:"LOG_FORMAT"`
	RoomCount            int           `env:"ROOM_COUNT"`
	RateLimit            string        `env:"RATE_LIMIT"`
	OverrunCheckInterval time.Duration `env:"OVERRUN_CHECK_INTERVAL"`
	CatalogTTL           time.Duration `env:"CATALOG_TTL"`
}

// ClientConfig содержит параметры клиента venuectl.
type ClientConfig struct {
	APIAddress string        `env:"VENUE_API"`
	TenantID   string        `env:"VENUE_TENANT"`
	Timeout    time.Duration `env:"VENUE_TIMEOUT"`
	LogLevel   string        `env:"LOG_LEVEL"`
	RoomCount  int           `env:"ROOM_COUNT"`
}

// Parse считывает конфигурацию сервера из флагов командной строки и переменных окружения.
// Переменные окружения (в том числе из файла .env) имеют приоритет над флагами.
func Parse() (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	cfg := &Config{}

	flag.StringVar(&cfg.RunAddress, "a", DefaultRunAddress, "address and port for HTTP server")
	flag.StringVar(&cfg.DatabaseURI, "d", "", "database URI")
	flag.StringVar(&cfg.RedisAddr, "c", "", "redis address for catalog cache")
	flag.StringVar(&cfg.LogLevel, "l", "info", "log level")
	flag.StringVar(&cfg.LogFormat, "lf", "json", "log format: json or console")
	flag.IntVar(&cfg.RoomCount, "n", DefaultRoomCount, "number of rooms")
	flag.StringVar(&cfg.RateLimit, "rl", DefaultRateLimit, "rate limit per IP, e.g. 600-M")
	flag.DurationVar(&cfg.OverrunCheckInterval, "o", DefaultOverrunCheckInterval, "room overrun check interval")
	flag.DurationVar(&cfg.CatalogTTL, "ttl", DefaultCatalogTTL, "catalog cache TTL")

	flag.Parse()

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.RunAddress == "" {
		cfg.RunAddress = DefaultRunAddress
	}
	if cfg.RoomCount < 1 {
		return nil, fmt.Errorf("room count must be positive, got %d", cfg.RoomCount)
	}
	if cfg.OverrunCheckInterval <= 0 {
		cfg.OverrunCheckInterval = DefaultOverrunCheckInterval
	}

	return cfg, nil
}

// ParseClient считывает конфигурацию клиента из args и окружения и возвращает оставшиеся аргументы.
func ParseClient(args []string) (*ClientConfig, []string, error) {
	if err := loadDotEnv(); err != nil {
		return nil, nil, err
	}

	cfg := &ClientConfig{}

	set := flag.NewFlagSet("venuectl", flag.ContinueOnError)
	set.StringVar(&cfg.APIAddress, "api", DefaultRunAddress, "venueops server address")
	set.StringVar(&cfg.TenantID, "tenant", "", "tenant id")
	set.DurationVar(&cfg.Timeout, "timeout", DefaultClientTimeout, "request timeout")
	set.StringVar(&cfg.LogLevel, "l", "warn", "log level")
	set.IntVar(&cfg.RoomCount, "n", DefaultRoomCount, "number of rooms")

	if err := set.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("parse flags: %w", err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.TenantID == "" {
		return nil, nil, errors.New("tenant id is required")
	}
	if cfg.RoomCount < 1 {
		return nil, nil, fmt.Errorf("room count must be positive, got %d", cfg.RoomCount)
	}

	return cfg, set.Args(), nil
}

func loadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}
