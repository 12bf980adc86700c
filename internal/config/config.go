package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"metalprices/internal/pricing"
)

const (
	CacheBackendMemory   = "memory"
	CacheBackendRedis    = "redis"
	CacheBackendPostgres = "postgres"
	CacheBackendNone     = "none"
)

type Config struct {
	HTTP      HTTP              `yaml:"http"`
	Logger    Logger            `yaml:"logger"`
	Cache     Cache             `yaml:"cache"`
	Redis     Redis             `yaml:"redis"`
	Database  Database          `yaml:"database"`
	Sources   Sources           `yaml:"sources"`
	Warmup    Warmup            `yaml:"warmup"`
	Constants pricing.Constants `yaml:"constants"`
}

type HTTP struct {
	Addr            string        `env:"HTTP_ADDR" env-default:":8080" yaml:"addr"`
	Path            string        `env-default:"/" yaml:"path"`
	ShutdownTimeout time.Duration `env-default:"10s" yaml:"shutdown_timeout"`
}

type Cache struct {
	Backend string        `env:"CACHE_BACKEND" env-default:"memory" yaml:"backend"`
	Key     string        `env-default:"metal_prices" yaml:"key"`
	TTL     time.Duration `env-default:"5m" yaml:"ttl"`
}

type Redis struct {
	Addr     string `env:"REDIS_ADDR" env-default:"localhost:6379" yaml:"addr"`
	Password string `env:"REDIS_PASSWORD" env-default:"" yaml:"password"`
	DB       int    `env-default:"0" yaml:"db"`
}

type Database struct {
	Host     string `env:"DATABASE_HOST" env-default:"localhost" yaml:"host"`
	Port     int    `env:"DATABASE_PORT" env-default:"5432" yaml:"port"`
	User     string `env:"DATABASE_USER" env-default:"postgres" yaml:"user"`
	Password string `env:"DATABASE_PASSWORD" env-default:"postgres" yaml:"password"`
	Name     string `env:"DATABASE_NAME" env-default:"postgres" yaml:"name"`
	SSLMode  string `env-default:"disable" yaml:"ssl-mode"`
}

func (d *Database) ConnString() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// Sources configures the upstream pages. A zero Timeout leaves the client without a deadline.
type Sources struct {
	Timeout            time.Duration `env-default:"1m" yaml:"timeout"`
	MetalPageURL       string        `env-default:"https://goldsilver.ai/metal-prices/shanghai-silver-price" yaml:"metal_page_url"`
	MetalPageUserAgent string        `env-default:"Mozilla/5.0 (compatible; MetalPrices/1.0)" yaml:"metal_page_user_agent"`
	ForexURL           string        `env-default:"https://api.exchangerate-api.com/v4/latest/USD" yaml:"forex_url"`
	ForexUserAgent     string        `env-default:"Mozilla/5.0 (compatible; MetalPrices/1.0)" yaml:"forex_user_agent"`
	BaseMetalURL       string        `env-default:"https://www.kitco.com/price/base-metals/copper" yaml:"base_metal_url"`
	BaseMetalUserAgent string        `env-default:"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36" yaml:"base_metal_user_agent"`
}

// Warmup configures the optional job refreshing the cache. An empty Schedule disables it.
type Warmup struct {
	Schedule string `env:"WARMUP_SCHEDULE" env-default:"" yaml:"schedule"`
}

type Logger struct {
	Level           string     `env:"LOG_LEVEL" env-default:"info" yaml:"level"`
	ParsedSlogLevel slog.Level `yaml:"-"`
	GORMLevel       string     `env-default:"warn" yaml:"gorm_level"`
	ParsedGORMLevel slog.Level `yaml:"-"`
}

// MustLoad loads config from a file.
func MustLoad(configPath string) *Config {
	cnf, err := Load(configPath)
	if err != nil {
		panic(err)
	}

	return cnf
}

// Load reads the file, applies environment overrides and validates the result.
func Load(configPath string) (*Config, error) {
	cnf := &Config{}

	if err := cleanenv.ReadConfig(configPath, cnf); err != nil {
		return nil, fmt.Errorf("cannot read config: %w", err)
	}

	switch cnf.Cache.Backend {
	case CacheBackendMemory, CacheBackendRedis, CacheBackendPostgres, CacheBackendNone:
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cnf.Cache.Backend)
	}

	cnf.Logger.ParsedGORMLevel = parseLevel(cnf.Logger.GORMLevel)
	cnf.Logger.ParsedSlogLevel = parseLevel(cnf.Logger.Level)

	return cnf, nil
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug", "silent":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
