package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Storage drivers accepted in storage.driver.
const (
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

type Config struct {
	App struct {
		Name     string `yaml:"name" env:"QUIZLINK_APP_NAME"`
		Env      string `yaml:"env" env:"QUIZLINK_ENV"`
		BaseURL  string `yaml:"base_url" env:"QUIZLINK_BASE_URL"`
		LogLevel string `yaml:"log_level" env:"QUIZLINK_LOG_LEVEL"`
	} `yaml:"app"`
	Storage struct {
		Driver   string `yaml:"driver" env:"QUIZLINK_STORAGE_DRIVER"`
		Path     string `yaml:"path" env:"QUIZLINK_STORAGE_PATH"`
		CacheTTL string `yaml:"cache_ttl" env:"QUIZLINK_STORAGE_CACHE_TTL"`
	} `yaml:"storage"`
	Redis struct {
		Addr     string `yaml:"addr" env:"QUIZLINK_REDIS_ADDR"`
		Password string `yaml:"password" env:"QUIZLINK_REDIS_PASSWORD"`
		DB       int    `yaml:"db" env:"QUIZLINK_REDIS_DB"`
		Prefix   string `yaml:"prefix" env:"QUIZLINK_REDIS_PREFIX"`
		TTL      string `yaml:"ttl" env:"QUIZLINK_REDIS_TTL"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url" env:"QUIZLINK_POSTGRES_URL"`
	} `yaml:"postgres"`
	Session struct {
		QuestionTime string `yaml:"question_time" env:"QUIZLINK_QUESTION_TIME"`
		RevealDelay  string `yaml:"reveal_delay" env:"QUIZLINK_REVEAL_DELAY"`
		VisualLock   string `yaml:"visual_lock" env:"QUIZLINK_VISUAL_LOCK"`
	} `yaml:"session"`
	Export struct {
		Dir string `yaml:"dir" env:"QUIZLINK_EXPORT_DIR"`
	} `yaml:"export"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	cfg := Config{}
	cfg.App.Name = "quizlink"
	cfg.App.Env = "development"
	cfg.App.BaseURL = "https://quizlink.local/"
	cfg.App.LogLevel = "info"
	cfg.Storage.Driver = DriverSQLite
	cfg.Storage.Path = defaultStorePath()
	cfg.Redis.Prefix = "quizlink:"
	cfg.Session.QuestionTime = "60s"
	cfg.Session.RevealDelay = "2500ms"
	cfg.Session.VisualLock = "2s"
	cfg.Export.Dir = "."
	return cfg
}

// Load reads YAML config from path on top of the defaults, then applies a .env
// file and QUIZLINK_* environment overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return cfg, err
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse %s: %w", path, err)
			}
		}
	}

	_ = godotenv.Load()
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}

func defaultStorePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "quizlink.db"
	}
	return filepath.Join(dir, "quizlink", "store.db")
}
