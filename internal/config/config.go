package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/mondai-quiz/mondai/internal/api"
	"github.com/mondai-quiz/mondai/internal/catalog"
)

// Config is the application configuration. Fields left empty in the YAML
// file keep their defaults.
type Config struct {
	API struct {
		URL   string `yaml:"url"`
		Retry struct {
			Attempts   int     `yaml:"attempts"`
			BaseDelay  string  `yaml:"base_delay"`
			Multiplier float64 `yaml:"multiplier"`
		} `yaml:"retry"`
	} `yaml:"api"`
	Sets struct {
		Source string `yaml:"source"`
	} `yaml:"sets"`
	Store struct {
		Path string `yaml:"path"`
	} `yaml:"store"`
	Log struct {
		Level string `yaml:"level"`
		File  string `yaml:"file"`
	} `yaml:"log"`
	Timezone string `yaml:"timezone"`
	Server   struct {
		Addr  string `yaml:"addr"`
		Redis struct {
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			TTL      string `yaml:"ttl"`
		} `yaml:"redis"`
	} `yaml:"server"`
}

// Environment variables read by FromEnv.
const (
	EnvAPIURL        = "MONDAI_API_URL"
	EnvSets          = "MONDAI_SETS"
	EnvDB            = "MONDAI_DB"
	EnvLogLevel      = "MONDAI_LOG_LEVEL"
	EnvLogFile       = "MONDAI_LOG_FILE"
	EnvTimezone      = "MONDAI_TIMEZONE"
	EnvRetryAttempts = "MONDAI_RETRY_ATTEMPTS"
)

// Default returns the built-in configuration.
func Default() Config {
	var cfg Config
	cfg.API.URL = api.DefaultBaseURL
	cfg.API.Retry.Attempts = 3
	cfg.API.Retry.BaseDelay = "1s"
	cfg.API.Retry.Multiplier = 2
	cfg.Sets.Source = catalog.BuiltinLocation
	cfg.Log.Level = "info"
	cfg.Server.Addr = ":8787"
	cfg.Server.Redis.TTL = "720h"
	return cfg
}

// Load reads YAML config from path on top of Default. An empty path tries
// DefaultPath and silently keeps the defaults when that file is absent.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// DefaultPath resolves $XDG_CONFIG_HOME/mondai/config.yaml, falling back to
// ~/.config/mondai/config.yaml.
func DefaultPath() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "mondai", "config.yaml"), nil
}

// FromEnv overlays non-empty environment variables onto cfg. getenv is
// usually os.Getenv.
func (c *Config) FromEnv(getenv func(string) string) error {
	if v := getenv(EnvAPIURL); v != "" {
		c.API.URL = v
	}
	if v := getenv(EnvSets); v != "" {
		c.Sets.Source = v
	}
	if v := getenv(EnvDB); v != "" {
		c.Store.Path = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := getenv(EnvLogFile); v != "" {
		c.Log.File = v
	}
	if v := getenv(EnvTimezone); v != "" {
		c.Timezone = v
	}
	if v := getenv(EnvRetryAttempts); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", EnvRetryAttempts, err)
		}
		c.API.Retry.Attempts = n
	}
	return nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	u, err := url.Parse(c.API.URL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("api.url %q: must be an absolute http(s) URL", c.API.URL)
	}
	if c.API.Retry.Attempts < 1 {
		return fmt.Errorf("api.retry.attempts must be at least 1, got %d", c.API.Retry.Attempts)
	}
	if c.API.Retry.Multiplier < 1 {
		return fmt.Errorf("api.retry.multiplier must be at least 1, got %g", c.API.Retry.Multiplier)
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Timezone != "" {
		if _, err := time.LoadLocation(c.Timezone); err != nil {
			return fmt.Errorf("timezone: %w", err)
		}
	}
	return nil
}

// RetryPolicy builds the submission retry policy.
func (c Config) RetryPolicy() api.RetryPolicy {
	p := api.DefaultRetryPolicy()
	p.MaxAttempts = c.API.Retry.Attempts
	p.BaseDelay = Duration(c.API.Retry.BaseDelay, p.BaseDelay)
	if c.API.Retry.Multiplier > 0 {
		p.Multiplier = c.API.Retry.Multiplier
	}
	return p
}

// RedisTTL is how long the development server keeps results in Redis.
func (c Config) RedisTTL() time.Duration {
	return Duration(c.Server.Redis.TTL, 30*24*time.Hour)
}

// Duration parses a duration string or returns the fallback if empty or
// malformed.
func Duration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
