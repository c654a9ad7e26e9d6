package config

import (
	"context"
	"os"
	"time"

	"github.com/dmitrijs2005/myadmin/internal/common"
	"github.com/sethvargo/go-envconfig"
)

// EnvPrefix prefixes every environment variable the config reads.
const EnvPrefix = "MYADMIN_"

// Config holds runtime settings for the myadmin CLI.
//
// The env tags name the variables (without EnvPrefix). "overwrite" lets the
// environment replace values that defaults or the JSON file already set.
type Config struct {
	APIBaseURL           string        `env:"API_BASE_URL, overwrite"`
	RequestTimeout       time.Duration `env:"REQUEST_TIMEOUT, overwrite"`
	RequestsPerSecond    float64       `env:"REQUESTS_PER_SECOND, overwrite"`
	DatabasePath         string        `env:"DATABASE_PATH, overwrite"`
	RequiredRole         string        `env:"REQUIRED_ROLE, overwrite"`
	UsersCacheSize       int           `env:"USERS_CACHE_SIZE, overwrite"`
	DashboardConcurrency int           `env:"DASHBOARD_CONCURRENCY, overwrite"`
	RecentUsersLimit     int           `env:"RECENT_USERS_LIMIT, overwrite"`
	ExportDir            string        `env:"EXPORT_DIR, overwrite"`
	LogLevel             string        `env:"LOG_LEVEL, overwrite"`
	LogFormat            string        `env:"LOG_FORMAT, overwrite"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8000"
	c.RequestTimeout = 15 * time.Second
	c.RequestsPerSecond = 10
	c.DatabasePath = "myadmin.db"
	c.RequiredRole = common.DefaultRequiredRole
	c.UsersCacheSize = 64
	c.DashboardConcurrency = 6
	c.RecentUsersLimit = 5
	c.ExportDir = "exports"
	c.LogLevel = "info"
	c.LogFormat = "console"
}

// LoadConfig applies defaults, then the JSON file (if any), the MYADMIN_*
// environment and finally command-line flags. Later sources win.
func LoadConfig(ctx context.Context) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJSON(cfg); err != nil {
		return nil, err
	}
	if err := parseEnv(ctx, cfg, envconfig.OsLookuper()); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, os.Args[1:]); err != nil {
		return nil, err
	}
	return cfg, nil
}
