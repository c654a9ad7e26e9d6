package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/myadmin/internal/flagx"
	"github.com/dmitrijs2005/myadmin/internal/timex"
)

// JSONConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields distinguish "absent" from zero, so a file may set only some keys.
// Durations accept "15s" or integer nanoseconds.
type JSONConfig struct {
	APIBaseURL           *string         `json:"api_base_url"`
	RequestTimeout       *timex.Duration `json:"request_timeout"`
	RequestsPerSecond    *float64        `json:"requests_per_second"`
	DatabasePath         *string         `json:"database_path"`
	RequiredRole         *string         `json:"required_role"`
	UsersCacheSize       *int            `json:"users_cache_size"`
	DashboardConcurrency *int            `json:"dashboard_concurrency"`
	RecentUsersLimit     *int            `json:"recent_users_limit"`
	ExportDir            *string         `json:"export_dir"`
	LogLevel             *string         `json:"log_level"`
	LogFormat            *string         `json:"log_format"`
}

// parseJSON overlays cfg with the file named by -c/-config, if any.
func parseJSON(cfg *Config) error {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return nil
	}
	return loadJSONFile(cfg, path)
}

func loadJSONFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var jc JSONConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	jc.apply(cfg)
	return nil
}

func (jc JSONConfig) apply(cfg *Config) {
	setIf(&cfg.APIBaseURL, jc.APIBaseURL)
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	setIf(&cfg.RequestsPerSecond, jc.RequestsPerSecond)
	setIf(&cfg.DatabasePath, jc.DatabasePath)
	setIf(&cfg.RequiredRole, jc.RequiredRole)
	setIf(&cfg.UsersCacheSize, jc.UsersCacheSize)
	setIf(&cfg.DashboardConcurrency, jc.DashboardConcurrency)
	setIf(&cfg.RecentUsersLimit, jc.RecentUsersLimit)
	setIf(&cfg.ExportDir, jc.ExportDir)
	setIf(&cfg.LogLevel, jc.LogLevel)
	setIf(&cfg.LogFormat, jc.LogFormat)
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
