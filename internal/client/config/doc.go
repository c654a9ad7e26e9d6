// Package config loads runtime configuration for the myadmin CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Environment variables prefixed with MYADMIN_ (go-envconfig).
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string     base URL of the admin API
//	-d string     local SQLite database path
//	-l string     log level
//	-t duration   per-request timeout
//
// # JSON schema
//
// Every key is optional. Durations are strings like "15s" or integer
// nanoseconds:
//
//	{
//	  "api_base_url": "https://admin.example.com",
//	  "request_timeout": "15s",
//	  "requests_per_second": 10,
//	  "database_path": "myadmin.db",
//	  "required_role": "admin",
//	  "users_cache_size": 64,
//	  "dashboard_concurrency": 6,
//	  "recent_users_limit": 5,
//	  "export_dir": "exports",
//	  "log_level": "info",
//	  "log_format": "console"
//	}
//
// # Environment
//
// MYADMIN_API_BASE_URL, MYADMIN_REQUEST_TIMEOUT, MYADMIN_REQUESTS_PER_SECOND,
// MYADMIN_DATABASE_PATH, MYADMIN_REQUIRED_ROLE, MYADMIN_USERS_CACHE_SIZE,
// MYADMIN_DASHBOARD_CONCURRENCY, MYADMIN_RECENT_USERS_LIMIT,
// MYADMIN_EXPORT_DIR, MYADMIN_LOG_LEVEL, MYADMIN_LOG_FORMAT.
package config
