// Package config loads runtime configuration for the storefront CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c/-config or CYCLESHOP_CONFIG.
//  3. Environment: CYCLESHOP_BACKEND overrides the backend URL.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "5s" or integer nanoseconds:
//
//	{
//	  "backend_url": "https://shop.example.com",
//	  "credentials_dsn": "/home/ann/.config/cycleshop/credentials.db",
//	  "request_timeout": "5s",
//	  "log_format": "zap",
//	  "log_level": "info",
//	  "rollback_on_failure": true
//	}
package config
