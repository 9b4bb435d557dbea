// Package config loads runtime configuration for the campaignkeeper CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment variables prefixed CK_, after loading ./.env if present.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string     base URL of the campaign API
//	-d string     SQLite database for the persisted session
//	-t duration   per-request timeout
//	-l string     log level
//
// Environment
//
//	CK_SERVER_URL, CK_CREDENTIALS_DSN, CK_REQUEST_TIMEOUT, CK_LOG_LEVEL,
//	CK_LOG_FORMAT
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so values can be
// either strings like "30s" or integer nanoseconds:
//
//	{
//	  "server_url": "http://localhost:8000",
//	  "credentials_dsn": "campaignkeeper.db",
//	  "request_timeout": "30s",
//	  "log_level": "info",
//	  "log_format": "text"
//	}
package config
