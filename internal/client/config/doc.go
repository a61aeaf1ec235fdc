// Package config loads runtime configuration for the kpcli client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables, optionally seeded from a .env file (see parseEnv).
//  3. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the knowledge platform API
//	-t int      request timeout (seconds)
//	-d string   path of the local cache database
//	-l string   log level (debug, info, warn, error)
//
// Environment variables
//
//	KP_API_URL    base URL of the API
//	KP_TIMEOUT    request timeout, Go duration syntax ("30s")
//	KP_DB_PATH    path of the local cache database
//	KP_LOG_LEVEL  log level
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so the value can be
// either a string like "30s" or integer nanoseconds:
//
//	{
//	  "api_url": "http://localhost:8000/api",
//	  "request_timeout": "30s",
//	  "db_path": "/home/me/.kpcli/cache.db",
//	  "log_level": "info"
//	}
package config
