package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from the environment. A .env file in
// the working directory is loaded first when present; real environment
// variables keep precedence over the file.
//
// Recognized variables:
//
//	KP_API_URL    base URL of the API
//	KP_TIMEOUT    request timeout in Go duration syntax ("30s")
//	KP_DB_PATH    path of the local cache database
//	KP_LOG_LEVEL  log level
//
// Unset variables leave the current value untouched; a malformed KP_TIMEOUT
// is ignored.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("KP_API_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("KP_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
	if v := os.Getenv("KP_DB_PATH"); v != "" {
		cfg.CacheDBPath = v
	}
	if v := os.Getenv("KP_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}
