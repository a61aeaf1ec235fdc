package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the kpcli client.
//
// Fields:
//   - BaseURL: root of the knowledge platform REST API, including the /api prefix.
//   - RequestTimeout: per-request HTTP timeout.
//   - CacheDBPath: path of the local SQLite database (session + query cache).
//   - LogLevel: minimum level for the structured logger.
type Config struct {
	BaseURL        string
	RequestTimeout time.Duration
	CacheDBPath    string
	LogLevel       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://localhost:8000/api"
	c.RequestTimeout = 30 * time.Second
	c.CacheDBPath = defaultDBPath()
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment, JSON (if present) and command-line flags (if
// present). Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "kpcli.db"
	}
	return filepath.Join(home, ".kpcli", "cache.db")
}
