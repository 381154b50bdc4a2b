package config

import (
	"os"
	"path/filepath"
	"time"
)

// MemoryDSN selects a process-local credential store that forgets tokens on
// exit.
const MemoryDSN = "memory"

// Config holds runtime settings for the storefront CLI.
//
// Fields:
//   - BackendURL: base URL of the shop backend.
//   - CredentialsDSN: SQLite file holding the user and admin tokens, or MemoryDSN.
//   - RequestTimeout: upper bound for a single backend call.
//   - LogFormat / LogLevel: see logging.New.
//   - RollbackOnFailure: revert optimistic cart changes the backend rejects.
type Config struct {
	BackendURL        string
	CredentialsDSN    string
	RequestTimeout    time.Duration
	LogFormat         string
	LogLevel          string
	RollbackOnFailure bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BackendURL = "http://127.0.0.1:5000"
	c.CredentialsDSN = defaultDSN()
	c.RequestTimeout = 10 * time.Second
	c.LogFormat = "text"
	c.LogLevel = "warn"
	c.RollbackOnFailure = false
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

func defaultDSN() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "cycleshop.db"
	}
	return filepath.Join(dir, "cycleshop", "credentials.db")
}
