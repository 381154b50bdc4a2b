package config

import "os"

const (
	EnvBackend = "CYCLESHOP_BACKEND"
	EnvConfig  = "CYCLESHOP_CONFIG"
)

// parseEnv overlays values from the environment.
func parseEnv(cfg *Config) {
	if v, ok := os.LookupEnv(EnvBackend); ok && v != "" {
		cfg.BackendURL = v
	}
}
