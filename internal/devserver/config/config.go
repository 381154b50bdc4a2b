// Package config handles configuration for the development backend,
// including defaults, JSON overlay, and command-line flags.
package config

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Config holds runtime settings for the development backend.
//
// Fields:
//   - ListenAddr: bind address of the HTTP API.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Empty means a random
//     key per process, which is fine while all state is in memory anyway.
//   - TokenValidity: lifetime of issued user and admin tokens.
//   - BcryptCost: password hashing cost.
//   - Seed: load the demo catalog at start-up.
//   - LogFormat / LogLevel: see logging.New.
type Config struct {
	ListenAddr    string
	SecretKey     string
	TokenValidity time.Duration
	BcryptCost    int
	Seed          bool
	LogFormat     string
	LogLevel      string
}

// LoadDefaults populates Config with sensible development defaults.
func (c *Config) LoadDefaults() {
	c.ListenAddr = ":5000"
	c.SecretKey = ""
	c.TokenValidity = 24 * time.Hour
	c.BcryptCost = bcrypt.DefaultCost
	c.Seed = true
	c.LogFormat = "json"
	c.LogLevel = "info"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
