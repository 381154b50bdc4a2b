package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/cycleshop/internal/flagx"
	"github.com/dmitrijs2005/cycleshop/internal/timex"
)

// JsonConfig is the on-disk shape of Config. Intervals use timex.Duration
// so they can be written as "24h" or as integer nanoseconds.
type JsonConfig struct {
	ListenAddr    string         `json:"listen_addr"`
	SecretKey     string         `json:"secret_key"`
	TokenValidity timex.Duration `json:"token_validity"`
	Seed          *bool          `json:"seed"`
	LogFormat     string         `json:"log_format"`
	LogLevel      string         `json:"log_level"`
}

// parseJson loads configuration values from the JSON file named by -c or
// -config (or CYCLESHOP_DEVSERVER_CONFIG). Empty fields keep their current
// value. It panics when the file cannot be read or parsed.
func parseJson(config *Config) {
	jsonConfigFile := flagx.ConfigPath(os.Args[1:], "CYCLESHOP_DEVSERVER_CONFIG")
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.ListenAddr != "" {
		config.ListenAddr = c.ListenAddr
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.TokenValidity.Duration > 0 {
		config.TokenValidity = c.TokenValidity.Duration
	}
	if c.Seed != nil {
		config.Seed = *c.Seed
	}
	if c.LogFormat != "" {
		config.LogFormat = c.LogFormat
	}
	if c.LogLevel != "" {
		config.LogLevel = c.LogLevel
	}
}
