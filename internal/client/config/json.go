package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/cycleshop/internal/flagx"
	"github.com/dmitrijs2005/cycleshop/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields distinguish "absent" from a zero value, so a partial file only
// overrides what it names.
type JsonConfig struct {
	BackendURL        *string         `json:"backend_url"`
	CredentialsDSN    *string         `json:"credentials_dsn"`
	RequestTimeout    *timex.Duration `json:"request_timeout"`
	LogFormat         *string         `json:"log_format"`
	LogLevel          *string         `json:"log_level"`
	RollbackOnFailure *bool           `json:"rollback_on_failure"`
}

// parseJson overlays Config with values loaded from a JSON file named by
// -c/-config or, failing that, the CYCLESHOP_CONFIG environment variable.
// It panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigPath(os.Args[1:], EnvConfig)
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.BackendURL != nil {
		cfg.BackendURL = *jc.BackendURL
	}
	if jc.CredentialsDSN != nil {
		cfg.CredentialsDSN = *jc.CredentialsDSN
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.LogFormat != nil {
		cfg.LogFormat = *jc.LogFormat
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
	if jc.RollbackOnFailure != nil {
		cfg.RollbackOnFailure = *jc.RollbackOnFailure
	}
}
