package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/cycleshop/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string     backend base URL
//	-d string     credential store path, or "memory"
//	-t duration   request timeout, e.g. 5s
//	-l string     log level: debug, info, warn, error
//	-f string     log format: text, json, zap
//	-rollback     revert optimistic cart changes the backend rejects
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-t", "-l", "-f", "-rollback"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.BackendURL, "a", cfg.BackendURL, "backend base URL")
	fs.StringVar(&cfg.CredentialsDSN, "d", cfg.CredentialsDSN, "credential store path")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "request timeout")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogFormat, "f", cfg.LogFormat, "log format")
	fs.BoolVar(&cfg.RollbackOnFailure, "rollback", cfg.RollbackOnFailure, "revert rejected optimistic cart changes")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
