package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/cycleshop/internal/buildinfo"
	"github.com/dmitrijs2005/cycleshop/internal/client/app"
	"github.com/dmitrijs2005/cycleshop/internal/client/cli"
	"github.com/dmitrijs2005/cycleshop/internal/client/config"
	"github.com/dmitrijs2005/cycleshop/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	logger, err := logging.New(os.Stderr, cfg.LogFormat, cfg.LogLevel)
	if err != nil {
		log.Fatalf("%v", err)
	}

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer a.Close()

	if err := a.Start(ctx); err != nil {
		logger.Warn(ctx, "could not restore sessions", "error", err)
	}

	cli.NewShell(a, os.Stdin, os.Stdout).Run(ctx)
}
