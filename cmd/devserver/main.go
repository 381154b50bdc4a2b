package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/cycleshop/internal/buildinfo"
	"github.com/dmitrijs2005/cycleshop/internal/devserver"
	"github.com/dmitrijs2005/cycleshop/internal/devserver/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := devserver.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}
