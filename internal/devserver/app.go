// Package devserver runs the in-memory development backend: it loads the
// demo catalog, serves the HTTP API and stops on SIGINT, SIGTERM or SIGQUIT.
package devserver

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/cycleshop/internal/common"
	"github.com/dmitrijs2005/cycleshop/internal/devserver/config"
	"github.com/dmitrijs2005/cycleshop/internal/devserver/httpapi"
	"github.com/dmitrijs2005/cycleshop/internal/devserver/shop"
	"github.com/dmitrijs2005/cycleshop/internal/logging"
)

const secretKeyBytes = 32

type App struct {
	config *config.Config
	logger logging.Logger
	shop   *shop.Shop
	server *httpapi.Server
}

// NewApp builds the shop and the HTTP server described by c.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, err := logging.New(os.Stdout, c.LogFormat, c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	secret := c.SecretKey
	if secret == "" {
		secret, err = common.MakeRandHexString(secretKeyBytes)
		if err != nil {
			return nil, fmt.Errorf("secret key generation error: %w", err)
		}
		logger.Warn(ctx, "no secret key configured, tokens will not survive a restart")
	}

	s := shop.New(shop.WithBcryptCost(c.BcryptCost))
	if c.Seed {
		if err := shop.Seed(ctx, s); err != nil {
			return nil, fmt.Errorf("seed error: %w", err)
		}
	}

	srv := httpapi.NewServer(c.ListenAddr, logger, s, secret, c.TokenValidity)

	return &App{config: c, logger: logger, shop: s, server: srv}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves until ctx is cancelled or a termination signal arrives.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "seeded", app.config.Seed)

	app.initSignalHandler(cancelFunc)

	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		return err
	}
	return nil
}
