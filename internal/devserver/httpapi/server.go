// Package httpapi exposes the shop over HTTP+JSON with the routes the
// storefront client consumes.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/cycleshop/internal/devserver/shop"
	"github.com/dmitrijs2005/cycleshop/internal/logging"
)

const shutdownTimeout = 5 * time.Second

// Server serves the API until its context is cancelled.
type Server struct {
	address       string
	shop          *shop.Shop
	logger        logging.Logger
	jwtSecret     []byte
	tokenValidity time.Duration
}

// NewServer wires a Server. secretKey signs the issued tokens.
func NewServer(address string, l logging.Logger, s *shop.Shop, secretKey string, tokenValidity time.Duration) *Server {
	return &Server{
		address:       address,
		shop:          s,
		logger:        l.With("module", "http_server"),
		jwtSecret:     []byte(secretKey),
		tokenValidity: tokenValidity,
	}
}

// Run listens on the configured address and blocks until ctx is done, then
// shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, listen net.Listener) error {
	srv := &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown failed", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
