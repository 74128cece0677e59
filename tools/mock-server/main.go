// Package main runs an in-memory fake of the card marketplace API for local
// development of the cardmarket CLI.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/donaldgifford/card-market/internal/api/handlers"
	"github.com/donaldgifford/card-market/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

type options struct {
	port     int
	cards    int
	secret   string
	tokenTTL time.Duration
	logLevel string
}

func main() {
	var opts options
	flag.IntVar(&opts.port, "port", 8089, "port to listen on")
	flag.IntVar(&opts.cards, "cards", 40, "number of catalog cards to seed")
	flag.StringVar(&opts.secret, "secret", envOr("MOCK_JWT_SECRET", "cardmarket-dev-secret"), "token signing secret")
	flag.DurationVar(&opts.tokenTTL, "token-ttl", handlers.DefaultTokenTTL, "session token lifetime")
	flag.StringVar(&opts.logLevel, "log-level", "debug", "log level (debug, info, warn, error)")
	flag.Parse()

	log := logger.New(opts.logLevel, "text")
	if err := run(opts, log); err != nil {
		log.Error("mock server failed", "error", err)
		os.Exit(1)
	}
}

func newServer(opts options, log *slog.Logger) *echo.Echo {
	market := handlers.NewMarketplace(handlers.SeedCatalog(opts.cards, time.Now()))
	tokens := handlers.NewTokens(opts.secret, opts.tokenTTL)
	return handlers.NewRouter(market, tokens, log)
}

func run(opts options, log *slog.Logger) error {
	e := newServer(opts, log)
	addr := fmt.Sprintf(":%d", opts.port)
	log.Info("starting mock marketplace API", "addr", addr, "cards", opts.cards)

	errCh := make(chan error, 1)
	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("serving: %w", err)
	case <-quit:
	}

	log.Info("shutting down mock server")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	log.Info("mock server stopped")
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
