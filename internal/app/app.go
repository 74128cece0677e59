// Package app wires configuration, storage, the API client, and the stores
// into a single client application.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/donaldgifford/card-market/internal/api/client"
	"github.com/donaldgifford/card-market/internal/config"
	"github.com/donaldgifford/card-market/internal/credential"
	"github.com/donaldgifford/card-market/internal/prefs"
	"github.com/donaldgifford/card-market/internal/storage"
	"github.com/donaldgifford/card-market/internal/store"
	"github.com/donaldgifford/card-market/pkg/logger"
)

// ErrAlreadySignedIn is returned by guest-only actions when a session exists.
var ErrAlreadySignedIn = errors.New("already signed in")

const redisPingTimeout = 5 * time.Second

// App holds the wired client components.
type App struct {
	Config  *config.Config
	Log     *slog.Logger
	Client  *client.Client
	Storage storage.Storage
	Session *store.Session
	Cards   *store.Cards
	Trades  *store.Trades
	Prefs   *prefs.Prefs

	closers     []io.Closer
	unsubscribe func()
}

// Option configures New.
type Option func(*settings)

type settings struct {
	backend    storage.Storage
	httpClient *http.Client
	storeOpts  []store.Option
}

// WithStorage replaces the configured storage backend.
func WithStorage(s storage.Storage) Option {
	return func(o *settings) {
		o.backend = s
	}
}

// WithHTTPClient replaces the HTTP client built from the API timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *settings) {
		o.httpClient = hc
	}
}

// WithStoreOptions appends options passed to every store.
func WithStoreOptions(opts ...store.Option) Option {
	return func(o *settings) {
		o.storeOpts = append(o.storeOpts, opts...)
	}
}

// New builds the application from cfg.
func New(ctx context.Context, cfg *config.Config, log *slog.Logger, opts ...Option) (*App, error) {
	if log == nil {
		log = logger.Discard()
	}
	var s settings
	for _, opt := range opts {
		opt(&s)
	}

	a := &App{Config: cfg, Log: log}

	backend := s.backend
	if backend == nil {
		var err error
		backend, err = a.openStorage(ctx, cfg.Storage)
		if err != nil {
			return nil, err
		}
	}
	a.Storage = backend
	persist := storage.NewPersister(backend, log)

	hc := s.httpClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.API.Timeout}
	}
	a.Client = client.New(cfg.API.BaseURL,
		client.WithHTTPClient(hc),
		client.WithRateLimit(cfg.API.RateLimit.PerSecond, cfg.API.RateLimit.Burst),
		client.WithLogger(log),
	)

	storeOpts := append([]store.Option{
		store.WithLogger(log),
		store.WithCatalogTTL(cfg.Cache.CatalogTTL),
		store.WithInventoryTTL(cfg.Cache.InventoryTTL),
		store.WithCredentialDecoder(credential.NewJWTDecoder(credential.WithClientID(cfg.Google.ClientID))),
	}, s.storeOpts...)

	a.Session = store.NewSession(a.Client, persist, storeOpts...)
	a.Cards = store.NewCards(a.Client, a.Session, persist, storeOpts...)
	a.Trades = store.NewTrades(a.Client, a.Session, storeOpts...)
	a.Prefs = prefs.New(persist)

	// Signing out drops the per-user card state.
	a.unsubscribe = a.Session.Subscribe(func(e store.Event) {
		if e.Action == store.ActionLogout {
			a.Cards.EnsureNewCardsState("")
		}
	})

	return a, nil
}

func (a *App) openStorage(ctx context.Context, cfg config.StorageConfig) (storage.Storage, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return storage.NewMemory(), nil
	case config.BackendRedis:
		r := storage.NewRedis(storage.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
		})
		pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
		defer cancel()
		if err := r.Ping(pingCtx); err != nil {
			_ = r.Close()
			return nil, fmt.Errorf("connecting to redis at %s: %w", cfg.Redis.Addr, err)
		}
		a.closers = append(a.closers, r)
		return r, nil
	default:
		return storage.NewFile(cfg.Path), nil
	}
}

// Start applies the theme preference and restores the stored session.
func (a *App) Start(ctx context.Context) {
	theme := a.Prefs.Theme()
	a.Session.Hydrate(ctx)
	a.Log.Debug("app started",
		"theme", theme,
		"authenticated", a.Session.IsAuthenticated(),
		"api", a.Client.BaseURL(),
	)
}

// RequireAuth restores the session and fails with store.ErrNotAuthenticated
// when nobody is signed in.
func (a *App) RequireAuth(ctx context.Context) error {
	a.Session.Hydrate(ctx)
	if !a.Session.IsAuthenticated() {
		return store.ErrNotAuthenticated
	}
	return nil
}

// RequireGuest restores the session and fails with ErrAlreadySignedIn when
// somebody is signed in.
func (a *App) RequireGuest(ctx context.Context) error {
	a.Session.Hydrate(ctx)
	if a.Session.IsAuthenticated() {
		return ErrAlreadySignedIn
	}
	return nil
}

// Close releases storage connections.
func (a *App) Close() error {
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
	var errs []error
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
