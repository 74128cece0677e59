// Package store holds the client-side state of the marketplace: the session,
// the card catalog and inventory, and the trade offers. Stores call the API
// through the interfaces below, cache results in memory and in persistent
// storage, and translate failures into user-facing messages.
//
// Stores are safe for concurrent use. Their lock is not held across network
// calls, so overlapping calls of the same action run independently and the
// last one to finish wins.
package store

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/donaldgifford/card-market/internal/credential"
	"github.com/donaldgifford/card-market/pkg/logger"
	domain "github.com/donaldgifford/card-market/pkg/types"
)

// ErrNotAuthenticated is returned by actions that need a signed-in user.
var ErrNotAuthenticated = errors.New("user not authenticated")

// Pagination defaults applied to non-positive page or rpp arguments.
const (
	DefaultCatalogPage = 1
	DefaultCatalogRPP  = 12
	DefaultTradesPage  = 1
	DefaultTradesRPP   = 10
)

// Cache lifetimes.
const (
	DefaultCatalogTTL   = 12 * time.Hour
	DefaultInventoryTTL = 5 * time.Minute
)

// SessionAPI is the part of the marketplace API the session store uses.
type SessionAPI interface {
	Register(ctx context.Context, req domain.RegisterRequest) (*domain.RegisterResponse, error)
	Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error)
	Me(ctx context.Context, token string) (*domain.MeResponse, error)
}

// CardsAPI is the part of the marketplace API the cards store uses.
type CardsAPI interface {
	ListCards(ctx context.Context, page, rpp int) (*domain.Page[domain.Card], error)
	ListMyCards(ctx context.Context, token string) ([]domain.Card, error)
	AddMyCards(ctx context.Context, token string, cardIDs []string) error
}

// TradesAPI is the part of the marketplace API the trades store uses.
type TradesAPI interface {
	ListTrades(ctx context.Context, page, rpp int) (*domain.Page[domain.Trade], error)
	CreateTrade(
		ctx context.Context,
		token string,
		req domain.CreateTradeRequest,
	) (*domain.CreateTradeResponse, error)
	DeleteTrade(ctx context.Context, token, tradeID string) error
}

// Auth exposes the signed-in identity to the cards and trades stores.
// *Session implements it.
type Auth interface {
	Token() string
	User() *domain.UserProfile
}

// Event tells subscribers which store changed and which action changed it.
// Subscribers read the new state through the store's State method.
type Event struct {
	Store  string
	Action string
}

// Option configures a store.
type Option func(*options)

type options struct {
	log          *slog.Logger
	now          func() time.Time
	catalogTTL   time.Duration
	inventoryTTL time.Duration
	decoder      credential.Decoder
}

func buildOptions(component string, opts []Option) options {
	o := options{
		now:          time.Now,
		catalogTTL:   DefaultCatalogTTL,
		inventoryTTL: DefaultInventoryTTL,
		decoder:      credential.NewJWTDecoder(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	o.log = logger.Component(o.log, component)
	return o
}

// WithLogger sets the store logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.log = l
	}
}

// WithNowFunc overrides the clock used for cache expiry.
func WithNowFunc(fn func() time.Time) Option {
	return func(o *options) {
		o.now = fn
	}
}

// WithCatalogTTL sets how long persisted catalog pages stay valid.
func WithCatalogTTL(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.catalogTTL = d
		}
	}
}

// WithInventoryTTL sets how long the persisted inventory stays valid.
func WithInventoryTTL(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.inventoryTTL = d
		}
	}
}

// WithCredentialDecoder replaces the identity-provider credential decoder.
func WithCredentialDecoder(d credential.Decoder) Option {
	return func(o *options) {
		o.decoder = d
	}
}

// observers fans events out to subscribers. notify must be called without
// holding the owning store's lock.
type observers struct {
	mu   sync.Mutex
	next int
	fns  map[int]func(Event)
}

func (o *observers) subscribe(fn func(Event)) func() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.fns == nil {
		o.fns = make(map[int]func(Event))
	}
	id := o.next
	o.next++
	o.fns[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			o.mu.Lock()
			delete(o.fns, id)
			o.mu.Unlock()
		})
	}
}

func (o *observers) notify(e Event) {
	o.mu.Lock()
	fns := make([]func(Event), 0, len(o.fns))
	for i := range o.next {
		if fn, ok := o.fns[i]; ok {
			fns = append(fns, fn)
		}
	}
	o.mu.Unlock()

	for _, fn := range fns {
		fn(e)
	}
}

func normalizePage(page, rpp, defPage, defRPP int) (int, int) {
	if page < 1 {
		page = defPage
	}
	if rpp < 1 {
		rpp = defRPP
	}
	return page, rpp
}

// clonePages copies a page cache so callers cannot reach the stored pages.
func clonePages[T any](pages map[string]*domain.Page[T]) map[string]*domain.Page[T] {
	out := make(map[string]*domain.Page[T], len(pages))
	for k, p := range pages {
		out[k] = p.Clone()
	}
	return out
}
