// Package refresh keeps the client caches warm by refetching catalog pages,
// the first trade page, and the signed-in user's inventory on a schedule.
package refresh

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/donaldgifford/card-market/internal/metrics"
	"github.com/donaldgifford/card-market/internal/notify"
	"github.com/donaldgifford/card-market/internal/store"
	"github.com/donaldgifford/card-market/pkg/logger"
	domain "github.com/donaldgifford/card-market/pkg/types"
)

// Catalog refetches catalog pages.
type Catalog interface {
	FetchCatalog(ctx context.Context, page, rpp int, force bool) (*domain.Page[domain.Card], error)
}

// Inventory refetches the signed-in user's cards.
type Inventory interface {
	FetchMyCards(ctx context.Context, force bool) ([]domain.Card, error)
}

// TradeLister refetches trade pages.
type TradeLister interface {
	FetchTrades(ctx context.Context, page, rpp int, force bool) (*domain.Page[domain.Trade], error)
}

// Session reports who is signed in.
type Session interface {
	IsAuthenticated() bool
	User() *domain.UserProfile
}

// Config controls what a run refreshes.
type Config struct {
	Interval     time.Duration
	CatalogPages int
	RPP          int
}

// Refresher runs refresh passes on a cron schedule.
type Refresher struct {
	cron      *cron.Cron
	catalog   Catalog
	inventory Inventory
	trades    TradeLister
	session   Session
	pages     int
	rpp       int
	timeout   time.Duration
	notifier  notify.Notifier
	log       *slog.Logger

	mu   sync.Mutex
	seen map[string]struct{}
}

// Option configures a Refresher.
type Option func(*Refresher)

// WithNotifier sets where scheduled runs announce new inventory cards.
func WithNotifier(n notify.Notifier) Option {
	return func(r *Refresher) {
		r.notifier = n
	}
}

// New creates a Refresher. It does not start the schedule.
func New(
	cfg Config,
	catalog Catalog,
	inventory Inventory,
	trades TradeLister,
	session Session,
	log *slog.Logger,
	opts ...Option,
) (*Refresher, error) {
	if cfg.Interval <= 0 {
		return nil, fmt.Errorf("refresh interval must be positive (got %s)", cfg.Interval)
	}
	pages := max(cfg.CatalogPages, 1)
	rpp := cfg.RPP
	if rpp < 1 {
		rpp = store.DefaultCatalogRPP
	}

	r := &Refresher{
		cron:      cron.New(),
		catalog:   catalog,
		inventory: inventory,
		trades:    trades,
		session:   session,
		pages:     pages,
		rpp:       rpp,
		timeout:   cfg.Interval,
		log:       logger.Component(log, "refresh"),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.notifier == nil {
		r.notifier = notify.NewNoOpNotifier(log)
	}

	if _, err := r.cron.AddFunc("@every "+cfg.Interval.String(), r.runScheduled); err != nil {
		return nil, fmt.Errorf("scheduling refresh: %w", err)
	}
	return r, nil
}

// Start begins running scheduled refreshes.
func (r *Refresher) Start() {
	r.log.Info("refresher started")
	r.cron.Start()
}

// Stop stops the schedule. The returned context is done when a running pass
// has finished.
func (r *Refresher) Stop() context.Context {
	r.log.Info("refresher stopping")
	return r.cron.Stop()
}

// Entries returns the registered cron entries for inspection.
func (r *Refresher) Entries() []cron.Entry {
	return r.cron.Entries()
}

// Result summarizes one refresh pass.
type Result struct {
	CatalogPages int
	Trades       int
	Inventory    int
	// NewCards are inventory cards not present in the previous pass.
	NewCards []domain.Card
}

// RunOnce performs a single refresh pass. Every step runs even when an
// earlier one fails; the failures are joined.
func (r *Refresher) RunOnce(ctx context.Context) (Result, error) {
	var (
		res  Result
		errs []error
	)

	for page := 1; page <= r.pages; page++ {
		p, err := r.catalog.FetchCatalog(ctx, page, r.rpp, true)
		if err != nil {
			errs = append(errs, fmt.Errorf("refreshing catalog page %d: %w", page, err))
			break
		}
		res.CatalogPages++
		if p == nil || !p.More {
			break
		}
	}

	tp, err := r.trades.FetchTrades(ctx, store.DefaultTradesPage, store.DefaultTradesRPP, true)
	if err != nil {
		errs = append(errs, fmt.Errorf("refreshing trades: %w", err))
	} else if tp != nil {
		res.Trades = len(tp.List)
	}

	if r.session.IsAuthenticated() {
		owned, err := r.inventory.FetchMyCards(ctx, true)
		if err != nil {
			errs = append(errs, fmt.Errorf("refreshing inventory: %w", err))
		} else {
			res.Inventory = len(owned)
			res.NewCards = r.diff(owned)
		}
	}

	err = errors.Join(errs...)
	if err != nil {
		metrics.RefreshRunsTotal.WithLabelValues("failure").Inc()
	} else {
		metrics.RefreshRunsTotal.WithLabelValues("success").Inc()
	}
	return res, err
}

// diff records owned as the latest inventory and returns the cards that
// were not in the previous one. The first inventory seen is a baseline.
func (r *Refresher) diff(owned []domain.Card) []domain.Card {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := make(map[string]struct{}, len(owned))
	var fresh []domain.Card
	for i := range owned {
		next[owned[i].ID] = struct{}{}
		if r.seen == nil {
			continue
		}
		if _, ok := r.seen[owned[i].ID]; !ok {
			fresh = append(fresh, owned[i])
		}
	}
	r.seen = next
	return fresh
}

func (r *Refresher) runScheduled() {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	r.log.Info("scheduled refresh starting")
	res, err := r.RunOnce(ctx)
	if err != nil {
		r.log.Error("scheduled refresh failed", "error", err)
	}
	for i := range res.NewCards {
		metrics.RefreshNewCards.Inc()
		r.log.Info("new card in inventory", "card_id", res.NewCards[i].ID, "name", res.NewCards[i].Name)
	}
	if len(res.NewCards) > 0 {
		if err := r.notifier.NotifyNewCards(ctx, r.ownerName(), res.NewCards); err != nil {
			metrics.NotificationFailuresTotal.Inc()
			r.log.Warn("notifying new cards", "error", err)
		}
	}
	r.log.Info("scheduled refresh finished",
		"catalog_pages", res.CatalogPages,
		"trades", res.Trades,
		"inventory", res.Inventory,
	)
}

func (r *Refresher) ownerName() string {
	u := r.session.User()
	switch {
	case u == nil:
		return "unknown"
	case u.Name != "":
		return u.Name
	default:
		return u.Email
	}
}
