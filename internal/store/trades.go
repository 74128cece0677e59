package store

import (
	"context"
	"log/slog"
	"sync"

	"github.com/donaldgifford/card-market/internal/metrics"
	domain "github.com/donaldgifford/card-market/pkg/types"
)

// Trades actions reported in events.
const (
	ActionFetchTrades = "fetch_trades"
	ActionCreateTrade = "create_trade"
	ActionDeleteTrade = "delete_trade"
)

// TradesState is a snapshot of the trade store.
type TradesState struct {
	// Pages is keyed by domain.PageKey.
	Pages         map[string]*domain.Page[domain.Trade]
	Loading       bool
	ActionLoading bool
	Error         string
}

// Trades caches trade pages in memory. Pages stay valid until a trade is
// created, which drops them all, or deleted, which removes that trade from
// every cached page.
type Trades struct {
	api  TradesAPI
	auth Auth
	log  *slog.Logger

	mu    sync.Mutex
	state TradesState
	obs   observers
}

// NewTrades creates a trade store. auth supplies the session token.
func NewTrades(api TradesAPI, auth Auth, opts ...Option) *Trades {
	o := buildOptions("trades", opts)
	return &Trades{
		api:   api,
		auth:  auth,
		log:   o.log,
		state: TradesState{Pages: make(map[string]*domain.Page[domain.Trade])},
	}
}

// State returns a snapshot of the store.
func (t *Trades) State() TradesState {
	t.mu.Lock()
	defer t.mu.Unlock()
	st := t.state
	st.Pages = clonePages(t.state.Pages)
	return st
}

// Subscribe registers fn for change events and returns its unsubscribe func.
func (t *Trades) Subscribe(fn func(Event)) func() {
	return t.obs.subscribe(fn)
}

// TradesPage returns the cached trade page, if any.
func (t *Trades) TradesPage(page, rpp int) (*domain.Page[domain.Trade], bool) {
	page, rpp = normalizePage(page, rpp, DefaultTradesPage, DefaultTradesRPP)
	t.mu.Lock()
	defer t.mu.Unlock()
	p, ok := t.state.Pages[domain.PageKey(page, rpp)]
	return p.Clone(), ok
}

// FetchTrades returns a trade page from memory, or from the API when it is not
// cached or force is set.
func (t *Trades) FetchTrades(ctx context.Context, page, rpp int, force bool) (_ *domain.Page[domain.Trade], err error) {
	page, rpp = normalizePage(page, rpp, DefaultTradesPage, DefaultTradesRPP)
	key := domain.PageKey(page, rpp)

	if !force {
		t.mu.Lock()
		cached, ok := t.state.Pages[key]
		t.mu.Unlock()
		if ok {
			lookup(cacheNameTrades, metrics.TierMemory, metrics.ResultHit)
			return cached.Clone(), nil
		}
		lookup(cacheNameTrades, metrics.TierMemory, metrics.ResultMiss)
	}

	t.mu.Lock()
	t.state.Loading = true
	t.state.Error = ""
	t.mu.Unlock()
	t.emit(ActionFetchTrades)

	defer func() {
		t.mu.Lock()
		t.state.Loading = false
		if err != nil {
			t.state.Error = ResourceMessage(err)
		}
		t.mu.Unlock()
		t.emit(ActionFetchTrades)
	}()

	data, err := t.api.ListTrades(ctx, page, rpp)
	if err != nil {
		return nil, err
	}

	t.mu.Lock()
	t.state.Pages[key] = data
	t.mu.Unlock()
	return data.Clone(), nil
}

// CreateTrade publishes a trade offer and drops every cached page.
func (t *Trades) CreateTrade(
	ctx context.Context,
	req domain.CreateTradeRequest,
) (_ *domain.CreateTradeResponse, err error) {
	token := t.auth.Token()
	if token == "" {
		return nil, ErrNotAuthenticated
	}

	t.beginAction(ActionCreateTrade)
	defer func() { t.endAction(ActionCreateTrade, err) }()

	resp, err := t.api.CreateTrade(ctx, token, req)
	if err != nil {
		return nil, err
	}

	t.mu.Lock()
	t.state.Pages = make(map[string]*domain.Page[domain.Trade])
	t.mu.Unlock()
	metrics.CacheInvalidationsTotal.WithLabelValues(cacheNameTrades, invalidationWipe).Inc()
	if resp != nil {
		t.log.Debug("trade created", "trade_id", resp.TradeID)
	}
	return resp, nil
}

// DeleteTrade deletes a trade offer and removes it from every cached page,
// keeping the order of the remaining trades.
func (t *Trades) DeleteTrade(ctx context.Context, tradeID string) (err error) {
	token := t.auth.Token()
	if token == "" {
		return ErrNotAuthenticated
	}

	t.beginAction(ActionDeleteTrade)
	defer func() { t.endAction(ActionDeleteTrade, err) }()

	if err := t.api.DeleteTrade(ctx, token, tradeID); err != nil {
		return err
	}

	t.mu.Lock()
	for key, page := range t.state.Pages {
		if page == nil {
			continue
		}
		t.state.Pages[key] = page.Without(func(tr domain.Trade) bool {
			return tr.ID == tradeID
		})
	}
	t.mu.Unlock()
	metrics.CacheInvalidationsTotal.WithLabelValues(cacheNameTrades, invalidationPatch).Inc()
	return nil
}

func (t *Trades) beginAction(action string) {
	t.mu.Lock()
	t.state.ActionLoading = true
	t.state.Error = ""
	t.mu.Unlock()
	t.emit(action)
}

func (t *Trades) endAction(action string, err error) {
	t.mu.Lock()
	t.state.ActionLoading = false
	if err != nil {
		t.state.Error = ResourceMessage(err)
	}
	t.mu.Unlock()
	t.emit(action)
}

func (t *Trades) emit(action string) {
	t.obs.notify(Event{Store: "trades", Action: action})
}
