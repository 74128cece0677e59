package refresh

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	ptestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/card-market/internal/metrics"
	"github.com/donaldgifford/card-market/pkg/logger"
	domain "github.com/donaldgifford/card-market/pkg/types"
)

type fakeCatalog struct {
	mu    sync.Mutex
	pages int
	calls []int
	err   error
}

func (f *fakeCatalog) FetchCatalog(_ context.Context, page, rpp int, force bool) (*domain.Page[domain.Card], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, page)
	if f.err != nil {
		return nil, f.err
	}
	if !force {
		return nil, errors.New("refresh must force")
	}
	return &domain.Page[domain.Card]{Page: page, RPP: rpp, More: page < f.pages}, nil
}

type fakeInventory struct {
	mu    sync.Mutex
	cards []domain.Card
	err   error
}

func (f *fakeInventory) set(ids ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cards = nil
	for _, id := range ids {
		f.cards = append(f.cards, domain.Card{ID: id})
	}
}

func (f *fakeInventory) FetchMyCards(context.Context, bool) ([]domain.Card, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cards, f.err
}

type fakeTrades struct {
	err error
}

func (f *fakeTrades) FetchTrades(_ context.Context, page, rpp int, _ bool) (*domain.Page[domain.Trade], error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Page[domain.Trade]{List: []domain.Trade{{ID: "t1"}}, Page: page, RPP: rpp}, nil
}

type fakeSession bool

func (f fakeSession) IsAuthenticated() bool { return bool(f) }

func (f fakeSession) User() *domain.UserProfile {
	if !f {
		return nil
	}
	return &domain.UserProfile{ID: "u1", Name: "Ana"}
}

type recordingNotifier struct {
	mu    sync.Mutex
	owner string
	cards []domain.Card
	err   error
}

func (n *recordingNotifier) NotifyNewCards(_ context.Context, owner string, cards []domain.Card) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.owner = owner
	n.cards = append(n.cards, cards...)
	return n.err
}

func newTestRefresher(
	t *testing.T,
	cat *fakeCatalog,
	inv *fakeInventory,
	tr *fakeTrades,
	signedIn bool,
) *Refresher {
	t.Helper()
	r, err := New(Config{Interval: time.Hour, CatalogPages: 3, RPP: 12}, cat, inv, tr, fakeSession(signedIn), logger.Discard())
	require.NoError(t, err)
	return r
}

func TestNew_RegistersCronEntry(t *testing.T) {
	t.Parallel()

	r := newTestRefresher(t, &fakeCatalog{}, &fakeInventory{}, &fakeTrades{}, false)
	assert.Len(t, r.Entries(), 1)
}

func TestNew_RejectsNonPositiveInterval(t *testing.T) {
	t.Parallel()

	_, err := New(Config{}, &fakeCatalog{}, &fakeInventory{}, &fakeTrades{}, fakeSession(false), nil)
	require.Error(t, err)
}

func TestRefresher_StartStop(t *testing.T) {
	t.Parallel()

	r := newTestRefresher(t, &fakeCatalog{}, &fakeInventory{}, &fakeTrades{}, false)
	r.Start()
	ctx := r.Stop()
	<-ctx.Done()
}

func TestRunOnce_StopsAtLastCatalogPage(t *testing.T) {
	t.Parallel()

	cat := &fakeCatalog{pages: 2}
	r := newTestRefresher(t, cat, &fakeInventory{}, &fakeTrades{}, false)

	res, err := r.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, res.CatalogPages)
	assert.Equal(t, []int{1, 2}, cat.calls)
	assert.Equal(t, 1, res.Trades)
	assert.Zero(t, res.Inventory, "inventory is skipped when signed out")
}

func TestRunOnce_CapsCatalogPages(t *testing.T) {
	t.Parallel()

	cat := &fakeCatalog{pages: 10}
	r := newTestRefresher(t, cat, &fakeInventory{}, &fakeTrades{}, false)

	res, err := r.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, res.CatalogPages)
}

func TestRunOnce_DetectsNewCards(t *testing.T) {
	t.Parallel()

	inv := &fakeInventory{}
	inv.set("a", "b")
	r := newTestRefresher(t, &fakeCatalog{pages: 1}, inv, &fakeTrades{}, true)

	res, err := r.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Inventory)
	assert.Empty(t, res.NewCards, "first pass is a baseline")

	inv.set("a", "b", "c")
	res, err = r.RunOnce(context.Background())
	require.NoError(t, err)
	require.Len(t, res.NewCards, 1)
	assert.Equal(t, "c", res.NewCards[0].ID)

	res, err = r.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Empty(t, res.NewCards)
}

func TestRunOnce_JoinsFailures(t *testing.T) {
	t.Parallel()

	catErr := errors.New("catalog down")
	tradeErr := errors.New("trades down")
	invErr := errors.New("inventory down")

	r := newTestRefresher(t,
		&fakeCatalog{err: catErr},
		&fakeInventory{err: invErr},
		&fakeTrades{err: tradeErr},
		true,
	)

	before := ptestutil.ToFloat64(metrics.RefreshRunsTotal.WithLabelValues("failure"))

	_, err := r.RunOnce(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, catErr)
	assert.ErrorIs(t, err, tradeErr)
	assert.ErrorIs(t, err, invErr)

	after := ptestutil.ToFloat64(metrics.RefreshRunsTotal.WithLabelValues("failure"))
	assert.GreaterOrEqual(t, after-before, 1.0)
}

func TestRunScheduled_DoesNotPanic(t *testing.T) {
	t.Parallel()

	inv := &fakeInventory{}
	inv.set("a")
	r := newTestRefresher(t, &fakeCatalog{pages: 1}, inv, &fakeTrades{}, true)

	assert.NotPanics(t, r.runScheduled)
	inv.set("a", "b")
	assert.NotPanics(t, r.runScheduled)
}

func TestRunScheduled_NotifiesNewCards(t *testing.T) {
	t.Parallel()

	inv := &fakeInventory{}
	inv.set("a")
	n := &recordingNotifier{err: errors.New("webhook down")}
	r, err := New(
		Config{Interval: time.Hour, CatalogPages: 1, RPP: 12},
		&fakeCatalog{pages: 1}, inv, &fakeTrades{}, fakeSession(true), logger.Discard(),
		WithNotifier(n),
	)
	require.NoError(t, err)

	r.runScheduled()
	assert.Empty(t, n.cards, "baseline pass announces nothing")

	failuresBefore := ptestutil.ToFloat64(metrics.NotificationFailuresTotal)
	inv.set("a", "b")
	r.runScheduled()
	require.Len(t, n.cards, 1)
	assert.Equal(t, "b", n.cards[0].ID)
	assert.Equal(t, "Ana", n.owner)
	assert.GreaterOrEqual(t, ptestutil.ToFloat64(metrics.NotificationFailuresTotal), failuresBefore+1)
}
