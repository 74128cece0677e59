package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	storeMocks "github.com/donaldgifford/card-market/internal/store/mocks"
	domain "github.com/donaldgifford/card-market/pkg/types"
)

func tradePage(page, rpp int, ids ...string) *domain.Page[domain.Trade] {
	list := make([]domain.Trade, 0, len(ids))
	for _, id := range ids {
		list = append(list, domain.Trade{ID: id, UserID: "u1"})
	}
	return &domain.Page[domain.Trade]{List: list, Page: page, RPP: rpp}
}

func tradeIDs(p *domain.Page[domain.Trade]) []string {
	ids := make([]string, 0, len(p.List))
	for _, tr := range p.List {
		ids = append(ids, tr.ID)
	}
	return ids
}

func newTestTrades(t *testing.T, auth Auth) (*Trades, *storeMocks.MockTradesAPI) {
	t.Helper()
	api := storeMocks.NewMockTradesAPI(t)
	return NewTrades(api, auth), api
}

func TestTrades_FetchTradesCached(t *testing.T) {
	t.Parallel()

	tr, api := newTestTrades(t, staticAuth{})
	api.EXPECT().ListTrades(mock.Anything, 1, 10).Return(tradePage(1, 10, "t1", "t2"), nil).Once()

	_, err := tr.FetchTrades(context.Background(), 0, 0, false)
	require.NoError(t, err)
	page, err := tr.FetchTrades(context.Background(), 1, 10, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"t1", "t2"}, tradeIDs(page))
	assert.False(t, tr.State().Loading)
}

func TestTrades_ReturnedPagesAreCopies(t *testing.T) {
	t.Parallel()

	tr, api := newTestTrades(t, staticAuth{})
	api.EXPECT().ListTrades(mock.Anything, 1, 10).Return(tradePage(1, 10, "t1", "t2"), nil).Once()

	fetched, err := tr.FetchTrades(context.Background(), 1, 10, false)
	require.NoError(t, err)
	fetched.List[0].ID = "changed"

	cached, err := tr.FetchTrades(context.Background(), 1, 10, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"t1", "t2"}, tradeIDs(cached))
	cached.List = cached.List[:0]

	got, ok := tr.TradesPage(1, 10)
	require.True(t, ok)
	assert.Equal(t, []string{"t1", "t2"}, tradeIDs(got))
	got.List[1].ID = "changed"

	assert.Equal(t, []string{"t1", "t2"}, tradeIDs(tr.State().Pages[domain.PageKey(1, 10)]))
}

func TestTrades_FetchTradesForce(t *testing.T) {
	t.Parallel()

	tr, api := newTestTrades(t, staticAuth{})
	api.EXPECT().ListTrades(mock.Anything, 1, 10).Return(tradePage(1, 10, "t1"), nil).Twice()

	_, err := tr.FetchTrades(context.Background(), 1, 10, false)
	require.NoError(t, err)
	_, err = tr.FetchTrades(context.Background(), 1, 10, true)
	require.NoError(t, err)
}

func TestTrades_FetchTradesError(t *testing.T) {
	t.Parallel()

	tr, api := newTestTrades(t, staticAuth{})
	api.EXPECT().ListTrades(mock.Anything, 1, 10).Return(nil, apiErr(500, "trades offline")).Once()

	_, err := tr.FetchTrades(context.Background(), 1, 10, false)
	require.Error(t, err)
	assert.Equal(t, "trades offline", tr.State().Error)
}

func TestTrades_DeleteTradePatchesEveryPage(t *testing.T) {
	t.Parallel()

	tr, api := newTestTrades(t, signedIn("u1"))
	api.EXPECT().ListTrades(mock.Anything, 1, 3).Return(tradePage(1, 3, "t1", "t2", "t3"), nil).Once()
	api.EXPECT().ListTrades(mock.Anything, 1, 10).Return(tradePage(1, 10, "t2", "t4", "t1", "t5"), nil).Once()
	api.EXPECT().DeleteTrade(mock.Anything, "tok-u1", "t1").Return(nil).Once()

	_, err := tr.FetchTrades(context.Background(), 1, 3, false)
	require.NoError(t, err)
	before, err := tr.FetchTrades(context.Background(), 1, 10, false)
	require.NoError(t, err)

	require.NoError(t, tr.DeleteTrade(context.Background(), "t1"))

	// Served from cache: no further ListTrades call is expected.
	small, err := tr.FetchTrades(context.Background(), 1, 3, false)
	require.NoError(t, err)
	large, err := tr.FetchTrades(context.Background(), 1, 10, false)
	require.NoError(t, err)

	assert.Equal(t, []string{"t2", "t3"}, tradeIDs(small))
	assert.Equal(t, []string{"t2", "t4", "t5"}, tradeIDs(large))
	assert.Equal(t, []string{"t2", "t4", "t1", "t5"}, tradeIDs(before), "earlier snapshots are not mutated")
	assert.False(t, tr.State().ActionLoading)
}

func TestTrades_CreateTradeWipesCache(t *testing.T) {
	t.Parallel()

	tr, api := newTestTrades(t, signedIn("u1"))
	req := domain.NewCreateTradeRequest([]string{"a"}, []string{"b"})

	api.EXPECT().ListTrades(mock.Anything, 1, 10).Return(tradePage(1, 10, "t1"), nil).Once()
	api.EXPECT().CreateTrade(mock.Anything, "tok-u1", req).
		Return(&domain.CreateTradeResponse{TradeID: "t9"}, nil).Once()
	api.EXPECT().ListTrades(mock.Anything, 1, 10).Return(tradePage(1, 10, "t9", "t1"), nil).Once()

	_, err := tr.FetchTrades(context.Background(), 1, 10, false)
	require.NoError(t, err)

	resp, err := tr.CreateTrade(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "t9", resp.TradeID)
	assert.Empty(t, tr.State().Pages)

	page, err := tr.FetchTrades(context.Background(), 1, 10, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"t9", "t1"}, tradeIDs(page))
}

func TestTrades_MutationsRequireAuth(t *testing.T) {
	t.Parallel()

	tr, _ := newTestTrades(t, staticAuth{})

	_, err := tr.CreateTrade(context.Background(), domain.CreateTradeRequest{})
	require.ErrorIs(t, err, ErrNotAuthenticated)
	require.ErrorIs(t, tr.DeleteTrade(context.Background(), "t1"), ErrNotAuthenticated)
	assert.Empty(t, tr.State().Error)
}

func TestTrades_DeleteTradeError(t *testing.T) {
	t.Parallel()

	tr, api := newTestTrades(t, signedIn("u1"))
	api.EXPECT().ListTrades(mock.Anything, 1, 10).Return(tradePage(1, 10, "t1"), nil).Once()
	api.EXPECT().DeleteTrade(mock.Anything, "tok-u1", "t1").Return(apiErr(403, "Not your trade")).Once()

	_, err := tr.FetchTrades(context.Background(), 1, 10, false)
	require.NoError(t, err)

	require.Error(t, tr.DeleteTrade(context.Background(), "t1"))

	st := tr.State()
	assert.Equal(t, "Not your trade", st.Error)
	assert.False(t, st.ActionLoading)
	page, ok := tr.TradesPage(1, 10)
	require.True(t, ok)
	assert.Equal(t, []string{"t1"}, tradeIDs(page))
}
