package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/card-market/internal/storage"
	storeMocks "github.com/donaldgifford/card-market/internal/store/mocks"
	domain "github.com/donaldgifford/card-market/pkg/types"
)

type cardsFixture struct {
	store   *Cards
	api     *storeMocks.MockCardsAPI
	backend storage.Storage
	clock   *clock
}

func newCardsFixture(t *testing.T, auth Auth, backend storage.Storage) *cardsFixture {
	t.Helper()
	if backend == nil {
		backend = storage.NewMemory()
	}
	clk := newClock()
	api := storeMocks.NewMockCardsAPI(t)
	return &cardsFixture{
		store:   NewCards(api, auth, newPersister(t, backend), WithNowFunc(clk.Now)),
		api:     api,
		backend: backend,
		clock:   clk,
	}
}

func catalogPage(page, rpp int, ids ...string) *domain.Page[domain.Card] {
	return &domain.Page[domain.Card]{List: cards(ids...), Page: page, RPP: rpp, More: true}
}

func TestCards_FetchCatalogHitsNetworkOnce(t *testing.T) {
	t.Parallel()

	f := newCardsFixture(t, staticAuth{}, nil)
	f.api.EXPECT().ListCards(mock.Anything, 1, 12).Return(catalogPage(1, 12, "a", "b"), nil).Once()

	first, err := f.store.FetchCatalog(context.Background(), 1, 12, false)
	require.NoError(t, err)
	second, err := f.store.FetchCatalog(context.Background(), 1, 12, false)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	got, ok := f.store.CatalogPage(1, 12)
	require.True(t, ok)
	assert.Len(t, got.List, 2)
	assert.False(t, f.store.State().CatalogLoading)
}

func TestCards_ReturnedCatalogPagesAreCopies(t *testing.T) {
	t.Parallel()

	f := newCardsFixture(t, staticAuth{}, nil)
	f.api.EXPECT().ListCards(mock.Anything, 1, 12).Return(catalogPage(1, 12, "a", "b"), nil).Once()

	fetched, err := f.store.FetchCatalog(context.Background(), 1, 12, false)
	require.NoError(t, err)
	fetched.List[0].Name = "changed"
	fetched.List = fetched.List[:1]

	cached, err := f.store.FetchCatalog(context.Background(), 1, 12, false)
	require.NoError(t, err)
	require.Len(t, cached.List, 2)
	assert.NotEqual(t, "changed", cached.List[0].Name)
	cached.List[1].ID = "zzz"

	got, ok := f.store.CatalogPage(1, 12)
	require.True(t, ok)
	assert.Equal(t, "b", got.List[1].ID)
	got.List[0].ID = "yyy"

	assert.Equal(t, "a", f.store.State().CatalogPages[domain.PageKey(1, 12)].List[0].ID)
}

func TestCards_FetchCatalogDefaults(t *testing.T) {
	t.Parallel()

	f := newCardsFixture(t, staticAuth{}, nil)
	f.api.EXPECT().ListCards(mock.Anything, DefaultCatalogPage, DefaultCatalogRPP).
		Return(catalogPage(1, 12, "a"), nil).Once()

	_, err := f.store.FetchCatalog(context.Background(), 0, -1, false)
	require.NoError(t, err)
}

func TestCards_FetchCatalogFromPersistedCache(t *testing.T) {
	t.Parallel()

	backend := storage.NewMemory()
	warm := newCardsFixture(t, staticAuth{}, backend)
	warm.api.EXPECT().ListCards(mock.Anything, 2, 12).Return(catalogPage(2, 12, "x"), nil).Once()
	_, err := warm.store.FetchCatalog(context.Background(), 2, 12, false)
	require.NoError(t, err)

	// A fresh store sharing the same storage must not call the API.
	cold := newCardsFixture(t, staticAuth{}, backend)
	page, err := cold.store.FetchCatalog(context.Background(), 2, 12, false)
	require.NoError(t, err)
	require.Len(t, page.List, 1)
	assert.Equal(t, "x", page.List[0].ID)
}

func TestCards_FetchCatalogExpiredEntryRefetched(t *testing.T) {
	t.Parallel()

	backend := storage.NewMemory()
	warm := newCardsFixture(t, staticAuth{}, backend)
	warm.api.EXPECT().ListCards(mock.Anything, 1, 12).Return(catalogPage(1, 12, "old"), nil).Once()
	_, err := warm.store.FetchCatalog(context.Background(), 1, 12, false)
	require.NoError(t, err)

	cold := newCardsFixture(t, staticAuth{}, backend)
	cold.clock.Advance(DefaultCatalogTTL + time.Millisecond)
	cold.api.EXPECT().ListCards(mock.Anything, 1, 12).Return(catalogPage(1, 12, "new"), nil).Once()

	page, err := cold.store.FetchCatalog(context.Background(), 1, 12, false)
	require.NoError(t, err)
	assert.Equal(t, "new", page.List[0].ID)
}

func TestCards_FetchCatalogExpiredEntryEvicted(t *testing.T) {
	t.Parallel()

	backend := storage.NewMemory()
	warm := newCardsFixture(t, staticAuth{}, backend)
	warm.api.EXPECT().ListCards(mock.Anything, 1, 12).Return(catalogPage(1, 12, "a"), nil).Once()
	warm.api.EXPECT().ListCards(mock.Anything, 2, 12).Return(catalogPage(2, 12, "b"), nil).Once()
	_, err := warm.store.FetchCatalog(context.Background(), 1, 12, false)
	require.NoError(t, err)
	warm.clock.Advance(time.Hour)
	_, err = warm.store.FetchCatalog(context.Background(), 2, 12, false)
	require.NoError(t, err)

	// Only page 1 has expired at this point.
	cold := newCardsFixture(t, staticAuth{}, backend)
	cold.clock.Advance(DefaultCatalogTTL + time.Minute)
	cold.api.EXPECT().ListCards(mock.Anything, 1, 12).Return(nil, apiErr(503, "maintenance")).Once()

	_, err = cold.store.FetchCatalog(context.Background(), 1, 12, false)
	require.Error(t, err)

	raw, ok, err := backend.Get(catalogCacheKey)
	require.NoError(t, err)
	require.True(t, ok)
	var entries map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &entries))
	assert.NotContains(t, entries, "12:1")
	assert.Contains(t, entries, "12:2")
}

func TestCards_FetchCatalogForce(t *testing.T) {
	t.Parallel()

	f := newCardsFixture(t, staticAuth{}, nil)
	f.api.EXPECT().ListCards(mock.Anything, 1, 12).Return(catalogPage(1, 12, "a"), nil).Twice()

	_, err := f.store.FetchCatalog(context.Background(), 1, 12, false)
	require.NoError(t, err)
	_, err = f.store.FetchCatalog(context.Background(), 1, 12, true)
	require.NoError(t, err)
}

func TestCards_FetchCatalogError(t *testing.T) {
	t.Parallel()

	f := newCardsFixture(t, staticAuth{}, nil)
	f.api.EXPECT().ListCards(mock.Anything, 1, 12).Return(nil, apiErr(500, "catalog offline")).Once()

	_, err := f.store.FetchCatalog(context.Background(), 1, 12, false)
	require.Error(t, err)

	st := f.store.State()
	assert.Equal(t, "catalog offline", st.Error)
	assert.False(t, st.CatalogLoading)
	_, ok := f.store.CatalogPage(1, 12)
	assert.False(t, ok)
}

func TestCards_CorruptCatalogCacheIsAMiss(t *testing.T) {
	t.Parallel()

	backend := storage.NewMemory()
	require.NoError(t, backend.Set(catalogCacheKey, []byte(`[1,2,3]`)))

	f := newCardsFixture(t, staticAuth{}, backend)
	f.api.EXPECT().ListCards(mock.Anything, 1, 12).Return(catalogPage(1, 12, "a"), nil).Once()

	_, err := f.store.FetchCatalog(context.Background(), 1, 12, false)
	require.NoError(t, err)
}

func TestCards_FetchMyCardsWithoutTokenSkipsNetwork(t *testing.T) {
	t.Parallel()

	f := newCardsFixture(t, staticAuth{}, nil)

	_, err := f.store.FetchMyCards(context.Background(), false)
	require.ErrorIs(t, err, ErrNotAuthenticated)

	err = f.store.AddCards(context.Background(), []string{"a"})
	require.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestCards_FetchMyCardsTokenWithoutUser(t *testing.T) {
	t.Parallel()

	f := newCardsFixture(t, staticAuth{token: "tok"}, nil)

	_, err := f.store.FetchMyCards(context.Background(), false)
	require.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestCards_FetchMyCardsCaching(t *testing.T) {
	t.Parallel()

	backend := storage.NewMemory()
	f := newCardsFixture(t, signedIn("u1"), backend)
	f.api.EXPECT().ListMyCards(mock.Anything, "tok-u1").Return(cards("a", "b"), nil).Once()

	got, err := f.store.FetchMyCards(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	// Memory hit.
	_, err = f.store.FetchMyCards(context.Background(), false)
	require.NoError(t, err)

	// Persisted hit from a fresh store within the TTL.
	cold := newCardsFixture(t, signedIn("u1"), backend)
	cold.clock.Advance(DefaultInventoryTTL - time.Second)
	got, err = cold.store.FetchMyCards(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, "u1", cold.store.State().LoadedMyCardsOwnerID)
}

func TestCards_FetchMyCardsExpiredInventory(t *testing.T) {
	t.Parallel()

	backend := storage.NewMemory()
	warm := newCardsFixture(t, signedIn("u1"), backend)
	warm.api.EXPECT().ListMyCards(mock.Anything, "tok-u1").Return(cards("a"), nil).Once()
	_, err := warm.store.FetchMyCards(context.Background(), false)
	require.NoError(t, err)

	cold := newCardsFixture(t, signedIn("u1"), backend)
	cold.clock.Advance(DefaultInventoryTTL + time.Millisecond)
	cold.api.EXPECT().ListMyCards(mock.Anything, "tok-u1").Return(cards("a", "z"), nil).Once()

	got, err := cold.store.FetchMyCards(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestCards_FetchMyCardsOwnerSwitch(t *testing.T) {
	t.Parallel()

	auth := &switchableAuth{}
	auth.set(signedIn("u1"))

	f := newCardsFixture(t, auth, nil)
	f.api.EXPECT().ListMyCards(mock.Anything, "tok-u1").Return(cards("a"), nil).Once()
	f.api.EXPECT().ListMyCards(mock.Anything, "tok-u2").Return(cards("b", "c"), nil).Once()

	_, err := f.store.FetchMyCards(context.Background(), false)
	require.NoError(t, err)

	auth.set(signedIn("u2"))
	got, err := f.store.FetchMyCards(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ID)

	st := f.store.State()
	assert.Equal(t, "u2", st.NewCardsOwnerID)
	assert.Equal(t, "u2", st.LoadedMyCardsOwnerID)
}

func TestCards_AddCardsMarksNew(t *testing.T) {
	t.Parallel()

	f := newCardsFixture(t, signedIn("u1"), nil)
	f.api.EXPECT().AddMyCards(mock.Anything, "tok-u1", []string{"b", "c"}).Return(nil).Once()
	f.api.EXPECT().ListMyCards(mock.Anything, "tok-u1").Return(cards("a", "b", "c"), nil).Once()

	require.NoError(t, f.store.AddCards(context.Background(), []string{"b", "c"}))

	assert.Equal(t, []string{"b", "c"}, f.store.NewCardIDs())
	assert.True(t, f.store.IsNewCard("b"))
	assert.False(t, f.store.IsNewCard("a"))
	assert.Len(t, f.store.MyCards(), 3)

	raw, ok, err := f.backend.Get(newCardsKey("u1"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `["b","c"]`, string(raw))
}

func TestCards_AddCardsFailureMarksNothing(t *testing.T) {
	t.Parallel()

	f := newCardsFixture(t, signedIn("u1"), nil)
	addErr := apiErr(400, "Card not found")
	f.api.EXPECT().AddMyCards(mock.Anything, "tok-u1", []string{"zz"}).Return(addErr).Once()

	err := f.store.AddCards(context.Background(), []string{"zz"})
	require.ErrorIs(t, err, addErr)

	assert.Empty(t, f.store.NewCardIDs())
	assert.Equal(t, "Card not found", f.store.State().Error)
}

func TestCards_AddCardsRefetchFailure(t *testing.T) {
	t.Parallel()

	f := newCardsFixture(t, signedIn("u1"), nil)
	f.api.EXPECT().AddMyCards(mock.Anything, "tok-u1", []string{"a"}).Return(nil).Once()
	f.api.EXPECT().ListMyCards(mock.Anything, "tok-u1").Return(nil, apiErr(502, "bad gateway")).Once()

	require.Error(t, f.store.AddCards(context.Background(), []string{"a"}))
	assert.Empty(t, f.store.NewCardIDs())
	assert.Equal(t, "bad gateway", f.store.State().Error)
}

func TestCards_NewCardsStayWithinInventory(t *testing.T) {
	t.Parallel()

	backend := storage.NewMemory()
	require.NoError(t, backend.Set(newCardsKey("u1"), []byte(`["a","gone",7,null,"b"]`)))

	f := newCardsFixture(t, signedIn("u1"), backend)
	f.api.EXPECT().ListMyCards(mock.Anything, "tok-u1").Return(cards("a", "b", "c"), nil).Once()

	_, err := f.store.FetchMyCards(context.Background(), false)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, f.store.NewCardIDs())

	f.store.MarkCardsAsNew([]string{"c", "a", "not-owned"})
	assert.Equal(t, []string{"a", "b", "c"}, f.store.NewCardIDs())

	owned := make(map[string]bool)
	for _, c := range f.store.MyCards() {
		owned[c.ID] = true
	}
	for _, id := range f.store.NewCardIDs() {
		assert.True(t, owned[id], "new card %q must be in the inventory", id)
	}
}

func TestCards_EnsureNewCardsState(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		stored string
		want   []string
	}{
		{name: "missing", want: []string{}},
		{name: "array of strings", stored: `["x","y"]`, want: []string{"x", "y"}},
		{name: "not an array", stored: `{"x":true}`, want: []string{}},
		{name: "corrupt", stored: `[`, want: []string{}},
		{name: "mixed elements", stored: `[1,"x",{"a":1}]`, want: []string{"x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			backend := storage.NewMemory()
			if tt.stored != "" {
				require.NoError(t, backend.Set(newCardsKey("u1"), []byte(tt.stored)))
			}
			f := newCardsFixture(t, staticAuth{}, backend)

			f.store.EnsureNewCardsState("u1")
			assert.Equal(t, tt.want, f.store.NewCardIDs())
			assert.Equal(t, "u1", f.store.State().NewCardsOwnerID)
		})
	}
}

func TestCards_EnsureNewCardsStateClearsOnSignOut(t *testing.T) {
	t.Parallel()

	f := newCardsFixture(t, signedIn("u1"), nil)
	f.api.EXPECT().ListMyCards(mock.Anything, "tok-u1").Return(cards("a"), nil).Once()
	_, err := f.store.FetchMyCards(context.Background(), false)
	require.NoError(t, err)
	f.store.MarkCardsAsNew([]string{"a"})

	f.store.EnsureNewCardsState("")

	st := f.store.State()
	assert.Empty(t, st.NewCardsOwnerID)
	assert.Empty(t, st.NewCardIDs)
	assert.Empty(t, st.LoadedMyCardsOwnerID)
	assert.Empty(t, st.MyCards)

	// The persisted set survives for the next sign-in.
	raw, ok, _ := f.backend.Get(newCardsKey("u1"))
	require.True(t, ok)
	assert.JSONEq(t, `["a"]`, string(raw))
}

func TestCards_AcknowledgeNewCards(t *testing.T) {
	t.Parallel()

	f := newCardsFixture(t, signedIn("u1"), nil)
	f.api.EXPECT().ListMyCards(mock.Anything, "tok-u1").Return(cards("a", "b", "c"), nil).Once()
	_, err := f.store.FetchMyCards(context.Background(), false)
	require.NoError(t, err)
	f.store.MarkCardsAsNew([]string{"a", "b", "c"})

	f.store.AcknowledgeNewCards("b")
	assert.Equal(t, []string{"a", "c"}, f.store.NewCardIDs())

	f.store.AcknowledgeNewCards()
	assert.Empty(t, f.store.NewCardIDs())

	raw, ok, _ := f.backend.Get(newCardsKey("u1"))
	require.True(t, ok)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestCards_StorageFailuresAreSwallowed(t *testing.T) {
	t.Parallel()

	f := newCardsFixture(t, signedIn("u1"), brokenStorage{})
	f.api.EXPECT().ListCards(mock.Anything, 1, 12).Return(catalogPage(1, 12, "a"), nil).Once()
	f.api.EXPECT().ListMyCards(mock.Anything, "tok-u1").Return(cards("a"), nil).Once()

	_, err := f.store.FetchCatalog(context.Background(), 1, 12, false)
	require.NoError(t, err)
	_, err = f.store.FetchCatalog(context.Background(), 1, 12, false)
	require.NoError(t, err)

	_, err = f.store.FetchMyCards(context.Background(), false)
	require.NoError(t, err)
	f.store.MarkCardsAsNew([]string{"a"})
	assert.Equal(t, []string{"a"}, f.store.NewCardIDs())
}

func TestCards_TTLOptions(t *testing.T) {
	t.Parallel()

	c := NewCards(nil, staticAuth{}, nil, WithCatalogTTL(time.Minute), WithInventoryTTL(0))
	assert.Equal(t, time.Minute, c.catalogTTL)
	assert.Equal(t, DefaultInventoryTTL, c.inventoryTTL)
}
