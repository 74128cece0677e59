package store

import (
	"context"
	"encoding/json"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/donaldgifford/card-market/internal/metrics"
	"github.com/donaldgifford/card-market/internal/storage"
	domain "github.com/donaldgifford/card-market/pkg/types"
)

const (
	catalogCacheKey     = "marketplace-catalog-cache:v1"
	newCardsKeyPrefix   = "marketplace-new-cards:"
	inventoryKeyPrefix  = "marketplace-my-cards-cache:"
	cacheNameCatalog    = "catalog"
	cacheNameInventory  = "inventory"
	cacheNameTrades     = "trades"
	invalidationWipe    = "wipe"
	invalidationPatch   = "patch"
	invalidationExpired = "expired"
)

// Cards actions reported in events.
const (
	ActionFetchCatalog = "fetch_catalog"
	ActionFetchMyCards = "fetch_my_cards"
	ActionAddCards     = "add_cards"
	ActionNewCards     = "new_cards"
)

func newCardsKey(userID string) string  { return newCardsKeyPrefix + userID }
func inventoryKey(userID string) string { return inventoryKeyPrefix + userID }

// catalogEntry is one persisted catalog page. ExpiresAt is in Unix milliseconds.
type catalogEntry struct {
	Data      *domain.Page[domain.Card] `json:"data"`
	ExpiresAt int64                     `json:"expiresAt"`
}

// inventoryEntry is the persisted inventory of one user.
type inventoryEntry struct {
	Data      *[]domain.Card `json:"data"`
	ExpiresAt *int64         `json:"expiresAt"`
}

// CardsState is a snapshot of the catalog and inventory.
type CardsState struct {
	// CatalogPages is keyed by domain.PageKey.
	CatalogPages map[string]*domain.Page[domain.Card]
	MyCards      []domain.Card
	// NewCardIDs are inventory cards added but not yet acknowledged.
	NewCardIDs           []string
	NewCardsOwnerID      string
	LoadedMyCardsOwnerID string
	CatalogLoading       bool
	MyCardsLoading       bool
	Error                string
}

// Cards caches catalog pages and the signed-in user's inventory, and tracks
// which inventory cards are new.
//
// Catalog pages are cached in memory and persisted with a TTL. The inventory
// is cached per user, in memory and persisted with a shorter TTL. New card ids
// are persisted per user and always form a subset of the loaded inventory.
type Cards struct {
	api          CardsAPI
	auth         Auth
	persist      *storage.Persister
	log          *slog.Logger
	now          func() time.Time
	catalogTTL   time.Duration
	inventoryTTL time.Duration

	mu    sync.Mutex
	state CardsState
	obs   observers
}

// NewCards creates a cards store. auth supplies the signed-in identity.
func NewCards(api CardsAPI, auth Auth, persist *storage.Persister, opts ...Option) *Cards {
	o := buildOptions("cards", opts)
	return &Cards{
		api:          api,
		auth:         auth,
		persist:      persist,
		log:          o.log,
		now:          o.now,
		catalogTTL:   o.catalogTTL,
		inventoryTTL: o.inventoryTTL,
		state: CardsState{
			CatalogPages: make(map[string]*domain.Page[domain.Card]),
			NewCardIDs:   []string{},
		},
	}
}

// State returns a snapshot of the store.
func (c *Cards) State() CardsState {
	c.mu.Lock()
	defer c.mu.Unlock()
	st := c.state
	st.CatalogPages = clonePages(c.state.CatalogPages)
	st.MyCards = slices.Clone(c.state.MyCards)
	st.NewCardIDs = slices.Clone(c.state.NewCardIDs)
	return st
}

// Subscribe registers fn for change events and returns its unsubscribe func.
func (c *Cards) Subscribe(fn func(Event)) func() {
	return c.obs.subscribe(fn)
}

// CatalogPage returns the cached catalog page, if any.
func (c *Cards) CatalogPage(page, rpp int) (*domain.Page[domain.Card], bool) {
	page, rpp = normalizePage(page, rpp, DefaultCatalogPage, DefaultCatalogRPP)
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.state.CatalogPages[domain.PageKey(page, rpp)]
	return p.Clone(), ok
}

// MyCards returns the loaded inventory.
func (c *Cards) MyCards() []domain.Card {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.state.MyCards)
}

// NewCardIDs returns the ids of unacknowledged new cards.
func (c *Cards) NewCardIDs() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.state.NewCardIDs)
}

// IsNewCard reports whether id is an unacknowledged new card.
func (c *Cards) IsNewCard(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Contains(c.state.NewCardIDs, id)
}

// FetchCatalog returns a catalog page. Unless force is set it is served from
// memory, then from persistent storage, and only then from the API. A page
// fetched from the API is written to both caches.
func (c *Cards) FetchCatalog(ctx context.Context, page, rpp int, force bool) (_ *domain.Page[domain.Card], err error) {
	page, rpp = normalizePage(page, rpp, DefaultCatalogPage, DefaultCatalogRPP)
	key := domain.PageKey(page, rpp)

	if !force {
		c.mu.Lock()
		cached, ok := c.state.CatalogPages[key]
		c.mu.Unlock()
		if ok {
			lookup(cacheNameCatalog, metrics.TierMemory, metrics.ResultHit)
			return cached.Clone(), nil
		}
		lookup(cacheNameCatalog, metrics.TierMemory, metrics.ResultMiss)

		if stored, ok := c.catalogFromStorage(key); ok {
			c.mu.Lock()
			c.state.CatalogPages[key] = stored
			c.mu.Unlock()
			c.emit(ActionFetchCatalog)
			return stored.Clone(), nil
		}
	}

	c.mu.Lock()
	c.state.CatalogLoading = true
	c.state.Error = ""
	c.mu.Unlock()
	c.emit(ActionFetchCatalog)

	defer func() {
		c.mu.Lock()
		c.state.CatalogLoading = false
		if err != nil {
			c.state.Error = ResourceMessage(err)
		}
		c.mu.Unlock()
		c.emit(ActionFetchCatalog)
	}()

	data, err := c.api.ListCards(ctx, page, rpp)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.state.CatalogPages[key] = data
	c.mu.Unlock()
	c.catalogToStorage(key, data)
	return data.Clone(), nil
}

// FetchMyCards returns the signed-in user's inventory. It fails with
// ErrNotAuthenticated, without calling the API, when nobody is signed in.
// Unless force is set it is served from memory, then from persistent storage,
// and only then from the API. Every load reconciles the new card ids.
func (c *Cards) FetchMyCards(ctx context.Context, force bool) (_ []domain.Card, err error) {
	token := c.auth.Token()
	if token == "" {
		return nil, ErrNotAuthenticated
	}
	userID := userIDOf(c.auth.User())
	c.EnsureNewCardsState(userID)
	if userID == "" {
		return nil, ErrNotAuthenticated
	}

	c.mu.Lock()
	if c.state.LoadedMyCardsOwnerID != userID {
		c.state.MyCards = nil
		c.state.LoadedMyCardsOwnerID = ""
	}
	if !force && len(c.state.MyCards) > 0 {
		cards := slices.Clone(c.state.MyCards)
		c.mu.Unlock()
		lookup(cacheNameInventory, metrics.TierMemory, metrics.ResultHit)
		return cards, nil
	}
	c.mu.Unlock()

	if !force {
		lookup(cacheNameInventory, metrics.TierMemory, metrics.ResultMiss)
		if stored, ok := c.inventoryFromStorage(userID); ok {
			c.mu.Lock()
			c.state.MyCards = stored
			c.state.LoadedMyCardsOwnerID = userID
			c.syncNewCardsLocked()
			c.mu.Unlock()
			c.emit(ActionFetchMyCards)
			return slices.Clone(stored), nil
		}
	}

	c.mu.Lock()
	c.state.MyCardsLoading = true
	c.state.Error = ""
	c.mu.Unlock()
	c.emit(ActionFetchMyCards)

	defer func() {
		c.mu.Lock()
		c.state.MyCardsLoading = false
		if err != nil {
			c.state.Error = ResourceMessage(err)
		}
		c.mu.Unlock()
		c.emit(ActionFetchMyCards)
	}()

	data, err := c.api.ListMyCards(ctx, token)
	if err != nil {
		return nil, err
	}
	if data == nil {
		data = []domain.Card{}
	}

	c.mu.Lock()
	c.state.MyCards = data
	c.state.LoadedMyCardsOwnerID = userID
	c.mu.Unlock()

	c.inventoryToStorage(userID, data)

	c.mu.Lock()
	c.syncNewCardsLocked()
	c.mu.Unlock()
	return slices.Clone(data), nil
}

// AddCards adds cardIDs to the signed-in user's inventory, reloads the
// inventory, and marks the added cards as new. Nothing is marked when any
// step fails.
func (c *Cards) AddCards(ctx context.Context, cardIDs []string) (err error) {
	token := c.auth.Token()
	if token == "" {
		return ErrNotAuthenticated
	}
	c.EnsureNewCardsState(userIDOf(c.auth.User()))

	c.mu.Lock()
	c.state.Error = ""
	c.mu.Unlock()

	defer func() {
		if err == nil {
			return
		}
		c.mu.Lock()
		c.state.Error = ResourceMessage(err)
		c.mu.Unlock()
		c.emit(ActionAddCards)
	}()

	if err := c.api.AddMyCards(ctx, token, cardIDs); err != nil {
		return err
	}
	if _, err := c.FetchMyCards(ctx, true); err != nil {
		return err
	}
	c.MarkCardsAsNew(cardIDs)
	return nil
}

// EnsureNewCardsState points the new card tracking at userID. An empty id
// clears all per-user state. Switching to another user loads that user's
// persisted ids; unreadable data yields an empty set.
func (c *Cards) EnsureNewCardsState(userID string) {
	c.mu.Lock()
	switch {
	case userID == "":
		c.state.NewCardsOwnerID = ""
		c.state.NewCardIDs = []string{}
		c.state.LoadedMyCardsOwnerID = ""
		c.state.MyCards = nil
	case c.state.NewCardsOwnerID == userID:
		c.mu.Unlock()
		return
	default:
		c.state.NewCardsOwnerID = userID
		c.state.NewCardIDs = c.loadNewCards(userID)
	}
	c.mu.Unlock()
	c.emit(ActionNewCards)
}

// MarkCardsAsNew adds ids to the new card set, keeping only ids present in
// the loaded inventory.
func (c *Cards) MarkCardsAsNew(ids []string) {
	c.mu.Lock()
	merged := slices.Concat(c.state.NewCardIDs, ids)
	c.state.NewCardIDs = uniqueIDs(merged)
	c.syncNewCardsLocked()
	c.mu.Unlock()
	c.emit(ActionNewCards)
}

// AcknowledgeNewCards removes ids from the new card set, or clears it when no
// id is given.
func (c *Cards) AcknowledgeNewCards(ids ...string) {
	c.mu.Lock()
	if len(ids) == 0 {
		c.state.NewCardIDs = []string{}
	} else {
		c.state.NewCardIDs = slices.DeleteFunc(slices.Clone(c.state.NewCardIDs), func(id string) bool {
			return slices.Contains(ids, id)
		})
	}
	c.persistNewCardsLocked()
	c.mu.Unlock()
	c.emit(ActionNewCards)
}

func (c *Cards) syncNewCardsLocked() {
	owned := make(map[string]struct{}, len(c.state.MyCards))
	for i := range c.state.MyCards {
		owned[c.state.MyCards[i].ID] = struct{}{}
	}
	kept := make([]string, 0, len(c.state.NewCardIDs))
	for _, id := range c.state.NewCardIDs {
		if _, ok := owned[id]; ok {
			kept = append(kept, id)
		}
	}
	c.state.NewCardIDs = kept
	c.persistNewCardsLocked()
}

func (c *Cards) persistNewCardsLocked() {
	if c.state.NewCardsOwnerID == "" {
		return
	}
	c.persist.TrySetJSON(newCardsKey(c.state.NewCardsOwnerID), c.state.NewCardIDs)
}

func (c *Cards) loadNewCards(userID string) []string {
	var stored []any
	if !c.persist.TryGetJSON(newCardsKey(userID), &stored) {
		return []string{}
	}
	ids := make([]string, 0, len(stored))
	for _, v := range stored {
		if id, ok := v.(string); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

func (c *Cards) readCatalogCache() map[string]json.RawMessage {
	var entries map[string]json.RawMessage
	if !c.persist.TryGetJSON(catalogCacheKey, &entries) || entries == nil {
		return make(map[string]json.RawMessage)
	}
	return entries
}

func (c *Cards) catalogFromStorage(key string) (*domain.Page[domain.Card], bool) {
	entries := c.readCatalogCache()
	raw, ok := entries[key]
	if !ok {
		lookup(cacheNameCatalog, metrics.TierStorage, metrics.ResultMiss)
		return nil, false
	}

	var entry catalogEntry
	if err := json.Unmarshal(raw, &entry); err != nil || entry.Data == nil {
		lookup(cacheNameCatalog, metrics.TierStorage, metrics.ResultMiss)
		return nil, false
	}

	if c.now().UnixMilli() > entry.ExpiresAt {
		delete(entries, key)
		c.persist.TrySetJSON(catalogCacheKey, entries)
		lookup(cacheNameCatalog, metrics.TierStorage, metrics.ResultExpired)
		metrics.CacheInvalidationsTotal.WithLabelValues(cacheNameCatalog, invalidationExpired).Inc()
		return nil, false
	}

	lookup(cacheNameCatalog, metrics.TierStorage, metrics.ResultHit)
	return entry.Data, true
}

func (c *Cards) catalogToStorage(key string, data *domain.Page[domain.Card]) {
	raw, err := json.Marshal(catalogEntry{
		Data:      data,
		ExpiresAt: c.now().Add(c.catalogTTL).UnixMilli(),
	})
	if err != nil {
		c.log.Debug("encoding catalog entry", "key", key, "error", err)
		return
	}
	entries := c.readCatalogCache()
	entries[key] = raw
	c.persist.TrySetJSON(catalogCacheKey, entries)
}

func (c *Cards) inventoryFromStorage(userID string) ([]domain.Card, bool) {
	var entry inventoryEntry
	if !c.persist.TryGetJSON(inventoryKey(userID), &entry) || entry.Data == nil || entry.ExpiresAt == nil {
		lookup(cacheNameInventory, metrics.TierStorage, metrics.ResultMiss)
		return nil, false
	}

	if c.now().UnixMilli() > *entry.ExpiresAt {
		c.persist.TryRemove(inventoryKey(userID))
		lookup(cacheNameInventory, metrics.TierStorage, metrics.ResultExpired)
		metrics.CacheInvalidationsTotal.WithLabelValues(cacheNameInventory, invalidationExpired).Inc()
		return nil, false
	}

	lookup(cacheNameInventory, metrics.TierStorage, metrics.ResultHit)
	return *entry.Data, true
}

func (c *Cards) inventoryToStorage(userID string, cards []domain.Card) {
	expiresAt := c.now().Add(c.inventoryTTL).UnixMilli()
	c.persist.TrySetJSON(inventoryKey(userID), inventoryEntry{Data: &cards, ExpiresAt: &expiresAt})
}

func (c *Cards) emit(action string) {
	c.obs.notify(Event{Store: "cards", Action: action})
}

func lookup(cache, tier, result string) {
	metrics.CacheLookupsTotal.WithLabelValues(cache, tier, result).Inc()
}

func userIDOf(u *domain.UserProfile) string {
	if u == nil {
		return ""
	}
	return u.ID
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
