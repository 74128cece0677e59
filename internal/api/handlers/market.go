package handlers

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	domain "github.com/donaldgifford/card-market/pkg/types"
)

// Marketplace errors mapped to HTTP statuses by the handlers.
var (
	ErrDuplicateEmail     = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrCardNotFound       = errors.New("card not found")
	ErrTradeNotFound      = errors.New("trade not found")
	ErrNotOwner           = errors.New("trade belongs to another user")
	ErrCardNotOwned       = errors.New("card not owned")
)

type account struct {
	profile      domain.UserProfile
	passwordHash []byte
	cards        []string
}

// Marketplace holds users, the card catalog, inventories, and trades in
// memory. It is safe for concurrent use.
type Marketplace struct {
	mu       sync.RWMutex
	nowFunc  func() time.Time
	cost     int
	catalog  []domain.Card
	cardByID map[string]domain.Card
	accounts map[string]*account
	byEmail  map[string]string
	trades   []domain.Trade
}

// MarketOption configures a Marketplace.
type MarketOption func(*Marketplace)

// WithNowFunc sets the clock used for creation timestamps.
func WithNowFunc(fn func() time.Time) MarketOption {
	return func(m *Marketplace) {
		m.nowFunc = fn
	}
}

// WithBcryptCost sets the password hashing cost. Tests use bcrypt.MinCost.
func WithBcryptCost(cost int) MarketOption {
	return func(m *Marketplace) {
		m.cost = cost
	}
}

// NewMarketplace creates a marketplace whose catalog holds cards in order.
func NewMarketplace(cards []domain.Card, opts ...MarketOption) *Marketplace {
	m := &Marketplace{
		nowFunc:  time.Now,
		cost:     bcrypt.DefaultCost,
		catalog:  slices.Clone(cards),
		cardByID: make(map[string]domain.Card, len(cards)),
		accounts: make(map[string]*account),
		byEmail:  make(map[string]string),
	}
	for _, opt := range opts {
		opt(m)
	}
	for _, c := range cards {
		m.cardByID[c.ID] = c
	}
	return m
}

var cardNames = []string{
	"Dragao Rubro", "Golem de Pedra", "Fenix Dourada", "Serpente Marinha",
	"Cavaleiro Sombrio", "Mago do Gelo", "Lobo Espectral", "Tita de Ferro",
	"Sereia Encantada", "Grifo Real", "Basilisco", "Quimera Ancestral",
}

// SeedCatalog generates n catalog cards with fresh ids.
func SeedCatalog(n int, now time.Time) []domain.Card {
	cards := make([]domain.Card, 0, n)
	for i := range n {
		name := cardNames[i%len(cardNames)]
		if round := i / len(cardNames); round > 0 {
			name = fmt.Sprintf("%s %d", name, round+1)
		}
		id := uuid.NewString()
		cards = append(cards, domain.Card{
			ID:          id,
			Name:        name,
			Description: "Carta colecionavel " + name + ".",
			ImageURL:    "https://picsum.photos/seed/" + id + "/300/420",
			CreatedAt:   domain.FormatTimestamp(now.Add(-time.Duration(i) * time.Hour)),
		})
	}
	return cards
}

// Register creates an account and returns its id.
func (m *Marketplace) Register(name, email, password string) (string, error) {
	email = normalizeEmail(email)

	hash, err := bcrypt.GenerateFromPassword([]byte(password), m.cost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byEmail[email]; ok {
		return "", ErrDuplicateEmail
	}
	id := uuid.NewString()
	m.accounts[id] = &account{
		profile:      domain.UserProfile{ID: id, Name: strings.TrimSpace(name), Email: email},
		passwordHash: hash,
	}
	m.byEmail[email] = id
	return id, nil
}

// Authenticate checks credentials and returns the profile.
func (m *Marketplace) Authenticate(email, password string) (domain.UserProfile, error) {
	m.mu.RLock()
	id, ok := m.byEmail[normalizeEmail(email)]
	var acc *account
	if ok {
		acc = m.accounts[id]
	}
	m.mu.RUnlock()

	if acc == nil {
		return domain.UserProfile{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(password)); err != nil {
		return domain.UserProfile{}, ErrInvalidCredentials
	}
	return acc.profile, nil
}

// Profile returns the user and the cards they own.
func (m *Marketplace) Profile(userID string) (*domain.MeResponse, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	acc, ok := m.accounts[userID]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &domain.MeResponse{UserProfile: acc.profile, Cards: m.cardsLocked(acc.cards)}, nil
}

// Catalog returns one page of the catalog.
func (m *Marketplace) Catalog(page, rpp int) domain.Page[domain.Card] {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return paginate(m.catalog, page, rpp)
}

// Inventory returns the cards userID owns, in acquisition order.
func (m *Marketplace) Inventory(userID string) ([]domain.Card, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	acc, ok := m.accounts[userID]
	if !ok {
		return nil, ErrUserNotFound
	}
	return m.cardsLocked(acc.cards), nil
}

// AddCards adds catalog cards to userID's inventory. Cards already owned
// are skipped. Nothing is added when any id is unknown.
func (m *Marketplace) AddCards(userID string, cardIDs []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	acc, ok := m.accounts[userID]
	if !ok {
		return ErrUserNotFound
	}
	for _, id := range cardIDs {
		if _, ok := m.cardByID[id]; !ok {
			return fmt.Errorf("%w: %s", ErrCardNotFound, id)
		}
	}
	for _, id := range cardIDs {
		if !slices.Contains(acc.cards, id) {
			acc.cards = append(acc.cards, id)
		}
	}
	return nil
}

// Trades returns one page of trades, newest first.
func (m *Marketplace) Trades(page, rpp int) domain.Page[domain.Trade] {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return paginate(m.trades, page, rpp)
}

// CreateTrade publishes a trade for userID. Offered cards must be owned by
// userID; requested cards must exist in the catalog.
func (m *Marketplace) CreateTrade(userID string, req domain.CreateTradeRequest) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	acc, ok := m.accounts[userID]
	if !ok {
		return "", ErrUserNotFound
	}

	trade := domain.Trade{
		ID:         uuid.NewString(),
		UserID:     userID,
		CreatedAt:  domain.FormatTimestamp(m.nowFunc()),
		User:       domain.TradeUser{Name: acc.profile.Name},
		TradeCards: make([]domain.TradeCard, 0, len(req.Cards)),
	}
	for _, tc := range req.Cards {
		card, ok := m.cardByID[tc.CardID]
		if !ok {
			return "", fmt.Errorf("%w: %s", ErrCardNotFound, tc.CardID)
		}
		if tc.Type == domain.TradeCardOffering && !slices.Contains(acc.cards, tc.CardID) {
			return "", fmt.Errorf("%w: %s", ErrCardNotOwned, tc.CardID)
		}
		trade.TradeCards = append(trade.TradeCards, domain.TradeCard{
			ID:      uuid.NewString(),
			CardID:  tc.CardID,
			TradeID: trade.ID,
			Type:    tc.Type,
			Card:    card,
		})
	}

	m.trades = slices.Insert(m.trades, 0, trade)
	return trade.ID, nil
}

// DeleteTrade removes a trade owned by userID.
func (m *Marketplace) DeleteTrade(userID, tradeID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := slices.IndexFunc(m.trades, func(t domain.Trade) bool { return t.ID == tradeID })
	if idx < 0 {
		return ErrTradeNotFound
	}
	if m.trades[idx].UserID != userID {
		return ErrNotOwner
	}
	m.trades = slices.Delete(m.trades, idx, idx+1)
	return nil
}

func (m *Marketplace) cardsLocked(ids []string) []domain.Card {
	out := make([]domain.Card, 0, len(ids))
	for _, id := range ids {
		out = append(out, m.cardByID[id])
	}
	return out
}

func paginate[T any](items []T, page, rpp int) domain.Page[T] {
	start := min((page-1)*rpp, len(items))
	end := min(start+rpp, len(items))
	list := make([]T, end-start)
	copy(list, items[start:end])
	return domain.Page[T]{
		List: list,
		RPP:  rpp,
		Page: page,
		More: end < len(items),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
