// Package domain defines the core business types for the card marketplace.
package domain

import (
	"fmt"
	"slices"
	"time"
)

// TradeCardType marks which side of a trade a card sits on.
type TradeCardType string

// Trade card type constants.
const (
	TradeCardOffering  TradeCardType = "OFFERING"
	TradeCardReceiving TradeCardType = "RECEIVING"
)

// UserProfile identifies the signed-in user.
type UserProfile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Card is an immutable catalog entry. Its identity is ID.
type Card struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	CreatedAt   string `json:"createdAt"`
}

// timestampLayouts are the createdAt shapes ParseTimestamp understands.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.DateOnly,
}

// ParseTimestamp reads an API createdAt value. Timestamps are carried as the
// API sends them; ok is false when s has none of the known layouts.
func ParseTimestamp(s string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatTimestamp renders t the way the API sends createdAt.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// TradeCard links a card to a trade offer.
type TradeCard struct {
	ID      string        `json:"id"`
	CardID  string        `json:"cardId"`
	TradeID string        `json:"tradeId"`
	Type    TradeCardType `json:"type"`
	Card    Card          `json:"card"`
}

// TradeUser is the public part of a trade owner's profile.
type TradeUser struct {
	Name string `json:"name"`
}

// Trade is an offer to exchange the OFFERING cards for the RECEIVING cards.
type Trade struct {
	ID         string      `json:"id"`
	UserID     string      `json:"userId"`
	CreatedAt  string      `json:"createdAt"`
	User       TradeUser   `json:"user"`
	TradeCards []TradeCard `json:"tradeCards"`
}

// Offering returns the cards the trade owner gives away.
func (t *Trade) Offering() []TradeCard {
	return t.cardsOfType(TradeCardOffering)
}

// Receiving returns the cards the trade owner asks for.
func (t *Trade) Receiving() []TradeCard {
	return t.cardsOfType(TradeCardReceiving)
}

func (t *Trade) cardsOfType(kind TradeCardType) []TradeCard {
	var out []TradeCard
	for i := range t.TradeCards {
		if t.TradeCards[i].Type == kind {
			out = append(out, t.TradeCards[i])
		}
	}
	return out
}

// Page is one page of a paginated listing.
type Page[T any] struct {
	List []T  `json:"list"`
	RPP  int  `json:"rpp"`
	Page int  `json:"page"`
	More bool `json:"more"`
}

// Without returns a copy of the page with the items matching drop removed.
// The order of the remaining items is preserved.
func (p *Page[T]) Without(drop func(T) bool) *Page[T] {
	out := *p
	out.List = slices.DeleteFunc(slices.Clone(p.List), drop)
	return &out
}

// Clone returns a copy of the page that shares no list storage with p. A nil
// page clones to nil.
func (p *Page[T]) Clone() *Page[T] {
	if p == nil {
		return nil
	}
	out := *p
	out.List = slices.Clone(p.List)
	return &out
}

// PageKey returns the composite cache key for a page size and page number.
func PageKey(page, rpp int) string {
	return fmt.Sprintf("%d:%d", rpp, page)
}

// RegisterRequest is the body of POST /register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterResponse is returned by POST /register.
type RegisterResponse struct {
	UserID string `json:"userId"`
}

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned by POST /login.
type LoginResponse struct {
	Token string      `json:"token"`
	User  UserProfile `json:"user"`
}

// MeResponse is returned by GET /me.
type MeResponse struct {
	UserProfile
	Cards []Card `json:"cards"`
}

// AddCardsRequest is the body of POST /me/cards.
type AddCardsRequest struct {
	CardIDs []string `json:"cardIds"`
}

// TradeCardRequest is one card of a CreateTradeRequest.
type TradeCardRequest struct {
	CardID string        `json:"cardId"`
	Type   TradeCardType `json:"type"`
}

// CreateTradeRequest is the body of POST /trades.
type CreateTradeRequest struct {
	Cards []TradeCardRequest `json:"cards"`
}

// NewCreateTradeRequest builds a trade request from offered and received card IDs.
func NewCreateTradeRequest(offering, receiving []string) CreateTradeRequest {
	req := CreateTradeRequest{Cards: make([]TradeCardRequest, 0, len(offering)+len(receiving))}
	for _, id := range offering {
		req.Cards = append(req.Cards, TradeCardRequest{CardID: id, Type: TradeCardOffering})
	}
	for _, id := range receiving {
		req.Cards = append(req.Cards, TradeCardRequest{CardID: id, Type: TradeCardReceiving})
	}
	return req
}

// CreateTradeResponse is returned by POST /trades.
type CreateTradeResponse struct {
	TradeID string `json:"tradeId"`
}
