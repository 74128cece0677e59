package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	domain "github.com/donaldgifford/card-market/pkg/types"
)

// ListCards returns one page of the public card catalog.
func (c *Client) ListCards(ctx context.Context, page, rpp int) (*domain.Page[domain.Card], error) {
	var resp domain.Page[domain.Card]
	if err := c.Do(ctx, Request{
		Path:      "/cards?" + pageQuery(page, rpp),
		Operation: "get_cards",
	}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListMyCards returns the inventory of the user owning token.
func (c *Client) ListMyCards(ctx context.Context, token string) ([]domain.Card, error) {
	var cards []domain.Card
	if err := c.Do(ctx, Request{
		Path:      "/me/cards",
		Token:     token,
		Operation: "get_my_cards",
	}, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

// AddMyCards adds the given catalog cards to the inventory of the user owning token.
func (c *Client) AddMyCards(ctx context.Context, token string, cardIDs []string) error {
	return c.Do(ctx, Request{
		Method:    http.MethodPost,
		Path:      "/me/cards",
		Body:      domain.AddCardsRequest{CardIDs: cardIDs},
		Token:     token,
		Operation: "add_my_cards",
	}, nil)
}

func pageQuery(page, rpp int) string {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("rpp", strconv.Itoa(rpp))
	return q.Encode()
}
