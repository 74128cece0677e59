package client

import (
	"context"
	"net/http"
	"net/url"

	domain "github.com/donaldgifford/card-market/pkg/types"
)

// ListTrades returns one page of open trade offers.
func (c *Client) ListTrades(ctx context.Context, page, rpp int) (*domain.Page[domain.Trade], error) {
	var resp domain.Page[domain.Trade]
	if err := c.Do(ctx, Request{
		Path:      "/trades?" + pageQuery(page, rpp),
		Operation: "get_trades",
	}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateTrade publishes a trade offer on behalf of the user owning token.
func (c *Client) CreateTrade(
	ctx context.Context,
	token string,
	req domain.CreateTradeRequest,
) (*domain.CreateTradeResponse, error) {
	var resp domain.CreateTradeResponse
	if err := c.Do(ctx, Request{
		Method:    http.MethodPost,
		Path:      "/trades",
		Body:      req,
		Token:     token,
		Operation: "create_trade",
	}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteTrade removes a trade offer owned by the user owning token.
func (c *Client) DeleteTrade(ctx context.Context, token, tradeID string) error {
	return c.Do(ctx, Request{
		Method:    http.MethodDelete,
		Path:      "/trades/" + url.PathEscape(tradeID),
		Token:     token,
		Operation: "delete_trade",
	}, nil)
}
