package client

import (
	"context"
	"net/http"

	domain "github.com/donaldgifford/card-market/pkg/types"
)

// Register creates a new account. It does not sign the user in.
func (c *Client) Register(ctx context.Context, req domain.RegisterRequest) (*domain.RegisterResponse, error) {
	var resp domain.RegisterResponse
	if err := c.Do(ctx, Request{
		Method:    http.MethodPost,
		Path:      "/register",
		Body:      req,
		Operation: "register",
	}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Login exchanges credentials for a bearer token and the user's profile.
func (c *Client) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	var resp domain.LoginResponse
	if err := c.Do(ctx, Request{
		Method:    http.MethodPost,
		Path:      "/login",
		Body:      req,
		Operation: "login",
	}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Me returns the profile of the user owning token.
func (c *Client) Me(ctx context.Context, token string) (*domain.MeResponse, error) {
	var resp domain.MeResponse
	if err := c.Do(ctx, Request{
		Path:      "/me",
		Token:     token,
		Operation: "get_me",
	}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
