package api

import (
	"context"
	"net/http"

	"futsalku-client/internal/api/request"
	"futsalku-client/internal/api/response"
)

// Login establishes the session. The server sets the session cookie; it lands
// in the client's jar and rides along on every later call.
func (c *Client) Login(ctx context.Context, req request.LoginRequest) (*response.User, error) {
	if err := request.Validate(req); err != nil {
		return nil, err
	}

	var user response.User
	if err := c.do(ctx, http.MethodPost, "/user/login", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) Register(ctx context.Context, req request.RegisterRequest) (*response.User, error) {
	if err := request.Validate(req); err != nil {
		return nil, err
	}

	var user response.User
	if err := c.do(ctx, http.MethodPost, "/user/register", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/user/logout", nil, nil)
}

func (c *Client) Me(ctx context.Context) (*response.User, error) {
	var user response.User
	if err := c.do(ctx, http.MethodGet, "/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
