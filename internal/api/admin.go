package api

import (
	"context"
	"net/http"

	"futsalku-client/internal/api/request"
	"futsalku-client/internal/api/response"
)

func (c *Client) ListAdmins(ctx context.Context) ([]response.User, error) {
	var admins []response.User
	if err := c.do(ctx, http.MethodGet, "/admin/admin", nil, &admins); err != nil {
		return nil, err
	}
	return admins, nil
}

func (c *Client) CreateAdmin(ctx context.Context, req request.CreateAdminRequest) (*response.User, error) {
	if err := request.Validate(req); err != nil {
		return nil, err
	}

	var admin response.User
	if err := c.do(ctx, http.MethodPost, "/admin/create", req, &admin); err != nil {
		return nil, err
	}
	return &admin, nil
}

func (c *Client) HeroStats(ctx context.Context) (*response.HeroStats, error) {
	var stats response.HeroStats
	if err := c.do(ctx, http.MethodGet, "/stats/hero", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
