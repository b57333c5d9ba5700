package api

import (
	"context"
	"net/http"
	"strconv"

	"futsalku-client/internal/api/request"
	"futsalku-client/internal/api/response"

	"github.com/google/uuid"
)

func (c *Client) ListFields(ctx context.Context) ([]response.Field, error) {
	var fields []response.Field
	if err := c.do(ctx, http.MethodGet, "/field", nil, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

func (c *Client) GetField(ctx context.Context, id uuid.UUID) (*response.Field, error) {
	var field response.Field
	if err := c.do(ctx, http.MethodGet, "/field/"+id.String(), nil, &field); err != nil {
		return nil, err
	}
	return &field, nil
}

func (c *Client) CreateField(ctx context.Context, req request.CreateFieldRequest, upload *request.FieldUpload) (*response.Field, error) {
	if err := request.Validate(req); err != nil {
		return nil, err
	}

	var field response.Field
	err := c.doMultipart(ctx, http.MethodPost, "/admin/field", fieldForm(req.Name, req.Description, req.Price), upload, &field)
	if err != nil {
		return nil, err
	}
	return &field, nil
}

func (c *Client) UpdateField(ctx context.Context, id uuid.UUID, req request.UpdateFieldRequest, upload *request.FieldUpload) (*response.Field, error) {
	if err := request.Validate(req); err != nil {
		return nil, err
	}

	var field response.Field
	err := c.doMultipart(ctx, http.MethodPut, "/admin/field/"+id.String(), fieldForm(req.Name, req.Description, req.Price), upload, &field)
	if err != nil {
		return nil, err
	}
	return &field, nil
}

func (c *Client) DeleteField(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/admin/field/"+id.String(), nil, nil)
}

func fieldForm(name string, description *string, price int64) map[string]string {
	form := map[string]string{
		"name":  name,
		"price": strconv.FormatInt(price, 10),
	}
	if description != nil {
		form["description"] = *description
	}
	return form
}
