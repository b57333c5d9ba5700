package api

import (
	"context"
	"net/http"

	"futsalku-client/internal/api/request"
	"futsalku-client/internal/api/response"

	"github.com/google/uuid"
)

func (c *Client) ListBookings(ctx context.Context) ([]response.Booking, error) {
	var bookings []response.Booking
	if err := c.do(ctx, http.MethodGet, "/booking", nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (c *Client) CreateBooking(ctx context.Context, req request.CreateBookingRequest) (*response.Booking, error) {
	if err := request.Validate(req); err != nil {
		return nil, err
	}

	var booking response.Booking
	if err := c.do(ctx, http.MethodPost, "/booking", req, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// UpdateBookingStatus drives the one-way PENDING -> {CONFIRMED | CANCELLED}
// progression: users cancel their own bookings, admins confirm.
func (c *Client) UpdateBookingStatus(ctx context.Context, id uuid.UUID, status response.BookingStatus) (*response.Booking, error) {
	req := request.UpdateBookingStatusRequest{Status: string(status)}
	if err := request.Validate(req); err != nil {
		return nil, err
	}

	var booking response.Booking
	if err := c.do(ctx, http.MethodPatch, "/booking/"+id.String()+"/status", req, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}
