package api

import (
	"context"
	"net/http"

	"futsalku-client/internal/api/request"
	"futsalku-client/internal/api/response"

	"github.com/google/uuid"
)

func (c *Client) ListTimeSlots(ctx context.Context, fieldID uuid.UUID) ([]response.TimeSlot, error) {
	var slots []response.TimeSlot
	if err := c.do(ctx, http.MethodGet, "/timeslot/"+fieldID.String(), nil, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

// GenerateTimeSlots creates hourly slots for fieldID on the requested date.
// Admin only; the server rejects overlapping windows.
func (c *Client) GenerateTimeSlots(ctx context.Context, fieldID uuid.UUID, req request.GenerateTimeSlotsRequest) ([]response.TimeSlot, error) {
	if err := request.Validate(req); err != nil {
		return nil, err
	}

	var slots []response.TimeSlot
	if err := c.do(ctx, http.MethodPost, "/admin/timeslot/"+fieldID.String(), req, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}
