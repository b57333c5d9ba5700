package request

import (
	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	FieldID uuid.UUID `json:"fieldId" validate:"required"`
	SlotID  uuid.UUID `json:"slotId" validate:"required"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=CONFIRMED CANCELLED"`
}
