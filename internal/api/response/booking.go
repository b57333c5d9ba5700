package response

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
)

// Terminal reports whether the status permits no further transitions.
// Status is a one-way progression PENDING -> {CONFIRMED | CANCELLED}.
func (s BookingStatus) Terminal() bool {
	return s == BookingConfirmed || s == BookingCancelled
}

func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	return s == BookingPending && next.Terminal()
}

type Booking struct {
	ID         uuid.UUID     `json:"id"`
	Status     BookingStatus `json:"status"`
	TotalPrice int64         `json:"totalPrice"`
	CreatedAt  time.Time     `json:"createdAt"`
	User       BookingUser   `json:"user"`
	Field      BookingField  `json:"field"`
	Slot       BookingSlot   `json:"slot"`
}

type BookingUser struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type BookingField struct {
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

type BookingSlot struct {
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}
