package response

import (
	"time"

	"github.com/google/uuid"
)

// Field is a read-only projection of a rentable futsal court. Slots is only
// populated by the detail endpoint; list responses leave it empty.
type Field struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	Price       int64      `json:"price"`
	Image       *string    `json:"image,omitempty"`
	Slots       []TimeSlot `json:"slots,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// TimeSlot is a bookable time window for one field. It is created server-side
// when an admin generates a schedule and never mutated by this client.
type TimeSlot struct {
	ID        uuid.UUID  `json:"id"`
	StartTime time.Time  `json:"startTime"`
	EndTime   time.Time  `json:"endTime"`
	Booked    bool       `json:"booked"`
	BookingID *uuid.UUID `json:"bookingId,omitempty"`
}
