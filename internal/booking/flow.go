// Package booking holds the client-side booking lifecycles: the submission
// flow (slot selection through server acknowledgement) and the cancellation
// flow (confirm-gated destructive call). Both are driven from the single UI
// goroutine, matching the serialized event-loop model of the booking pages,
// so they carry no locks of their own.
package booking

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"futsalku-client/internal/api/request"
	"futsalku-client/internal/api/response"
	"futsalku-client/internal/pkg/errs"
	"futsalku-client/internal/view/slotpicker"

	"github.com/google/uuid"
)

// BookingAPI is the slice of the REST client the flows need.
type BookingAPI interface {
	CreateBooking(ctx context.Context, req request.CreateBookingRequest) (*response.Booking, error)
	UpdateBookingStatus(ctx context.Context, id uuid.UUID, status response.BookingStatus) (*response.Booking, error)
}

type State int

const (
	StateIdle State = iota
	StateSlotSelected
	StateSubmitting
	StateSuccess
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSlotSelected:
		return "slot_selected"
	case StateSubmitting:
		return "submitting"
	case StateSuccess:
		return "success"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Confirmation is the success display after the server acknowledges a
// booking: field name, human-readable time range, and total price.
type Confirmation struct {
	BookingID  uuid.UUID
	FieldName  string
	TimeRange  string
	TotalPrice int64
}

// Flow runs one booking submission for one field:
// Idle -> SlotSelected -> Submitting -> {Success | Failed}.
type Flow struct {
	api     BookingAPI
	logger  *slog.Logger
	loc     *time.Location
	fieldID uuid.UUID

	state        State
	selection    slotpicker.Selection
	lastError    error
	confirmation *Confirmation
}

func NewFlow(api BookingAPI, logger *slog.Logger, loc *time.Location, fieldID uuid.UUID) *Flow {
	return &Flow{
		api:     api,
		logger:  logger,
		loc:     loc,
		fieldID: fieldID,
		state:   StateIdle,
	}
}

func (f *Flow) State() State { return f.state }

func (f *Flow) Selection() slotpicker.Selection { return f.selection }

func (f *Flow) LastError() error { return f.lastError }

func (f *Flow) Confirmation() *Confirmation { return f.confirmation }

// CanSubmit reports whether the call-to-action control is enabled. It goes
// dark while a submission is outstanding.
func (f *Flow) CanSubmit() bool {
	return f.state == StateSlotSelected || f.state == StateFailed
}

// Select applies one slot click through the picker's toggle semantics.
// Ignored while a submission is in flight or after success.
func (f *Flow) Select(slot response.TimeSlot) slotpicker.Selection {
	if f.state == StateSubmitting || f.state == StateSuccess {
		return f.selection
	}

	f.selection = slotpicker.Toggle(f.selection, slot)
	if f.selection.Valid {
		f.state = StateSlotSelected
	} else {
		f.state = StateIdle
	}
	return f.selection
}

// Submit sends the booking for the selected slot. On success the selection
// is cleared and a confirmation is produced; on failure the selection is
// preserved so the user can retry without reselecting.
func (f *Flow) Submit(ctx context.Context) (*Confirmation, error) {
	switch f.state {
	case StateSubmitting:
		return nil, errs.ErrSubmitInProgress
	case StateSlotSelected, StateFailed:
	default:
		return nil, errs.ErrNoSlotSelected
	}

	f.state = StateSubmitting
	booked, err := f.api.CreateBooking(ctx, request.CreateBookingRequest{
		FieldID: f.fieldID,
		SlotID:  f.selection.SlotID,
	})
	if err != nil {
		f.logger.Warn("booking submission rejected", "field_id", f.fieldID, "error", err)
		f.state = StateFailed
		f.lastError = err
		return nil, err
	}

	f.logger.Info("booking created",
		"booking_id", booked.ID, "field", booked.Field.Name, "total_price", booked.TotalPrice)

	f.state = StateSuccess
	f.selection = slotpicker.None()
	f.lastError = nil
	f.confirmation = &Confirmation{
		BookingID:  booked.ID,
		FieldName:  booked.Field.Name,
		TimeRange:  formatTimeRange(booked.Slot, f.loc),
		TotalPrice: booked.TotalPrice,
	}
	return f.confirmation, nil
}

// Reset returns a finished flow to Idle for the next booking.
func (f *Flow) Reset() {
	if f.state == StateSubmitting {
		return
	}
	f.state = StateIdle
	f.selection = slotpicker.None()
	f.lastError = nil
	f.confirmation = nil
}

func formatTimeRange(slot response.BookingSlot, loc *time.Location) string {
	start := slot.StartTime.In(loc)
	end := slot.EndTime.In(loc)
	return fmt.Sprintf("%s %s - %s",
		start.Format("02 Jan 2006"), start.Format("15:04"), end.Format("15:04"))
}

// Approve drives the admin side of the lifecycle: PENDING -> CONFIRMED.
// Terminal bookings refuse the transition before any network call.
func Approve(ctx context.Context, api BookingAPI, b response.Booking) (*response.Booking, error) {
	if !b.Status.CanTransitionTo(response.BookingConfirmed) {
		return nil, errs.Mark(
			errs.New(fmt.Sprintf("booking %s is %s", b.ID, b.Status)),
			errs.ErrBookingTerminal,
		)
	}
	return api.UpdateBookingStatus(ctx, b.ID, response.BookingConfirmed)
}
