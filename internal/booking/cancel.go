package booking

import (
	"context"
	"fmt"
	"log/slog"

	"futsalku-client/internal/api/response"
	"futsalku-client/internal/pkg/errs"
)

type CancelState int

const (
	CancelIdle CancelState = iota
	CancelConfirmPending
	Cancelling
	Cancelled
	CancelFailed
)

func (s CancelState) String() string {
	switch s {
	case CancelIdle:
		return "idle"
	case CancelConfirmPending:
		return "confirm_pending"
	case Cancelling:
		return "cancelling"
	case Cancelled:
		return "cancelled"
	case CancelFailed:
		return "failed"
	}
	return "unknown"
}

// CancelFlow gates the destructive cancel call behind an explicit confirm
// step: Idle -> ConfirmPending -> Cancelling -> {Cancelled | Failed}.
// Declining from ConfirmPending performs no network call.
type CancelFlow struct {
	api     BookingAPI
	logger  *slog.Logger
	booking response.Booking
	state   CancelState
}

// NewCancelFlow scopes a cancellation to one existing PENDING or CONFIRMED
// booking. A booking already in a terminal CANCELLED state is refused.
func NewCancelFlow(api BookingAPI, logger *slog.Logger, b response.Booking) (*CancelFlow, error) {
	if b.Status == response.BookingCancelled {
		return nil, errs.Mark(
			errs.New(fmt.Sprintf("booking %s already cancelled", b.ID)),
			errs.ErrBookingTerminal,
		)
	}
	return &CancelFlow{api: api, logger: logger, booking: b, state: CancelIdle}, nil
}

func (f *CancelFlow) State() CancelState { return f.state }

func (f *CancelFlow) Booking() response.Booking { return f.booking }

// RequestCancel asks for confirmation. Allowed again after a failure.
func (f *CancelFlow) RequestCancel() error {
	switch f.state {
	case CancelIdle, CancelFailed:
		f.state = CancelConfirmPending
		return nil
	case Cancelled:
		return errs.ErrBookingTerminal
	default:
		return errs.ErrCancelNotPending
	}
}

// Decline backs out of the confirmation. The booking status is untouched and
// nothing goes over the wire.
func (f *CancelFlow) Decline() error {
	if f.state != CancelConfirmPending {
		return errs.ErrCancelNotPending
	}
	f.state = CancelIdle
	return nil
}

// Confirm fires the destructive call. Only reachable from ConfirmPending.
func (f *CancelFlow) Confirm(ctx context.Context) (*response.Booking, error) {
	if f.state != CancelConfirmPending {
		return nil, errs.ErrCancelNotPending
	}

	f.state = Cancelling
	updated, err := f.api.UpdateBookingStatus(ctx, f.booking.ID, response.BookingCancelled)
	if err != nil {
		f.logger.Warn("cancellation rejected", "booking_id", f.booking.ID, "error", err)
		f.state = CancelFailed
		return nil, err
	}

	f.logger.Info("booking cancelled", "booking_id", updated.ID)
	f.state = Cancelled
	f.booking = *updated
	return updated, nil
}
