package errs

import "errors"

// Sentinel errors used as cockroachdb marks across the client.
// Call sites match them with errs.Is after api error normalization.
var (
	// Transport errors
	ErrTransport = errors.New("network unreachable")

	// API errors
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// Booking errors
	ErrSlotUnavailable  = errors.New("slot unavailable")
	ErrNoSlotSelected   = errors.New("no slot selected")
	ErrBookingTerminal  = errors.New("booking already finalized")
	ErrSubmitInProgress = errors.New("submission in progress")
	ErrCancelNotPending = errors.New("cancellation not awaiting confirmation")

	// Session errors
	ErrNotLoggedIn = errors.New("not logged in")
)
