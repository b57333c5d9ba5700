package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"

	"futsalku-client/internal/pkg/errs"
)

// Error is the normalized shape every failed call collapses into, regardless
// of whether the failure was transport-level or a server-side rejection.
type Error struct {
	Message string
	Code    string
	Status  int
	// Fields holds the field-keyed validation map when the server returned
	// one; Message then carries a representative summary.
	Fields map[string]string
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

// newTransportError wraps a no-response failure (DNS, refused connection,
// timeout). Marked ErrTransport so the UI can flip the offline banner.
func newTransportError(err error) error {
	apiErr := &Error{Message: "server unreachable", Code: "TRANSPORT"}
	return errs.Mark(errs.Wrap(err, apiErr.Message), errs.ErrTransport)
}

// newStatusError converts an error envelope into a marked *Error. The
// envelope message is either a plain string or a field->message object; for
// the object form the value under the smallest key becomes the representative
// summary so toasts stay deterministic.
func newStatusError(status int, rawMessage json.RawMessage) error {
	apiErr := &Error{Status: status, Code: codeFor(status)}

	var msg string
	if err := json.Unmarshal(rawMessage, &msg); err == nil {
		apiErr.Message = msg
	} else {
		var fields map[string]string
		if err := json.Unmarshal(rawMessage, &fields); err == nil && len(fields) > 0 {
			apiErr.Fields = fields
			apiErr.Message = fields[smallestKey(fields)]
		} else {
			apiErr.Message = http.StatusText(status)
		}
	}

	switch status {
	case http.StatusUnauthorized:
		return errs.Mark(apiErr, errs.ErrUnauthorized)
	case http.StatusForbidden:
		return errs.Mark(apiErr, errs.ErrForbidden)
	case http.StatusNotFound:
		return errs.Mark(apiErr, errs.ErrNotFound)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		marked := errs.Mark(apiErr, errs.ErrValidation)
		// a rejected slotId means the slot was taken between render and submit
		if _, taken := apiErr.Fields["slotId"]; taken {
			marked = errs.Mark(marked, errs.ErrSlotUnavailable)
		}
		return marked
	default:
		return apiErr
	}
}

func codeFor(status int) string {
	switch {
	case status == http.StatusUnauthorized:
		return "UNAUTHORIZED"
	case status == http.StatusForbidden:
		return "FORBIDDEN"
	case status == http.StatusNotFound:
		return "NOT_FOUND"
	case status >= 400 && status < 500:
		return "VALIDATION"
	default:
		return "SERVER"
	}
}

func smallestKey(m map[string]string) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys[0]
}
