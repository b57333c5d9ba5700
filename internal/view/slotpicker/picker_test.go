//go:build unit

package slotpicker_test

import (
	"testing"
	"time"

	"futsalku-client/internal/api/response"
	"futsalku-client/internal/pkg/clock"
	"futsalku-client/internal/view/slotpicker"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jakarta = mustLoadJakarta()

func mustLoadJakarta() *time.Location {
	loc, err := time.LoadLocation("Asia/Jakarta")
	if err != nil {
		panic(err)
	}
	return loc
}

// fixed "now": 2025-03-10 09:30 WIB
func testPicker() (*slotpicker.Picker, *clock.MockClock) {
	mock := clock.NewMockClock(time.Date(2025, 3, 10, 9, 30, 0, 0, jakarta))
	return slotpicker.New(mock, jakarta), mock
}

func slotAt(day, hour int, booked bool) response.TimeSlot {
	start := time.Date(2025, 3, day, hour, 0, 0, 0, jakarta)
	return response.TimeSlot{
		ID:        uuid.New(),
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Booked:    booked,
	}
}

func TestBuild_ExcludesPastDates(t *testing.T) {
	picker, _ := testPicker()

	view := picker.Build([]response.TimeSlot{
		slotAt(9, 10, false),  // yesterday
		slotAt(10, 10, false), // today
		slotAt(11, 10, false), // tomorrow
	}, "")

	require.Equal(t, slotpicker.StateReady, view.State)
	if diff := cmp.Diff([]string{"2025-03-10", "2025-03-11"}, view.Dates); diff != "" {
		t.Errorf("navigable dates mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "2025-03-10", view.ActiveDate, "earliest available date becomes active")
}

func TestBuild_UTCStoredSlotGroupsByLocalDate(t *testing.T) {
	picker, _ := testPicker()

	// 2025-03-10 18:00 UTC is 2025-03-11 01:00 WIB: the group key must
	// follow the civil date in Asia/Jakarta, not the UTC date.
	start := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)
	view := picker.Build([]response.TimeSlot{{
		ID:        uuid.New(),
		StartTime: start,
		EndTime:   start.Add(time.Hour),
	}}, "")

	require.Equal(t, slotpicker.StateReady, view.State)
	assert.Equal(t, []string{"2025-03-11"}, view.Dates)
}

func TestBuild_SelectedDateSticksWhileAvailable(t *testing.T) {
	picker, _ := testPicker()
	slots := []response.TimeSlot{slotAt(10, 10, false), slotAt(12, 10, false)}

	view := picker.Build(slots, "2025-03-12")
	assert.Equal(t, "2025-03-12", view.ActiveDate)

	// unknown selection falls back to the earliest available date
	view = picker.Build(slots, "not-a-date")
	assert.Equal(t, "2025-03-10", view.ActiveDate)

	// a past selection also falls back instead of resurrecting a past date
	view = picker.Build(slots, "2025-03-01")
	assert.Equal(t, "2025-03-10", view.ActiveDate)
}

func TestBuild_EmptyStatesAreDistinct(t *testing.T) {
	picker, _ := testPicker()

	noSlots := picker.Build(nil, "")
	assert.Equal(t, slotpicker.StateNoSlots, noSlots.State)

	allExpired := picker.Build([]response.TimeSlot{slotAt(8, 10, false), slotAt(9, 19, true)}, "")
	assert.Equal(t, slotpicker.StateAllExpired, allExpired.State)

	// a future date with zero slots is its own state, not "no slots"
	emptyDate := picker.Build([]response.TimeSlot{slotAt(10, 10, false)}, "2025-03-15")
	require.Equal(t, slotpicker.StateEmptyDate, emptyDate.State)
	assert.Equal(t, "2025-03-15", emptyDate.ActiveDate)
	assert.Empty(t, emptyDate.Available)
}

func TestNavigation_BoundedNoWraparound(t *testing.T) {
	picker, _ := testPicker()
	slots := []response.TimeSlot{slotAt(10, 10, false), slotAt(11, 10, false), slotAt(13, 10, false)}

	view := picker.Build(slots, "2025-03-10")
	assert.False(t, view.HasPrev())
	assert.Equal(t, "2025-03-10", view.Prev(), "prev at first index is a no-op")
	assert.Equal(t, "2025-03-11", view.Next())

	view = picker.Build(slots, "2025-03-13")
	assert.False(t, view.HasNext())
	assert.Equal(t, "2025-03-13", view.Next(), "next at last index is a no-op")
	assert.Equal(t, "2025-03-11", view.Prev())
}

func TestCounters_DerivedPerDate(t *testing.T) {
	picker, _ := testPicker()
	slots := []response.TimeSlot{
		slotAt(10, 10, false),
		slotAt(10, 11, true),
		slotAt(10, 12, false),
		slotAt(11, 10, true),
	}

	view := picker.Build(slots, "2025-03-10")
	assert.Equal(t, 2, view.AvailableCount())
	assert.Equal(t, 1, view.BookedCount())
	assert.Equal(t, "2 tersedia / 1 terisi", view.Summary())

	view = picker.Build(slots, view.Next())
	assert.Equal(t, "0 tersedia / 1 terisi", view.Summary())
}

func TestBuild_SlotsSortedByStartTime(t *testing.T) {
	picker, _ := testPicker()
	late := slotAt(10, 20, false)
	early := slotAt(10, 8, false)
	mid := slotAt(10, 14, false)

	view := picker.Build([]response.TimeSlot{late, early, mid}, "")
	require.Len(t, view.Available, 3)
	assert.Equal(t, early.ID, view.Available[0].ID)
	assert.Equal(t, mid.ID, view.Available[1].ID)
	assert.Equal(t, late.ID, view.Available[2].ID)
}

func TestToggle_SelectDeselect(t *testing.T) {
	free := slotAt(10, 10, false)
	other := slotAt(10, 11, false)
	booked := slotAt(10, 12, true)

	sel := slotpicker.Toggle(slotpicker.None(), free)
	require.True(t, sel.Valid)
	assert.Equal(t, free.ID, sel.SlotID)

	// reselecting the same slot yields a deselect, not a second select
	sel = slotpicker.Toggle(sel, free)
	assert.Equal(t, slotpicker.None(), sel)

	// switching slots replaces the selection
	sel = slotpicker.Toggle(slotpicker.Select(free.ID), other)
	assert.Equal(t, other.ID, sel.SlotID)

	// a booked slot can never become the active selection
	sel = slotpicker.Toggle(slotpicker.None(), booked)
	assert.False(t, sel.Valid)
	sel = slotpicker.Toggle(slotpicker.Select(free.ID), booked)
	assert.Equal(t, free.ID, sel.SlotID, "click on booked slot is a no-op")
}

func TestBuild_TodayBoundaryMovesWithClock(t *testing.T) {
	picker, mock := testPicker()
	slots := []response.TimeSlot{slotAt(10, 10, false), slotAt(11, 10, false)}

	view := picker.Build(slots, "")
	require.Len(t, view.Dates, 2)

	// a day later the 10th has expired from the navigable set
	mock.Add(24 * time.Hour)
	view = picker.Build(slots, "")
	assert.Equal(t, []string{"2025-03-11"}, view.Dates)

	mock.Add(48 * time.Hour)
	view = picker.Build(slots, "")
	assert.Equal(t, slotpicker.StateAllExpired, view.State)
}
