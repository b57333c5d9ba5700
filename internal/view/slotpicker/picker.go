// Package slotpicker derives the date-grouped slot-selection view for one
// field. Everything here is recomputed from the slot list on every call;
// nothing is cached, so the view can never go stale against its inputs.
// Selection itself lives with the caller (the booking flow), not in the
// picker.
package slotpicker

import (
	"fmt"
	"sort"
	"time"

	"futsalku-client/internal/api/response"
	"futsalku-client/internal/pkg/clock"

	"github.com/google/uuid"
)

// Selection is the caller-owned selected-slot value: either one slot or none.
type Selection struct {
	SlotID uuid.UUID
	Valid  bool
}

func Select(id uuid.UUID) Selection {
	return Selection{SlotID: id, Valid: true}
}

func None() Selection {
	return Selection{}
}

// Toggle applies one click to the current selection. A booked slot is a
// no-op, reselecting the active slot deselects it, anything else selects.
func Toggle(current Selection, slot response.TimeSlot) Selection {
	if slot.Booked {
		return current
	}
	if current.Valid && current.SlotID == slot.ID {
		return None()
	}
	return Select(slot.ID)
}

// State distinguishes the mutually exclusive render situations.
type State int

const (
	// StateReady means the active date has slots to show.
	StateReady State = iota
	// StateNoSlots means the field has no slots at all.
	StateNoSlots
	// StateAllExpired means slots exist but every date lies in the past.
	StateAllExpired
	// StateEmptyDate means the requested date is navigable but has no slots.
	StateEmptyDate
)

type Picker struct {
	clock clock.Clock
	loc   *time.Location
}

func New(c clock.Clock, loc *time.Location) *Picker {
	return &Picker{clock: c, loc: loc}
}

// View is the derived render model for one build. Date keys are civil
// calendar dates (YYYY-MM-DD) in the picker's location.
type View struct {
	State      State
	Dates      []string
	ActiveDate string
	Available  []response.TimeSlot
	Booked     []response.TimeSlot
}

// Build groups slots by calendar date, drops dates strictly before today,
// and resolves the active date. selectedDate keeps its spot while it is
// still navigable; otherwise the earliest available date wins.
func (p *Picker) Build(slots []response.TimeSlot, selectedDate string) View {
	if len(slots) == 0 {
		return View{State: StateNoSlots}
	}

	today := clock.DateKey(clock.Today(p.clock, p.loc), p.loc)

	groups := make(map[string][]response.TimeSlot)
	for _, s := range slots {
		key := clock.DateKey(s.StartTime, p.loc)
		if key < today {
			continue
		}
		groups[key] = append(groups[key], s)
	}

	if len(groups) == 0 {
		return View{State: StateAllExpired}
	}

	dates := make([]string, 0, len(groups))
	for key := range groups {
		dates = append(dates, key)
	}
	sort.Strings(dates)

	active := dates[0]
	switch {
	case contains(dates, selectedDate):
		active = selectedDate
	case isNavigableDate(selectedDate, today):
		// legitimate future date with zero slots keeps its own empty view
		return View{State: StateEmptyDate, Dates: dates, ActiveDate: selectedDate}
	}

	view := View{State: StateReady, Dates: dates, ActiveDate: active}
	for _, s := range groups[active] {
		if s.Booked {
			view.Booked = append(view.Booked, s)
		} else {
			view.Available = append(view.Available, s)
		}
	}
	sortByStart(view.Available)
	sortByStart(view.Booked)
	return view
}

// AvailableCount and BookedCount are the per-date counters, derived on every
// build rather than stored.
func (v View) AvailableCount() int { return len(v.Available) }

func (v View) BookedCount() int { return len(v.Booked) }

// Summary renders the counters the way the booking pages show them.
func (v View) Summary() string {
	return fmt.Sprintf("%d tersedia / %d terisi", v.AvailableCount(), v.BookedCount())
}

func (v View) activeIndex() int {
	for i, d := range v.Dates {
		if d == v.ActiveDate {
			return i
		}
	}
	return -1
}

func (v View) HasPrev() bool {
	if i := v.activeIndex(); i >= 0 {
		return i > 0
	}
	return len(v.Dates) > 0 && v.Dates[0] < v.ActiveDate
}

func (v View) HasNext() bool {
	if i := v.activeIndex(); i >= 0 {
		return i < len(v.Dates)-1
	}
	return len(v.Dates) > 0 && v.Dates[len(v.Dates)-1] > v.ActiveDate
}

// Prev returns the date to select when navigating backwards. Bounded: at the
// first date it returns the active date unchanged.
func (v View) Prev() string {
	if i := v.activeIndex(); i > 0 {
		return v.Dates[i-1]
	} else if i < 0 {
		// active date not in the set: step to the nearest earlier date
		for j := len(v.Dates) - 1; j >= 0; j-- {
			if v.Dates[j] < v.ActiveDate {
				return v.Dates[j]
			}
		}
	}
	return v.ActiveDate
}

// Next mirrors Prev for forward navigation, bounded at the last date.
func (v View) Next() string {
	if i := v.activeIndex(); i >= 0 {
		if i < len(v.Dates)-1 {
			return v.Dates[i+1]
		}
		return v.ActiveDate
	}
	for _, d := range v.Dates {
		if d > v.ActiveDate {
			return d
		}
	}
	return v.ActiveDate
}

func contains(dates []string, key string) bool {
	for _, d := range dates {
		if d == key {
			return true
		}
	}
	return false
}

func isNavigableDate(key, today string) bool {
	if key == "" || key < today {
		return false
	}
	_, err := time.Parse(time.DateOnly, key)
	return err == nil
}

func sortByStart(slots []response.TimeSlot) {
	sort.Slice(slots, func(i, j int) bool {
		return slots[i].StartTime.Before(slots[j].StartTime)
	})
}
