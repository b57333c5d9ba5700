//go:build e2e

package booking_test

import (
	"log/slog"
	"testing"
	"time"

	"futsalku-client/internal/api"
	"futsalku-client/internal/api/response"
	"futsalku-client/internal/booking"
	"futsalku-client/internal/pkg/clock"
	"futsalku-client/internal/pkg/config"
	"futsalku-client/internal/pkg/errs"
	"futsalku-client/internal/session"
	"futsalku-client/internal/view/slotpicker"
	"futsalku-client/tests/common/apitest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type bookingSuite struct {
	suite.Suite
	server *apitest.Server
	client *api.Client
	store  *session.Store
	loc    *time.Location
	logger *slog.Logger
}

func TestBookingSuite(t *testing.T) {
	suite.Run(t, new(bookingSuite))
}

func (s *bookingSuite) SetupSuite() {
	loc, err := time.LoadLocation("Asia/Jakarta")
	s.Require().NoError(err)
	s.loc = loc
	s.logger = slog.New(slog.DiscardHandler)
}

func (s *bookingSuite) SetupTest() {
	s.server = apitest.NewServer(s.T())

	cfg := config.NewTestConfig()
	cfg.API.BaseURL = s.server.URL()

	client, err := api.New(cfg.API, s.logger)
	s.Require().NoError(err)
	s.client = client
	s.store = session.NewStore(client, s.logger)
}

func (s *bookingSuite) login(email, password string) {
	s.T().Helper()
	_, err := s.store.Login(s.T().Context(), email, password)
	s.Require().NoError(err)
}

// dayAt returns a time on today+dayOffset at the given hour, Jakarta time.
func (s *bookingSuite) dayAt(dayOffset, hour int) time.Time {
	now := time.Now().In(s.loc)
	return time.Date(now.Year(), now.Month(), now.Day()+dayOffset, hour, 0, 0, 0, s.loc)
}

func (s *bookingSuite) TestPickerDateNavigation() {
	fieldID := s.server.SeedField("Lapangan Utama", 150000)

	// yesterday must not show up at all
	s.server.SeedSlot(fieldID, s.dayAt(-1, 10), false)
	s.server.SeedSlot(fieldID, s.dayAt(0, 20), false)
	s.server.SeedSlot(fieldID, s.dayAt(0, 21), false)
	s.server.SeedSlot(fieldID, s.dayAt(0, 22), true)
	s.server.SeedSlot(fieldID, s.dayAt(1, 10), false)
	s.server.SeedSlot(fieldID, s.dayAt(1, 11), false)

	slots, err := s.client.ListTimeSlots(s.T().Context(), fieldID)
	s.Require().NoError(err)

	picker := slotpicker.New(clock.NewRealClock(), s.loc)
	today := clock.DateKey(time.Now(), s.loc)

	view := picker.Build(slots, "")
	s.Equal(slotpicker.StateReady, view.State)
	s.Equal(today, view.ActiveDate)
	s.Equal([]string{today, clock.DateKey(s.dayAt(1, 0), s.loc)}, view.Dates)
	s.Equal("2 tersedia / 1 terisi", view.Summary())
	s.False(view.HasPrev())
	s.True(view.HasNext())

	next := picker.Build(slots, view.Next())
	s.Equal(slotpicker.StateReady, next.State)
	s.Equal("2 tersedia / 0 terisi", next.Summary())
	s.True(next.HasPrev())
	s.False(next.HasNext())
	s.Equal(today, next.Prev())
}

func (s *bookingSuite) TestSubmitBooking() {
	s.server.SeedUser("Budi", "budi@mail.com", "rahasia-123", response.RoleUser)
	fieldID := s.server.SeedField("Lapangan Utama", 150000)
	start := s.dayAt(1, 10)
	slotID := s.server.SeedSlot(fieldID, start, false)

	s.login("budi@mail.com", "rahasia-123")

	slots, err := s.client.ListTimeSlots(s.T().Context(), fieldID)
	s.Require().NoError(err)
	s.Require().Len(slots, 1)

	flow := booking.NewFlow(s.client, s.logger, s.loc, fieldID)
	sel := flow.Select(slots[0])
	s.True(sel.Valid)
	s.Equal(booking.StateSlotSelected, flow.State())

	conf, err := flow.Submit(s.T().Context())
	s.Require().NoError(err)

	s.Equal("Lapangan Utama", conf.FieldName)
	s.Equal(int64(150000), conf.TotalPrice)
	s.Equal(start.Format("02 Jan 2006")+" 10:00 - 11:00", conf.TimeRange)

	s.Equal(booking.StateSuccess, flow.State())
	s.False(flow.Selection().Valid, "selection is cleared after a successful submit")
	s.True(s.server.SlotBooked(slotID))

	status, found := s.server.BookingStatus(conf.BookingID)
	s.Require().True(found)
	s.Equal("PENDING", string(status))
}

func (s *bookingSuite) TestSubmitRaceKeepsSelection() {
	s.server.SeedUser("Budi", "budi@mail.com", "rahasia-123", response.RoleUser)
	s.server.SeedUser("Sari", "sari@mail.com", "rahasia-123", response.RoleUser)
	fieldID := s.server.SeedField("Lapangan Utama", 150000)
	slotID := s.server.SeedSlot(fieldID, s.dayAt(1, 10), false)

	s.login("budi@mail.com", "rahasia-123")
	slots, err := s.client.ListTimeSlots(s.T().Context(), fieldID)
	s.Require().NoError(err)

	flow := booking.NewFlow(s.client, s.logger, s.loc, fieldID)
	flow.Select(slots[0])

	// another customer grabs the slot between render and submit
	rival, err := api.New(config.APIConfig{BaseURL: s.server.URL(), Timeout: 5 * time.Second}, s.logger)
	s.Require().NoError(err)
	rivalStore := session.NewStore(rival, s.logger)
	_, err = rivalStore.Login(s.T().Context(), "sari@mail.com", "rahasia-123")
	s.Require().NoError(err)
	rivalFlow := booking.NewFlow(rival, s.logger, s.loc, fieldID)
	rivalFlow.Select(slots[0])
	_, err = rivalFlow.Submit(s.T().Context())
	s.Require().NoError(err)

	_, err = flow.Submit(s.T().Context())
	s.Require().Error(err)
	s.True(errs.Is(err, errs.ErrValidation))
	s.True(errs.Is(err, errs.ErrSlotUnavailable))

	var apiErr *api.Error
	s.Require().ErrorAs(err, &apiErr)
	s.Equal("jadwal sudah dipesan", apiErr.Message)

	s.Equal(booking.StateFailed, flow.State())
	s.True(flow.Selection().Valid, "a failed submit keeps the selection for retry")
	s.Equal(slotID, flow.Selection().SlotID)
	s.True(flow.CanSubmit())
}

func (s *bookingSuite) TestDeclineCancelSendsNothing() {
	s.server.SeedUser("Budi", "budi@mail.com", "rahasia-123", response.RoleUser)
	fieldID := s.server.SeedField("Lapangan Utama", 150000)
	slotID := s.server.SeedSlot(fieldID, s.dayAt(1, 10), false)

	s.login("budi@mail.com", "rahasia-123")
	booked := s.createBooking(fieldID, slotID)

	cancel, err := booking.NewCancelFlow(s.client, s.logger, booked)
	s.Require().NoError(err)
	s.Require().NoError(cancel.RequestCancel())
	s.Equal(booking.CancelConfirmPending, cancel.State())

	s.Require().NoError(cancel.Decline())
	s.Equal(booking.CancelIdle, cancel.State())

	s.Equal(0, s.server.Hits("PATCH", "/booking"), "declining the dialog must not touch the network")
	status, _ := s.server.BookingStatus(booked.ID)
	s.Equal("PENDING", string(status))
}

func (s *bookingSuite) TestConfirmCancelFreesSlot() {
	s.server.SeedUser("Budi", "budi@mail.com", "rahasia-123", response.RoleUser)
	fieldID := s.server.SeedField("Lapangan Utama", 150000)
	slotID := s.server.SeedSlot(fieldID, s.dayAt(1, 10), false)

	s.login("budi@mail.com", "rahasia-123")
	booked := s.createBooking(fieldID, slotID)

	cancel, err := booking.NewCancelFlow(s.client, s.logger, booked)
	s.Require().NoError(err)
	s.Require().NoError(cancel.RequestCancel())

	updated, err := cancel.Confirm(s.T().Context())
	s.Require().NoError(err)
	s.Equal(booking.Cancelled, cancel.State())
	s.Equal("CANCELLED", string(updated.Status))

	s.False(s.server.SlotBooked(slotID), "cancelling releases the slot")
	s.Equal(1, s.server.Hits("PATCH", "/booking"))
}

func (s *bookingSuite) TestBookingRequiresLogin() {
	fieldID := s.server.SeedField("Lapangan Utama", 150000)
	slotID := s.server.SeedSlot(fieldID, s.dayAt(1, 10), false)

	flow := booking.NewFlow(s.client, s.logger, s.loc, fieldID)
	slots, err := s.client.ListTimeSlots(s.T().Context(), fieldID)
	s.Require().NoError(err)
	flow.Select(slots[0])

	_, err = flow.Submit(s.T().Context())
	s.True(errs.Is(err, errs.ErrUnauthorized))
	s.False(s.server.SlotBooked(slotID))
}

func (s *bookingSuite) createBooking(fieldID, slotID uuid.UUID) response.Booking {
	s.T().Helper()
	flow := booking.NewFlow(s.client, s.logger, s.loc, fieldID)
	slots, err := s.client.ListTimeSlots(s.T().Context(), fieldID)
	s.Require().NoError(err)
	for _, slot := range slots {
		if slot.ID == slotID {
			flow.Select(slot)
		}
	}
	s.Require().True(flow.CanSubmit())
	conf, err := flow.Submit(s.T().Context())
	s.Require().NoError(err)

	list, err := s.client.ListBookings(s.T().Context())
	s.Require().NoError(err)
	for _, item := range list {
		if item.ID == conf.BookingID {
			return item
		}
	}
	s.Require().FailNow("created booking missing from listing")
	return response.Booking{}
}
