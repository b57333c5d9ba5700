package cli

import (
	"context"
	"strconv"
	"time"

	"futsalku-client/internal/api/response"
	"futsalku-client/internal/booking"
	"futsalku-client/internal/pkg/errs"
	"futsalku-client/internal/pkg/fetch"
	"futsalku-client/internal/pkg/patch"
	"futsalku-client/internal/view/slotpicker"
	"futsalku-client/internal/view/table"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

func fieldColumns() []table.Column[response.Field] {
	return []table.Column[response.Field]{
		{Header: "Nama", Value: func(f response.Field) string { return f.Name }},
		{Header: "Harga/jam", Value: func(f response.Field) string { return rupiah(f.Price) }},
	}
}

// fieldListResult pairs a refresh completion with its generation token so
// the consumer can drop it once a newer refresh has been issued.
type fieldListResult struct {
	token  fetch.Token
	fields []response.Field
	err    error
}

// slowLoadAfter is how long a list refresh may stay silent before the user
// is offered to fire a superseding one.
const slowLoadAfter = 2 * time.Second

// refreshFields starts one background list fetch. Completions land on
// results tagged with their token; the send aborts when the screen is gone.
func (a *App) refreshFields(ctx context.Context, results chan<- fieldListResult) {
	token := a.fieldGuard.Begin()
	go func() {
		fields, err := a.api.ListFields(ctx)
		if err != nil {
			a.logger.Warn("field list refresh failed", "error", err)
		}
		select {
		case results <- fieldListResult{token: token, fields: fields, err: err}:
		case <-ctx.Done():
		}
	}()
}

// browseFields renders the field list through the shared table and hands one
// field off to the slot browser. Refreshes run in the background; when the
// user fires a new one while an older request is still in flight, the guard
// drops the stale completion instead of letting it overwrite newer data.
func (a *App) browseFields(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make(chan fieldListResult)
	a.refreshFields(ctx, results)

	var fields []response.Field
	for fields == nil {
		select {
		case res := <-results:
			if !a.fieldGuard.Accept(res.token) {
				continue // superseded by a newer refresh
			}
			if res.err != nil {
				a.noteConnectivity(res.err)
				a.printf("daftar lapangan gagal dimuat. [r] coba lagi, [b] kembali\n> ")
				line, ok := a.readLine()
				if !ok || line != "r" {
					return
				}
				a.refreshFields(ctx, results)
				continue
			}
			fields = res.fields
		case <-time.After(slowLoadAfter):
			a.printf("masih memuat... [r] kirim ulang, [b] kembali\n> ")
			line, ok := a.readLine()
			if !ok || line == "b" {
				return
			}
			if line == "r" {
				a.refreshFields(ctx, results)
			}
		}
	}
	a.noteConnectivity(nil)

	tbl := table.New(fieldColumns(), a.cfg.UI.DefaultPageSize)
	tbl.SetData(fields)

	for {
		a.renderFieldTable(tbl)
		a.printf("[/teks] cari  [n]ext [p]rev  [s]ize  [nomor] pilih  [b] kembali\n> ")

		line, ok := a.readLine()
		if !ok {
			return
		}
		switch {
		case line == "b":
			return
		case line == "n":
			tbl.NextPage()
		case line == "p":
			tbl.PrevPage()
		case line == "s":
			a.changePageSize(tbl)
		case len(line) > 1 && line[0] == '/':
			tbl.SetSearch(line[1:])
		case line == "/":
			tbl.SetSearch("")
		default:
			if idx, err := strconv.Atoi(line); err == nil {
				rows := tbl.Rows()
				if idx >= 1 && idx <= len(rows) {
					a.browseSlots(ctx, rows[idx-1])
				}
			}
		}
	}
}

func (a *App) renderFieldTable(tbl *table.Table[response.Field]) {
	a.printf("\n")
	if tbl.Empty() {
		a.printf("tidak ada lapangan yang cocok\n")
		a.printf("%s, halaman 1 dari 1\n", table.Summary{})
		return
	}
	for i, f := range tbl.Rows() {
		cells := tbl.Cells(f)
		a.printf("%2d. %-24s %s\n", i+1, cells[0], cells[1])
	}
	a.printf("%s, halaman %d dari %d\n", tbl.Summary(), tbl.Page(), tbl.TotalPages())
}

func (a *App) changePageSize(tbl *table.Table[response.Field]) {
	a.printf("ukuran halaman %v: ", table.PageSizes)
	line, _ := a.readLine()
	n, err := strconv.Atoi(line)
	if err != nil {
		return
	}
	if err := tbl.SetPageSize(n); err != nil {
		a.printf("%s\n", err)
	}
}

// browseSlots is the booking page: date navigation, slot toggle, submit.
func (a *App) browseSlots(ctx context.Context, field response.Field) {
	slots, err := a.api.ListTimeSlots(ctx, field.ID)
	if err != nil {
		a.toastError(err)
		return
	}
	a.noteConnectivity(nil)

	flow := booking.NewFlow(a.api, a.logger, a.loc, field.ID)
	selectedDate := ""

	for {
		view := a.picker.Build(slots, selectedDate)
		a.renderPicker(field, view, flow.Selection())

		if view.State == slotpicker.StateNoSlots || view.State == slotpicker.StateAllExpired {
			return
		}

		a.printf("[n]ext/[p]rev tanggal  [nomor] pilih jadwal  [ok] booking  [b] kembali\n> ")
		line, ok := a.readLine()
		if !ok {
			return
		}
		switch line {
		case "b":
			return
		case "n":
			selectedDate = view.Next()
		case "p":
			selectedDate = view.Prev()
		case "ok":
			if !flow.CanSubmit() {
				a.printf("pilih jadwal terlebih dahulu\n")
				continue
			}
			conf, err := flow.Submit(ctx)
			if err != nil {
				a.toastError(err) // selection survives for a retry
				if errs.Is(err, errs.ErrSlotUnavailable) {
					// someone else took the slot; show it as terisi
					if fresh, ferr := a.api.ListTimeSlots(ctx, field.ID); ferr == nil {
						slots = fresh
					}
				}
				continue
			}
			a.printf("\nbooking berhasil!\n  %s\n  %s\n  total %s\n",
				conf.FieldName, conf.TimeRange, rupiah(conf.TotalPrice))
			return
		default:
			if idx, err := strconv.Atoi(line); err == nil && idx >= 1 && idx <= len(view.Available) {
				flow.Select(view.Available[idx-1])
			}
		}
	}
}

func (a *App) renderPicker(field response.Field, view slotpicker.View, sel slotpicker.Selection) {
	a.printf("\n%s\n%s\n", field.Name, patch.Coalesce(field.Description, "tanpa deskripsi"))

	switch view.State {
	case slotpicker.StateNoSlots:
		a.printf("belum ada jadwal untuk lapangan ini\n")
		return
	case slotpicker.StateAllExpired:
		a.printf("semua jadwal sudah lewat\n")
		return
	case slotpicker.StateEmptyDate:
		a.printf("%s: tidak ada jadwal di tanggal ini\n", view.ActiveDate)
		return
	}

	a.printf("%s (%s)\n", view.ActiveDate, view.Summary())
	for i, s := range view.Available {
		marker := "  "
		if sel.Valid && sel.SlotID == s.ID {
			marker = "> "
		}
		a.printf("%s%2d. %s - %s\n", marker, i+1,
			s.StartTime.In(a.loc).Format("15:04"), s.EndTime.In(a.loc).Format("15:04"))
	}
	for _, s := range view.Booked {
		a.printf("    x %s - %s (terisi)\n",
			s.StartTime.In(a.loc).Format("15:04"), s.EndTime.In(a.loc).Format("15:04"))
	}
}

// bookingRow flattens a booking for the table; copier fills the same-named
// scalar fields, the nested display values are projected by hand.
type bookingRow struct {
	ID         uuid.UUID
	Status     response.BookingStatus
	TotalPrice int64
	CreatedAt  time.Time
	FieldName  string
	Schedule   string
}

func (a *App) bookingRows(bookings []response.Booking) []bookingRow {
	rows := make([]bookingRow, 0, len(bookings))
	for _, b := range bookings {
		var row bookingRow
		if err := copier.Copy(&row, &b); err != nil {
			a.logger.Warn("booking row projection failed", "booking_id", b.ID, "error", err)
			continue
		}
		row.FieldName = b.Field.Name
		row.Schedule = b.Slot.StartTime.In(a.loc).Format("02 Jan 15:04") + " - " +
			b.Slot.EndTime.In(a.loc).Format("15:04")
		rows = append(rows, row)
	}
	return rows
}

func bookingColumns() []table.Column[bookingRow] {
	return []table.Column[bookingRow]{
		{Header: "Lapangan", Value: func(r bookingRow) string { return r.FieldName }},
		{Header: "Jadwal", Value: func(r bookingRow) string { return r.Schedule }},
		{Header: "Status", Value: func(r bookingRow) string { return string(r.Status) }},
		{Header: "Total", Value: func(r bookingRow) string { return rupiah(r.TotalPrice) }},
	}
}

func (a *App) myBookings(ctx context.Context) {
	if _, ok := a.session.Current(); !ok {
		a.printf("silakan login terlebih dahulu\n")
		return
	}

	var bookings []response.Booking
	for {
		var err error
		bookings, err = a.api.ListBookings(ctx)
		if err == nil {
			break
		}
		a.noteConnectivity(err)
		a.printf("booking gagal dimuat. [r] coba lagi, [b] kembali\n> ")
		if line, ok := a.readLine(); !ok || line != "r" {
			return
		}
	}
	a.noteConnectivity(nil)

	tbl := table.New(bookingColumns(), a.cfg.UI.DefaultPageSize)
	tbl.SetData(a.bookingRows(bookings))

	for {
		a.printf("\n")
		if tbl.Empty() {
			a.printf("belum ada booking\n")
			return
		}
		for i, r := range tbl.Rows() {
			cells := tbl.Cells(r)
			a.printf("%2d. %-20s %-22s %-10s %s\n", i+1, cells[0], cells[1], cells[2], cells[3])
		}
		a.printf("%s\n[nomor] batalkan  [n]ext [p]rev  [b] kembali\n> ", tbl.Summary())

		line, ok := a.readLine()
		if !ok {
			return
		}
		switch line {
		case "b":
			return
		case "n":
			tbl.NextPage()
		case "p":
			tbl.PrevPage()
		default:
			idx, err := strconv.Atoi(line)
			if err != nil || idx < 1 || idx > len(tbl.Rows()) {
				continue
			}
			row := tbl.Rows()[idx-1]
			if a.cancelBooking(ctx, bookings, row.ID) {
				return
			}
		}
	}
}

// cancelBooking walks the confirm-gated cancellation flow. Returns true when
// the listing needs a reload.
func (a *App) cancelBooking(ctx context.Context, bookings []response.Booking, id uuid.UUID) bool {
	var target *response.Booking
	for i := range bookings {
		if bookings[i].ID == id {
			target = &bookings[i]
			break
		}
	}
	if target == nil {
		return false
	}

	flow, err := booking.NewCancelFlow(a.api, a.logger, *target)
	if err != nil {
		a.toastError(err)
		return false
	}

	if err := flow.RequestCancel(); err != nil {
		a.toastError(err)
		return false
	}

	a.printf("batalkan booking %s? [y/N] ", target.Field.Name)
	line, _ := a.readLine()
	if line != "y" && line != "Y" {
		_ = flow.Decline() // nothing goes over the wire
		a.printf("dibatalkan, booking tetap %s\n", target.Status)
		return false
	}

	if _, err := flow.Confirm(ctx); err != nil {
		a.toastError(err)
		return false
	}
	a.printf("booking dibatalkan\n")
	return true
}

func rupiah(amount int64) string {
	s := strconv.FormatInt(amount, 10)
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, c)
	}
	return "Rp" + string(out)
}
