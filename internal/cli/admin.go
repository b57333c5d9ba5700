package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strconv"

	"futsalku-client/internal/api/request"
	"futsalku-client/internal/api/response"
	"futsalku-client/internal/booking"
	"futsalku-client/internal/pkg/errs"
	"futsalku-client/internal/pkg/patch"
)

// adminMenu is the back office. Role gating happens up front; a mismatch
// sends the user back to the main menu instead of an inline error.
func (a *App) adminMenu(ctx context.Context) {
	if err := a.session.RequireAdmin(); err != nil {
		a.logger.Debug("admin menu refused", "error", err)
		return
	}

	for {
		a.printf("\nadmin: [1] lapangan baru  [2] ubah lapangan  [3] hapus lapangan  [4] buat jadwal  [5] konfirmasi booking  [6] admin  [b] kembali\n> ")
		line, ok := a.readLine()
		if !ok {
			return
		}
		switch line {
		case "b":
			return
		case "1":
			a.createField(ctx)
		case "2":
			a.updateField(ctx)
		case "3":
			a.deleteField(ctx)
		case "4":
			a.generateSlots(ctx)
		case "5":
			a.approveBookings(ctx)
		case "6":
			a.manageAdmins(ctx)
		}
	}
}

func (a *App) createField(ctx context.Context) {
	req := request.CreateFieldRequest{Name: a.prompt("nama: ")}
	if desc := a.prompt("deskripsi (opsional): "); desc != "" {
		req.Description = &desc
	}
	req.Price, _ = strconv.ParseInt(a.prompt("harga per jam: "), 10, 64)

	field, err := a.api.CreateField(ctx, req, a.promptUpload())
	if err != nil {
		a.toastError(err)
		return
	}
	a.printf("lapangan %q dibuat\n", field.Name)
}

func (a *App) updateField(ctx context.Context) {
	field, ok := a.pickField(ctx)
	if !ok {
		return
	}

	req := request.UpdateFieldRequest{Name: field.Name, Price: field.Price, Description: field.Description}
	if name := a.prompt("nama baru (kosong = tetap): "); name != "" {
		req.Name = name
	}
	a.printf("deskripsi sekarang: %s\n", patch.Coalesce(field.Description, "(kosong)"))
	if desc := a.prompt("deskripsi baru (kosong = tetap): "); desc != "" {
		req.Description = &desc
	}
	if price := a.prompt("harga baru (kosong = tetap): "); price != "" {
		req.Price, _ = strconv.ParseInt(price, 10, 64)
	}

	updated, err := a.api.UpdateField(ctx, field.ID, req, a.promptUpload())
	if err != nil {
		a.toastError(err)
		return
	}
	a.printf("lapangan %q diperbarui\n", updated.Name)
}

func (a *App) deleteField(ctx context.Context) {
	field, ok := a.pickField(ctx)
	if !ok {
		return
	}

	a.printf("hapus %q beserta jadwalnya? [y/N] ", field.Name)
	if line, _ := a.readLine(); line != "y" && line != "Y" {
		return
	}

	if err := a.api.DeleteField(ctx, field.ID); err != nil {
		a.toastError(err)
		return
	}
	a.printf("lapangan dihapus\n")
}

// generateSlots drives the schedule-window generator for one field.
func (a *App) generateSlots(ctx context.Context) {
	field, ok := a.pickField(ctx)
	if !ok {
		return
	}

	req := request.GenerateTimeSlotsRequest{Date: a.prompt("tanggal (YYYY-MM-DD): ")}
	req.StartHour, _ = strconv.Atoi(a.prompt("jam mulai (0-23): "))
	req.EndHour, _ = strconv.Atoi(a.prompt("jam selesai (1-24): "))

	slots, err := a.api.GenerateTimeSlots(ctx, field.ID, req)
	if err != nil {
		a.toastError(err)
		return
	}
	a.printf("%d jadwal dibuat untuk %s\n", len(slots), req.Date)
}

func (a *App) approveBookings(ctx context.Context) {
	bookings, err := a.api.ListBookings(ctx)
	if err != nil {
		a.toastError(err)
		return
	}

	var pending []response.Booking
	for _, b := range bookings {
		if b.Status == response.BookingPending {
			pending = append(pending, b)
		}
	}
	if len(pending) == 0 {
		a.printf("tidak ada booking menunggu konfirmasi\n")
		return
	}

	for i, b := range pending {
		a.printf("%2d. %-20s %s  %s\n", i+1, b.Field.Name, b.User.Email, rupiah(b.TotalPrice))
	}
	a.printf("[nomor] konfirmasi  [b] kembali\n> ")

	line, _ := a.readLine()
	idx, err := strconv.Atoi(line)
	if err != nil || idx < 1 || idx > len(pending) {
		return
	}

	confirmed, err := booking.Approve(ctx, a.api, pending[idx-1])
	if err != nil {
		if errs.Is(err, errs.ErrBookingTerminal) {
			a.printf("booking sudah final\n")
			return
		}
		a.toastError(err)
		return
	}
	a.printf("booking %s dikonfirmasi\n", confirmed.Field.Name)
}

func (a *App) manageAdmins(ctx context.Context) {
	admins, err := a.api.ListAdmins(ctx)
	if err != nil {
		a.toastError(err)
		return
	}
	for _, admin := range admins {
		a.printf("  %-24s %s\n", admin.Name, admin.Email)
	}

	a.printf("[t] tambah admin  [b] kembali\n> ")
	if line, _ := a.readLine(); line != "t" {
		return
	}

	req := request.CreateAdminRequest{
		Name:     a.prompt("nama: "),
		Email:    a.prompt("email: "),
		Password: a.prompt("password: "),
	}
	created, err := a.api.CreateAdmin(ctx, req)
	if err != nil {
		a.toastError(err)
		return
	}
	a.printf("admin %s dibuat\n", created.Email)
}

func (a *App) pickField(ctx context.Context) (response.Field, bool) {
	fields, err := a.api.ListFields(ctx)
	if err != nil {
		a.toastError(err)
		return response.Field{}, false
	}
	if len(fields) == 0 {
		a.printf("belum ada lapangan\n")
		return response.Field{}, false
	}

	for i, f := range fields {
		a.printf("%2d. %s\n", i+1, f.Name)
	}
	a.printf("pilih lapangan: ")

	line, _ := a.readLine()
	idx, err := strconv.Atoi(line)
	if err != nil || idx < 1 || idx > len(fields) {
		return response.Field{}, false
	}
	return fields[idx-1], true
}

// promptUpload opens an optional image for the multipart field endpoints.
func (a *App) promptUpload() *request.FieldUpload {
	path := a.prompt("file gambar (kosong = tanpa gambar): ")
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		a.printf("gambar dilewati: %s\n", err)
		return nil
	}
	return &request.FieldUpload{Filename: filepath.Base(path), Reader: bytes.NewReader(data)}
}
