// Package cli is the terminal front-end: thin orchestration over the api
// client, the session store, and the view components. All interaction runs on
// one goroutine; background list refreshes hand their results back through
// the fetch guard so a stale response never overwrites a newer one.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"futsalku-client/internal/api"
	"futsalku-client/internal/api/request"
	"futsalku-client/internal/pkg/config"
	"futsalku-client/internal/pkg/errs"
	"futsalku-client/internal/pkg/fetch"
	"futsalku-client/internal/session"
	"futsalku-client/internal/view/slotpicker"
)

type App struct {
	cfg     config.Config
	api     *api.Client
	session *session.Store
	picker  *slotpicker.Picker
	logger  *slog.Logger
	loc     *time.Location

	in      *bufio.Scanner
	out     io.Writer
	offline bool

	fieldGuard fetch.Guard
}

func New(
	cfg config.Config,
	apiClient *api.Client,
	store *session.Store,
	picker *slotpicker.Picker,
	loc *time.Location,
	logger *slog.Logger,
	in io.Reader,
	out io.Writer,
) *App {
	return &App{
		cfg:     cfg,
		api:     apiClient,
		session: store,
		picker:  picker,
		logger:  logger,
		loc:     loc,
		in:      bufio.NewScanner(in),
		out:     out,
	}
}

func (a *App) Run(ctx context.Context) error {
	a.showHero(ctx)

	for {
		a.banner()
		a.printf("\n[1] lihat lapangan  [2] booking saya  [3] login  [4] daftar  [5] logout")
		if a.session.IsAdmin() {
			a.printf("  [9] admin")
		}
		a.printf("\n> ")

		line, ok := a.readLine()
		if !ok {
			return nil
		}

		switch line {
		case "1":
			a.browseFields(ctx)
		case "2":
			a.myBookings(ctx)
		case "3":
			a.login(ctx)
		case "4":
			a.register(ctx)
		case "5":
			a.logout(ctx)
		case "9":
			a.adminMenu(ctx)
		case "q", "quit", "exit":
			return nil
		}
	}
}

func (a *App) showHero(ctx context.Context) {
	stats, err := a.api.HeroStats(ctx)
	if err != nil {
		// read-only listing failure: degrade silently, banner covers offline
		a.noteConnectivity(err)
		return
	}
	a.noteConnectivity(nil)
	a.printf("futsalku: %d lapangan, %d booking, %d pengguna\n",
		stats.TotalFields, stats.TotalBookings, stats.TotalUsers)
}

// banner renders session and connectivity status above the menu.
func (a *App) banner() {
	if a.offline {
		a.printf("\n!! sedang offline, periksa koneksi\n")
	}
	if user, ok := a.session.Current(); ok {
		a.printf("\nmasuk sebagai %s (%s)\n", user.Name, user.Role)
	}
}

func (a *App) login(ctx context.Context) {
	email := a.prompt("email: ")
	password := a.prompt("password: ")

	user, err := a.session.Login(ctx, email, password)
	if err != nil {
		a.toastError(err)
		return
	}
	a.printf("selamat datang, %s!\n", user.Name)
}

func (a *App) register(ctx context.Context) {
	name := a.prompt("nama: ")
	email := a.prompt("email: ")
	password := a.prompt("password: ")

	req := request.RegisterRequest{Name: name, Email: email, Password: password}
	if _, err := a.api.Register(ctx, req); err != nil {
		a.toastError(err)
		return
	}
	a.printf("pendaftaran berhasil, silakan login\n")
}

func (a *App) logout(ctx context.Context) {
	if err := a.session.Logout(ctx); err != nil {
		a.noteConnectivity(err)
	}
	a.printf("berhasil logout\n")
}

// toastError is the transient-toast analog: the normalized message for
// mutating failures, never swallowed.
func (a *App) toastError(err error) {
	a.noteConnectivity(err)

	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		a.printf("gagal: %s\n", apiErr.Message)
	} else {
		a.printf("gagal: %s\n", err)
	}
	a.logger.Debug("operation failed", "stack", errs.ExtractStackLines(err, 5))
}

// noteConnectivity flips the online/offline banner from the outcome of the
// latest call that went over the wire.
func (a *App) noteConnectivity(err error) {
	a.offline = err != nil && errs.Is(err, errs.ErrTransport)
}

func (a *App) prompt(label string) string {
	a.printf("%s", label)
	line, _ := a.readLine()
	return line
}

func (a *App) readLine() (string, bool) {
	if !a.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(a.in.Text()), true
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
