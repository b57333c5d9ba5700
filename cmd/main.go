package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"futsalku-client/cmd/bootstrap"
	"futsalku-client/internal/api"
	"futsalku-client/internal/cli"
	"futsalku-client/internal/pkg/config"
	"futsalku-client/internal/session"
	"futsalku-client/internal/view/slotpicker"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

func init() {
	// .env is a dev convenience; missing file is fine
	_ = godotenv.Load()
}

func runApp(
	lc fx.Lifecycle,
	shutdowner fx.Shutdowner,
	cfg config.Config,
	client *api.Client,
	store *session.Store,
	picker *slotpicker.Picker,
	loc *time.Location,
	logger *slog.Logger,
) {
	app := cli.New(cfg, client, store, picker, loc, logger, os.Stdin, os.Stdout)

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			logger.Info("starting console client", "base_url", cfg.API.BaseURL)
			go func() {
				if err := app.Run(context.Background()); err != nil {
					logger.Error("console client exited with error", "error", err)
				}
				_ = shutdowner.Shutdown()
			}()
			return nil
		},
		OnStop: func(_ context.Context) error {
			logger.Info("console client stopped")
			return nil
		},
	})
}

func main() {
	app := fx.New(
		bootstrap.Module,
		fx.Invoke(
			runApp,
		),
	)

	if err := app.Start(context.Background()); err != nil {
		slog.Error("failed to start application", "error", err)
		os.Exit(1)
	}

	<-app.Done()

	if err := app.Stop(context.Background()); err != nil {
		slog.Error("failed to stop application", "error", err)
	}
}
