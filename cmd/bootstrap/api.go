package bootstrap

import (
	"log/slog"
	"time"

	"futsalku-client/internal/api"
	"futsalku-client/internal/pkg/clock"
	"futsalku-client/internal/pkg/config"
	"futsalku-client/internal/view/slotpicker"

	"go.uber.org/fx"
)

var APIModule = fx.Module("api",
	fx.Provide(
		NewAPIClient,
		NewLocation,
		clock.NewRealClock,
		slotpicker.New,
	),
)

func NewAPIClient(cfg config.Config, logger *slog.Logger) (*api.Client, error) {
	return api.New(cfg.API, logger)
}

func NewLocation(cfg config.Config) (*time.Location, error) {
	return cfg.UI.Location()
}
