package bootstrap

import (
	"log/slog"

	"futsalku-client/internal/api"
	"futsalku-client/internal/session"

	"go.uber.org/fx"
)

var SessionModule = fx.Module("session",
	fx.Provide(
		NewSessionStore,
	),
)

func NewSessionStore(client *api.Client, logger *slog.Logger) *session.Store {
	return session.NewStore(client, logger)
}
