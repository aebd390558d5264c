package sms

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/greenmandi/storefront/internal/config"
)

// Module exposes SMS client implementation to fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(p.Config.SMSGatewayAddress, p.Config.SMSAPIKey, p.Logger)
}
