package auth

import (
	"go.uber.org/fx"

	"github.com/greenmandi/storefront/internal/config"
)

// Module provides authentication primitives via fx.
var Module = fx.Options(
	fx.Provide(newCodeGenerator),
	fx.Provide(newCodeHasher),
	fx.Provide(newTokenStrategy),
)

func newCodeGenerator() CodeGenerator {
	return RandomCodeGenerator{}
}

func newCodeHasher() CodeHasher {
	return NewBcryptHasher(0)
}

type strategyParams struct {
	fx.In

	Config *config.Config
}

func newTokenStrategy(p strategyParams) Strategy {
	return NewHMACStrategy(p.Config.SessionSecret, Options{TTL: p.Config.SessionTTL})
}
