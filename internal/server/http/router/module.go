package router

import (
	"go.uber.org/fx"

	"github.com/greenmandi/storefront/internal/app"
	"github.com/greenmandi/storefront/internal/server/http/handlers"
)

// Module registers HTTP router construction for fx runtime.
var Module = fx.Provide(
	func(facade *app.StorefrontFacade) handlers.StorefrontFacade { return facade },
	Setup,
)
