package di

import (
	"go.uber.org/fx"

	"github.com/greenmandi/storefront/internal/adapter/payment"
	"github.com/greenmandi/storefront/internal/adapter/sms"
	"github.com/greenmandi/storefront/internal/app"
	"github.com/greenmandi/storefront/internal/config"
	"github.com/greenmandi/storefront/internal/logger"
	"github.com/greenmandi/storefront/internal/pkg/auth"
	"github.com/greenmandi/storefront/internal/server/http/router"
	"github.com/greenmandi/storefront/internal/storage/postgres"
	"github.com/greenmandi/storefront/internal/stream"
	"github.com/greenmandi/storefront/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		sms.Module,
		payment.Module,
		stream.Module,
		usecase.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
