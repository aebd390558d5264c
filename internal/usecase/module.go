package usecase

import (
	"go.uber.org/fx"

	"github.com/greenmandi/storefront/internal/config"
)

// Module provides core business use cases to the fx container.
var Module = fx.Options(
	fx.Provide(
		newAuthConfig,
		newOrderConfig,
		NewAuthUseCase,
		NewOrderUseCase,
		NewAddressUseCase,
		NewCatalogUseCase,
	),
)

func newAuthConfig(cfg *config.Config) AuthConfig {
	return AuthConfig{
		CodeTTL:        cfg.OTPCodeTTL,
		ResendCooldown: cfg.OTPResendCooldown,
		MaxAttempts:    cfg.OTPMaxAttempts,
	}
}

func newOrderConfig(cfg *config.Config) OrderConfig {
	return OrderConfig{
		DeliveryFee:       cfg.DeliveryFee,
		FreeDeliveryAbove: cfg.FreeDeliveryAbove,
		PaymentKeySecret:  cfg.PaymentKeySecret,
	}
}
