package postgres

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/greenmandi/storefront/internal/config"
	"github.com/greenmandi/storefront/internal/domain/repository"
)

// Module wires PostgreSQL storage and repository adapters. Repositories are
// derived through repository.Factory so the rest of the graph never sees the
// concrete storage type.
var Module = fx.Options(
	fx.Provide(newStorage),
	fx.Provide(func(s *Storage) repository.Factory { return s }),
	fx.Provide(
		func(f repository.Factory) repository.UserRepository { return f.Users() },
		func(f repository.Factory) repository.OTPRepository { return f.OTPChallenges() },
		func(f repository.Factory) repository.OrderRepository { return f.Orders() },
		func(f repository.Factory) repository.AddressRepository { return f.Addresses() },
		func(f repository.Factory) repository.CatalogRepository { return f.Catalog() },
		func(f repository.Factory) repository.CouponRepository { return f.Coupons() },
		func(f repository.Factory) repository.PincodeRepository { return f.Pincodes() },
	),
	fx.Invoke(registerLifecycle),
)

type storageParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newStorage(p storageParams) (*Storage, error) {
	return New(p.Ctx, p.Config.DatabaseURI, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, storage *Storage) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			storage.Close()
			return nil
		},
	})
}
