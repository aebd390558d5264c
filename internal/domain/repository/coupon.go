package repository

import (
	"context"

	"github.com/greenmandi/storefront/internal/domain/model"
)

// CouponRepository resolves discount codes.
type CouponRepository interface {
	GetByCode(ctx context.Context, code string) (*model.Coupon, error)
}
