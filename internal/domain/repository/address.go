package repository

import (
	"context"

	"github.com/greenmandi/storefront/internal/domain/model"
)

// AddressRepository manages the per-user address book.
type AddressRepository interface {
	ListByUser(ctx context.Context, userID int64) ([]model.Address, error)
	Get(ctx context.Context, userID, addressID int64) (*model.Address, error)
	Create(ctx context.Context, address *model.Address) (*model.Address, error)
	Update(ctx context.Context, address *model.Address) error
	Delete(ctx context.Context, userID, addressID int64) error
	SetDefault(ctx context.Context, userID, addressID int64) error
}
