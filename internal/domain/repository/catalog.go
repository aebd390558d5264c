package repository

import (
	"context"

	"github.com/greenmandi/storefront/internal/domain/model"
)

// CatalogRepository provides read access to categories and products.
type CatalogRepository interface {
	Categories(ctx context.Context) ([]model.Category, error)
	ProductsByCategory(ctx context.Context, categoryID int64) ([]model.Product, error)
	Product(ctx context.Context, id int64) (*model.Product, error)
	ProductsByIDs(ctx context.Context, ids []int64) ([]model.Product, error)
	SearchByPrefix(ctx context.Context, prefix string, limit int) ([]model.Product, error)
}
