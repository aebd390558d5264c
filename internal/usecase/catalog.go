package usecase

import (
	"context"
	"strings"

	domainErrors "github.com/greenmandi/storefront/internal/domain/errors"
	"github.com/greenmandi/storefront/internal/domain/model"
	"github.com/greenmandi/storefront/internal/domain/repository"
)

const (
	defaultSearchLimit = 10
	maxSearchLimit     = 20
)

// CatalogUseCase exposes catalog browsing and serviceability checks.
type CatalogUseCase struct {
	catalog  repository.CatalogRepository
	pincodes repository.PincodeRepository
}

// NewCatalogUseCase constructs CatalogUseCase.
func NewCatalogUseCase(catalog repository.CatalogRepository, pincodes repository.PincodeRepository) *CatalogUseCase {
	return &CatalogUseCase{catalog: catalog, pincodes: pincodes}
}

// Categories lists all catalog categories.
func (u *CatalogUseCase) Categories(ctx context.Context) ([]model.Category, error) {
	return u.catalog.Categories(ctx)
}

// ProductsByCategory lists products in a category.
func (u *CatalogUseCase) ProductsByCategory(ctx context.Context, categoryID int64) ([]model.Product, error) {
	return u.catalog.ProductsByCategory(ctx, categoryID)
}

// Product fetches one product.
func (u *CatalogUseCase) Product(ctx context.Context, id int64) (*model.Product, error) {
	return u.catalog.Product(ctx, id)
}

// Search suggests active products whose name starts with the prefix.
func (u *CatalogUseCase) Search(ctx context.Context, prefix string, limit int) ([]model.Product, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}
	return u.catalog.SearchByPrefix(ctx, prefix, limit)
}

// CheckPincode reports whether deliveries reach the pincode.
func (u *CatalogUseCase) CheckPincode(ctx context.Context, code string) (*model.Pincode, error) {
	code = strings.TrimSpace(code)
	if !ValidatePincode(code) {
		return nil, domainErrors.ErrInvalidPincode
	}
	return u.pincodes.Get(ctx, code)
}
