package repository

import (
	"context"

	"github.com/greenmandi/storefront/internal/domain/model"
)

// PincodeRepository answers delivery serviceability questions.
type PincodeRepository interface {
	Get(ctx context.Context, code string) (*model.Pincode, error)
}
