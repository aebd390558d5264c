package repository

import (
	"context"

	"github.com/greenmandi/storefront/internal/domain/model"
)

// UserRepository describes persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, phone, name, email string) (*model.User, error)
	GetByPhone(ctx context.Context, phone string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	SetDeactivated(ctx context.Context, id int64, deactivated bool) error
}
