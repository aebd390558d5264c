package repository

import (
	"context"
	"time"

	"github.com/greenmandi/storefront/internal/domain/model"
)

// OTPRepository stores pending phone verification challenges.
type OTPRepository interface {
	Upsert(ctx context.Context, challenge *model.OTPChallenge) error
	Get(ctx context.Context, phone string) (*model.OTPChallenge, error)
	IncrementAttempts(ctx context.Context, phone string) error
	MarkVerified(ctx context.Context, phone string, at time.Time) error
	Delete(ctx context.Context, phone string) error
}
