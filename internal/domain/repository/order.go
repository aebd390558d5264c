package repository

import (
	"context"
	"time"

	"github.com/greenmandi/storefront/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) (*model.Order, error)
	GetByNumber(ctx context.Context, number int64) (*model.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)
	// MarkPaid transitions payment status pending->paid and order status
	// payment_pending->placed. Reports whether a row transitioned.
	MarkPaid(ctx context.Context, number int64, gatewayPaymentID string) (bool, error)
	// MarkPaymentFailed transitions payment status pending->failed and order
	// status payment_pending->payment_failed.
	MarkPaymentFailed(ctx context.Context, number int64, reason string) (bool, error)
	// SelectStalePaymentPending returns online orders still awaiting payment
	// that were placed before the cutoff.
	SelectStalePaymentPending(ctx context.Context, cutoff time.Time, limit int) ([]model.Order, error)
}
