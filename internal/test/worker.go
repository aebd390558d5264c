package test

import (
	"context"
	"sync"

	"github.com/greenmandi/storefront/internal/adapter/payment"
	"github.com/greenmandi/storefront/internal/domain/model"
)

// SettleCall records one settled payment.
type SettleCall struct {
	Number    int64
	PaymentID string
}

// ExpireCall records one expired payment.
type ExpireCall struct {
	Number int64
	Reason string
}

// WorkerFacadeStub simulates the application facade for reconciliation tests.
// Orders holds successive poll batches; once exhausted polls return nothing.
type WorkerFacadeStub struct {
	sync.Mutex
	Orders   [][]model.Order
	LatestFn func(context.Context, string) (*payment.GatewayPayment, error)
	Payments map[string]*payment.GatewayPayment
	Settled  []SettleCall
	Expired  []ExpireCall

	polls int
}

// StalePaymentOrders returns the next configured batch.
func (s *WorkerFacadeStub) StalePaymentOrders(ctx context.Context, limit int) ([]model.Order, error) {
	s.Lock()
	defer s.Unlock()
	if s.polls >= len(s.Orders) {
		return nil, nil
	}
	batch := s.Orders[s.polls]
	s.polls++
	if len(batch) > limit {
		batch = batch[:limit]
	}
	return batch, nil
}

// LatestPayment reports the configured payment for the gateway order.
func (s *WorkerFacadeStub) LatestPayment(ctx context.Context, gatewayOrderID string) (*payment.GatewayPayment, error) {
	if s.LatestFn != nil {
		return s.LatestFn(ctx, gatewayOrderID)
	}
	s.Lock()
	defer s.Unlock()
	if p, ok := s.Payments[gatewayOrderID]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, payment.ErrOrderUnknown
}

// SettlePayment records the settlement.
func (s *WorkerFacadeStub) SettlePayment(ctx context.Context, number int64, gatewayPaymentID string) error {
	s.Lock()
	defer s.Unlock()
	s.Settled = append(s.Settled, SettleCall{Number: number, PaymentID: gatewayPaymentID})
	return nil
}

// ExpirePayment records the expiry.
func (s *WorkerFacadeStub) ExpirePayment(ctx context.Context, number int64, reason string) error {
	s.Lock()
	defer s.Unlock()
	s.Expired = append(s.Expired, ExpireCall{Number: number, Reason: reason})
	return nil
}
