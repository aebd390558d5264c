package test

import (
	"context"
	"fmt"
	"sync"

	"github.com/greenmandi/storefront/internal/adapter/payment"
	"github.com/greenmandi/storefront/internal/adapter/sms"
)

// SMSClientStub records delivered codes.
type SMSClientStub struct {
	mu     sync.Mutex
	SendFn func(context.Context, string, string) error
	Sent   []SentMessage
}

// SentMessage is one recorded delivery.
type SentMessage struct {
	Phone string
	Code  string
}

// Send records the message or delegates to the override.
func (s *SMSClientStub) Send(ctx context.Context, phone, code string) error {
	if s.SendFn != nil {
		return s.SendFn(ctx, phone, code)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Sent = append(s.Sent, SentMessage{Phone: phone, Code: code})
	return nil
}

// Messages returns a snapshot of recorded deliveries.
func (s *SMSClientStub) Messages() []SentMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]SentMessage, len(s.Sent))
	copy(out, s.Sent)
	return out
}

// PaymentClientStub simulates the payment gateway.
type PaymentClientStub struct {
	mu              sync.Mutex
	CreateOrderFn   func(context.Context, float64, string) (*payment.GatewayOrder, error)
	LatestPaymentFn func(context.Context, string) (*payment.GatewayPayment, error)
	CreatedOrders   []payment.GatewayOrder
	Payments        map[string]*payment.GatewayPayment
	next            int
}

// NewPaymentClientStub constructs stub gateway with initialized state.
func NewPaymentClientStub() *PaymentClientStub {
	return &PaymentClientStub{Payments: make(map[string]*payment.GatewayPayment)}
}

// CreateOrder registers a gateway order with a deterministic identifier.
func (s *PaymentClientStub) CreateOrder(ctx context.Context, amount float64, receipt string) (*payment.GatewayOrder, error) {
	if s.CreateOrderFn != nil {
		return s.CreateOrderFn(ctx, amount, receipt)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	order := payment.GatewayOrder{
		ID:       fmt.Sprintf("order_stub_%d", s.next),
		Amount:   amount,
		Currency: "INR",
		Receipt:  receipt,
	}
	s.CreatedOrders = append(s.CreatedOrders, order)
	return &order, nil
}

// LatestPayment reports the configured payment attempt for the gateway order.
func (s *PaymentClientStub) LatestPayment(ctx context.Context, gatewayOrderID string) (*payment.GatewayPayment, error) {
	if s.LatestPaymentFn != nil {
		return s.LatestPaymentFn(ctx, gatewayOrderID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.Payments[gatewayOrderID]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, payment.ErrOrderUnknown
}

var _ sms.Client = (*SMSClientStub)(nil)
var _ payment.Client = (*PaymentClientStub)(nil)
