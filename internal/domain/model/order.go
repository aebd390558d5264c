package model

import "time"

// OrderStatus describes fulfillment lifecycle.
type OrderStatus string

const (
	OrderStatusPlaced         OrderStatus = "placed"
	OrderStatusProcessing     OrderStatus = "processing"
	OrderStatusShipped        OrderStatus = "shipped"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusCancelled      OrderStatus = "cancelled"
	OrderStatusPaymentPending OrderStatus = "payment_pending"
	OrderStatusPaymentFailed  OrderStatus = "payment_failed"
)

// Terminal reports whether no further status changes are expected.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled || s == OrderStatusPaymentFailed
}

// PaymentStatus describes payment settlement state. Transitions only
// pending->paid or pending->failed.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// PaymentMethod selects how an order is paid.
type PaymentMethod string

const (
	PaymentMethodCOD    PaymentMethod = "cod"
	PaymentMethodOnline PaymentMethod = "online"
)

// OrderItem is a priced line item snapshot taken at checkout.
type OrderItem struct {
	ProductID int64
	Name      string
	UnitPrice float64
	Quantity  int
}

// Order describes a purchase with its address and pricing snapshot.
type Order struct {
	ID             int64
	Number         int64
	UserID         int64
	Address        Address
	Items          []OrderItem
	Subtotal       float64
	DeliveryFee    float64
	Discount       float64
	CouponCode     string
	GrandTotal     float64
	PaymentMethod  PaymentMethod
	Status         OrderStatus
	PaymentStatus  PaymentStatus
	GatewayOrderID string
	GatewayPayment string
	FailureReason  string
	PlacedAt       time.Time
	UpdatedAt      time.Time
}
