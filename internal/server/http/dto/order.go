package dto

import "time"

// CheckoutItemRequest is one cart line.
type CheckoutItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// CheckoutRequest places an order.
type CheckoutRequest struct {
	AddressID     int64                 `json:"address_id"`
	Items         []CheckoutItemRequest `json:"items"`
	CouponCode    string                `json:"coupon_code,omitempty"`
	PaymentMethod string                `json:"payment_method"`
}

// OrderItemResponse is a priced line item snapshot.
type OrderItemResponse struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
}

// OrderResponse describes an order with its pricing breakdown.
type OrderResponse struct {
	Number         int64               `json:"number"`
	Status         string              `json:"status"`
	PaymentStatus  string              `json:"payment_status"`
	PaymentMethod  string              `json:"payment_method"`
	Items          []OrderItemResponse `json:"items"`
	Address        AddressResponse     `json:"address"`
	Subtotal       float64             `json:"subtotal"`
	DeliveryFee    float64             `json:"delivery_fee"`
	Discount       float64             `json:"discount,omitempty"`
	CouponCode     string              `json:"coupon_code,omitempty"`
	GrandTotal     float64             `json:"grand_total"`
	GatewayOrderID string              `json:"gateway_order_id,omitempty"`
	FailureReason  string              `json:"failure_reason,omitempty"`
	PlacedAt       time.Time           `json:"placed_at"`
}

// PaymentConfirmRequest reports a successful checkout payment.
type PaymentConfirmRequest struct {
	GatewayPaymentID string `json:"gateway_payment_id"`
	Signature        string `json:"signature"`
}

// PaymentFailRequest reports a cancelled or failed checkout payment.
type PaymentFailRequest struct {
	Reason string `json:"reason"`
}

// WebhookRequest is the gateway's server-to-server payment notification.
type WebhookRequest struct {
	Event            string `json:"event"`
	OrderNumber      int64  `json:"order_number"`
	GatewayPaymentID string `json:"gateway_payment_id"`
	Signature        string `json:"signature"`
	Reason           string `json:"reason,omitempty"`
}

// CouponRequest validates a coupon against a cart subtotal.
type CouponRequest struct {
	Code     string  `json:"code"`
	Subtotal float64 `json:"subtotal"`
}

// CouponResponse is the validated discount.
type CouponResponse struct {
	Code     string  `json:"code"`
	Discount float64 `json:"discount"`
}

// OrderEventResponse is one entry on the order status stream.
type OrderEventResponse struct {
	Number        int64  `json:"number"`
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
	FailureReason string `json:"failure_reason,omitempty"`
}
