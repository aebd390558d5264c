package model

import "time"

// CouponKind selects how a coupon discount is computed.
type CouponKind string

const (
	CouponKindPercent CouponKind = "percent"
	CouponKindFlat    CouponKind = "flat"
)

// Coupon describes a discount code applicable at checkout.
type Coupon struct {
	Code          string
	Kind          CouponKind
	Value         float64
	MinOrderValue float64
	ExpiresAt     time.Time
	Active        bool
}

// DiscountFor computes the discount the coupon grants on a subtotal.
// Returns 0 when the subtotal does not meet the minimum.
func (c Coupon) DiscountFor(subtotal float64) float64 {
	if subtotal < c.MinOrderValue {
		return 0
	}
	var d float64
	switch c.Kind {
	case CouponKindPercent:
		d = subtotal * c.Value / 100
	case CouponKindFlat:
		d = c.Value
	}
	if d > subtotal {
		d = subtotal
	}
	return d
}
