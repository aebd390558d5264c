package errors

import "errors"

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidPhone       = errors.New("invalid phone number")
	ErrInvalidCode        = errors.New("invalid verification code")
	ErrCodeExpired        = errors.New("verification code expired")
	ErrTooManyAttempts    = errors.New("too many verification attempts")
	ErrResendCooldown     = errors.New("resend requested too soon")
	ErrNotVerified        = errors.New("phone not verified")
	ErrInvalidPincode     = errors.New("invalid pincode")
	ErrInvalidAddress     = errors.New("invalid address")
	ErrNotServiceable     = errors.New("pincode not serviceable")
	ErrEmptyOrder         = errors.New("order has no items")
	ErrInvalidPayment     = errors.New("unknown payment method")
	ErrProductUnavailable = errors.New("product unavailable")
	ErrInvalidCoupon      = errors.New("invalid coupon")
	ErrInvalidSignature   = errors.New("invalid payment signature")
	ErrInvalidTransition  = errors.New("invalid payment state transition")
	ErrForbidden          = errors.New("forbidden")
)
