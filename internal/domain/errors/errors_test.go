package errors

import (
	stdErrors "errors"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"already exists", ErrAlreadyExists},
		{"not found", ErrNotFound},
		{"invalid phone", ErrInvalidPhone},
		{"invalid code", ErrInvalidCode},
		{"code expired", ErrCodeExpired},
		{"too many attempts", ErrTooManyAttempts},
		{"resend cooldown", ErrResendCooldown},
		{"not verified", ErrNotVerified},
		{"invalid pincode", ErrInvalidPincode},
		{"invalid address", ErrInvalidAddress},
		{"not serviceable", ErrNotServiceable},
		{"empty order", ErrEmptyOrder},
		{"invalid payment", ErrInvalidPayment},
		{"product unavailable", ErrProductUnavailable},
		{"invalid coupon", ErrInvalidCoupon},
		{"invalid signature", ErrInvalidSignature},
		{"invalid transition", ErrInvalidTransition},
		{"forbidden", ErrForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if !stdErrors.Is(tc.err, tc.err) {
				t.Fatalf("expected error to match itself: %v", tc.err)
			}
		})
	}
}
