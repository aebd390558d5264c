package model

import "time"

// OTPChallenge is a pending phone verification. Only the bcrypt hash of
// the code is stored. VerifiedAt is set when a new user passes
// verification and still has to complete registration.
type OTPChallenge struct {
	Phone      string
	CodeHash   string
	Attempts   int
	LastSentAt time.Time
	ExpiresAt  time.Time
	VerifiedAt *time.Time
}
