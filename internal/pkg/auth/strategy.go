package auth

import "time"

// Strategy issues and validates session tokens for phone-verified customers.
// Tokens carry only the user id; profile data stays in the users table.
type Strategy interface {
	IssueToken(userID int64) (string, error)
	ParseToken(token string) (int64, error)
	Name() string
}

// Options tunes a strategy. A non-positive TTL selects the long-lived
// default, sized so customers are not re-prompted for an OTP between weekly
// grocery orders.
type Options struct {
	TTL time.Duration
}
