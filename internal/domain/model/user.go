package model

import "time"

// User represents a customer identified by a verified phone number.
type User struct {
	ID          int64
	Phone       string
	Name        string
	Email       string
	Deactivated bool
	CreatedAt   time.Time
}
