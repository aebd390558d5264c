package model

import "time"

// Address is a delivery address owned by a user profile. AddressID is
// numeric and scoped to the owning user.
type Address struct {
	UserID    int64
	AddressID int64
	Label     string
	Line1     string
	Line2     string
	City      string
	Pincode   string
	Latitude  *float64
	Longitude *float64
	IsDefault bool
	CreatedAt time.Time
}
