package model

// Pincode marks a delivery area as serviceable.
type Pincode struct {
	Code         string
	Area         string
	DeliveryDays int
}
