package dto

// AddressRequest creates or replaces an address book entry.
type AddressRequest struct {
	Label     string   `json:"label,omitempty"`
	Line1     string   `json:"line1"`
	Line2     string   `json:"line2,omitempty"`
	City      string   `json:"city"`
	Pincode   string   `json:"pincode"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// AddressResponse describes a stored address.
type AddressResponse struct {
	AddressID int64    `json:"address_id"`
	Label     string   `json:"label,omitempty"`
	Line1     string   `json:"line1"`
	Line2     string   `json:"line2,omitempty"`
	City      string   `json:"city"`
	Pincode   string   `json:"pincode"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	IsDefault bool     `json:"is_default"`
}
