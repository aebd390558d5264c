package dto

// CategoryResponse is a catalog category.
type CategoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// ProductResponse is a catalog product.
type ProductResponse struct {
	ID         int64   `json:"id"`
	CategoryID int64   `json:"category_id"`
	Name       string  `json:"name"`
	Unit       string  `json:"unit"`
	Price      float64 `json:"price"`
	InStock    bool    `json:"in_stock"`
}

// PincodeResponse reports delivery serviceability.
type PincodeResponse struct {
	Code         string `json:"code"`
	Area         string `json:"area"`
	DeliveryDays int    `json:"delivery_days"`
}
