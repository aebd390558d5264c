package model

import "time"

// Category groups catalog products.
type Category struct {
	ID   int64
	Name string
	Slug string
}

// Product is a catalog entry with its current price and stock.
type Product struct {
	ID         int64
	CategoryID int64
	Name       string
	Unit       string
	Price      float64
	Stock      int
	Active     bool
	CreatedAt  time.Time
}
