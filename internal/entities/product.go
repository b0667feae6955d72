package entities

import "time"

type Product struct {
	ID              string
	EstablishmentID string
	Name            string
	Description     string
	Price           int64 // cents
	CoverPhoto      string
	CreatedAt       time.Time
}

// TopProduct is one row of the top-products ranking: product display
// fields plus the summed quantity sold across all orders.
type TopProduct struct {
	ProductID  string `json:"product_id"`
	Name       string `json:"name"`
	Price      int64  `json:"price"`
	CoverPhoto string `json:"cover_photo,omitempty"`
	TotalSales int64  `json:"total_sales"`
}
