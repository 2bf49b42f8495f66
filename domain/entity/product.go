package entity

import (
	"time"
)

type Product struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Price         float64    `json:"price"`
	PurchasePrice float64    `json:"purchase_price"`
	Quantity      int        `json:"quantity"`
	Category      string     `json:"category,omitempty"`
	Description   string     `json:"description,omitempty"`
	ImageURL      string     `json:"image_url,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

// ProductSelection is the slim projection used by pickers in the frontend.
type ProductSelection struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	PurchasePrice float64 `json:"purchase_price"`
	Quantity      int     `json:"quantity"`
}
