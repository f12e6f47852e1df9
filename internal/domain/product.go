package domain

import "time"

type Product struct {
	ID          int       `json:"id"`
	ProductName string    `json:"product_name"`
	Description string    `json:"description"`
	Price       Amount    `json:"price"`
	Stock       int       `json:"stock"`
	SellerID    int       `json:"seller"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

// ProductInput is the seller-side create/update payload. Pointer fields are
// omitted from PATCH bodies when nil.
type ProductInput struct {
	ProductName *string `json:"product_name,omitempty"`
	Description *string `json:"description,omitempty"`
	Price       *Amount `json:"price,omitempty"`
	Stock       *int    `json:"stock,omitempty"`
}
