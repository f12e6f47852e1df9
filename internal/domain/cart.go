package domain

import "time"

// Cart is the server-owned aggregate of a customer's pending purchase. The
// server creates it lazily on first add; this client never creates one
// explicitly and treats every loaded snapshot as disposable.
type Cart struct {
	ID         int        `json:"id"`
	UserID     int        `json:"user"`
	Username   string     `json:"username,omitempty"`
	Items      []CartItem `json:"items"`
	TotalItems int        `json:"total_items"`
	CartTotal  Amount     `json:"cart_total"`
	CreatedAt  time.Time  `json:"created_at,omitempty"`
}

type CartItem struct {
	ID           int    `json:"id"`
	CartID       int    `json:"cart"`
	ProductID    int    `json:"product"`
	ProductName  string `json:"product_name"`
	ProductPrice Amount `json:"product_price"`
	Quantity     int    `json:"quantity"`
	TotalPrice   Amount `json:"total_price"`
}

// Totals is derived client-side from the item list. For a fresh snapshot it
// must agree with the server-reported total_items/cart_total.
type Totals struct {
	TotalItems  int    `json:"total_items"`
	TotalAmount Amount `json:"total_amount"`
}

// DeriveTotals sums quantities and line totals over the cart items. A nil
// cart derives to zero totals.
func DeriveTotals(cart *Cart) Totals {
	var t Totals
	if cart == nil {
		return t
	}
	for _, item := range cart.Items {
		t.TotalItems += item.Quantity
		t.TotalAmount += item.TotalPrice
	}
	return t
}
