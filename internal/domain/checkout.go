package domain

import "time"

// CheckoutState tracks the most recent checkout attempt. Only Submitting
// blocks a new submission; Completed and Failed both allow a fresh attempt.
type CheckoutState string

const (
	CheckoutIdle       CheckoutState = "idle"
	CheckoutSubmitting CheckoutState = "submitting"
	CheckoutCompleted  CheckoutState = "completed"
	CheckoutFailed     CheckoutState = "failed"
)

// Checkout is the immutable purchase record created from a cart. Records are
// never edited or deleted; history is append-only per user.
type Checkout struct {
	ID           int            `json:"id"`
	CartID       int            `json:"cart"`
	Username     string         `json:"username,omitempty"`
	TotalAmount  Amount         `json:"total_amount"`
	TotalItems   int            `json:"total_items"`
	CheckoutDate time.Time      `json:"checkout_date"`
	Items        []CheckoutItem `json:"items"`
}

type CheckoutItem struct {
	ID           int    `json:"id"`
	CheckoutID   int    `json:"checkout"`
	ProductID    int    `json:"product"`
	ProductName  string `json:"product_name"`
	ProductPrice Amount `json:"product_price"`
	Quantity     int    `json:"quantity"`
	TotalPrice   Amount `json:"total_price"`
}
