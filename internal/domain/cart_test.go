package domain_test

import (
	"encoding/json"
	"testing"

	"storefront_client/internal/domain"
)

func TestDeriveTotalsSumsQuantitiesAndLineTotals(t *testing.T) {
	cart := &domain.Cart{
		Items: []domain.CartItem{
			{ProductID: 1, Quantity: 2, ProductPrice: 10.00, TotalPrice: 20.00},
			{ProductID: 2, Quantity: 1, ProductPrice: 4.25, TotalPrice: 4.25},
		},
	}
	totals := domain.DeriveTotals(cart)
	if totals.TotalItems != 3 {
		t.Fatalf("want 3 items, got %d", totals.TotalItems)
	}
	if totals.TotalAmount != 24.25 {
		t.Fatalf("want 24.25, got %s", totals.TotalAmount)
	}
}

func TestDeriveTotalsNilCartIsZero(t *testing.T) {
	totals := domain.DeriveTotals(nil)
	if totals.TotalItems != 0 || totals.TotalAmount != 0 {
		t.Fatalf("want zero totals, got %+v", totals)
	}
}

func TestAmountDecodesStringsAndNumbers(t *testing.T) {
	var item domain.CartItem
	payload := `{"id":1,"product_price":"10.00","quantity":2,"total_price":20}`
	if err := json.Unmarshal([]byte(payload), &item); err != nil {
		t.Fatal(err)
	}
	if item.ProductPrice != 10.00 || item.TotalPrice != 20.00 {
		t.Fatalf("amounts not normalized: %+v", item)
	}
}

func TestAmountRejectsGarbage(t *testing.T) {
	var a domain.Amount
	if err := json.Unmarshal([]byte(`"ten dollars"`), &a); err == nil {
		t.Fatal("want error for non-decimal string")
	}
}
