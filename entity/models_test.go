package entity

import (
	"math"
	"testing"

	"github.com/LazyDev-01/Dayliz-App-sub011/pkg/testsupport"
)

func TestProductEffectivePrice(t *testing.T) {
	var products []Product
	testsupport.LoadFixtureJSON(t, testsupport.FixturePath("products.json"), &products)
	if len(products) != 2 {
		t.Fatalf("expected 2 fixture products, got %d", len(products))
	}

	if got := products[0].EffectivePrice(); got != 3.5 {
		t.Errorf("expected list price 3.5, got %v", got)
	}
	if got := products[1].EffectivePrice(); got != 2.75 {
		t.Errorf("expected sale price 2.75, got %v", got)
	}
}

func TestNewCartComputesTotal(t *testing.T) {
	var items []CartItem
	testsupport.LoadFixtureJSON(t, testsupport.FixturePath("cart.json"), &items)

	cart := NewCart(items)
	if len(cart.Items) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(cart.Items))
	}

	// 2 x 3.50 milk + 1 x 2.75 sale-priced loaf; the unjoined line adds
	// nothing.
	want := 9.75
	if math.Abs(cart.Total-want) > 1e-9 {
		t.Errorf("expected total %v, got %v", want, cart.Total)
	}
}

func TestNewCartEmpty(t *testing.T) {
	cart := NewCart(nil)
	if cart.Total != 0 || len(cart.Items) != 0 {
		t.Errorf("unexpected empty cart: %+v", cart)
	}
}

func TestCartItemValidate(t *testing.T) {
	valid := CartItem{ProductID: "p1", Quantity: 1}
	if err := valid.Validate(); err != nil {
		t.Errorf("expected valid item, got %v", err)
	}

	tests := []struct {
		name string
		item CartItem
	}{
		{"missing product id", CartItem{Quantity: 1}},
		{"zero quantity", CartItem{ProductID: "p1"}},
		{"negative quantity", CartItem{ProductID: "p1", Quantity: -2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.item.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestOrderValidate(t *testing.T) {
	valid := Order{
		Address:       "12 Main St",
		PaymentMethod: PaymentTypeCOD,
		TotalPrice:    10,
		Items:         []OrderItem{{ProductID: "p1", Quantity: 1, Price: 10}},
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("expected valid order, got %v", err)
	}

	empty := valid
	empty.Items = nil
	if err := empty.Validate(); err == nil {
		t.Error("expected error for an order without items")
	}

	noAddress := valid
	noAddress.Address = ""
	if err := noAddress.Validate(); err == nil {
		t.Error("expected error for an order without an address")
	}
}

func TestPaymentMethodValidate(t *testing.T) {
	valid := PaymentMethod{Type: PaymentTypeUPI, Label: "personal"}
	if err := valid.Validate(); err != nil {
		t.Errorf("expected valid payment method, got %v", err)
	}

	bogus := PaymentMethod{Type: "barter", Label: "chickens"}
	if err := bogus.Validate(); err == nil {
		t.Error("expected error for an unsupported payment type")
	}
}

func TestAddressValidate(t *testing.T) {
	valid := Address{Line1: "12 Main St", City: "Tura"}
	if err := valid.Validate(); err != nil {
		t.Errorf("expected valid address, got %v", err)
	}
	if err := (Address{City: "Tura"}).Validate(); err == nil {
		t.Error("expected error for a missing line1")
	}
}

func TestProductValidate(t *testing.T) {
	valid := Product{Name: "Milk", Price: 3.5, Category: "dairy", Stock: 10}
	if err := valid.Validate(); err != nil {
		t.Errorf("expected valid product, got %v", err)
	}
	if err := (Product{Price: 1, Category: "dairy"}).Validate(); err == nil {
		t.Error("expected error for a missing name")
	}
	if err := (Product{Name: "Milk", Price: -1, Category: "dairy"}).Validate(); err == nil {
		t.Error("expected error for a negative price")
	}
}
