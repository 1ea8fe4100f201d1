package domain_test

import (
	"errors"
	"testing"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

func makeProduct() domain.Product {
	return domain.Product{
		ID:            "product-1",
		Name:          "Ноутбук",
		PriceMinor:    100000,
		StockQuantity: 10,
	}
}

func TestProductUpdateStock(t *testing.T) {
	product := makeProduct()

	if err := product.UpdateStock(8); err != nil {
		t.Fatalf("update stock failed: %v", err)
	}
	if product.StockQuantity != 8 {
		t.Fatalf("expected stock 8, got %d", product.StockQuantity)
	}
	if product.UpdatedAt.IsZero() {
		t.Fatal("expected UpdatedAt to be set")
	}
}

func TestProductUpdateStock_Negative(t *testing.T) {
	product := makeProduct()

	err := product.UpdateStock(-1)
	if !errors.Is(err, domain.ErrNegativeStock) {
		t.Fatalf("expected ErrNegativeStock, got %v", err)
	}
	if product.StockQuantity != 10 {
		t.Fatalf("stock must stay unchanged, got %d", product.StockQuantity)
	}
}

func TestProductUpdatePrice(t *testing.T) {
	product := makeProduct()

	if err := product.UpdatePrice(90000); err != nil {
		t.Fatalf("update price failed: %v", err)
	}
	if product.PriceMinor != 90000 {
		t.Fatalf("expected price 90000, got %d", product.PriceMinor)
	}

	if err := product.UpdatePrice(-5); !errors.Is(err, domain.ErrProductPriceNegative) {
		t.Fatalf("expected ErrProductPriceNegative, got %v", err)
	}
}

func TestProductIsAvailable(t *testing.T) {
	product := makeProduct()
	if !product.IsAvailable() {
		t.Fatal("expected product with stock to be available")
	}

	if err := product.UpdateStock(0); err != nil {
		t.Fatalf("update stock failed: %v", err)
	}
	if product.IsAvailable() {
		t.Fatal("expected product without stock to be unavailable")
	}
}

func TestCustomerUpdateDetails(t *testing.T) {
	customer := domain.Customer{ID: "customer-1", Name: "Анна", Email: "anna@example.com"}

	customer.UpdateDetails("", "", "+7 900 000-00-00", "Москва")
	if customer.Name != "Анна" || customer.Email != "anna@example.com" {
		t.Fatalf("empty name/email must be ignored: %+v", customer)
	}
	if customer.Phone != "+7 900 000-00-00" || customer.Address != "Москва" {
		t.Fatalf("phone/address not applied: %+v", customer)
	}

	customer.UpdateDetails("Анна Иванова", "ivanova@example.com", "", "")
	if customer.Name != "Анна Иванова" || customer.Email != "ivanova@example.com" {
		t.Fatalf("name/email not applied: %+v", customer)
	}
}

func TestCustomerValidateInvariants(t *testing.T) {
	customer := domain.Customer{ID: "customer-1"}
	errs := customer.ValidateInvariants()
	if len(errs) != 2 {
		t.Fatalf("expected 2 validation errors, got %v", errs)
	}
}
