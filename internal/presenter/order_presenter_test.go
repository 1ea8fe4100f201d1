package presenter_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/vladislavdragonenkov/orders/internal/domain"
	"github.com/vladislavdragonenkov/orders/internal/presenter"
)

func sampleOrder() domain.Order {
	created := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	return domain.Order{
		ID:         "order-1",
		CustomerID: "customer-1",
		Status:     domain.OrderStatusPending,
		Items: []domain.OrderItem{
			{ProductID: "product-1", Quantity: 2, PriceMinor: 1000},
			{ProductID: "product-2", Quantity: 1, PriceMinor: 2000},
		},
		CreatedAt: created,
		UpdatedAt: created.Add(time.Minute),
	}
}

func TestOrderToResponse(t *testing.T) {
	resp := presenter.OrderToResponse(sampleOrder())

	if resp.ID != "order-1" || resp.CustomerID != "customer-1" {
		t.Fatalf("unexpected ids: %+v", resp)
	}
	if resp.Status != "PENDING" {
		t.Fatalf("expected status PENDING, got %s", resp.Status)
	}
	if len(resp.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(resp.Items))
	}
	if resp.Items[0].TotalPrice != 2000 {
		t.Fatalf("expected first line total 2000, got %d", resp.Items[0].TotalPrice)
	}
	if resp.TotalAmount != 4000 {
		t.Fatalf("expected total 4000, got %d", resp.TotalAmount)
	}
	if resp.CreatedAt == "" || resp.UpdatedAt == "" {
		t.Fatalf("expected timestamps to be rendered: %+v", resp)
	}
}

// total_amount — производное поле: всегда сумма стоимостей позиций.
func TestOrderToResponse_TotalIsRecomputed(t *testing.T) {
	order := sampleOrder()
	order.Items = append(order.Items, domain.OrderItem{ProductID: "product-3", Quantity: 3, PriceMinor: 10})

	resp := presenter.OrderToResponse(order)
	if resp.TotalAmount != 4030 {
		t.Fatalf("expected recomputed total 4030, got %d", resp.TotalAmount)
	}
}

func TestOrderToResponse_AbsentUpdatedAt(t *testing.T) {
	order := sampleOrder()
	order.UpdatedAt = time.Time{}

	resp := presenter.OrderToResponse(order)
	if resp.UpdatedAt != "" {
		t.Fatalf("expected absent updated_at, got %q", resp.UpdatedAt)
	}

	// omitempty: маркер отсутствия — само отсутствие поля в JSON.
	raw, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if _, ok := decoded["updated_at"]; ok {
		t.Fatal("updated_at must be omitted when absent")
	}
}

// Round-trip: заказ -> внешняя форма -> заказ без потерь, кроме
// производного total_amount.
func TestOrderRoundTrip(t *testing.T) {
	original := sampleOrder()

	resp := presenter.OrderToResponse(original)
	restored, err := presenter.OrderFromResponse(resp)
	if err != nil {
		t.Fatalf("round trip failed: %v", err)
	}

	if restored.ID != original.ID || restored.CustomerID != original.CustomerID {
		t.Fatalf("ids lost in round trip: %+v", restored)
	}
	if restored.Status != original.Status {
		t.Fatalf("status lost in round trip: %s", restored.Status)
	}
	if !restored.CreatedAt.Equal(original.CreatedAt) || !restored.UpdatedAt.Equal(original.UpdatedAt) {
		t.Fatalf("timestamps lost in round trip: %+v", restored)
	}
	if len(restored.Items) != len(original.Items) {
		t.Fatalf("items lost in round trip: %+v", restored.Items)
	}
	for i, item := range restored.Items {
		if item != original.Items[i] {
			t.Fatalf("item %d changed in round trip: %+v vs %+v", i, item, original.Items[i])
		}
	}
	if restored.TotalMinor() != original.TotalMinor() {
		t.Fatalf("recomputed total mismatch: %d vs %d", restored.TotalMinor(), original.TotalMinor())
	}
}

func TestOrderFromResponse_BadTimestamp(t *testing.T) {
	resp := presenter.OrderToResponse(sampleOrder())
	resp.CreatedAt = "вчера"

	if _, err := presenter.OrderFromResponse(resp); err == nil {
		t.Fatal("expected parse error for malformed timestamp")
	}
}

func TestEnvelopes(t *testing.T) {
	ok := presenter.Success(presenter.OrderToResponse(sampleOrder()))
	if !ok.Success || ok.Error != "" || ok.Data == nil {
		t.Fatalf("unexpected success envelope: %+v", ok)
	}

	bad := presenter.Failure("customer not found")
	if bad.Success || bad.Error != "customer not found" || bad.Data != nil {
		t.Fatalf("unexpected failure envelope: %+v", bad)
	}

	raw, err := json.Marshal(bad)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if _, ok := decoded["data"]; ok {
		t.Fatal("failure envelope must not carry data")
	}
}
