package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestNewOrderMetrics_Collectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := newOrderMetricsWithRegisterer(reg)

	if metrics.ordersCreated == nil {
		t.Error("ordersCreated counter should not be nil")
	}
	if metrics.ordersCancelled == nil {
		t.Error("ordersCancelled counter should not be nil")
	}
	if metrics.statusUpdates == nil {
		t.Error("statusUpdates counter should not be nil")
	}
	if metrics.operationFailed == nil {
		t.Error("operationFailed counter vec should not be nil")
	}
	if metrics.insufficientStock == nil {
		t.Error("insufficientStock counter should not be nil")
	}
	if metrics.createDuration == nil {
		t.Error("createDuration histogram should not be nil")
	}
	if metrics.eventsPublished == nil {
		t.Error("eventsPublished counter should not be nil")
	}
}

func TestOrderMetrics_ReregisterReturnsExisting(t *testing.T) {
	reg := prometheus.NewRegistry()

	first := newOrderMetricsWithRegisterer(reg)
	second := newOrderMetricsWithRegisterer(reg)

	first.RecordOrderCreated()
	second.RecordOrderCreated()

	if got := counterValue(t, first.ordersCreated); got != 2 {
		t.Fatalf("expected both instances to share the counter, got %v", got)
	}
}

func TestOrderMetrics_Record(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := newOrderMetricsWithRegisterer(reg)

	metrics.RecordOrderCreated()
	metrics.RecordOrderCancelled()
	metrics.RecordStatusUpdate()
	metrics.RecordInsufficientStock()
	metrics.RecordEventPublished()
	metrics.RecordOperationFailed("create_order")
	metrics.RecordCreateDuration(15 * time.Millisecond)

	if got := counterValue(t, metrics.ordersCreated); got != 1 {
		t.Errorf("ordersCreated: expected 1, got %v", got)
	}
	if got := counterValue(t, metrics.ordersCancelled); got != 1 {
		t.Errorf("ordersCancelled: expected 1, got %v", got)
	}
	if got := counterValue(t, metrics.insufficientStock); got != 1 {
		t.Errorf("insufficientStock: expected 1, got %v", got)
	}
	if got := counterValue(t, metrics.operationFailed.WithLabelValues("create_order")); got != 1 {
		t.Errorf("operationFailed: expected 1, got %v", got)
	}
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()

	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("write metric: %v", err)
	}
	return m.GetCounter().GetValue()
}
