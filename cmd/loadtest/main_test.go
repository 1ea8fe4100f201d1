package main

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestParseMode(t *testing.T) {
	cases := []struct {
		value   string
		want    loadMode
		wantErr bool
	}{
		{"create", modeCreate, false},
		{" create-get ", modeCreateGet, false},
		{"create-cancel", modeCreateCancel, false},
		{"create-pay", "", true},
		{"", "", true},
	}

	for _, tc := range cases {
		got, err := parseMode(tc.value)
		if tc.wantErr {
			if err == nil {
				t.Errorf("parseMode(%q): expected error", tc.value)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseMode(%q): unexpected error %v", tc.value, err)
			continue
		}
		if got != tc.want {
			t.Errorf("parseMode(%q) = %s, want %s", tc.value, got, tc.want)
		}
	}
}

func TestShouldCancelScenario(t *testing.T) {
	if shouldCancelScenario(0, 0) {
		t.Error("rate 0 should never cancel")
	}
	if !shouldCancelScenario(42, 100) {
		t.Error("rate 100 should always cancel")
	}
	if !shouldCancelScenario(10, 50) {
		t.Error("index 10 with rate 50 should cancel")
	}
	if shouldCancelScenario(90, 50) {
		t.Error("index 90 with rate 50 should not cancel")
	}
}

func TestStatusLabel(t *testing.T) {
	if got := statusLabel(0); got != "transport_error" {
		t.Errorf("expected transport_error, got %s", got)
	}
	if got := statusLabel(201); got != "201" {
		t.Errorf("expected 201, got %s", got)
	}
}

func TestCollector_RecordAndReport(t *testing.T) {
	col := newCollector()
	col.record("scenario", 10*time.Millisecond, 0, true)
	col.record("scenario", 20*time.Millisecond, 0, false)
	col.record("CreateOrder", 5*time.Millisecond, 201, true)
	col.record("CreateOrder", 7*time.Millisecond, 400, false)

	startedAt := time.Now().Add(-time.Second)
	result := col.buildReport(startedAt, time.Second)

	if result.TotalScenarios != 2 {
		t.Errorf("expected 2 scenarios, got %d", result.TotalScenarios)
	}
	if result.SuccessScenarios != 1 || result.FailedScenarios != 1 {
		t.Errorf("unexpected scenario counts: %+v", result)
	}
	if result.ErrorRate != 0.5 {
		t.Errorf("expected error rate 0.5, got %f", result.ErrorRate)
	}
	if result.RPS != 2.0 {
		t.Errorf("expected rps 2.0, got %f", result.RPS)
	}

	create, ok := result.Calls["CreateOrder"]
	if !ok {
		t.Fatal("expected CreateOrder call stats")
	}
	if create.Statuses["201"] != 1 || create.Statuses["400"] != 1 {
		t.Errorf("unexpected status map: %v", create.Statuses)
	}
}

func TestBuildLatencySummary(t *testing.T) {
	summary := buildLatencySummary(nil)
	if summary.Max != 0 {
		t.Error("empty input should produce zero summary")
	}

	values := []float64{5, 1, 3, 2, 4}
	summary = buildLatencySummary(values)
	if summary.Min != 1 || summary.Max != 5 {
		t.Errorf("unexpected min/max: %+v", summary)
	}
	if summary.Avg != 3 {
		t.Errorf("expected avg 3, got %f", summary.Avg)
	}
	if summary.P50 != 3 {
		t.Errorf("expected p50 3, got %f", summary.P50)
	}
}

func TestPercentile(t *testing.T) {
	sorted := []float64{1, 2, 3, 4}
	if got := percentile(nil, 95); got != 0 {
		t.Errorf("expected 0 for empty input, got %f", got)
	}
	if got := percentile([]float64{7}, 99); got != 7 {
		t.Errorf("expected single value, got %f", got)
	}
	got := percentile(sorted, 50)
	if math.Abs(got-2.5) > 1e-9 {
		t.Errorf("expected p50 2.5, got %f", got)
	}
}

func TestRatio(t *testing.T) {
	if ratio(1, 0) != 0 {
		t.Error("ratio with zero total should be 0")
	}
	if ratio(1, 4) != 0.25 {
		t.Errorf("expected 0.25, got %f", ratio(1, 4))
	}
}

func TestRunScenario_CreateCancelAgainstFakeServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/orders":
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"success": true,
				"data":    map[string]any{"id": "order-1", "status": "PENDING"},
			})
		case r.Method == http.MethodPost && r.URL.Path == "/orders/order-1/cancel":
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{
				"success": true,
				"data":    map[string]any{"id": "order-1", "status": "CANCELLED"},
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	cfg := config{
		baseURL:    srv.URL,
		timeout:    2 * time.Second,
		mode:       modeCreateCancel,
		customerID: "customer-1",
		productID:  "product-1",
		quantity:   1,
	}
	col := newCollector()

	runScenario(srv.Client(), cfg, 0, col)

	result := col.buildReport(time.Now().Add(-time.Second), time.Second)
	if result.FailedScenarios != 0 {
		t.Fatalf("expected scenario to succeed, report: %+v", result)
	}
	if result.Calls["CreateOrder"].Success != 1 {
		t.Error("expected successful CreateOrder call")
	}
	if result.Calls["CancelOrder"].Success != 1 {
		t.Error("expected successful CancelOrder call")
	}
}
