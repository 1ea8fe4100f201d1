package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// OrderMetrics содержит метрики операций order workflow.
type OrderMetrics struct {
	// Счётчики операций
	ordersCreated     prometheus.Counter
	ordersCancelled   prometheus.Counter
	statusUpdates     prometheus.Counter
	operationFailed   *prometheus.CounterVec
	insufficientStock prometheus.Counter

	// Гистограмма времени создания заказа
	createDuration prometheus.Histogram

	// Счётчик опубликованных событий
	eventsPublished prometheus.Counter
}

// NewOrderMetrics создаёт метрики workflow в default-регистраторе.
func NewOrderMetrics() *OrderMetrics {
	return newOrderMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func newOrderMetricsWithRegisterer(registerer prometheus.Registerer) *OrderMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &OrderMetrics{
		ordersCreated: registerCounter(registerer, prometheus.CounterOpts{
			Name: "orders_created_total",
			Help: "Total number of orders created",
		}),
		ordersCancelled: registerCounter(registerer, prometheus.CounterOpts{
			Name: "orders_cancelled_total",
			Help: "Total number of orders cancelled",
		}),
		statusUpdates: registerCounter(registerer, prometheus.CounterOpts{
			Name: "orders_status_updates_total",
			Help: "Total number of explicit order status updates",
		}),
		operationFailed: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "orders_operation_failed_total",
			Help: "Total number of failed workflow operations",
		}, []string{"operation"}),
		insufficientStock: registerCounter(registerer, prometheus.CounterOpts{
			Name: "orders_insufficient_stock_total",
			Help: "Total number of order creations rejected for lack of stock",
		}),
		createDuration: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "orders_create_duration_seconds",
			Help:    "Duration of order creation in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		eventsPublished: registerCounter(registerer, prometheus.CounterOpts{
			Name: "orders_events_published_total",
			Help: "Total number of order events handed to the publisher",
		}),
	}
}

// RecordOrderCreated инкрементирует счётчик созданных заказов.
func (m *OrderMetrics) RecordOrderCreated() {
	m.ordersCreated.Inc()
}

// RecordOrderCancelled инкрементирует счётчик отменённых заказов.
func (m *OrderMetrics) RecordOrderCancelled() {
	m.ordersCancelled.Inc()
}

// RecordStatusUpdate инкрементирует счётчик обновлений статуса.
func (m *OrderMetrics) RecordStatusUpdate() {
	m.statusUpdates.Inc()
}

// RecordOperationFailed инкрементирует счётчик провалов по имени операции.
func (m *OrderMetrics) RecordOperationFailed(operation string) {
	m.operationFailed.WithLabelValues(operation).Inc()
}

// RecordInsufficientStock инкрементирует счётчик отказов по остатку.
func (m *OrderMetrics) RecordInsufficientStock() {
	m.insufficientStock.Inc()
}

// RecordCreateDuration фиксирует длительность создания заказа.
func (m *OrderMetrics) RecordCreateDuration(d time.Duration) {
	m.createDuration.Observe(d.Seconds())
}

// RecordEventPublished инкрементирует счётчик опубликованных событий.
func (m *OrderMetrics) RecordEventPublished() {
	m.eventsPublished.Inc()
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogram(registerer prometheus.Registerer, opts prometheus.HistogramOpts) prometheus.Histogram {
	collector := prometheus.NewHistogram(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Histogram)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram %q: %v", opts.Name, err))
	}
	return collector
}
