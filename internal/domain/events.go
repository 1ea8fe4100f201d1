package domain

import "time"

// EventType определяет тип доменного события заказа.
type EventType string

const (
	// EventTypeOrderCreated — заказ создан и сохранён.
	EventTypeOrderCreated EventType = "order.created"
	// EventTypeOrderStatusChanged — статус заказа изменён явной операцией.
	EventTypeOrderStatusChanged EventType = "order.status_changed"
	// EventTypeOrderShipped — заказ передан в доставку.
	EventTypeOrderShipped EventType = "order.shipped"
	// EventTypeOrderCancelled — заказ отменён, резервы склада возвращены.
	EventTypeOrderCancelled EventType = "order.cancelled"
)

// OrderEvent — уведомление о завершённой операции workflow. Публикуется
// явным шагом в конце операции; подписчики не участвуют в принятии решений.
type OrderEvent struct {
	Type        EventType
	OrderID     string
	CustomerID  string
	Status      OrderStatus
	AmountMinor int64
	OccurredAt  time.Time
}

// NewOrderEvent снимает событие с текущего состояния заказа.
func NewOrderEvent(eventType EventType, order Order) OrderEvent {
	return OrderEvent{
		Type:        eventType,
		OrderID:     order.ID,
		CustomerID:  order.CustomerID,
		Status:      order.Status,
		AmountMinor: order.TotalMinor(),
		OccurredAt:  time.Now().UTC(),
	}
}

// EventPublisher доставляет события заказов заинтересованным сторонам.
// Ошибка публикации не должна проваливать операцию workflow.
type EventPublisher interface {
	Publish(event OrderEvent) error
}
