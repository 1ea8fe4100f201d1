package kafka

import (
	"time"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

// TopicOrderEvents — топик доменных событий заказов.
const TopicOrderEvents = "orders.order.events"

// orderEventPayload — wire-представление доменного события.
type orderEventPayload struct {
	EventType   string    `json:"event_type"`
	OrderID     string    `json:"order_id"`
	CustomerID  string    `json:"customer_id"`
	Status      string    `json:"status"`
	AmountMinor int64     `json:"amount_minor"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// Publisher адаптирует Producer под порт domain.EventPublisher.
// Ключ сообщения — order_id: события одного заказа попадают в одну
// партицию и сохраняют порядок.
type Publisher struct {
	producer *Producer
}

// NewPublisher создаёт Kafka-публикатора доменных событий.
func NewPublisher(producer *Producer) *Publisher {
	return &Publisher{producer: producer}
}

// Publish отправляет событие заказа в топик TopicOrderEvents.
func (p *Publisher) Publish(event domain.OrderEvent) error {
	payload := orderEventPayload{
		EventType:   string(event.Type),
		OrderID:     event.OrderID,
		CustomerID:  event.CustomerID,
		Status:      string(event.Status),
		AmountMinor: event.AmountMinor,
		OccurredAt:  event.OccurredAt,
	}
	return p.producer.PublishMessage(TopicOrderEvents, event.OrderID, payload)
}

var _ domain.EventPublisher = (*Publisher)(nil)
