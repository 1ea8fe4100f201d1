package messaging

import (
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

// logPublisher пишет события заказов в лог. Используется, когда Kafka не
// настроена: публикация остаётся явным шагом workflow, просто подписчик —
// журнал.
type logPublisher struct {
	logger *log.Entry
}

// NewLogPublisher возвращает публикатора событий поверх logrus.
func NewLogPublisher(logger *log.Entry) domain.EventPublisher {
	if logger == nil {
		logger = log.New().WithField("component", "event-log")
	}
	return &logPublisher{logger: logger}
}

func (p *logPublisher) Publish(event domain.OrderEvent) error {
	p.logger.WithFields(log.Fields{
		"event_type":  event.Type,
		"order_id":    event.OrderID,
		"customer_id": event.CustomerID,
		"status":      event.Status,
		"amount":      event.AmountMinor,
		"occurred_at": event.OccurredAt,
	}).Info("событие заказа")
	return nil
}

var _ domain.EventPublisher = (*logPublisher)(nil)
