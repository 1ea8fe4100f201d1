package kafka

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

func newMockedProducer(t *testing.T) (*Producer, *mocks.SyncProducer) {
	t.Helper()

	mockProducer := mocks.NewSyncProducer(t, nil)
	producer := &Producer{
		producer: mockProducer,
		logger:   log.WithField("component", "kafka-producer-test"),
	}
	return producer, mockProducer
}

func sampleEvent() domain.OrderEvent {
	return domain.OrderEvent{
		Type:        domain.EventTypeOrderCreated,
		OrderID:     "order-1",
		CustomerID:  "customer-1",
		Status:      domain.OrderStatusPending,
		AmountMinor: 4000,
		OccurredAt:  time.Now().UTC(),
	}
}

func TestPublisher_Publish(t *testing.T) {
	producer, mockProducer := newMockedProducer(t)

	mockProducer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(raw []byte) error {
		var payload orderEventPayload
		if err := json.Unmarshal(raw, &payload); err != nil {
			return err
		}
		if payload.EventType != "order.created" || payload.OrderID != "order-1" {
			t.Errorf("unexpected payload: %+v", payload)
		}
		if payload.AmountMinor != 4000 {
			t.Errorf("expected amount 4000, got %d", payload.AmountMinor)
		}
		return nil
	})

	publisher := NewPublisher(producer)
	if err := publisher.Publish(sampleEvent()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := mockProducer.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestPublisher_PublishError(t *testing.T) {
	producer, mockProducer := newMockedProducer(t)

	mockProducer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	publisher := NewPublisher(producer)
	if err := publisher.Publish(sampleEvent()); err == nil {
		t.Fatal("expected publish error")
	}

	if err := mockProducer.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestProducer_PublishMessage_MarshalError(t *testing.T) {
	producer, mockProducer := newMockedProducer(t)

	// Каналы не сериализуются в JSON.
	if err := producer.PublishMessage(TopicOrderEvents, "key", make(chan int)); err == nil {
		t.Fatal("expected marshal error")
	}

	if err := mockProducer.Close(); err != nil {
		t.Fatal(err)
	}
}
