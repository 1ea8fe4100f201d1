package app

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders/internal/domain"
	"github.com/vladislavdragonenkov/orders/internal/messaging"
	"github.com/vladislavdragonenkov/orders/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/orders/internal/storage/memory"
	"github.com/vladislavdragonenkov/orders/internal/storage/postgres"
)

// Dependencies содержит все зависимости приложения, собранные один раз
// при старте и живущие до завершения процесса.
type Dependencies struct {
	Customers domain.CustomerRepository
	Products  domain.ProductRepository
	Orders    domain.OrderRepository
	Publisher domain.EventPublisher
	Logger    *log.Entry

	store    *postgres.Store
	producer *kafka.Producer
}

// NewDependencies выбирает хранилище и публикатор событий по конфигурации:
// postgres при заданном DSN, иначе память; Kafka при заданных брокерах,
// иначе события уходят в лог.
func NewDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*Dependencies, error) {
	if logger == nil {
		logger = log.WithField("component", "app")
	}

	deps := &Dependencies{Logger: logger}

	switch cfg.StorageDriver {
	case StorageDriverPostgres:
		store, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres store: %w", err)
		}
		if err := store.EnsureSchema(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
		deps.store = store
		deps.Customers = postgres.NewCustomerRepository(store)
		deps.Products = postgres.NewProductRepository(store)
		deps.Orders = postgres.NewOrderRepository(store)
		logger.Info("postgres storage initialized")
	case StorageDriverMemory, "":
		deps.Customers = memory.NewCustomerRepository()
		deps.Products = memory.NewProductRepository()
		deps.Orders = memory.NewOrderRepository()
		logger.Info("in-memory storage initialized")
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", cfg.StorageDriver)
	}

	if len(cfg.KafkaBrokers) > 0 {
		producer, err := kafka.NewProducer(cfg.KafkaBrokers)
		if err != nil {
			logger.WithError(err).Warn("failed to create kafka producer, falling back to log publisher")
		} else {
			deps.producer = producer
			deps.Publisher = kafka.NewPublisher(producer)
			logger.WithField("brokers", cfg.KafkaBrokers).Info("kafka publisher initialized")
		}
	}
	if deps.Publisher == nil {
		deps.Publisher = messaging.NewLogPublisher(logger.WithField("component", "events"))
	}

	return deps, nil
}

// StorePing возвращает проверку доступности postgres или nil для памяти.
func (d *Dependencies) StorePing() func() error {
	if d.store == nil {
		return nil
	}
	return func() error {
		ctx, cancel := context.WithTimeout(context.Background(), storePingTimeout)
		defer cancel()
		return d.store.Ping(ctx)
	}
}

// Close освобождает внешние ресурсы: Kafka producer и соединение с БД.
func (d *Dependencies) Close() {
	if d.producer != nil {
		if err := d.producer.Close(); err != nil {
			d.Logger.WithError(err).Warn("failed to close kafka producer")
		} else {
			d.Logger.Info("kafka producer closed")
		}
	}
	if d.store != nil {
		if err := d.store.Close(); err != nil {
			d.Logger.WithError(err).Warn("failed to close postgres store")
		}
	}
}
