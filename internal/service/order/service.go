package order

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders/internal/domain"
	"github.com/vladislavdragonenkov/orders/internal/metrics"
)

// ItemRequest — одна запрошенная позиция при создании заказа.
type ItemRequest struct {
	ProductID string
	Quantity  int32
}

// Service оркестрирует операции жизненного цикла заказа поверх
// репозиториев клиентов, товаров и заказов. Вся логика принятия решений
// живёт здесь; форматирование ответов — в presenter.
type Service struct {
	orders    domain.OrderRepository
	customers domain.CustomerRepository
	products  domain.ProductRepository
	events    domain.EventPublisher
	logger    *log.Entry
	metrics   *metrics.OrderMetrics
}

// NewService создаёт рабочий экземпляр workflow-сервиса.
func NewService(
	orders domain.OrderRepository,
	customers domain.CustomerRepository,
	products domain.ProductRepository,
	events domain.EventPublisher,
	logger *log.Entry,
) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "order-service")
	}
	return &Service{
		orders:    orders,
		customers: customers,
		products:  products,
		events:    events,
		logger:    logger,
		metrics:   metrics.NewOrderMetrics(),
	}
}

// NewServiceWithoutMetrics создаёт сервис без метрик (для тестов).
func NewServiceWithoutMetrics(
	orders domain.OrderRepository,
	customers domain.CustomerRepository,
	products domain.ProductRepository,
	events domain.EventPublisher,
	logger *log.Entry,
) *Service {
	svc := NewService(orders, customers, products, events, logger)
	svc.metrics = nil
	return svc
}

// CreateOrder проверяет клиента и каждую позицию, снимает остатки и
// сохраняет заказ в статусе PENDING.
//
// Списание остатка выполняется сразу при валидации позиции. Если более
// поздняя позиция того же запроса не проходит проверку, уже списанные
// остатки НЕ возвращаются — поведение унаследовано от исходной системы
// и зафиксировано тестами.
func (s *Service) CreateOrder(customerID string, items []ItemRequest) (domain.Order, error) {
	start := time.Now()
	defer func() {
		if s.metrics != nil {
			s.metrics.RecordCreateDuration(time.Since(start))
		}
	}()

	if _, err := s.customers.FindByID(customerID); err != nil {
		return domain.Order{}, s.fail("create_order", fmt.Errorf("customer %s: %w", customerID, s.classify(err, domain.ErrCustomerNotFound)))
	}

	now := time.Now().UTC()
	order := domain.Order{
		ID:         uuid.NewString(),
		CustomerID: customerID,
		Status:     domain.OrderStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	for _, req := range items {
		if req.Quantity <= 0 {
			return domain.Order{}, s.fail("create_order", fmt.Errorf("product %s: %w", req.ProductID, domain.ErrItemQtyInvalid))
		}

		product, err := s.products.FindByID(req.ProductID)
		if err != nil {
			return domain.Order{}, s.fail("create_order", fmt.Errorf("product %s: %w", req.ProductID, s.classify(err, domain.ErrProductNotFound)))
		}
		if product.StockQuantity < req.Quantity {
			if s.metrics != nil {
				s.metrics.RecordInsufficientStock()
			}
			return domain.Order{}, s.fail("create_order", fmt.Errorf(
				"%w: product %q available %d, requested %d",
				domain.ErrInsufficientStock, product.Name, product.StockQuantity, req.Quantity,
			))
		}

		// Снапшот цены: изменения каталога не трогают оформленные заказы.
		order.AddItem(domain.OrderItem{
			ProductID:  product.ID,
			Quantity:   req.Quantity,
			PriceMinor: product.PriceMinor,
		})

		if err := product.UpdateStock(product.StockQuantity - req.Quantity); err != nil {
			return domain.Order{}, s.fail("create_order", s.classify(err, nil))
		}
		if _, err := s.products.Update(product); err != nil {
			return domain.Order{}, s.fail("create_order", s.classify(err, nil))
		}
	}

	saved, err := s.orders.Save(order)
	if err != nil {
		return domain.Order{}, s.fail("create_order", s.classify(err, nil))
	}

	if s.metrics != nil {
		s.metrics.RecordOrderCreated()
	}
	s.logger.WithFields(log.Fields{
		"order_id":    saved.ID,
		"customer_id": saved.CustomerID,
		"items":       len(saved.Items),
		"amount":      saved.TotalMinor(),
	}).Info("заказ создан")

	s.publish(domain.EventTypeOrderCreated, saved)
	return saved, nil
}

// UpdateOrderStatus переводит заказ в любой валидный статус. Ограничений
// на сами переходы нет — проверяется только принадлежность статуса белому
// списку.
func (s *Service) UpdateOrderStatus(orderID, status string) (domain.Order, error) {
	order, err := s.orders.FindByID(orderID)
	if err != nil {
		return domain.Order{}, s.fail("update_status", fmt.Errorf("order %s: %w", orderID, s.classify(err, domain.ErrOrderNotFound)))
	}

	newStatus, err := domain.ParseOrderStatus(status)
	if err != nil {
		// Заказ возвращается без изменений.
		return order, s.fail("update_status", fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status))
	}

	order.UpdateStatus(newStatus)
	updated, err := s.orders.Update(order)
	if err != nil {
		return domain.Order{}, s.fail("update_status", s.classify(err, nil))
	}

	if s.metrics != nil {
		s.metrics.RecordStatusUpdate()
	}
	s.logger.WithFields(log.Fields{
		"order_id": updated.ID,
		"status":   updated.Status,
	}).Info("статус заказа обновлён")

	s.publish(domain.EventTypeOrderStatusChanged, updated)
	if newStatus == domain.OrderStatusShipped {
		s.publish(domain.EventTypeOrderShipped, updated)
	}
	return updated, nil
}

// CancelOrder отменяет заказ в статусе PENDING или CONFIRMED и возвращает
// остатки по каждой позиции. Товары, исчезнувшие из каталога, молча
// пропускаются.
func (s *Service) CancelOrder(orderID string) (domain.Order, error) {
	order, err := s.orders.FindByID(orderID)
	if err != nil {
		return domain.Order{}, s.fail("cancel_order", fmt.Errorf("order %s: %w", orderID, s.classify(err, domain.ErrOrderNotFound)))
	}

	if !order.CanCancel() {
		return order, s.fail("cancel_order", fmt.Errorf("%w: status %s", domain.ErrInvalidCancellation, order.Status))
	}

	order.UpdateStatus(domain.OrderStatusCancelled)

	for _, item := range order.Items {
		product, err := s.products.FindByID(item.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrProductNotFound) {
				s.logger.WithFields(log.Fields{
					"order_id":   order.ID,
					"product_id": item.ProductID,
				}).Debug("товар исчез из каталога, возврат остатка пропущен")
				continue
			}
			return domain.Order{}, s.fail("cancel_order", s.classify(err, nil))
		}

		if err := product.UpdateStock(product.StockQuantity + item.Quantity); err != nil {
			return domain.Order{}, s.fail("cancel_order", s.classify(err, nil))
		}
		if _, err := s.products.Update(product); err != nil {
			return domain.Order{}, s.fail("cancel_order", s.classify(err, nil))
		}
	}

	updated, err := s.orders.Update(order)
	if err != nil {
		return domain.Order{}, s.fail("cancel_order", s.classify(err, nil))
	}

	if s.metrics != nil {
		s.metrics.RecordOrderCancelled()
	}
	s.logger.WithField("order_id", updated.ID).Info("заказ отменён, остатки возвращены")

	s.publish(domain.EventTypeOrderCancelled, updated)
	return updated, nil
}

// GetOrder возвращает заказ по идентификатору.
func (s *Service) GetOrder(orderID string) (domain.Order, error) {
	order, err := s.orders.FindByID(orderID)
	if err != nil {
		return domain.Order{}, s.fail("get_order", fmt.Errorf("order %s: %w", orderID, s.classify(err, domain.ErrOrderNotFound)))
	}
	return order, nil
}

// ListCustomerOrders возвращает все заказы клиента.
func (s *Service) ListCustomerOrders(customerID string) ([]domain.Order, error) {
	orders, err := s.orders.FindAllByCustomerID(customerID)
	if err != nil {
		return nil, s.fail("list_orders", s.classify(err, nil))
	}
	return orders, nil
}

// classify оставляет известные доменные ошибки как есть, а всё остальное
// заворачивает в ErrOperationFailed: неожиданный сбой не должен уходить
// вызывающему в сыром виде. expected позволяет сузить ожидаемый sentinel.
func (s *Service) classify(err error, expected error) error {
	if expected != nil && errors.Is(err, expected) {
		return err
	}
	if domain.IsNotFound(err) ||
		errors.Is(err, domain.ErrInsufficientStock) ||
		errors.Is(err, domain.ErrInvalidStatus) ||
		errors.Is(err, domain.ErrInvalidCancellation) ||
		errors.Is(err, domain.ErrNegativeStock) ||
		errors.Is(err, domain.ErrItemQtyInvalid) {
		return err
	}
	return fmt.Errorf("%w: %v", domain.ErrOperationFailed, err)
}

// fail логирует провал операции и фиксирует метрику.
func (s *Service) fail(operation string, err error) error {
	if s.metrics != nil {
		s.metrics.RecordOperationFailed(operation)
	}
	s.logger.WithError(err).WithField("operation", operation).Warn("операция workflow отклонена")
	return err
}

// publish отдаёт событие подписчикам; ошибка публикации логируется и не
// проваливает операцию.
func (s *Service) publish(eventType domain.EventType, order domain.Order) {
	if s.events == nil {
		return
	}

	event := domain.NewOrderEvent(eventType, order)
	if err := s.events.Publish(event); err != nil {
		s.logger.WithError(err).WithFields(log.Fields{
			"event_type": eventType,
			"order_id":   order.ID,
		}).Warn("не удалось опубликовать событие заказа")
		return
	}
	if s.metrics != nil {
		s.metrics.RecordEventPublished()
	}
}
