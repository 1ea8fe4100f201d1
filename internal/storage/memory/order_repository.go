package memory

import (
	"sort"
	"sync"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

// orderRepositoryInMemory — простая in-memory реализация OrderRepository.
type orderRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[string]domain.Order
}

// NewOrderRepository возвращает in-memory репозиторий для локальной
// разработки и тестов.
func NewOrderRepository() domain.OrderRepository {
	return &orderRepositoryInMemory{
		items: make(map[string]domain.Order),
	}
}

// FindByID возвращает заказ или ErrOrderNotFound.
func (r *orderRepositoryInMemory) FindByID(id string) (domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.items[id]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return cloneOrder(order), nil
}

// FindAll возвращает все заказы.
func (r *orderRepositoryInMemory) FindAll() ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Order, 0, len(r.items))
	for _, order := range r.items {
		result = append(result, cloneOrder(order))
	}
	return result, nil
}

// FindAllByCustomerID возвращает заказы клиента, свежие первыми.
func (r *orderRepositoryInMemory) FindAllByCustomerID(customerID string) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Order, 0)
	for _, order := range r.items {
		if order.CustomerID != customerID {
			continue
		}
		result = append(result, cloneOrder(order))
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})

	return result, nil
}

// Save сохраняет заказ вместе с позициями (upsert по ID).
func (r *orderRepositoryInMemory) Save(order domain.Order) (domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[order.ID] = cloneOrder(order)
	return order, nil
}

// Update перезаписывает существующий заказ. Отсутствующий ID — тихий no-op.
func (r *orderRepositoryInMemory) Update(order domain.Order) (domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[order.ID]; ok {
		r.items[order.ID] = cloneOrder(order)
	}
	return order, nil
}

// Delete удаляет заказ, если он есть.
func (r *orderRepositoryInMemory) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, id)
	return nil
}

// cloneOrder копирует заказ вместе со слайсом позиций, чтобы хранимое
// состояние не мутировалось через возвращённые значения.
func cloneOrder(order domain.Order) domain.Order {
	cloned := order
	cloned.Items = make([]domain.OrderItem, len(order.Items))
	copy(cloned.Items, order.Items)
	return cloned
}

var _ domain.OrderRepository = (*orderRepositoryInMemory)(nil)
