package memory

import (
	"sync"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

// customerRepositoryInMemory — простая in-memory реализация CustomerRepository.
type customerRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[string]domain.Customer
}

// NewCustomerRepository возвращает in-memory репозиторий для локальной
// разработки и тестов.
func NewCustomerRepository() domain.CustomerRepository {
	return &customerRepositoryInMemory{
		items: make(map[string]domain.Customer),
	}
}

// FindByID возвращает клиента или ErrCustomerNotFound.
func (r *customerRepositoryInMemory) FindByID(id string) (domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customer, ok := r.items[id]
	if !ok {
		return domain.Customer{}, domain.ErrCustomerNotFound
	}
	return customer, nil
}

// FindAll возвращает всех клиентов.
func (r *customerRepositoryInMemory) FindAll() ([]domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Customer, 0, len(r.items))
	for _, customer := range r.items {
		result = append(result, customer)
	}
	return result, nil
}

// Save сохраняет клиента (upsert по ID). Храним копию значения, чтобы
// избежать непредсказуемых мутаций извне.
func (r *customerRepositoryInMemory) Save(customer domain.Customer) (domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[customer.ID] = customer
	return customer, nil
}

// Update перезаписывает существующего клиента. Отсутствующий ID — тихий
// no-op: аргумент возвращается без изменений.
func (r *customerRepositoryInMemory) Update(customer domain.Customer) (domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[customer.ID]; ok {
		r.items[customer.ID] = customer
	}
	return customer, nil
}

// Delete удаляет клиента, если он есть.
func (r *customerRepositoryInMemory) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, id)
	return nil
}

var _ domain.CustomerRepository = (*customerRepositoryInMemory)(nil)
