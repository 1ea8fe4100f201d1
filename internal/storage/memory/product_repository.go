package memory

import (
	"strings"
	"sync"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

// productRepositoryInMemory — простая in-memory реализация ProductRepository.
// RWMutex заодно сериализует read-check-decrement последовательность
// workflow'а вокруг остатков.
type productRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[string]domain.Product
}

// NewProductRepository возвращает in-memory репозиторий для локальной
// разработки и тестов.
func NewProductRepository() domain.ProductRepository {
	return &productRepositoryInMemory{
		items: make(map[string]domain.Product),
	}
}

// FindByID возвращает товар или ErrProductNotFound.
func (r *productRepositoryInMemory) FindByID(id string) (domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.items[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return product, nil
}

// FindAll возвращает все товары.
func (r *productRepositoryInMemory) FindAll() ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Product, 0, len(r.items))
	for _, product := range r.items {
		result = append(result, product)
	}
	return result, nil
}

// FindByName ищет товары по подстроке названия без учёта регистра.
func (r *productRepositoryInMemory) FindByName(name string) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(name)
	result := make([]domain.Product, 0)
	for _, product := range r.items {
		if strings.Contains(strings.ToLower(product.Name), needle) {
			result = append(result, product)
		}
	}
	return result, nil
}

// Save сохраняет товар (upsert по ID).
func (r *productRepositoryInMemory) Save(product domain.Product) (domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[product.ID] = product
	return product, nil
}

// Update перезаписывает существующий товар. Отсутствующий ID — тихий no-op.
func (r *productRepositoryInMemory) Update(product domain.Product) (domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[product.ID]; ok {
		r.items[product.ID] = product
	}
	return product, nil
}

// Delete удаляет товар, если он есть.
func (r *productRepositoryInMemory) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, id)
	return nil
}

var _ domain.ProductRepository = (*productRepositoryInMemory)(nil)
