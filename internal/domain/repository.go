package domain

// CustomerRepository описывает требования к хранилищу клиентов.
//
// Общий контракт всех репозиториев: Save и Update — идемпотентные upsert'ы
// по идентификатору; Update несуществующей записи — тихий no-op, который
// возвращает аргумент без изменений (вызывающие не должны полагаться на
// сигнал отсутствия). FindByID на отсутствующем ID возвращает sentinel
// Err*NotFound, других режимов отказа у in-memory реализации нет.
type CustomerRepository interface {
	// FindByID возвращает клиента или ErrCustomerNotFound.
	FindByID(id string) (Customer, error)
	// FindAll возвращает всех клиентов без гарантий порядка.
	FindAll() ([]Customer, error)
	// Save сохраняет клиента (upsert по ID).
	Save(customer Customer) (Customer, error)
	// Update перезаписывает существующего клиента; отсутствующий ID — no-op.
	Update(customer Customer) (Customer, error)
	// Delete удаляет клиента; отсутствующий ID — no-op.
	Delete(id string) error
}

// ProductRepository описывает требования к хранилищу товаров.
type ProductRepository interface {
	// FindByID возвращает товар или ErrProductNotFound.
	FindByID(id string) (Product, error)
	// FindAll возвращает все товары без гарантий порядка.
	FindAll() ([]Product, error)
	// FindByName ищет товары по подстроке названия без учёта регистра.
	FindByName(name string) ([]Product, error)
	// Save сохраняет товар (upsert по ID).
	Save(product Product) (Product, error)
	// Update перезаписывает существующий товар; отсутствующий ID — no-op.
	Update(product Product) (Product, error)
	// Delete удаляет товар; отсутствующий ID — no-op.
	Delete(id string) error
}

// OrderRepository описывает требования к хранилищу заказов.
type OrderRepository interface {
	// FindByID возвращает заказ или ErrOrderNotFound.
	FindByID(id string) (Order, error)
	// FindAll возвращает все заказы без гарантий порядка.
	FindAll() ([]Order, error)
	// FindAllByCustomerID возвращает заказы клиента линейным сканом.
	FindAllByCustomerID(customerID string) ([]Order, error)
	// Save сохраняет заказ вместе с позициями (upsert по ID).
	Save(order Order) (Order, error)
	// Update перезаписывает существующий заказ; отсутствующий ID — no-op.
	Update(order Order) (Order, error)
	// Delete удаляет заказ; workflow этой операцией не пользуется.
	Delete(id string) error
}
