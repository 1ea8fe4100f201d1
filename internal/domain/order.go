package domain

import "time"

// OrderStatus описывает жизненный цикл заказа.
type OrderStatus string

const (
	// OrderStatusPending — заказ создан, подтверждение ещё не получено.
	OrderStatusPending OrderStatus = "PENDING"
	// OrderStatusConfirmed — заказ подтверждён и ожидает отгрузки.
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	// OrderStatusShipped — заказ передан в доставку.
	OrderStatusShipped OrderStatus = "SHIPPED"
	// OrderStatusDelivered — заказ доставлен клиенту.
	OrderStatusDelivered OrderStatus = "DELIVERED"
	// OrderStatusCancelled — заказ отменён до отгрузки.
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// ParseOrderStatus проверяет строку по белому списку статусов.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return OrderStatus(s), nil
	default:
		return "", ErrInvalidStatus
	}
}

// OrderItem представляет одну позицию заказа.
type OrderItem struct {
	// ProductID ссылается на товар каталога; позиция им не владеет.
	ProductID string
	// Quantity — количество единиц товара.
	Quantity int32
	// PriceMinor — цена за единицу на момент создания заказа. Последующие
	// изменения цены товара не меняют уже оформленные заказы.
	PriceMinor int64
}

// TotalMinor возвращает стоимость позиции: quantity * price.
func (i OrderItem) TotalMinor() int64 {
	return int64(i.Quantity) * i.PriceMinor
}

// Order агрегирует позиции и статус заказа. Позиции принадлежат заказу
// целиком: никакая другая сущность не мутирует их напрямую.
type Order struct {
	ID         string
	CustomerID string
	// Items хранит позиции в порядке добавления.
	Items     []OrderItem
	Status    OrderStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TotalMinor возвращает сумму заказа как сумму стоимостей позиций.
func (o *Order) TotalMinor() int64 {
	var total int64
	for _, item := range o.Items {
		total += item.TotalMinor()
	}
	return total
}

// AddItem добавляет позицию в конец списка.
func (o *Order) AddItem(item OrderItem) {
	o.Items = append(o.Items, item)
	o.UpdatedAt = time.Now().UTC()
}

// RemoveItem удаляет все позиции с указанным товаром.
func (o *Order) RemoveItem(productID string) {
	filtered := o.Items[:0]
	for _, item := range o.Items {
		if item.ProductID != productID {
			filtered = append(filtered, item)
		}
	}
	o.Items = filtered
	o.UpdatedAt = time.Now().UTC()
}

// UpdateStatus переводит заказ в новый статус и обновляет метку времени.
func (o *Order) UpdateStatus(status OrderStatus) {
	o.Status = status
	o.UpdatedAt = time.Now().UTC()
}

// CanCancel сообщает, допустима ли отмена: только до отгрузки.
func (o *Order) CanCancel() bool {
	return o.Status == OrderStatusPending || o.Status == OrderStatusConfirmed
}

// ValidateInvariants проверяет базовые инварианты заказа.
func (o *Order) ValidateInvariants() []error {
	var errs []error

	if o.CustomerID == "" {
		errs = append(errs, ErrCustomerRequired)
	}
	if _, err := ParseOrderStatus(string(o.Status)); err != nil {
		errs = append(errs, err)
	}
	for _, item := range o.Items {
		if item.Quantity <= 0 {
			errs = append(errs, ErrItemQtyInvalid)
		}
		if item.PriceMinor < 0 {
			errs = append(errs, ErrItemPriceInvalid)
		}
	}

	return errs
}
