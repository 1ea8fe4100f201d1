package presenter

import (
	"fmt"
	"time"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

// OrderItemResponse — внешняя форма позиции заказа.
type OrderItemResponse struct {
	ProductID    string `json:"product_id"`
	Quantity     int32  `json:"quantity"`
	PricePerUnit int64  `json:"price_per_unit"`
	TotalPrice   int64  `json:"total_price"`
}

// OrderResponse — внешняя форма заказа. Времена сериализуются как
// RFC3339; нулевое UpdatedAt опускается (явный маркер отсутствия).
type OrderResponse struct {
	ID          string              `json:"id"`
	CustomerID  string              `json:"customer_id"`
	Items       []OrderItemResponse `json:"items"`
	Status      string              `json:"status"`
	CreatedAt   string              `json:"created_at"`
	UpdatedAt   string              `json:"updated_at,omitempty"`
	TotalAmount int64               `json:"total_amount"`
}

// Envelope — единый конверт ответа: success плюс либо данные, либо текст
// ошибки. Бизнес-логики здесь нет и быть не должно.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Success оборачивает данные в успешный конверт.
func Success(data any) Envelope {
	return Envelope{Success: true, Data: data}
}

// Failure оборачивает сообщение об ошибке.
func Failure(message string) Envelope {
	return Envelope{Success: false, Error: message}
}

// OrderToResponse переводит заказ во внешнюю форму. total_amount всегда
// пересчитывается как сумма стоимостей позиций.
func OrderToResponse(order domain.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemResponse{
			ProductID:    item.ProductID,
			Quantity:     item.Quantity,
			PricePerUnit: item.PriceMinor,
			TotalPrice:   item.TotalMinor(),
		})
	}

	resp := OrderResponse{
		ID:          order.ID,
		CustomerID:  order.CustomerID,
		Items:       items,
		Status:      string(order.Status),
		TotalAmount: order.TotalMinor(),
	}
	if !order.CreatedAt.IsZero() {
		resp.CreatedAt = order.CreatedAt.UTC().Format(time.RFC3339Nano)
	}
	if !order.UpdatedAt.IsZero() {
		resp.UpdatedAt = order.UpdatedAt.UTC().Format(time.RFC3339Nano)
	}
	return resp
}

// OrdersToResponse переводит список заказов во внешнюю форму.
func OrdersToResponse(orders []domain.Order) []OrderResponse {
	result := make([]OrderResponse, 0, len(orders))
	for _, order := range orders {
		result = append(result, OrderToResponse(order))
	}
	return result
}

// OrderFromResponse восстанавливает заказ из внешней формы. Обратное
// преобразование без потерь для всех полей, кроме производного
// total_amount — он заново вычисляется из позиций.
func OrderFromResponse(resp OrderResponse) (domain.Order, error) {
	order := domain.Order{
		ID:         resp.ID,
		CustomerID: resp.CustomerID,
		Status:     domain.OrderStatus(resp.Status),
	}

	for _, item := range resp.Items {
		order.Items = append(order.Items, domain.OrderItem{
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			PriceMinor: item.PricePerUnit,
		})
	}

	if resp.CreatedAt != "" {
		created, err := time.Parse(time.RFC3339Nano, resp.CreatedAt)
		if err != nil {
			return domain.Order{}, fmt.Errorf("parse created_at: %w", err)
		}
		order.CreatedAt = created
	}
	if resp.UpdatedAt != "" {
		updated, err := time.Parse(time.RFC3339Nano, resp.UpdatedAt)
		if err != nil {
			return domain.Order{}, fmt.Errorf("parse updated_at: %w", err)
		}
		order.UpdatedAt = updated
	}

	return order, nil
}
