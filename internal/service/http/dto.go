package httpsvc

// OrderItemRequest — запрошенная позиция при создании заказа.
type OrderItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int32  `json:"quantity" binding:"required,min=1"`
}

// CreateOrderRequest — тело POST /orders.
type CreateOrderRequest struct {
	CustomerID string             `json:"customer_id" binding:"required"`
	Items      []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateStatusRequest — тело PATCH /orders/:id/status.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
