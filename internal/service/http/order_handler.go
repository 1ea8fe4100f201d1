package httpsvc

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders/internal/presenter"
	"github.com/vladislavdragonenkov/orders/internal/service/order"
)

// OrderHandler реализует HTTP API поверх order workflow. Вся доменная
// логика остаётся в сервисе; здесь — только привязка запросов, проверка
// формата идентификаторов и коды ответов.
type OrderHandler struct {
	service *order.Service
	logger  *log.Entry
}

// NewOrderHandler конструирует обработчик с зависимостями.
func NewOrderHandler(service *order.Service, logger *log.Entry) *OrderHandler {
	if logger == nil {
		logger = log.New().WithField("component", "http")
	}
	return &OrderHandler{service: service, logger: logger}
}

// RegisterRoutes подключает маршруты заказов к gin-движку.
func (h *OrderHandler) RegisterRoutes(r *gin.Engine) {
	r.POST("/orders", h.CreateOrder)
	r.GET("/orders/:id", h.GetOrder)
	r.PATCH("/orders/:id/status", h.UpdateOrderStatus)
	r.POST("/orders/:id/cancel", h.CancelOrder)
	r.GET("/customers/:id/orders", h.ListCustomerOrders)
}

// CreateOrder обрабатывает POST /orders.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, presenter.Failure(err.Error()))
		return
	}

	// Битые идентификаторы отсекаются до workflow.
	if !isValidID(req.CustomerID) {
		c.JSON(http.StatusBadRequest, presenter.Failure("customer_id must be a valid uuid"))
		return
	}
	items := make([]order.ItemRequest, 0, len(req.Items))
	for _, item := range req.Items {
		if !isValidID(item.ProductID) {
			c.JSON(http.StatusBadRequest, presenter.Failure("product_id must be a valid uuid"))
			return
		}
		items = append(items, order.ItemRequest{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	created, err := h.service.CreateOrder(req.CustomerID, items)
	if err != nil {
		c.JSON(http.StatusBadRequest, presenter.Failure(err.Error()))
		return
	}

	c.Header("Location", "/orders/"+created.ID)
	c.JSON(http.StatusCreated, presenter.Success(presenter.OrderToResponse(created)))
}

// GetOrder обрабатывает GET /orders/:id.
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id := c.Param("id")
	if !isValidID(id) {
		c.JSON(http.StatusBadRequest, presenter.Failure("order id must be a valid uuid"))
		return
	}

	found, err := h.service.GetOrder(id)
	if err != nil {
		c.JSON(http.StatusBadRequest, presenter.Failure(err.Error()))
		return
	}

	c.JSON(http.StatusOK, presenter.Success(presenter.OrderToResponse(found)))
}

// UpdateOrderStatus обрабатывает PATCH /orders/:id/status.
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	id := c.Param("id")
	if !isValidID(id) {
		c.JSON(http.StatusBadRequest, presenter.Failure("order id must be a valid uuid"))
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, presenter.Failure(err.Error()))
		return
	}

	updated, err := h.service.UpdateOrderStatus(id, req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, presenter.Failure(err.Error()))
		return
	}

	c.JSON(http.StatusOK, presenter.Success(presenter.OrderToResponse(updated)))
}

// CancelOrder обрабатывает POST /orders/:id/cancel.
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	id := c.Param("id")
	if !isValidID(id) {
		c.JSON(http.StatusBadRequest, presenter.Failure("order id must be a valid uuid"))
		return
	}

	cancelled, err := h.service.CancelOrder(id)
	if err != nil {
		c.JSON(http.StatusBadRequest, presenter.Failure(err.Error()))
		return
	}

	c.JSON(http.StatusOK, presenter.Success(presenter.OrderToResponse(cancelled)))
}

// ListCustomerOrders обрабатывает GET /customers/:id/orders.
func (h *OrderHandler) ListCustomerOrders(c *gin.Context) {
	id := c.Param("id")
	if !isValidID(id) {
		c.JSON(http.StatusBadRequest, presenter.Failure("customer id must be a valid uuid"))
		return
	}

	orders, err := h.service.ListCustomerOrders(id)
	if err != nil {
		c.JSON(http.StatusBadRequest, presenter.Failure(err.Error()))
		return
	}

	c.JSON(http.StatusOK, presenter.Success(presenter.OrdersToResponse(orders)))
}

// isValidID принимает только канонические uuid.
func isValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
