package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	orderapp "github.com/loja/backend/internal/application/order"
	"github.com/loja/backend/internal/infrastructure/logger"
	"github.com/loja/backend/internal/interfaces/http/dto"
	"github.com/loja/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// OrderHandler handles order placement
type OrderHandler struct {
	BaseHandler
	orderService *orderapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *orderapp.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// PlaceOrder handles POST /api/pedido.
// Malformed or incomplete bodies get 400, unknown products 404. A broker outage
// does not change the answer: the order is confirmed either way.
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.GetGinLogger(c).Debug("Rejected order request",
			zap.Strings("fields", middleware.ValidationFields(err)),
			zap.Error(err),
		)
		h.BadRequest(c, dto.MsgIncompleteData)
		return
	}

	out, err := h.orderService.PlaceOrder(c.Request.Context(), req.ToInput())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewPlaceOrderResponse(out))
}
