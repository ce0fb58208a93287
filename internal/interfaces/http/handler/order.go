package handler

import (
	"github.com/gin-gonic/gin"
	tradeapp "github.com/shopapi/backend/internal/application/trade"
)

// OrderHandler handles placed orders for buyers and partners
type OrderHandler struct {
	BaseHandler
	orderService *tradeapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *tradeapp.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// List godoc
// @Summary      List own orders
// @Tags         orders
// @Produce      json
// @Param        state query string false "Order state"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} dto.Response{data=[]tradeapp.OrderResponse,meta=dto.Meta}
// @Security     TokenAuth
// @Router       /orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	var filter tradeapp.OrderListFilter
	if !h.BindQuery(c, &filter) {
		return
	}

	orders, total, err := h.orderService.List(c.Request.Context(), actor, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, orders, total, filter.Page, filter.PageSize)
}

// Get godoc
// @Summary      Get an order
// @Tags         orders
// @Produce      json
// @Param        id path int true "Order ID"
// @Success      200 {object} dto.Response{data=tradeapp.OrderResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     TokenAuth
// @Router       /orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	order, err := h.orderService.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// ListPartner godoc
// @Summary      List orders for the shop
// @Description  Placed orders containing listings of the actor's shop
// @Tags         partner
// @Produce      json
// @Param        state query string false "Order state"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} dto.Response{data=[]tradeapp.OrderResponse,meta=dto.Meta}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Security     TokenAuth
// @Router       /partner/orders [get]
func (h *OrderHandler) ListPartner(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	var filter tradeapp.OrderListFilter
	if !h.BindQuery(c, &filter) {
		return
	}

	orders, total, err := h.orderService.ListPartner(c.Request.Context(), actor, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, orders, total, filter.Page, filter.PageSize)
}

// ChangeState godoc
// @Summary      Advance an order
// @Description  new, confirmed, assembled, sent, delivered; canceled from any state before delivery
// @Tags         partner
// @Accept       json
// @Produce      json
// @Param        id path int true "Order ID"
// @Param        request body tradeapp.UpdateOrderStateRequest true "Target state"
// @Success      200 {object} dto.Response{data=tradeapp.OrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Security     TokenAuth
// @Router       /partner/orders/{id}/state [patch]
func (h *OrderHandler) ChangeState(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req tradeapp.UpdateOrderStateRequest
	if !h.BindJSON(c, &req) {
		return
	}

	order, err := h.orderService.ChangeState(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}
