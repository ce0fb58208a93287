package handler

import (
	"github.com/gin-gonic/gin"
	tradeapp "github.com/shopapi/backend/internal/application/trade"
)

// BasketHandler handles the current user's basket
type BasketHandler struct {
	BaseHandler
	basketService *tradeapp.BasketService
}

// NewBasketHandler creates a new BasketHandler
func NewBasketHandler(basketService *tradeapp.BasketService) *BasketHandler {
	return &BasketHandler{basketService: basketService}
}

// Get godoc
// @Summary      Get the basket
// @Description  Returns the basket with per-line sums and the total. Users without a basket get an empty one.
// @Tags         basket
// @Produce      json
// @Success      200 {object} dto.Response{data=tradeapp.OrderResponse}
// @Security     TokenAuth
// @Router       /basket [get]
func (h *BasketHandler) Get(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}

	basket, err := h.basketService.Get(c.Request.Context(), actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, basket)
}

// AddItems godoc
// @Summary      Add items to the basket
// @Description  Adding a listing already in the basket increases its quantity
// @Tags         basket
// @Accept       json
// @Produce      json
// @Param        request body tradeapp.AddItemsRequest true "Listings and quantities"
// @Success      200 {object} dto.Response{data=tradeapp.OrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     TokenAuth
// @Router       /basket [post]
func (h *BasketHandler) AddItems(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	var req tradeapp.AddItemsRequest
	if !h.BindJSON(c, &req) {
		return
	}

	basket, err := h.basketService.AddItems(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, basket)
}

// UpdateItems godoc
// @Summary      Change basket quantities
// @Tags         basket
// @Accept       json
// @Produce      json
// @Param        request body tradeapp.UpdateItemsRequest true "Basket lines and new quantities"
// @Success      200 {object} dto.Response{data=tradeapp.OrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     TokenAuth
// @Router       /basket [put]
func (h *BasketHandler) UpdateItems(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	var req tradeapp.UpdateItemsRequest
	if !h.BindJSON(c, &req) {
		return
	}

	basket, err := h.basketService.UpdateItems(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, basket)
}

// Remove godoc
// @Summary      Remove the basket
// @Tags         basket
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     TokenAuth
// @Router       /basket [delete]
func (h *BasketHandler) Remove(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}

	if err := h.basketService.Remove(c.Request.Context(), actor); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Checkout godoc
// @Summary      Place the basket
// @Description  Turns the basket into a new order delivered to the given contact
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        request body tradeapp.CheckoutRequest true "Basket and contact"
// @Success      200 {object} dto.Response{data=tradeapp.OrderResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     TokenAuth
// @Router       /orders [post]
func (h *BasketHandler) Checkout(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	var req tradeapp.CheckoutRequest
	if !h.BindJSON(c, &req) {
		return
	}

	order, err := h.basketService.Checkout(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}
