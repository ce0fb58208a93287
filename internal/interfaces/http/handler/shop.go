package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/shopapi/backend/internal/application/catalog"
)

// ShopHandler handles shop endpoints
type ShopHandler struct {
	BaseHandler
	shopService *catalogapp.ShopService
}

// NewShopHandler creates a new ShopHandler
func NewShopHandler(shopService *catalogapp.ShopService) *ShopHandler {
	return &ShopHandler{shopService: shopService}
}

// List godoc
// @Summary      List shops
// @Tags         shops
// @Produce      json
// @Param        name query string false "Name fragment"
// @Param        state query bool false "Accepting orders"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} dto.Response{data=[]catalogapp.ShopResponse,meta=dto.Meta}
// @Router       /shops [get]
func (h *ShopHandler) List(c *gin.Context) {
	var filter catalogapp.ShopListFilter
	if !h.BindQuery(c, &filter) {
		return
	}

	shops, total, err := h.shopService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, shops, total, filter.Page, filter.PageSize)
}

// Get godoc
// @Summary      Get a shop
// @Tags         shops
// @Produce      json
// @Param        id path int true "Shop ID"
// @Success      200 {object} dto.Response{data=catalogapp.ShopResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /shops/{id} [get]
func (h *ShopHandler) Get(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	shop, err := h.shopService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, shop)
}

// Update godoc
// @Summary      Update a shop
// @Description  Changes the name and site of the actor's shop
// @Tags         shops
// @Accept       json
// @Produce      json
// @Param        id path int true "Shop ID"
// @Param        request body catalogapp.UpdateShopRequest true "Name and URL"
// @Success      200 {object} dto.Response{data=catalogapp.ShopResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Security     TokenAuth
// @Router       /shops/{id} [put]
func (h *ShopHandler) Update(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req catalogapp.UpdateShopRequest
	if !h.BindJSON(c, &req) {
		return
	}

	shop, err := h.shopService.Update(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, shop)
}

// SetState godoc
// @Summary      Open or close a shop
// @Description  Closed shops keep their listings but accept no new basket items
// @Tags         shops
// @Accept       json
// @Produce      json
// @Param        id path int true "Shop ID"
// @Param        request body catalogapp.UpdateShopStateRequest true "New state"
// @Success      200 {object} dto.Response{data=catalogapp.ShopResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Security     TokenAuth
// @Router       /shops/{id}/state [patch]
func (h *ShopHandler) SetState(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req catalogapp.UpdateShopStateRequest
	if !h.BindJSON(c, &req) {
		return
	}

	shop, err := h.shopService.SetState(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, shop)
}
