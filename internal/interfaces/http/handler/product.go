package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/shopapi/backend/internal/application/catalog"
)

// ProductHandler handles the public listing and the partner listing endpoints
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// List godoc
// @Summary      List products
// @Description  Listings of shops that accept orders
// @Tags         products
// @Produce      json
// @Param        shop query string false "Shop name"
// @Param        product query string false "Product name fragment"
// @Param        category query int false "Category ID"
// @Param        price_min query string false "Lowest price"
// @Param        price_max query string false "Highest price"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} dto.Response{data=[]catalogapp.ProductInfoResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /products [get]
func (h *ProductHandler) List(c *gin.Context) {
	var filter catalogapp.ProductListFilter
	if !h.BindQuery(c, &filter) {
		return
	}

	products, total, err := h.productService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, products, total, filter.Page, filter.PageSize)
}

// Get godoc
// @Summary      Get a product listing
// @Tags         products
// @Produce      json
// @Param        id path int true "Listing ID"
// @Success      200 {object} dto.Response{data=catalogapp.ProductInfoResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /products/{id} [get]
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	product, err := h.productService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// ListPartner godoc
// @Summary      List own listings
// @Tags         partner
// @Produce      json
// @Param        product query string false "Product name fragment"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} dto.Response{data=[]catalogapp.ProductInfoResponse,meta=dto.Meta}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Security     TokenAuth
// @Router       /partner/products [get]
func (h *ProductHandler) ListPartner(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	var filter catalogapp.ProductListFilter
	if !h.BindQuery(c, &filter) {
		return
	}

	products, total, err := h.productService.ListPartner(c.Request.Context(), actor, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, products, total, filter.Page, filter.PageSize)
}

// UpdateListing godoc
// @Summary      Update a listing
// @Tags         partner
// @Accept       json
// @Produce      json
// @Param        id path int true "Listing ID"
// @Param        request body catalogapp.UpdateProductInfoRequest true "Price, recommended price and stock"
// @Success      200 {object} dto.Response{data=catalogapp.ProductInfoResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Security     TokenAuth
// @Router       /partner/products/{id} [put]
func (h *ProductHandler) UpdateListing(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req catalogapp.UpdateProductInfoRequest
	if !h.BindJSON(c, &req) {
		return
	}

	product, err := h.productService.UpdateListing(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// DeleteListing godoc
// @Summary      Delete a listing
// @Tags         partner
// @Param        id path int true "Listing ID"
// @Success      204
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Security     TokenAuth
// @Router       /partner/products/{id} [delete]
func (h *ProductHandler) DeleteListing(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.productService.DeleteListing(c.Request.Context(), actor, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
