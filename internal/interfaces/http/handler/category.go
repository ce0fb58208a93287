package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/shopapi/backend/internal/application/catalog"
)

// CategoryHandler handles category endpoints
type CategoryHandler struct {
	BaseHandler
	categoryService *catalogapp.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *catalogapp.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// List godoc
// @Summary      List categories
// @Tags         categories
// @Produce      json
// @Param        shop_id query int false "Only categories of this shop"
// @Param        search query string false "Name fragment"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} dto.Response{data=[]catalogapp.CategoryResponse,meta=dto.Meta}
// @Router       /categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	var filter catalogapp.CategoryListFilter
	if !h.BindQuery(c, &filter) {
		return
	}

	categories, total, err := h.categoryService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, categories, total, filter.Page, filter.PageSize)
}

// Get godoc
// @Summary      Get a category
// @Tags         categories
// @Produce      json
// @Param        id path int true "Category ID"
// @Success      200 {object} dto.Response{data=catalogapp.CategoryResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /categories/{id} [get]
func (h *CategoryHandler) Get(c *gin.Context) {
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	category, err := h.categoryService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, category)
}

// Rename godoc
// @Summary      Rename a category
// @Description  Allowed to staff and to the owner of a shop offering the category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        id path int true "Category ID"
// @Param        request body catalogapp.UpdateCategoryRequest true "New name"
// @Success      200 {object} dto.Response{data=catalogapp.CategoryResponse}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Security     TokenAuth
// @Router       /categories/{id} [put]
func (h *CategoryHandler) Rename(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req catalogapp.UpdateCategoryRequest
	if !h.BindJSON(c, &req) {
		return
	}

	category, err := h.categoryService.Rename(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, category)
}

// Delete godoc
// @Summary      Delete a category
// @Tags         categories
// @Param        id path int true "Category ID"
// @Success      204
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Security     TokenAuth
// @Router       /categories/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.categoryService.Delete(c.Request.Context(), actor, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
