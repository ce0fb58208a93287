package handler

import (
	"github.com/gin-gonic/gin"
	identityapp "github.com/shopapi/backend/internal/application/identity"
)

// ContactHandler handles delivery contact endpoints
type ContactHandler struct {
	BaseHandler
	contactService *identityapp.ContactService
}

// NewContactHandler creates a new ContactHandler
func NewContactHandler(contactService *identityapp.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// List godoc
// @Summary      List contacts
// @Tags         contacts
// @Produce      json
// @Success      200 {object} dto.Response{data=[]identityapp.ContactResponse}
// @Security     TokenAuth
// @Router       /contacts [get]
func (h *ContactHandler) List(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}

	contacts, err := h.contactService.List(c.Request.Context(), actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, contacts)
}

// Create godoc
// @Summary      Create a contact
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Param        request body identityapp.ContactRequest true "Delivery address and phone"
// @Success      201 {object} dto.Response{data=identityapp.ContactResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     TokenAuth
// @Router       /contacts [post]
func (h *ContactHandler) Create(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	var req identityapp.ContactRequest
	if !h.BindJSON(c, &req) {
		return
	}

	contact, err := h.contactService.Create(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, contact)
}

// Get godoc
// @Summary      Get a contact
// @Tags         contacts
// @Produce      json
// @Param        id path int true "Contact ID"
// @Success      200 {object} dto.Response{data=identityapp.ContactResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     TokenAuth
// @Router       /contacts/{id} [get]
func (h *ContactHandler) Get(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	contact, err := h.contactService.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, contact)
}

// Update godoc
// @Summary      Replace a contact
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Param        id path int true "Contact ID"
// @Param        request body identityapp.ContactRequest true "Delivery address and phone"
// @Success      200 {object} dto.Response{data=identityapp.ContactResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Security     TokenAuth
// @Router       /contacts/{id} [put]
func (h *ContactHandler) Update(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}
	var req identityapp.ContactRequest
	if !h.BindJSON(c, &req) {
		return
	}

	contact, err := h.contactService.Update(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, contact)
}

// Delete godoc
// @Summary      Delete a contact
// @Tags         contacts
// @Param        id path int true "Contact ID"
// @Success      204
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Security     TokenAuth
// @Router       /contacts/{id} [delete]
func (h *ContactHandler) Delete(c *gin.Context) {
	actor, ok := h.Actor(c)
	if !ok {
		return
	}
	id, ok := h.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.contactService.Delete(c.Request.Context(), actor, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
