package handler

import (
	"github.com/gin-gonic/gin"
	identityapp "github.com/shopapi/backend/internal/application/identity"
	"github.com/shopapi/backend/internal/domain/shared"
	"github.com/shopapi/backend/internal/interfaces/http/middleware"
)

// AuthHandler handles registration, confirmation and token endpoints
type AuthHandler struct {
	BaseHandler
	authService *identityapp.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *identityapp.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register godoc
// @Summary      Register an account
// @Description  Creates an inactive account and mails its confirmation link
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body identityapp.RegisterRequest true "Account details"
// @Success      201 {object} dto.Response{data=identityapp.UserResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      429 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /users/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req identityapp.RegisterRequest
	if !h.BindJSON(c, &req) {
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, user)
}

// ConfirmEmail godoc
// @Summary      Confirm an email address
// @Description  Activates the account owning the email with the mailed key
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body identityapp.ConfirmEmailRequest true "Email and key"
// @Success      200 {object} dto.Response{data=identityapp.UserResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /users/confirm-email [post]
func (h *AuthHandler) ConfirmEmail(c *gin.Context) {
	var req identityapp.ConfirmEmailRequest
	if !h.BindJSON(c, &req) {
		return
	}

	user, err := h.authService.ConfirmEmail(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// ConfirmEmailByKey godoc
// @Summary      Follow an activation link
// @Description  Activates the account the key was issued for
// @Tags         users
// @Produce      json
// @Param        key path string true "Confirmation key"
// @Success      200 {object} dto.Response{data=identityapp.UserResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /users/confirm-email/{key} [get]
func (h *AuthHandler) ConfirmEmailByKey(c *gin.Context) {
	user, err := h.authService.ConfirmEmailByKey(c.Request.Context(), c.Param("key"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// Login godoc
// @Summary      User login
// @Description  Exchanges email and password for an access token
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body identityapp.LoginRequest true "Login credentials"
// @Success      200 {object} dto.Response{data=identityapp.LoginResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      429 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /users/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req identityapp.LoginRequest
	if !h.BindJSON(c, &req) {
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Logout godoc
// @Summary      User logout
// @Description  Revokes the presented token until it expires
// @Tags         users
// @Produce      json
// @Success      204
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     TokenAuth
// @Router       /users/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.HandleError(c, shared.ErrAuthFailed)
		return
	}

	err := h.authService.Logout(c.Request.Context(), identityapp.LogoutInput{
		TokenJTI:  claims.ID,
		ExpiresIn: claims.GetRemainingTTL(),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
