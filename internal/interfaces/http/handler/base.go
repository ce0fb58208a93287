// Package handler contains the gin handlers of the shop API.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopapi/backend/internal/domain/access"
	"github.com/shopapi/backend/internal/domain/shared"
	"github.com/shopapi/backend/internal/infrastructure/logger"
	"github.com/shopapi/backend/internal/interfaces/http/dto"
	"github.com/shopapi/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getRequestID extracts the request ID set by the RequestID middleware
func getRequestID(c *gin.Context) string {
	if id := c.GetString(logger.GinRequestIDKey); id != "" {
		return id
	}
	return c.GetHeader(middleware.RequestIDHeader)
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a success response with pagination meta
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response with the appropriate status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.AbortWithStatusJSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, getRequestID(c)))
}

// HandleError converts domain errors to HTTP responses. Anything else is
// logged and reported as an internal error without leaking its text.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		c.AbortWithStatusJSON(dto.GetHTTPStatus(domainErr.Code), dto.NewErrorResponseWithRequestID(
			domainErr.Code,
			domainErr.Message,
			getRequestID(c),
			domainErr.Details...,
		))
		return
	}

	logger.L(c.Request.Context()).Error("Unhandled error",
		zap.String("route", c.FullPath()),
		zap.Error(err))
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, "An unexpected error occurred")
}

// BindJSON binds the request body into obj and reports failures as
// validation errors. It returns false when a response was already sent.
func (h *BaseHandler) BindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		h.HandleError(c, middleware.BindingError(err))
		return false
	}
	return true
}

// BindQuery binds query parameters into obj
func (h *BaseHandler) BindQuery(c *gin.Context, obj any) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		h.HandleError(c, middleware.BindingError(err))
		return false
	}
	return true
}

// Actor returns the authenticated actor. Routes behind JWTAuthMiddleware
// always have one; the 401 covers misconfigured routes.
func (h *BaseHandler) Actor(c *gin.Context) (access.Actor, bool) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		h.HandleError(c, shared.ErrAuthFailed)
		return access.Actor{}, false
	}
	return actor, true
}

// ParseID reads a positive numeric path parameter
func (h *BaseHandler) ParseID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		h.HandleError(c, shared.NewValidationError(name, "Must be a positive integer"))
		return 0, false
	}
	return id, true
}
