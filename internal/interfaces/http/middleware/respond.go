package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/shopapi/backend/internal/infrastructure/logger"
	"github.com/shopapi/backend/internal/interfaces/http/dto"
)

// abortWithError stops the chain and answers with the standard error envelope
func abortWithError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, dto.NewErrorResponseWithRequestID(code, message, requestIDOf(c)))
}

// requestIDOf returns the id assigned by RequestID, or "" before it ran
func requestIDOf(c *gin.Context) string {
	return c.GetString(logger.GinRequestIDKey)
}
