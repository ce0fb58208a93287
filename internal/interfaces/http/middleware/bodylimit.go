package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopapi/backend/internal/interfaces/http/dto"
)

// BodyLimit returns a middleware that limits request body size. Requests
// announcing a larger body are refused up front; streamed bodies are cut
// off by http.MaxBytesReader.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes <= 0 {
			c.Next()
			return
		}
		if c.Request.ContentLength > maxBytes {
			abortWithError(c, http.StatusRequestEntityTooLarge, dto.ErrCodeRequestTooLarge,
				"Request body exceeds maximum allowed size")
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
