package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopapi/backend/internal/infrastructure/telemetry"
)

// Metrics records request counts, latency and in-flight requests. Requests
// are labelled by route pattern, never by raw path, to bound cardinality.
func Metrics(m *telemetry.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		done := m.TrackInFlight()
		start := time.Now()

		c.Next()

		done()
		m.ObserveHTTP(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
