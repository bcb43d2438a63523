package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/orderform/internal/metrics"
)

// RequestMetrics records request counts and latency per matched route.
func RequestMetrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		m.HTTPRequests.WithLabelValues(c.Request.Method, status, route).Inc()
		m.HTTPDuration.WithLabelValues(c.Request.Method, status, route).Observe(time.Since(start).Seconds())
	}
}
