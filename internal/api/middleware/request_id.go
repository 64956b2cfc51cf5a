package middleware

import (
	"github.com/Jennaleighwilder/launchpad-conference-platform-sub001/pkg/telemetry/correlation"
	"github.com/gin-gonic/gin"
)

// RequestID assigns a correlation ID to each request (honoring an inbound
// X-Request-Id) and seeds a remote trace span when the caller forwards trace
// identifiers. The ID is echoed back on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		if inbound := c.GetHeader("X-Request-Id"); inbound != "" {
			ctx = correlation.ContextWithCorrelationID(ctx, inbound)
		}
		ctx, cid := correlation.EnsureCorrelationID(ctx)

		ctx = correlation.ContextWithRemoteSpan(ctx,
			c.GetHeader("X-Trace-Id"),
			c.GetHeader("X-Span-Id"),
		)

		c.Set("request_id", cid)
		c.Writer.Header().Set("X-Request-Id", cid)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
