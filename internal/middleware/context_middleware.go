package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/control-room-cisa/server-planillero-sub000/internal/shared/contextutil"
)

// ContextLogger decorates every request with a scoped logger carrying the
// request id, and propagates both into the standard context so the service
// and repo layers can pick them up without knowing about gin.
func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if rid == "" {
			rid = uuid.New().String()
		}
		c.Header("X-Request-ID", rid)

		reqLogger := logger.With(
			zap.String("request_id", rid),
			zap.String("path", c.FullPath()),
		)

		ctx := c.Request.Context()
		ctx = contextutil.WithRequestID(ctx, rid)
		ctx = contextutil.WithLogger(ctx, reqLogger)

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
