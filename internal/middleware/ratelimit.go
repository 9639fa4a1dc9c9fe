package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	apierrors "github.com/yukikurage/project-board-api/internal/errors"
	"go.uber.org/zap"
)

// NewLimiter builds an in-memory limiter from a formatted rate such as "20-M".
func NewLimiter(rate string) (*limiter.Limiter, error) {
	r, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return nil, fmt.Errorf("invalid rate %q: %w", rate, err)
	}
	return limiter.New(memory.NewStore(), r), nil
}

// RateLimit throttles requests per client IP.
func RateLimit(l *limiter.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		ctx, err := l.Get(c.Request.Context(), ip)
		if err != nil {
			Logger(c).Error("failed to get rate limit context", zap.String("ip", ip), zap.Error(err))
			apierrors.InternalError(c, "")
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Limit", fmt.Sprint(ctx.Limit))
		c.Header("X-RateLimit-Remaining", fmt.Sprint(ctx.Remaining))

		if ctx.Reached {
			Logger(c).Warn("rate limit exceeded", zap.String("ip", ip), zap.Int64("limit", ctx.Limit))
			apierrors.TooManyRequests(c, "")
			c.Abort()
			return
		}

		c.Next()
	}
}
