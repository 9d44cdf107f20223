package server

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/fakturio/fakturio/internal/userctx"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HeaderUser carries the authenticated user ID, set by the fronting proxy.
const HeaderUser = "X-User-ID"

// ActorRequired resolves the acting user from the request and injects it into
// the request context for the domain services.
func ActorRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(HeaderUser))
		if raw == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		userID, err := snowflake.ParseString(raw)
		if err != nil {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		ctx := userctx.WithUserID(c.Request.Context(), userID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}
