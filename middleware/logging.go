package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"hackathon-backend/log"
)

const (
	RequestIDHeader = "X-Request-ID"

	loggerKey = "logger"
)

// WithLogging tags every request with an id and logs its completion.
func WithLogging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(RequestIDHeader, id)

		logger := log.Logger.With(zap.String("requestID", id))
		c.Set(loggerKey, logger)

		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}

// Logger returns the request's logger, or the global one outside WithLogging.
func Logger(c *gin.Context) *zap.Logger {
	if v, ok := c.Get(loggerKey); ok {
		if l, ok := v.(*zap.Logger); ok {
			return l
		}
	}

	return log.Logger
}
