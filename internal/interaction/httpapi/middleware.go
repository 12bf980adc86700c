package httpapi

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type contextKey string

const loggerKey = contextKey("logger")

// responseHeaders sets the CORS and caching headers on every response, preflight included.
func responseHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.Writer.Header()
		header.Set("Access-Control-Allow-Origin", "*")
		header.Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		header.Set("Access-Control-Allow-Headers", "Content-Type")
		header.Set("Content-Type", "application/json")
		header.Set("Cache-Control", "max-age=60")

		c.Next()
	}
}

// requestLogger injects a request-scoped logger and logs every completed request.
func requestLogger(baseLogger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.NewString()

		log := baseLogger.With(
			slog.String("request_id", requestID),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
		)

		c.Header("X-Request-ID", requestID)
		c.Set(string(loggerKey), log)

		c.Next()

		log.Info("request completed",
			slog.Int("status", c.Writer.Status()),
			slog.Duration("latency", time.Since(start)),
		)
	}
}

// loggerFromContext returns the request-scoped logger, or fallback when the middleware did not run.
func loggerFromContext(c *gin.Context, fallback *slog.Logger) *slog.Logger {
	value, exists := c.Get(string(loggerKey))
	if !exists {
		return fallback
	}

	log, ok := value.(*slog.Logger)
	if !ok {
		return fallback
	}

	return log
}
