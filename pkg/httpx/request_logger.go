package httpx

import (
	"time"

	"github.com/Gunvolt24/shop_backend/internal/ports"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestLogger — middleware для логирования HTTP-запросов.
func RequestLogger(log ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		// не логируем /metrics, /ping
		switch c.FullPath() {
		case "/metrics", "/ping":
			return
		}

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		log.Infof(
			c.Request.Context(),
			"request id=%s method=%s path=%s status=%d ip=%s duration=%s size=%d",
			c.Writer.Header().Get("X-Request-ID"),
			c.Request.Method,
			path,
			c.Writer.Status(),
			c.ClientIP(),
			time.Since(start),
			c.Writer.Size(),
		)
	}
}

// RequestIDMiddleware:
// - принимает X-Request-ID от клиента или генерирует UUID
// - возвращает его в ответном заголовке X-Request-ID
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}
