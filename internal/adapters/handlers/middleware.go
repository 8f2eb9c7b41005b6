package handlers

import (
	"net/http"
	"time"

	"github.com/iwtcode/mechanismAdapter/internal/middleware/logging"

	"github.com/gin-gonic/gin"
)

// LoggingMiddleware пишет начало и конец каждого запроса. Для маршрутов
// конкретного механизма в запись попадает его имя.
func LoggingMiddleware(parentLogger *logging.Logger) gin.HandlerFunc {
	logger := parentLogger.WithPrefix("HTTP")

	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		fields := []interface{}{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"remote_addr", c.Request.RemoteAddr,
		}
		if name := c.Param("name"); name != "" {
			fields = append(fields, "mechanism", name)
		}

		start := time.Now()
		logger.Info("Request started", fields...)

		c.Next()

		done := []interface{}{
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
		}
		if name := c.Param("name"); name != "" {
			done = append(done, "mechanism", name)
		}
		logger.Info("Request completed", done...)
	}
}
