package middleware

import (
	"time"

	"coffee-chat-backend/internal/logger"

	"github.com/gofiber/fiber/v2"
)

// RequestLogger records one structured entry per request. Server errors are
// logged at error level, client errors at warn.
func RequestLogger(log logger.ILogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		chainErr := c.Next()
		if chainErr != nil {
			// let the app error handler write the response before we read the status
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		details := map[string]interface{}{
			"request_id": RequestID(c),
			"method":     c.Method(),
			"path":       c.Path(),
			"status":     status,
			"latency":    time.Since(start).String(),
			"ip":         c.IP(),
		}
		switch {
		case status >= fiber.StatusInternalServerError:
			log.Error("http", "request failed", details)
		case status >= fiber.StatusBadRequest:
			log.Warn("http", "request rejected", details)
		default:
			log.Info("http", "request completed", details)
		}
		return nil
	}
}
