package middleware

import (
	"time"

	"aicareer/logger"

	"github.com/gofiber/fiber/v2"
)

// AccessLog writes one structured line per request.
func AccessLog(log *logger.Logger) fiber.Handler {
	log = log.With("component", "http")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			// Let the app error handler write the response so the logged
			// status matches what the client sees.
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		kv := []interface{}{
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"latency", time.Since(start).String(),
			"ip", c.IP(),
			"request_id", c.Locals("requestid"),
		}
		switch {
		case status >= 500:
			log.Error("request", kv...)
		case status >= 400:
			log.Warn("request", kv...)
		default:
			log.Info("request", kv...)
		}
		return nil
	}
}
