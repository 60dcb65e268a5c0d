package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sku-matrix-api/pkg/logger"
)

// RequestLogger registra cada petición con zerolog: método, ruta, status y duración.
func RequestLogger(log *logger.Logger) fiber.Handler {
	l := log.Component("http")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()

		ev := l.Info()
		if status >= fiber.StatusInternalServerError || err != nil {
			ev = l.Error().Err(err)
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("user_id", GetUserID(c)).
			Msg("request")
		return err
	}
}
