package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/warehouse-api/internal/infrastructure/metrics"
	"github.com/jhoicas/warehouse-api/pkg/logger"
)

// AccessLog registra cada petición con su request id, estado y latencia.
func AccessLog(log *logger.Logger) fiber.Handler {
	log = log.Named("http")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		}
		if rid, ok := c.Locals("requestid").(string); ok {
			ev = ev.Str("request_id", rid)
		}
		if code, ok := c.Locals(LocalErrorCode).(string); ok {
			ev = ev.Str("error_code", code)
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("request")
		return err
	}
}

// Metrics observa duración y estado por ruta registrada y cuenta los rechazos por código.
func Metrics(m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		path := c.Route().Path
		if path == "" {
			path = "unmatched"
		}
		m.ObserveRequest(c.Method(), path, c.Response().StatusCode(), time.Since(start))
		if code, ok := c.Locals(LocalErrorCode).(string); ok && code != CodeInternal {
			m.Rejected(code)
		}
		return err
	}
}
