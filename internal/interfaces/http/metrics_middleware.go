package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/consola-negocios/internal/infrastructure/metrics"
)

// RequestMetrics cuenta cada petición a la consola por ruta registrada (no por path
// concreto, para no abrir una serie por id).
func RequestMetrics(m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		m.ObserveConsole(c.Method(), c.Route().Path, status, time.Since(start))
		return err
	}
}
