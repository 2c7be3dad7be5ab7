package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
)

// RequestRecorder destino de las métricas HTTP (adaptador de Prometheus).
type RequestRecorder interface {
	RecordRequest(method, path string, statusCode int, durationSeconds float64)
}

// MetricsMiddleware mide duración y status de cada petición. El path es la
// plantilla de la ruta ("/api/patrimonios/:id") para acotar la cardinalidad.
func MetricsMiddleware(rec RequestRecorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}
		path := c.Path()
		if r := c.Route(); r != nil && r.Path != "" && r.Path != "/" {
			path = r.Path
		}
		rec.RecordRequest(c.Method(), path, status, time.Since(start).Seconds())
		return err
	}
}
