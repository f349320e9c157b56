package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/marketplace-backoffice/internal/infrastructure/metrics"
)

// AccessLog registra cada petición (método, ruta, status, latencia, request id) y la
// cuenta en rec si no es nil. Los errores de la cadena se resuelven aquí con el
// ErrorHandler de la app para que log y métrica vean el status final.
func AccessLog(rec metrics.Recorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		if chainErr := c.Next(); chainErr != nil {
			if err := c.App().Config().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		elapsed := time.Since(start)
		status := c.Response().StatusCode()

		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", elapsed).
			Str("request_id", requestID(c)).
			Msg("http")

		if rec != nil {
			rec.RecordRequest(c.Method(), routeLabel(c, status), status, elapsed)
		}
		return nil
	}
}

// routeLabel usa el patrón de la ruta (/api/supplier/products/:id) y no el path
// concreto, para acotar la cardinalidad de la métrica.
func routeLabel(c *fiber.Ctx, status int) string {
	route := c.Route()
	if route == nil || (status == fiber.StatusNotFound && route.Path == "/") {
		return "unmatched"
	}
	return route.Path
}
