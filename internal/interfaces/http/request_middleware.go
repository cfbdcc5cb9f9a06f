package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Repuestos-api/pkg/logger"
)

// RequestObserver recibe cada request respondido (lo implementa el adaptador de métricas).
type RequestObserver interface {
	ObserveRequest(method, route string, status int, elapsed time.Duration)
}

// RequestLogger registra método, ruta, status y duración de cada request.
// observer puede ser nil.
func RequestLogger(log *logger.Logger, observer RequestObserver) fiber.Handler {
	log = log.Component("http")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			// deja que el ErrorHandler fije el status antes de registrar
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		elapsed := time.Since(start)
		status := c.Response().StatusCode()
		route := c.Route().Path

		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		} else if status >= fiber.StatusBadRequest {
			ev = log.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Str("route", route).
			Int("status", status).
			Dur("duration", elapsed).
			Msg("request")

		if observer != nil {
			observer.ObserveRequest(c.Method(), route, status, elapsed)
		}
		return nil
	}
}
