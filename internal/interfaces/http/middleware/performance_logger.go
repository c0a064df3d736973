package middleware

import (
	"time"

	"github.com/PavaniTiago/encuestas-dashboard-api/internal/infrastructure/metrics"
	"github.com/PavaniTiago/encuestas-dashboard-api/internal/logger"
	"github.com/gofiber/fiber/v2"
)

const (
	// Requisições mais lentas que isso são logadas como warning
	slowRequestThreshold = 2 * time.Second
	// label das requisições sem rota registrada
	unmatchedRoute = "unmatched"
)

// RequestLogger mede cada requisição, loga com o request id e alimenta as métricas HTTP
func RequestLogger(log logger.Logger, m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()
		if err != nil {
			// o ErrorHandler ainda não rodou; o status vem do erro
			if handlerErr := c.App().ErrorHandler(c, err); handlerErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		duration := time.Since(start)
		status := c.Response().StatusCode()
		route := c.Route().Path
		if route == "" || route == "/" {
			route = unmatchedRoute
		}

		m.ObserveRequest(c.Method(), route, status, duration)

		if log == nil {
			return nil
		}
		fields := []logger.Field{
			logger.String("method", c.Method()),
			logger.String("path", c.Path()),
			logger.Int("status", status),
			logger.Duration("duration", duration),
			logger.String("request_id", c.GetRespHeader(fiber.HeaderXRequestID)),
			logger.String("ip", c.IP()),
		}
		switch {
		case status >= fiber.StatusInternalServerError:
			log.Error("Requisição", fields...)
		case duration > slowRequestThreshold:
			log.Warn("Requisição lenta", fields...)
		default:
			log.Debug("Requisição", fields...)
		}
		return nil
	}
}
