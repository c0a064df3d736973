package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// PerformanceHandler expõe o estado da API e do pool de conexões
type PerformanceHandler struct {
	db      *gorm.DB
	version string
}

func NewPerformanceHandler(db *gorm.DB, version string) *PerformanceHandler {
	return &PerformanceHandler{
		db:      db,
		version: version,
	}
}

// Health verifica o banco com ping e devolve as estatísticas do pool
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health [get]
func (h *PerformanceHandler) Health(c *fiber.Ctx) error {
	if h.db == nil {
		return c.JSON(fiber.Map{"status": "healthy", "version": h.version})
	}

	sqlDB, err := h.db.DB()
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status":  "unhealthy",
			"version": h.version,
		})
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	start := time.Now()
	if err := sqlDB.PingContext(ctx); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status":  "unhealthy",
			"version": h.version,
		})
	}
	latency := time.Since(start)

	stats := sqlDB.Stats()
	return c.JSON(fiber.Map{
		"status":  "healthy",
		"version": h.version,
		"database": fiber.Map{
			"ping_ms":          float64(latency.Microseconds()) / 1000,
			"open_connections": stats.OpenConnections,
			"in_use":           stats.InUse,
			"idle":             stats.Idle,
			"wait_count":       stats.WaitCount,
		},
	})
}
