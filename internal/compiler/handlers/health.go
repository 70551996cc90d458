package handlers

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v3"
)

// ============================================================
// Health Check Handlers
// ============================================================

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	db Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Liveness(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "alive"})
}

// Readiness fails while the scene store is unreachable.
func (h *HealthHandler) Readiness(c fiber.Ctx) error {
	if h.db != nil {
		if err := h.db.PingContext(c.Context()); err != nil {
			log.Printf("[HEALTH] Store ping failed: %v", err)
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "unavailable",
			})
		}
	}
	return c.JSON(fiber.Map{"status": "ready"})
}

func (h *HealthHandler) Startup(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "started"})
}
