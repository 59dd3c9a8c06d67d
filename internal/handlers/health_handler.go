package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	ping func() error
}

// NewHealthHandler reports liveness. ping, when set, checks the database.
func NewHealthHandler(ping func() error) *HealthHandler {
	return &HealthHandler{ping: ping}
}

func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	dbStatus := "ok"
	if h.ping != nil {
		if err := h.ping(); err != nil {
			dbStatus = "unhealthy: " + err.Error()
		}
	}

	return c.JSON(fiber.Map{
		"status": "healthy",
		"db":     dbStatus,
		"time":   time.Now(),
	})
}
