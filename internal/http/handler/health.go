package handler

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"

	"pdfshelf/internal/service"
)

// HealthCheck reports database connectivity and the current document count.
func HealthCheck(db *sql.DB, docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status":   "unhealthy",
				"database": "down",
			})
		}

		count, err := docSvc.Count(ctx)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status":   "degraded",
				"database": "up",
			})
		}

		return c.JSON(fiber.Map{
			"status":   "healthy",
			"database": "up",
			"pdfCount": count,
		})
	}
}

// LivenessProbe is a bare 200 for container orchestration.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}
