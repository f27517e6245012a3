package middleware

import (
	"github.com/gofiber/fiber/v2"

	"pdfshelf/internal/auth"
)

// RequireAdmin rejects any request whose session does not carry the
// admin flag before the handler runs. The response uses the same error
// envelope shape as the handler package.
func RequireAdmin(gate *auth.Gate) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if gate.IsAdmin(c) {
			return c.Next()
		}

		rid, _ := c.Locals(RequestIDLocalKey).(string)
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"request_id": rid,
			"error": fiber.Map{
				"code":    "FORBIDDEN",
				"message": "admin session required",
			},
		})
	}
}
