package handler

import (
	"github.com/gofiber/fiber/v2"

	"pdfshelf/internal/auth"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login checks the submitted credentials against the configured admin
// account and marks the session as admin on success. Wrong email and
// wrong password are deliberately indistinguishable in the response.
func Login(gate *auth.Gate) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req loginRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		ok, err := gate.Login(c, req.Email, req.Password)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"error":   "invalid credentials",
			})
		}
		return c.JSON(fiber.Map{"success": true})
	}
}

// Check reports whether the current session is an admin session.
func Check(gate *auth.Gate) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"isAdmin": gate.IsAdmin(c)})
	}
}

// Logout destroys the current session entirely.
func Logout(gate *auth.Gate) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := gate.Logout(c); err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(fiber.Map{"success": true})
	}
}
