package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader carries the request ID on both request and response.
	RequestIDHeader = "X-Request-ID"
	// RequestIDLocalKey is where the ID is stored in the Fiber context locals.
	RequestIDLocalKey = "request_id"
)

// RequestID tags every request with an ID. An incoming X-Request-ID is
// reused so IDs survive proxy hops; otherwise a fresh UUID is minted.
// Handlers and the error envelope read it back from the context locals,
// and the response echoes it in the same header.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		c.Locals(RequestIDLocalKey, id)
		c.Set(RequestIDHeader, id)

		return c.Next()
	}
}
