package handler

import (
	"github.com/gofiber/fiber/v2"

	"pdfshelf/internal/http/middleware"
)

// errorPayload is the JSON body of every error response. The request_id
// ties the response back to the structured request log line.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError responds with the standard error envelope. The message must
// be safe to show a client; internal error detail stays in the logs.
func writeError(c *fiber.Ctx, status int, code, message string) error {
	rid, _ := c.Locals(middleware.RequestIDLocalKey).(string)
	return c.Status(status).JSON(errorPayload{
		RequestID: rid,
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	})
}

// statusCodes maps well-known HTTP statuses to stable machine-readable
// error codes used in the envelope.
var statusCodes = map[int]struct{ code, message string }{
	fiber.StatusBadRequest:            {"BAD_REQUEST", "bad request"},
	fiber.StatusNotFound:              {"NOT_FOUND", "resource not found"},
	fiber.StatusMethodNotAllowed:      {"METHOD_NOT_ALLOWED", "method not allowed"},
	fiber.StatusRequestEntityTooLarge: {"FILE_TOO_LARGE", "request body too large"},
}

// ErrorHandler is the app-wide Fiber error handler. Errors that escape a
// handler, including router misses, all come out in the same envelope.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		if m, ok := statusCodes[status]; ok {
			return writeError(c, status, m.code, m.message)
		}
		return writeError(c, status, "INTERNAL_ERROR", "internal server error")
	}
}
