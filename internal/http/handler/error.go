package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"gecapi/internal/http/middleware"
	"gecapi/internal/repository"
	"gecapi/internal/service"
	"gecapi/internal/workflow"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "INVALID_BODY", "NOT_FOUND", "INTERNAL_ERROR")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

// writeServiceError maps workflow and service errors to HTTP responses.
// Domain errors carry safe messages and are echoed; anything else is a 500.
func writeServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrIDRequired):
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "id is required")
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "courrier not found")
	case errors.Is(err, workflow.ErrNodeNotFound):
		return writeError(c, fiber.StatusNotFound, "NODE_NOT_FOUND", err.Error())
	case errors.Is(err, workflow.ErrInactiveNode):
		return writeError(c, fiber.StatusConflict, "INACTIVE_NODE", err.Error())
	case errors.Is(err, repository.ErrVersionConflict):
		return writeError(c, fiber.StatusConflict, "VERSION_CONFLICT", "courrier was modified concurrently, retry")
	case errors.Is(err, service.ErrBusy):
		return writeError(c, fiber.StatusConflict, "COURRIER_BUSY", err.Error())
	case errors.Is(err, workflow.ErrSchemaMismatch):
		return writeError(c, fiber.StatusUnprocessableEntity, "SCHEMA_MISMATCH", err.Error())
	case errors.Is(err, workflow.ErrValidation):
		return writeError(c, fiber.StatusUnprocessableEntity, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, service.ErrInvalidKey):
		return writeError(c, fiber.StatusBadRequest, "INVALID_KEY", "invalid document key")
	case errors.Is(err, service.ErrDocumentNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found")
	}
	return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "PAYLOAD_TOO_LARGE", "request body too large")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
