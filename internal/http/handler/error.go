package handler

import (
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/gofiber/fiber/v2"

	"foodhood/internal/http/middleware"
	"foodhood/internal/media"
	"foodhood/internal/service"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`

	// Partial lists what a photo batch stored before it failed.
	Partial *service.PhotoBatchResult `json:"partial,omitempty"`
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
// - code: machine-readable short error code (e.g., "INVALID_ID", "NOT_FOUND", "INTERNAL_ERROR")
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

// writeServiceError translates a service or media error into its HTTP response.
func writeServiceError(c *fiber.Ctx, err error) error {
	status, code, message := classify(err)
	return writeError(c, status, code, message)
}

// writeBatchError is writeServiceError for an interrupted photo batch. The photos
// already stored stay stored, so their indices are returned alongside the error.
func writeBatchError(c *fiber.Ctx, err error, partial *service.PhotoBatchResult) error {
	status, code, message := classify(err)
	return c.Status(status).JSON(errorPayload{
		RequestID: requestIDFromCtx(c),
		Error:     errorEnvelope{Code: code, Message: message},
		Partial:   partial,
	})
}

func classify(err error) (int, string, string) {
	switch {
	case errors.Is(err, service.ErrFoodNotFound):
		return fiber.StatusNotFound, "NOT_FOUND", "food not found"
	case errors.Is(err, service.ErrOrderNotFound):
		return fiber.StatusNotFound, "NOT_FOUND", "order not found"
	case errors.Is(err, service.ErrPhotoNotFound):
		return fiber.StatusNotFound, "NOT_FOUND", "photo not found"
	case errors.Is(err, service.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, media.ErrSizeRequired):
		return fiber.StatusLengthRequired, "SIZE_REQUIRED", "file size is required"
	case errors.Is(err, media.ErrPayloadTooLarge):
		return fiber.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "file size exceeds limit"
	case errors.Is(err, media.ErrUnsupportedMediaType):
		return fiber.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA_TYPE", "unsupported media type"
	default:
		return fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error"
	}
}

// paramID parses the snowflake route parameter name. On failure it writes a
// 400 response and returns ok=false; the caller must return the error as is.
func paramID(c *fiber.Ctx, name string) (snowflake.ID, bool, error) {
	id, err := snowflake.ParseString(c.Params(name))
	if err != nil || id <= 0 {
		return 0, false, writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
	}
	return id, true, nil
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusUnauthorized:
			return writeError(c, status, "UNAUTHORIZED", "caller identity required")
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
