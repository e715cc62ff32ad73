package middleware

import (
	"github.com/bwmarrin/snowflake"
	"github.com/gofiber/fiber/v2"
)

const (
	// CallerIDHeader carries the authenticated user id set by the upstream gateway.
	CallerIDHeader = "X-User-ID"
	// CallerIDLocalKey is the key used to store the caller id in Fiber's context locals.
	CallerIDLocalKey = "caller_id"
)

// CallerID requires a valid CallerIDHeader and stores the parsed id in locals.
// Requests without one are rejected with 401.
func CallerID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Get(CallerIDHeader)
		if raw == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing caller id")
		}
		id, err := snowflake.ParseString(raw)
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid caller id")
		}
		c.Locals(CallerIDLocalKey, id)
		return c.Next()
	}
}

// Caller returns the id stored by CallerID.
func Caller(c *fiber.Ctx) (snowflake.ID, bool) {
	id, ok := c.Locals(CallerIDLocalKey).(snowflake.ID)
	return id, ok
}
