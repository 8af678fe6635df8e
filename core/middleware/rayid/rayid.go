package rayid

import (
	"ota-server/core/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// HeaderName is the request and response header carrying the RayID.
const HeaderName = "X-Ray-ID"

// New returns a middleware that tags every request with a RayID.
// A well-formed UUID supplied by the client is kept, anything else is replaced.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := uuid.NewString()
		if parsed, err := uuid.Parse(c.Get(HeaderName)); err == nil {
			id = parsed.String()
		}

		c.Locals(logger.RayIDKey, id)
		c.Set(HeaderName, id)
		return c.Next()
	}
}

// FromContext returns the RayID stored on the context, if any.
func FromContext(c *fiber.Ctx) string {
	id, _ := c.Locals(logger.RayIDKey).(string)
	return id
}
