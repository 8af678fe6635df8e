package requestlog

import (
	"errors"
	"time"

	"ota-server/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// New returns a middleware that logs every request through the given logger.
// It must run after the rayid middleware so entries carry the RayID.
func New(logg *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		l := logger.WithRayID(logg, c)
		l.Debug("Request started",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
		)

		err := c.Next()

		// The error handler has not run yet, so derive the status it will write.
		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}

		fields := []zap.Field{
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
			zap.Int("status", status),
			zap.Duration("duration", time.Since(start)),
		}

		switch {
		case status >= fiber.StatusInternalServerError:
			l.Error("Request error", append(fields, zap.Error(err))...)
		case err != nil:
			l.Warn("Request rejected", append(fields, zap.Error(err))...)
		default:
			l.Info("Request completed", fields...)
		}
		return err
	}
}
