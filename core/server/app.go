package server

import (
	"fmt"
	"io"

	"ota-server/core/middleware/rayid"
	"ota-server/core/middleware/requestlog"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// StartupMessage is printed once the listener is bound.
const StartupMessage = "Server starting: SUCCESS"

// NewApp builds the Fiber application with the shared middleware chain.
// Once the listener is bound, StartupMessage is written to announce.
func NewApp(logg *zap.Logger, announce io.Writer) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true, // We print our own confirmation line
	})

	app.Hooks().OnListen(func(data fiber.ListenData) error {
		logg.Info("Server listening", zap.String("host", data.Host), zap.String("port", data.Port))
		_, err := fmt.Fprintln(announce, StartupMessage)
		return err
	})

	// RayID must be first so every log line carries it
	app.Use(rayid.New())
	app.Use(requestlog.New(logg))

	return app
}

// Run binds addr and serves app until shutdown. A bind failure is returned
// before StartupMessage is written.
func Run(app *fiber.App, addr string) error {
	if err := app.Listen(addr); err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return nil
}
