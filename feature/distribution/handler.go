package distribution

import (
	"errors"

	"ota-server/core/logger"
	"ota-server/core/middleware/rayid"
	"ota-server/feature/downloads"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the distributed artifacts.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the root route followed by one route per artifact.
// Other methods on these paths answer 404 like unknown paths do, instead of Fiber's 405.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get(RootRoute, h.HandleRoot)
	app.All(RootRoute, h.HandleUnsupportedMethod)
	for _, a := range h.service.Catalog() {
		app.Get(a.Route, h.HandleArtifact(a))
		app.All(a.Route, h.HandleUnsupportedMethod)
	}
}

// HandleRoot acknowledges that the server is up.
func (h *Handler) HandleRoot(c *fiber.Ctx) error {
	return c.SendString(Acknowledgement)
}

// HandleUnsupportedMethod answers with the same 404 Fiber gives unmatched routes.
func (h *Handler) HandleUnsupportedMethod(c *fiber.Ctx) error {
	return fiber.NewError(fiber.StatusNotFound, "Cannot "+c.Method()+" "+c.Path())
}

// HandleArtifact returns a handler streaming the artifact's backing file.
// A missing file yields 404, any other failure a bare 500.
func (h *Handler) HandleArtifact(a Artifact) fiber.Handler {
	return func(c *fiber.Ctx) error {
		l := logger.WithRayID(h.service.logger, c).With(zap.String("artifact", a.Name))

		obj, err := h.service.Open(c.Context(), a)
		if err != nil {
			if errors.Is(err, ErrArtifactNotFound) {
				l.Warn("Backing file missing", zap.String("path", a.Path))
				return fiber.NewError(fiber.StatusNotFound, "Cannot find "+a.Route)
			}
			// Paths and storage errors stay in the log
			l.Error("Failed to open backing file", zap.String("path", a.Path), zap.Error(err))
			return fiber.ErrInternalServerError
		}

		body := obj.Body
		if c.Method() == fiber.MethodGet {
			d := &downloads.Download{
				Artifact:  a.Name,
				RemoteIP:  utils.CopyString(c.IP()),
				UserAgent: utils.CopyString(c.Get(fiber.HeaderUserAgent)),
				RayID:     rayid.FromContext(c),
				Bytes:     obj.Size,
			}
			body = newRecordingBody(obj.Body, obj.Size, func() {
				h.service.RecordDownload(d)
			})
		}

		c.Set(fiber.HeaderContentType, a.ContentType)
		// fasthttp closes the body once it has been written
		return c.SendStream(body, int(obj.Size))
	}
}
