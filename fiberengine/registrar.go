// Package fiberengine mounts controller-layer url entries on a fiber v3
// application. It is the only package that imports fiber; everything above it
// speaks the engine interfaces.
package fiberengine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"github.com/warin-th/ctrlkit/apierror"
	"github.com/warin-th/ctrlkit/controller"
	"github.com/warin-th/ctrlkit/engine"
)

// Registrar registers controller url entries on a fiber router.
type Registrar struct {
	app fiber.Router
	log *zap.Logger
}

// NewRegistrar wraps a fiber router. A nil logger disables registration logs.
func NewRegistrar(app fiber.Router, log *zap.Logger) *Registrar {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registrar{app: app, log: log}
}

// Register mounts one url entry. The entry path arrives in the engine's
// angle-bracket parameter style ("items/<item_id>") and is converted to
// fiber's colon style ("/items/:item_id").
func (r *Registrar) Register(entry engine.URLEntry) error {
	path := FiberPath(entry.Path)
	handler := wrapView(entry.View)
	for _, method := range entry.Methods {
		switch strings.ToUpper(method) {
		case fiber.MethodGet:
			r.app.Get(path, handler)
		case fiber.MethodPost:
			r.app.Post(path, handler)
		case fiber.MethodPut:
			r.app.Put(path, handler)
		case fiber.MethodPatch:
			r.app.Patch(path, handler)
		case fiber.MethodDelete:
			r.app.Delete(path, handler)
		case fiber.MethodHead:
			r.app.Head(path, handler)
		case fiber.MethodOptions:
			r.app.Options(path, handler)
		default:
			return fmt.Errorf("fiberengine: unsupported method %q for %q", method, entry.Path)
		}
		r.log.Debug("route registered",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("name", entry.Name),
		)
	}
	return nil
}

// FiberPath converts an engine-style path to fiber's syntax: angle-bracket
// parameters become colon parameters and the path gains a leading slash.
func FiberPath(path string) string {
	path = strings.ReplaceAll(path, "<", ":")
	path = strings.ReplaceAll(path, ">", "")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}

// wrapView adapts an engine view to a fiber handler. A *engine.Response
// result is written verbatim; nil becomes 204; anything else is serialized
// as JSON. Errors carrying an API status map to that status with a detail
// envelope, all other errors surface as fiber's 500.
func wrapView(view engine.Handler) fiber.Handler {
	return func(c fiber.Ctx) error {
		result, err := view(newRequest(c))
		if err != nil {
			return writeError(c, err)
		}
		switch res := result.(type) {
		case *engine.Response:
			return writeResponse(c, res)
		case nil:
			return c.SendStatus(fiber.StatusNoContent)
		default:
			return c.JSON(result)
		}
	}
}

func writeResponse(c fiber.Ctx, res *engine.Response) error {
	for key, value := range res.Headers {
		c.Set(key, value)
	}
	if res.ContentType != "" {
		c.Set(fiber.HeaderContentType, res.ContentType)
	}
	return c.Status(res.StatusCode).Send(res.Body)
}

func writeError(c fiber.Ctx, err error) error {
	var apiErr *apierror.Error
	if errors.As(err, &apiErr) {
		return c.Status(apiErr.StatusCode).JSON(controller.Detail{Detail: apiErr.Message})
	}
	return fiber.ErrInternalServerError
}
