// Package api exposes the application facade the host process mounts
// controllers on. It owns the registrar, the renderer and the default auth
// scheme, and performs all route mounting at startup: after RegisterControllers
// returns, the controller layer is read-only.
package api

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/warin-th/ctrlkit/controller"
	"github.com/warin-th/ctrlkit/engine"
)

// API binds attached controllers to the host routing engine.
type API struct {
	registrar   engine.Registrar
	renderer    engine.Renderer
	auth        any
	basePath    string
	log         *zap.Logger
	controllers []*controller.APIController
}

// Option configures the application facade.
type Option func(*API)

// WithRenderer replaces the default JSON renderer.
func WithRenderer(r engine.Renderer) Option {
	return func(a *API) { a.renderer = r }
}

// WithAuth sets the application-wide default authentication, inherited by
// every operation whose route and controller left auth unset.
func WithAuth(auth engine.Authenticator) Option {
	return func(a *API) { a.auth = auth }
}

// WithBasePath mounts every controller under a common path prefix.
func WithBasePath(basePath string) Option {
	return func(a *API) { a.basePath = basePath }
}

// WithLogger attaches a logger.
func WithLogger(log *zap.Logger) Option {
	return func(a *API) { a.log = log }
}

// New builds an application facade over the given registrar.
func New(registrar engine.Registrar, opts ...Option) *API {
	a := &API{
		registrar: registrar,
		renderer:  engine.JSONRenderer{},
		auth:      nil,
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Renderer returns the application renderer.
func (a *API) Renderer() engine.Renderer { return a.renderer }

// DefaultAuth returns the application-wide default authentication.
func (a *API) DefaultAuth() any { return a.auth }

// Controllers returns the controllers registered so far.
func (a *API) Controllers() []*controller.APIController {
	return a.controllers
}

// RegisterControllers binds each controller to this application and mounts
// its routable entries on the registrar. A controller already bound to an
// application instance is rejected.
func (a *API) RegisterControllers(controllers ...*controller.APIController) error {
	for _, c := range controllers {
		if err := a.registerController(c); err != nil {
			return err
		}
	}
	return nil
}

// AutoDiscover mounts every auto-importable controller in the registry that
// is not bound yet.
func (a *API) AutoDiscover(reg *controller.Registry) error {
	for _, c := range reg.AutoImportable() {
		if c.Bound() {
			continue
		}
		if err := a.registerController(c); err != nil {
			return err
		}
	}
	return nil
}

func (a *API) registerController(c *controller.APIController) error {
	if err := c.SetAPIInstance(a); err != nil {
		return fmt.Errorf("api: register %s: %w", c.Name(), err)
	}
	mounted := 0
	for _, entry := range c.BuildRouters() {
		prefix := joinPrefix(a.basePath, entry.Prefix)
		for _, url := range entry.Controller.URLPaths(prefix) {
			if err := a.registrar.Register(url); err != nil {
				return fmt.Errorf("api: mount %s %q: %w", c.Name(), url.Path, err)
			}
			mounted++
		}
	}
	a.controllers = append(a.controllers, c)
	a.log.Info("controller mounted",
		zap.String("controller", c.Name()),
		zap.String("prefix", c.Prefix()),
		zap.Int("operations", mounted),
	)
	return nil
}

func joinPrefix(basePath, prefix string) string {
	switch {
	case basePath == "":
		return prefix
	case prefix == "":
		return basePath
	}
	return basePath + "/" + prefix
}
