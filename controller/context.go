package controller

import (
	"github.com/warin-th/ctrlkit/engine"
	"github.com/warin-th/ctrlkit/permission"
)

// RouteContext is the per-request state handed to a route handler: the
// incoming request plus the permission policies effective for the operation
// being dispatched. It is created fresh for every request, owned by that
// request, and discarded with it.
type RouteContext struct {
	Request     engine.Request
	Permissions []permission.Permission
}

// NewRouteContext builds the context for one dispatch.
func NewRouteContext(req engine.Request, perms []permission.Permission) *RouteContext {
	return &RouteContext{Request: req, Permissions: perms}
}

// Param is a convenience accessor for a path parameter.
func (c *RouteContext) Param(name string) string {
	if c == nil || c.Request == nil {
		return ""
	}
	return c.Request.Param(name)
}

// Query is a convenience accessor for a query parameter.
func (c *RouteContext) Query(name string) string {
	if c == nil || c.Request == nil {
		return ""
	}
	return c.Request.Query(name)
}

// User returns the authenticated principal, if any.
func (c *RouteContext) User() engine.AuthUser {
	if c == nil || c.Request == nil {
		return nil
	}
	return c.Request.User()
}
