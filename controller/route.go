package controller

import (
	"fmt"
	"strings"

	"github.com/warin-th/ctrlkit/engine"
	"github.com/warin-th/ctrlkit/permission"
)

const (
	MethodGet    = "GET"
	MethodPost   = "POST"
	MethodPut    = "PUT"
	MethodPatch  = "PATCH"
	MethodDelete = "DELETE"
)

var routeMethods = []string{MethodPost, MethodPut, MethodPatch, MethodDelete, MethodGet}

// HandlerFunc is a route-bearing controller method. The context is built
// fresh for every request and is never shared.
type HandlerFunc func(ctx *RouteContext) (any, error)

// Get declares a GET route for the given handler. Per-route overrides are
// chained on the returned route function before the controller is attached.
func Get(path string, handler HandlerFunc) *RouteFunction {
	return newRouteFunction(path, []string{MethodGet}, handler)
}

// Post declares a POST route.
func Post(path string, handler HandlerFunc) *RouteFunction {
	return newRouteFunction(path, []string{MethodPost}, handler)
}

// Put declares a PUT route.
func Put(path string, handler HandlerFunc) *RouteFunction {
	return newRouteFunction(path, []string{MethodPut}, handler)
}

// Patch declares a PATCH route.
func Patch(path string, handler HandlerFunc) *RouteFunction {
	return newRouteFunction(path, []string{MethodPatch}, handler)
}

// Delete declares a DELETE route.
func Delete(path string, handler HandlerFunc) *RouteFunction {
	return newRouteFunction(path, []string{MethodDelete}, handler)
}

// Generic declares a route serving several HTTP methods at once. Methods
// are upper-cased and validated against the supported set.
func Generic(path string, methods []string, handler HandlerFunc) (*RouteFunction, error) {
	if len(methods) == 0 {
		return nil, fmt.Errorf("controller: generic route %q needs at least one method", path)
	}
	normalized := make([]string, 0, len(methods))
	for _, m := range methods {
		m = strings.ToUpper(strings.TrimSpace(m))
		if !isRouteMethod(m) {
			return nil, fmt.Errorf("controller: method %s not allowed", m)
		}
		normalized = append(normalized, m)
	}
	return newRouteFunction(path, normalized, handler), nil
}

func isRouteMethod(method string) bool {
	for _, m := range routeMethods {
		if m == method {
			return true
		}
	}
	return false
}

// Auth overrides the controller-level authentication for this route.
func (rf *RouteFunction) Auth(a engine.Authenticator) *RouteFunction {
	rf.params.Auth = a
	return rf
}

// NoAuth explicitly disables authentication for this route, as opposed to
// leaving it unset and inheriting the controller default. The marker is a
// set value, so neither the controller's auth nor the application default
// replaces it.
func (rf *RouteFunction) NoAuth() *RouteFunction {
	rf.params.Auth = engine.NoAuth
	return rf
}

// Response sets the documented response schema.
func (rf *RouteFunction) Response(schema any) *RouteFunction {
	rf.params.Response = schema
	return rf
}

// Summary sets the operation summary.
func (rf *RouteFunction) Summary(summary string) *RouteFunction {
	rf.params.Summary = summary
	return rf
}

// Description sets the operation description.
func (rf *RouteFunction) Description(description string) *RouteFunction {
	rf.params.Description = description
	return rf
}

// Tags replaces the operation tags. Routes without tags inherit the
// controller's.
func (rf *RouteFunction) Tags(tags ...string) *RouteFunction {
	rf.params.Tags = tags
	return rf
}

// Deprecated marks the operation deprecated in generated documentation.
func (rf *RouteFunction) Deprecated() *RouteFunction {
	rf.params.Deprecated = true
	return rf
}

// ByAlias asks the serializer to emit field aliases.
func (rf *RouteFunction) ByAlias() *RouteFunction {
	rf.params.ByAlias = true
	return rf
}

// ExcludeUnset asks the serializer to drop fields never assigned.
func (rf *RouteFunction) ExcludeUnset() *RouteFunction {
	rf.params.ExcludeUnset = true
	return rf
}

// ExcludeDefaults asks the serializer to drop fields holding defaults.
func (rf *RouteFunction) ExcludeDefaults() *RouteFunction {
	rf.params.ExcludeDefaults = true
	return rf
}

// ExcludeNone asks the serializer to drop empty fields.
func (rf *RouteFunction) ExcludeNone() *RouteFunction {
	rf.params.ExcludeNone = true
	return rf
}

// URLName overrides the routable entry name, which defaults to the
// declaring method's name.
func (rf *RouteFunction) URLName(name string) *RouteFunction {
	rf.params.URLName = name
	return rf
}

// ExcludeFromSchema hides the operation from generated documentation.
func (rf *RouteFunction) ExcludeFromSchema() *RouteFunction {
	rf.params.IncludeInSchema = false
	return rf
}

// Permissions overrides the controller-level permission policies for this
// route. The chain checks them in the given order.
func (rf *RouteFunction) Permissions(perms ...permission.Permission) *RouteFunction {
	rf.permissions = perms
	return rf
}
