// Package engine declares the narrow interfaces through which the controller
// layer consumes the host routing/dispatch stack. The controller core never
// talks to a concrete web framework directly; adapters (see fiberengine)
// implement these interfaces at the transport edge.
package engine

import "context"

type notSet struct{}

// NotSet distinguishes "caller omitted this" from "caller explicitly set
// this to nil/empty". Route and controller auth/response fields default to
// NotSet and are resolved against the application instance at bind time.
var NotSet any = notSet{}

// IsSet reports whether a deferred value was explicitly provided.
func IsSet(v any) bool {
	return v != nil && v != NotSet
}

type noAuth struct{}

// NoAuth is an explicit "authentication disabled" marker. Unlike a plain
// nil, it is a set value: the default-merging passes leave it alone, and
// bind-time resolution turns it into no authenticator instead of falling
// back to the controller or application default.
var NoAuth any = noAuth{}

// Request is the per-request view handed to the controller layer.
type Request interface {
	Method() string
	Path() string
	Header(key string) string
	Param(name string) string
	Query(name string) string
	Body() []byte
	Context() context.Context

	// User returns the authenticated principal, or nil before (or without)
	// authentication.
	User() AuthUser
	SetUser(user AuthUser)
}

// AuthUser is the minimal principal contract permission policies rely on.
type AuthUser interface {
	Identity() string
	IsAuthenticated() bool
	IsStaff() bool
}

// Authenticator validates credentials carried by a request. Implementations
// live outside the controller core (see the auth package).
type Authenticator interface {
	Authenticate(req Request) (AuthUser, error)
}

// Handler is the dispatch-adapter callable produced by the controller layer.
// The returned value is handed to the host framework's response pipeline;
// a *Response is written verbatim, anything else is serialized.
type Handler func(req Request) (any, error)

// Response is a fully shaped transport response, produced by
// controller-level response construction helpers.
type Response struct {
	StatusCode  int
	ContentType string
	Body        []byte
	Headers     map[string]string
}

// URLEntry is one routable entry in the target engine's native path style.
type URLEntry struct {
	Path    string
	Name    string
	Methods []string
	View    Handler
}

// Registrar is the route-registration primitive of the host engine.
type Registrar interface {
	Register(entry URLEntry) error
}
