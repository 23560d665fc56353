// Package permission provides the authorization policies evaluated by the
// controller layer before and during route execution. Policies are plain
// values implementing a fixed interface; the evaluation chain lives in the
// controller package and short-circuits on the first denial.
package permission

import "github.com/warin-th/ctrlkit/engine"

// Permission is a single authorization policy. HasPermission runs once per
// request before the route handler; HasObjectPermission runs against a
// specific object fetched by the controller's lookup helpers.
type Permission interface {
	HasPermission(req engine.Request, controller any) bool
	HasObjectPermission(req engine.Request, controller any, obj any) bool

	// Message is an optional human-readable denial reason carried by the
	// permission-denied error.
	Message() string
}

// Freshener lets stateful policies hand the chain a fresh working copy per
// check, so no state survives across requests. Stateless policies skip it.
type Freshener interface {
	Fresh() Permission
}

// Base carries a denial message and permits everything; concrete policies
// embed it and override the checks they care about.
type Base struct {
	Msg string
}

func (Base) HasPermission(engine.Request, any) bool { return true }

func (Base) HasObjectPermission(engine.Request, any, any) bool { return true }

func (b Base) Message() string { return b.Msg }

// AllowAny permits everything. It is the controller-level default.
type AllowAny struct{ Base }

// DenyAll rejects every request.
type DenyAll struct{ Base }

func (DenyAll) HasPermission(engine.Request, any) bool { return false }

func (DenyAll) HasObjectPermission(engine.Request, any, any) bool { return false }

// IsAuthenticated permits only requests carrying an authenticated user.
type IsAuthenticated struct{ Base }

func (IsAuthenticated) HasPermission(req engine.Request, _ any) bool {
	return isAuthenticated(req)
}

// IsAdminUser permits only staff users.
type IsAdminUser struct{ Base }

func (IsAdminUser) HasPermission(req engine.Request, _ any) bool {
	u := req.User()
	return u != nil && u.IsAuthenticated() && u.IsStaff()
}

// IsAuthenticatedOrReadOnly permits safe methods for everyone and everything
// else only for authenticated users.
type IsAuthenticatedOrReadOnly struct{ Base }

func (IsAuthenticatedOrReadOnly) HasPermission(req engine.Request, _ any) bool {
	if isSafeMethod(req.Method()) {
		return true
	}
	return isAuthenticated(req)
}

func isAuthenticated(req engine.Request) bool {
	u := req.User()
	return u != nil && u.IsAuthenticated()
}

func isSafeMethod(method string) bool {
	switch method {
	case "GET", "HEAD", "OPTIONS":
		return true
	}
	return false
}
