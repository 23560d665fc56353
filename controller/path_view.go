package controller

import (
	"fmt"
	"net/http"

	"github.com/warin-th/ctrlkit/apierror"
	"github.com/warin-th/ctrlkit/engine"
)

// PathView aggregates every operation registered at one URL path, at most
// one per HTTP method, and exposes a single method-dispatching view for the
// whole path.
type PathView struct {
	operations []*engine.Operation
	api        API
}

// AddOperation registers an operation for the given definition. Registering
// a second operation for an HTTP method already served at this path is an
// error.
func (pv *PathView) AddOperation(def engine.RouteDefinition, view engine.Handler) (*engine.Operation, error) {
	op := engine.NewOperation(def, view)
	for _, method := range op.Methods {
		for _, existing := range pv.operations {
			if existing.HandlesMethod(method) {
				return nil, fmt.Errorf("controller: %s already registered at path %q", method, def.Path)
			}
		}
	}
	pv.operations = append(pv.operations, op)
	return op, nil
}

// Operations returns the registered operations in registration order.
func (pv *PathView) Operations() []*engine.Operation {
	return pv.operations
}

// SetAPIInstance rebinds every operation against the final application
// instance, resolving auth and response values that were still deferred
// sentinels at declaration time. An explicit NoAuth marker resolves to no
// authenticator rather than the application default.
func (pv *PathView) SetAPIInstance(api API) {
	pv.api = api
	for _, op := range pv.operations {
		switch {
		case op.Auth == engine.NoAuth:
			op.Auth = nil
		case !engine.IsSet(op.Auth):
			op.Auth = api.DefaultAuth()
		}
		if !engine.IsSet(op.Response) {
			op.Response = nil
		}
	}
}

// View returns the handler serving this path: it selects the operation for
// the request method, authenticates when the operation carries an auth
// scheme, then runs the operation's dispatch adapter.
func (pv *PathView) View() engine.Handler {
	return func(req engine.Request) (any, error) {
		op := pv.match(req.Method())
		if op == nil {
			return nil, apierror.MethodNotAllowed("")
		}
		if engine.IsSet(op.Auth) {
			if err := authenticate(op.Auth, req); err != nil {
				return nil, err
			}
		}
		return op.View()(req)
	}
}

func (pv *PathView) match(method string) *engine.Operation {
	for _, op := range pv.operations {
		if op.HandlesMethod(method) {
			return op
		}
	}
	return nil
}

func authenticate(auth any, req engine.Request) error {
	a, ok := auth.(engine.Authenticator)
	if !ok {
		return nil
	}
	user, err := a.Authenticate(req)
	if err != nil {
		if apierror.StatusOf(err) != http.StatusInternalServerError {
			return err
		}
		return apierror.AuthenticationFailed(err.Error())
	}
	req.SetUser(user)
	return nil
}
