package controller

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"

	"github.com/google/uuid"

	"github.com/warin-th/ctrlkit/engine"
	"github.com/warin-th/ctrlkit/permission"
)

// RouteFunction wraps a single declared controller method together with the
// routing metadata captured at declaration time. It is bound to a controller
// descriptor during attach and converted into exactly one operation there.
type RouteFunction struct {
	params      engine.RouteDefinition
	handler     HandlerFunc
	name        string
	permissions []permission.Permission

	apiController *APIController
	converted     bool
}

func newRouteFunction(path string, methods []string, handler HandlerFunc) *RouteFunction {
	return &RouteFunction{
		params: engine.RouteDefinition{
			Path:            path,
			Methods:         methods,
			Auth:            engine.NotSet,
			Response:        engine.NotSet,
			IncludeInSchema: true,
		},
		handler: handler,
		name:    handlerName(handler),
	}
}

// Name returns the declaring method's name.
func (rf *RouteFunction) Name() string { return rf.name }

// Params exposes the captured route metadata.
func (rf *RouteFunction) Params() engine.RouteDefinition { return rf.params }

// Controller returns the descriptor this route function was bound to, or
// nil before attach.
func (rf *RouteFunction) Controller() *APIController { return rf.apiController }

// view builds the dispatch adapter the host framework invokes: it creates
// the per-request context, runs the request-level permission chain and only
// then executes the declared method.
func (rf *RouteFunction) view() engine.Handler {
	return func(req engine.Request) (any, error) {
		ctx := NewRouteContext(req, rf.effectivePermissions())
		if err := rf.apiController.base.CheckPermissions(ctx); err != nil {
			return nil, err
		}
		return rf.handler(ctx)
	}
}

func (rf *RouteFunction) effectivePermissions() []permission.Permission {
	if rf.permissions != nil {
		return rf.permissions
	}
	if rf.apiController != nil {
		return rf.apiController.permissions
	}
	return nil
}

// handlerKey identifies the declaring method's code, independent of which
// embedding path produced the bound method value. Routes contributed by an
// ancestor reachable through several mixins collapse onto one key.
func (rf *RouteFunction) handlerKey() uintptr {
	return reflect.ValueOf(rf.handler).Pointer()
}

func handlerName(handler HandlerFunc) string {
	if handler == nil {
		return "handler"
	}
	full := runtime.FuncForPC(reflect.ValueOf(handler).Pointer()).Name()
	if idx := strings.LastIndex(full, "."); idx >= 0 {
		full = full[idx+1:]
	}
	// Bound method values carry an -fm suffix.
	full = strings.TrimSuffix(full, "-fm")
	if full == "" {
		return "handler"
	}
	return full
}

// newOperationID stamps a short random token ahead of the declaring
// method's name. The token is the first 8 hex characters of a v4 UUID:
// collisions are unlikely, not impossible, and nothing here depends on
// uniqueness being guaranteed.
func newOperationID(name string) string {
	return fmt.Sprintf("%s_controller_%s", uuid.NewString()[:8], name)
}
