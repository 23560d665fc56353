package controller

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/warin-th/ctrlkit/apierror"
	"github.com/warin-th/ctrlkit/engine"
	"github.com/warin-th/ctrlkit/orm"
	"github.com/warin-th/ctrlkit/permission"
)

// ErrMissingController is returned by capability accessors on a type that
// was never finalized through Attach.
var ErrMissingController = errors.New(
	"controller: descriptor not found, did you forget to attach the type with controller.Attach",
)

// ErrUnboundAPI is returned by helpers that need the owning application
// instance before the controller was registered with one.
var ErrUnboundAPI = errors.New("controller: not bound to an api instance")

// API is the slice of the application facade the controller core consumes.
type API interface {
	Renderer() engine.Renderer
	DefaultAuth() any
}

// Capability marks a type as controller-capable. Embed Base to satisfy it;
// Attach rejects types that do not.
type Capability interface {
	APIController() (*APIController, error)
	CheckPermissions(ctx *RouteContext) error
	bind(ac *APIController, owner any)
	bindAPI(api API)
}

// Base provides the controller capability: descriptor access, permission
// evaluation, object-lookup helpers and response construction. Embed it in
// every controller struct.
type Base struct {
	ac    *APIController
	api   API
	owner any
}

// APIController returns the descriptor bound by Attach.
func (b *Base) APIController() (*APIController, error) {
	if b.ac == nil {
		return nil, ErrMissingController
	}
	return b.ac, nil
}

func (b *Base) bind(ac *APIController, owner any) {
	b.ac = ac
	b.owner = owner
}

func (b *Base) bindAPI(api API) {
	b.api = api
}

// PermissionDenied builds the denial error for a failing policy, carrying
// its optional message.
func (b *Base) PermissionDenied(p permission.Permission) error {
	msg := ""
	if p != nil {
		msg = p.Message()
	}
	return apierror.PermissionDenied(msg)
}

// CheckPermissions runs the request-level permission chain in declaration
// order, stopping at the first denial. A missing context or request skips
// the chain entirely; that leniency lets controller methods be exercised
// outside a request lifecycle.
func (b *Base) CheckPermissions(ctx *RouteContext) error {
	if ctx == nil || ctx.Request == nil {
		return nil
	}
	for _, p := range ctx.Permissions {
		p = freshPermission(p)
		if !p.HasPermission(ctx.Request, b.owner) {
			return b.PermissionDenied(p)
		}
	}
	return nil
}

// CheckObjectPermissions runs the object-level chain against a specific
// object, with the same ordering, short-circuit and leniency rules.
func (b *Base) CheckObjectPermissions(ctx *RouteContext, obj any) error {
	if ctx == nil || ctx.Request == nil {
		return nil
	}
	for _, p := range ctx.Permissions {
		p = freshPermission(p)
		if !p.HasObjectPermission(ctx.Request, b.owner, obj) {
			return b.PermissionDenied(p)
		}
	}
	return nil
}

// GetObjectOrError fetches the first record matching conds into dest,
// failing with a not-found error on a miss, then runs the object-level
// permission chain on the loaded object.
func (b *Base) GetObjectOrError(ctx *RouteContext, db *gorm.DB, dest any, errMessage string, conds ...any) error {
	if err := orm.GetObjectOrError(db, dest, errMessage, conds...); err != nil {
		return err
	}
	return b.CheckObjectPermissions(ctx, dest)
}

// GetObjectOrNone fetches the first record matching conds into dest. A miss
// reports found=false without touching the permission chain; a hit runs the
// object-level chain before the object is considered available.
func (b *Base) GetObjectOrNone(ctx *RouteContext, db *gorm.DB, dest any, conds ...any) (bool, error) {
	found, err := orm.GetObjectOrNone(db, dest, conds...)
	if err != nil || !found {
		return found, err
	}
	if err := b.CheckObjectPermissions(ctx, dest); err != nil {
		return true, err
	}
	return true, nil
}

// CreateResponse renders a payload through the bound application's renderer
// and shapes a transport response with the renderer's content type.
func (b *Base) CreateResponse(ctx *RouteContext, payload any, statusCode int, headers map[string]string) (*engine.Response, error) {
	if b.api == nil {
		return nil, ErrUnboundAPI
	}
	renderer := b.api.Renderer()
	var req engine.Request
	if ctx != nil {
		req = ctx.Request
	}
	body, err := renderer.Render(req, payload, statusCode)
	if err != nil {
		return nil, err
	}
	return &engine.Response{
		StatusCode:  statusCode,
		ContentType: fmt.Sprintf("%s; charset=%s", renderer.MediaType(), renderer.Charset()),
		Body:        body,
		Headers:     headers,
	}, nil
}

func freshPermission(p permission.Permission) permission.Permission {
	if f, ok := p.(permission.Freshener); ok {
		return f.Fresh()
	}
	return p
}
