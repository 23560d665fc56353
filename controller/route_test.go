package controller

import (
	"net/http"
	"reflect"
	"testing"

	"github.com/warin-th/ctrlkit/apierror"
	"github.com/warin-th/ctrlkit/engine"
	"github.com/warin-th/ctrlkit/inject"
	"github.com/warin-th/ctrlkit/permission"
)

func TestGeneric_NormalizesAndValidatesMethods(t *testing.T) {
	rf, err := Generic("/items", []string{"get", " post "}, func(ctx *RouteContext) (any, error) { return nil, nil })
	if err != nil {
		t.Fatalf("generic: %v", err)
	}
	if got := rf.Params().Methods; !reflect.DeepEqual(got, []string{"GET", "POST"}) {
		t.Fatalf("expected normalized methods [GET POST], got %v", got)
	}

	if _, err := Generic("/items", nil, nil); err == nil {
		t.Fatalf("expected empty method list to fail")
	}
	if _, err := Generic("/items", []string{"TRACE"}, nil); err == nil {
		t.Fatalf("expected unsupported method to fail")
	}
}

func TestRouteFunction_FluentMetadata(t *testing.T) {
	rf := Get("/items", func(ctx *RouteContext) (any, error) { return nil, nil }).
		Summary("List items").
		Description("Everything in stock.").
		Tags("inventory").
		Deprecated().
		URLName("inventory-list").
		ExcludeFromSchema()

	p := rf.Params()
	if p.Summary != "List items" || p.Description != "Everything in stock." {
		t.Fatalf("summary/description not captured: %+v", p)
	}
	if !reflect.DeepEqual(p.Tags, []string{"inventory"}) {
		t.Fatalf("tags not captured: %v", p.Tags)
	}
	if !p.Deprecated || p.IncludeInSchema {
		t.Fatalf("flags not captured: deprecated=%v includeInSchema=%v", p.Deprecated, p.IncludeInSchema)
	}
	if p.URLName != "inventory-list" {
		t.Fatalf("url name not captured: %q", p.URLName)
	}
}

func TestRouteFunction_DefaultsDeferAuthAndResponse(t *testing.T) {
	rf := Get("/items", func(ctx *RouteContext) (any, error) { return nil, nil })
	p := rf.Params()
	if engine.IsSet(p.Auth) {
		t.Fatalf("auth should default to the deferred sentinel")
	}
	if engine.IsSet(p.Response) {
		t.Fatalf("response should default to the deferred sentinel")
	}
	if p.Auth == nil {
		t.Fatalf("deferred auth must be distinguishable from an explicit nil")
	}
}

func TestRouteFunction_NoAuthIsASetValue(t *testing.T) {
	rf := Get("/items", func(ctx *RouteContext) (any, error) { return nil, nil }).NoAuth()
	if rf.Params().Auth != engine.NoAuth {
		t.Fatalf("NoAuth must pin auth to the disabled marker, got %v", rf.Params().Auth)
	}
	if !engine.IsSet(rf.Params().Auth) {
		t.Fatalf("the disabled marker must count as explicitly set")
	}
}

type GuardedController struct {
	Base
	handled bool
}

func (c *GuardedController) Routes() []*RouteFunction {
	return []*RouteFunction{
		Get("", c.open),
		Post("", c.locked).Permissions(permission.DenyAll{Base: permission.Base{Msg: "locked down"}}),
	}
}

func (c *GuardedController) open(ctx *RouteContext) (any, error) {
	c.handled = true
	return "open", nil
}

func (c *GuardedController) locked(ctx *RouteContext) (any, error) {
	c.handled = true
	return "locked", nil
}

func TestDispatchAdapter_RunsPermissionChainBeforeHandler(t *testing.T) {
	instance := &GuardedController{}
	c, err := Attach(instance, "guarded",
		WithRegistry(NewRegistry()),
		WithInjector(inject.NewContainer()),
	)
	if err != nil {
		t.Fatalf("attach: %v", err)
	}
	if err := c.SetAPIInstance(newFakeAPI()); err != nil {
		t.Fatalf("bind: %v", err)
	}

	view := c.PathViews()[0].View()

	got, err := view(newFakeRequest("GET", "/guarded"))
	if err != nil || got != "open" {
		t.Fatalf("open route: got %v, err %v", got, err)
	}

	instance.handled = false
	_, err = view(newFakeRequest("POST", "/guarded"))
	if got := apierror.StatusOf(err); got != http.StatusForbidden {
		t.Fatalf("expected 403 from route-level policy, got %d (err=%v)", got, err)
	}
	if instance.handled {
		t.Fatalf("handler must not run after denial")
	}
}

func TestHandlerName_DerivedFromDeclaringMethod(t *testing.T) {
	instance := &GuardedController{}
	routes := instance.Routes()
	names := map[string]bool{}
	for _, rf := range routes {
		names[rf.Name()] = true
	}
	for _, want := range []string{"open", "locked"} {
		if !names[want] {
			t.Fatalf("expected route named %q, have %v", want, names)
		}
	}
}
