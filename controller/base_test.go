package controller

import (
	"errors"
	"net/http"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/warin-th/ctrlkit/apierror"
	"github.com/warin-th/ctrlkit/engine"
	"github.com/warin-th/ctrlkit/inject"
	"github.com/warin-th/ctrlkit/permission"
)

type recordingPermission struct {
	permission.Base
	name   string
	allow  bool
	record *[]string
}

func (p *recordingPermission) HasPermission(req engine.Request, controller any) bool {
	*p.record = append(*p.record, p.name)
	return p.allow
}

func (p *recordingPermission) HasObjectPermission(req engine.Request, controller any, obj any) bool {
	*p.record = append(*p.record, p.name+":object")
	return p.allow
}

func boundWidget(t *testing.T) *WidgetController {
	t.Helper()
	instance := &WidgetController{}
	c, err := Attach(instance, "widgets",
		WithRegistry(NewRegistry()),
		WithInjector(inject.NewContainer()),
	)
	if err != nil {
		t.Fatalf("attach: %v", err)
	}
	if err := c.SetAPIInstance(newFakeAPI()); err != nil {
		t.Fatalf("bind: %v", err)
	}
	return instance
}

func TestCheckPermissions_ShortCircuitsOnFirstDenial(t *testing.T) {
	instance := boundWidget(t)

	var calls []string
	deny := &recordingPermission{name: "deny", allow: false, record: &calls}
	deny.Msg = "first policy says no"
	never := &recordingPermission{name: "never", allow: true, record: &calls}

	ctx := NewRouteContext(newFakeRequest("GET", "/widgets"), []permission.Permission{deny, never})
	err := instance.CheckPermissions(ctx)
	if err == nil {
		t.Fatalf("expected denial")
	}
	if got := apierror.StatusOf(err); got != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", got)
	}
	var apiErr *apierror.Error
	if !errors.As(err, &apiErr) || apiErr.Message != "first policy says no" {
		t.Fatalf("expected the denying policy's message, got %v", err)
	}
	if len(calls) != 1 || calls[0] != "deny" {
		t.Fatalf("expected only the first policy to run, got %v", calls)
	}
}

func TestCheckPermissions_AllPoliciesRunInOrderWhenPermitting(t *testing.T) {
	instance := boundWidget(t)

	var calls []string
	first := &recordingPermission{name: "first", allow: true, record: &calls}
	second := &recordingPermission{name: "second", allow: true, record: &calls}

	ctx := NewRouteContext(newFakeRequest("GET", "/widgets"), []permission.Permission{first, second})
	if err := instance.CheckPermissions(ctx); err != nil {
		t.Fatalf("expected chain to permit, got %v", err)
	}
	if len(calls) != 2 || calls[0] != "first" || calls[1] != "second" {
		t.Fatalf("expected ordered evaluation, got %v", calls)
	}
}

func TestCheckPermissions_SkippedWithoutRequest(t *testing.T) {
	instance := boundWidget(t)

	var calls []string
	deny := &recordingPermission{name: "deny", allow: false, record: &calls}

	if err := instance.CheckPermissions(nil); err != nil {
		t.Fatalf("nil context must skip the chain, got %v", err)
	}
	if err := instance.CheckPermissions(NewRouteContext(nil, []permission.Permission{deny})); err != nil {
		t.Fatalf("missing request must skip the chain, got %v", err)
	}
	if len(calls) != 0 {
		t.Fatalf("no policy should have run, got %v", calls)
	}
}

func TestCheckObjectPermissions_DeniesWithPolicyMessage(t *testing.T) {
	instance := boundWidget(t)

	var calls []string
	deny := &recordingPermission{name: "deny", allow: false, record: &calls}
	deny.Msg = "not your widget"

	ctx := NewRouteContext(newFakeRequest("GET", "/widgets/1"), []permission.Permission{deny})
	err := instance.CheckObjectPermissions(ctx, struct{ ID int }{1})
	var apiErr *apierror.Error
	if !errors.As(err, &apiErr) || apiErr.Message != "not your widget" {
		t.Fatalf("expected object denial message, got %v", err)
	}
}

func TestCreateResponse_RendersThroughApplicationRenderer(t *testing.T) {
	instance := boundWidget(t)

	ctx := NewRouteContext(newFakeRequest("POST", "/widgets"), nil)
	res, err := instance.CreateResponse(ctx, map[string]string{"name": "sprocket"}, http.StatusCreated, nil)
	if err != nil {
		t.Fatalf("create response: %v", err)
	}
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", res.StatusCode)
	}
	if res.ContentType != "application/json; charset=utf-8" {
		t.Fatalf("unexpected content type %q", res.ContentType)
	}
	if string(res.Body) != `{"name":"sprocket"}` {
		t.Fatalf("unexpected body %q", res.Body)
	}
}

func TestCreateResponse_FailsBeforeApplicationBinding(t *testing.T) {
	instance := &WidgetController{}
	if _, err := Attach(instance, "widgets",
		WithRegistry(NewRegistry()),
		WithInjector(inject.NewContainer()),
	); err != nil {
		t.Fatalf("attach: %v", err)
	}
	_, err := instance.CreateResponse(nil, "x", http.StatusOK, nil)
	if !errors.Is(err, ErrUnboundAPI) {
		t.Fatalf("expected ErrUnboundAPI, got %v", err)
	}
}

type gadget struct {
	ID   uint `gorm:"primarykey"`
	Name string
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&gadget{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestGetObjectOrNone_MissSkipsObjectPermissions(t *testing.T) {
	instance := boundWidget(t)
	db := openTestDB(t)

	var calls []string
	deny := &recordingPermission{name: "deny", allow: false, record: &calls}
	ctx := NewRouteContext(newFakeRequest("GET", "/widgets/42"), []permission.Permission{deny})

	var g gadget
	found, err := instance.GetObjectOrNone(ctx, db, &g, "id = ?", 42)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if found {
		t.Fatalf("expected a miss")
	}
	if len(calls) != 0 {
		t.Fatalf("object permissions must not run on a miss, got %v", calls)
	}
}

func TestGetObjectOrNone_HitRunsObjectPermissions(t *testing.T) {
	instance := boundWidget(t)
	db := openTestDB(t)
	if err := db.Create(&gadget{Name: "sprocket"}).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	var calls []string
	allow := &recordingPermission{name: "allow", allow: true, record: &calls}
	ctx := NewRouteContext(newFakeRequest("GET", "/widgets/1"), []permission.Permission{allow})

	var g gadget
	found, err := instance.GetObjectOrNone(ctx, db, &g, "name = ?", "sprocket")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if !found || g.Name != "sprocket" {
		t.Fatalf("expected the seeded record, found=%v g=%+v", found, g)
	}
	if len(calls) != 1 || calls[0] != "allow:object" {
		t.Fatalf("expected one object-level check, got %v", calls)
	}
}

func TestGetObjectOrError_MissBecomesNotFound(t *testing.T) {
	instance := boundWidget(t)
	db := openTestDB(t)

	ctx := NewRouteContext(newFakeRequest("GET", "/widgets/42"), nil)
	var g gadget
	err := instance.GetObjectOrError(ctx, db, &g, "", "id = ?", 42)
	if got := apierror.StatusOf(err); got != http.StatusNotFound {
		t.Fatalf("expected 404, got %d (err=%v)", got, err)
	}
}
