package controller

import (
	"context"

	"github.com/warin-th/ctrlkit/engine"
)

// fakeRequest is the minimal engine.Request used across the package tests.
type fakeRequest struct {
	method  string
	path    string
	headers map[string]string
	params  map[string]string
	query   map[string]string
	body    []byte
	user    engine.AuthUser
}

func newFakeRequest(method, path string) *fakeRequest {
	return &fakeRequest{method: method, path: path}
}

func (r *fakeRequest) Method() string { return r.method }

func (r *fakeRequest) Path() string { return r.path }

func (r *fakeRequest) Header(key string) string { return r.headers[key] }

func (r *fakeRequest) Param(name string) string { return r.params[name] }

func (r *fakeRequest) Query(name string) string { return r.query[name] }

func (r *fakeRequest) Body() []byte { return r.body }

func (r *fakeRequest) Context() context.Context { return context.Background() }

func (r *fakeRequest) User() engine.AuthUser { return r.user }

func (r *fakeRequest) SetUser(user engine.AuthUser) { r.user = user }

// fakeUser is a canned principal.
type fakeUser struct {
	id    string
	auth  bool
	staff bool
}

func (u *fakeUser) Identity() string { return u.id }

func (u *fakeUser) IsAuthenticated() bool { return u.auth }

func (u *fakeUser) IsStaff() bool { return u.staff }

// fakeAPI satisfies the API slice controllers bind to.
type fakeAPI struct {
	renderer engine.Renderer
	auth     any
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{renderer: engine.JSONRenderer{}}
}

func (a *fakeAPI) Renderer() engine.Renderer { return a.renderer }

func (a *fakeAPI) DefaultAuth() any { return a.auth }
