package fiberengine

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"github.com/warin-th/ctrlkit/engine"
)

// request adapts fiber.Ctx to the engine's request view. The user slot lives
// here rather than in fiber locals so the controller layer stays framework
// agnostic.
type request struct {
	ctx  fiber.Ctx
	user engine.AuthUser
}

func newRequest(c fiber.Ctx) *request {
	return &request{ctx: c}
}

func (r *request) Method() string { return r.ctx.Method() }

func (r *request) Path() string { return r.ctx.Path() }

func (r *request) Header(key string) string { return r.ctx.Get(key) }

func (r *request) Param(name string) string { return r.ctx.Params(name) }

func (r *request) Query(name string) string { return r.ctx.Query(name) }

func (r *request) Body() []byte { return r.ctx.Body() }

func (r *request) Context() context.Context { return r.ctx.Context() }

func (r *request) User() engine.AuthUser { return r.user }

func (r *request) SetUser(user engine.AuthUser) { r.user = user }
