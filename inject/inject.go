// Package inject is the dependency-injection collaborator consumed by the
// controller attach pipeline. It records controller constructors so the fx
// application can provide them, and exposes the predicate the pipeline uses
// to decide whether wiring is already configured. Wiring is best effort:
// attach never fails because of it.
package inject

import (
	"fmt"
	"reflect"
	"sync"

	"go.uber.org/fx"
)

// Container holds one constructor per provided type.
type Container struct {
	mu        sync.RWMutex
	providers map[reflect.Type]any
	order     []reflect.Type
}

func NewContainer() *Container {
	return &Container{providers: make(map[reflect.Type]any)}
}

var defaultContainer = NewContainer()

// Default returns the process-wide container used when attach is not given
// an explicit one.
func Default() *Container {
	return defaultContainer
}

// Provide records a constructor. The constructor must be a function whose
// first return value identifies the provided type.
func (c *Container) Provide(ctor any) error {
	t := reflect.TypeOf(ctor)
	if t == nil || t.Kind() != reflect.Func || t.NumOut() == 0 {
		return fmt.Errorf("inject: constructor must be a function with at least one return value, got %T", ctor)
	}
	return c.put(t.Out(0), ctor)
}

// ProvideInstance records an already constructed value behind a generated
// zero-argument constructor.
func (c *Container) ProvideInstance(v any) error {
	t := reflect.TypeOf(v)
	if t == nil {
		return fmt.Errorf("inject: cannot provide a nil instance")
	}
	ctor := reflect.MakeFunc(
		reflect.FuncOf(nil, []reflect.Type{t}, false),
		func([]reflect.Value) []reflect.Value {
			return []reflect.Value{reflect.ValueOf(v)}
		},
	)
	return c.put(t, ctor.Interface())
}

// IsProvided reports whether a constructor for the type is already recorded.
func (c *Container) IsProvided(t reflect.Type) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.providers[t]
	return ok
}

// Options converts the recorded constructors into fx provide options, in
// registration order.
func (c *Container) Options() []fx.Option {
	c.mu.RLock()
	defer c.mu.RUnlock()
	opts := make([]fx.Option, 0, len(c.order))
	for _, t := range c.order {
		opts = append(opts, fx.Provide(c.providers[t]))
	}
	return opts
}

func (c *Container) put(t reflect.Type, ctor any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.providers[t]; exists {
		return fmt.Errorf("inject: %s already provided", t)
	}
	c.providers[t] = ctor
	c.order = append(c.order, t)
	return nil
}
