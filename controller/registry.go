package controller

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
)

// ErrControllerRegistered is returned when a controller type is registered
// a second time.
var ErrControllerRegistered = errors.New("controller: already registered")

// Registry is the process-wide map from controller type to descriptor.
// Registration is startup work: the registry is populated while the
// application wires itself and read-only once serving begins.
type Registry struct {
	mu          sync.RWMutex
	controllers map[reflect.Type]*APIController
	order       []reflect.Type
}

func NewRegistry() *Registry {
	return &Registry{controllers: make(map[reflect.Type]*APIController)}
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the registry Attach uses unless told otherwise.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Add records a controller descriptor. Adding a second descriptor for the
// same controller type fails with ErrControllerRegistered and returns the
// descriptor already held, so callers opting out of the error can keep it.
func (r *Registry) Add(c *APIController) (*APIController, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.controllers[c.controllerType]; ok {
		return existing, fmt.Errorf("%w: %s", ErrControllerRegistered, c.Name())
	}
	r.controllers[c.controllerType] = c
	r.order = append(r.order, c.controllerType)
	return c, nil
}

// Controllers returns every registered descriptor in registration order.
func (r *Registry) Controllers() []*APIController {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*APIController, 0, len(r.order))
	for _, t := range r.order {
		out = append(out, r.controllers[t])
	}
	return out
}

// AutoImportable returns the descriptors eligible for auto discovery.
func (r *Registry) AutoImportable() []*APIController {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*APIController
	for _, t := range r.order {
		if c := r.controllers[t]; c.autoImport {
			out = append(out, c)
		}
	}
	return out
}

// Lookup finds the descriptor for a controller instance or type.
func (r *Registry) Lookup(instance any) (*APIController, bool) {
	t := reflect.TypeOf(instance)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.controllers[t]
	return c, ok
}

// Clear empties the registry. Test helper.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.controllers = make(map[reflect.Type]*APIController)
	r.order = nil
}
