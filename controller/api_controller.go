package controller

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"go.uber.org/zap"

	"github.com/warin-th/ctrlkit/engine"
	"github.com/warin-th/ctrlkit/inject"
	"github.com/warin-th/ctrlkit/permission"
)

// ErrMissingCapability is returned by Attach for a type that does not embed
// the controller capability base.
var ErrMissingCapability = errors.New("controller: type does not embed controller.Base")

// ErrAlreadyBound is returned when a controller descriptor is bound to a
// second application instance.
var ErrAlreadyBound = errors.New("controller: already bound to an api instance")

// APIController is the per-controller descriptor: the URL prefix, the
// defaults merged into every route (auth, tags, permissions) and the
// path-to-operations map built during attach.
type APIController struct {
	prefix          string
	auth            any
	tags            []string
	permissions     []permission.Permission
	autoImport      bool
	ignoreDuplicate bool

	registry *Registry
	injector *inject.Container
	log      *zap.Logger

	controllerType reflect.Type
	instance       any
	base           Capability

	registered     bool
	pathOperations map[string]*PathView
	pathOrder      []string
}

// RouterEntry is one (prefix, controller) pair the application mounts.
type RouterEntry struct {
	Prefix     string
	Controller *APIController
}

// Option configures a controller descriptor during Attach.
type Option func(*APIController)

// WithAuth sets the controller-level default authentication, used by every
// route that does not override it.
func WithAuth(a engine.Authenticator) Option {
	return func(c *APIController) { c.auth = a }
}

// WithTags sets the documentation tags. A single tag behaves exactly like a
// one-element list; omitting tags entirely derives one from the type name.
func WithTags(tags ...string) Option {
	return func(c *APIController) { c.tags = tags }
}

// WithPermissions sets the controller-level permission policies, replacing
// the allow-everything default.
func WithPermissions(perms ...permission.Permission) Option {
	return func(c *APIController) { c.permissions = perms }
}

// WithoutAutoImport excludes the controller from registry auto discovery.
func WithoutAutoImport() Option {
	return func(c *APIController) { c.autoImport = false }
}

// WithIgnoreDuplicate turns a duplicate registration of the same controller
// type into a silent no-op returning the already registered descriptor.
func WithIgnoreDuplicate() Option {
	return func(c *APIController) { c.ignoreDuplicate = true }
}

// WithRegistry registers the controller in a specific registry instead of
// the process-wide default.
func WithRegistry(r *Registry) Option {
	return func(c *APIController) { c.registry = r }
}

// WithInjector records the controller in a specific injection container.
func WithInjector(in *inject.Container) Option {
	return func(c *APIController) { c.injector = in }
}

// WithLogger attaches a logger to the descriptor.
func WithLogger(log *zap.Logger) Option {
	return func(c *APIController) { c.log = log }
}

// Attach finalizes a controller instance under the given URL prefix: it
// derives default tags, walks the embedding order collecting declared
// routes (each declaring method converted once, whatever the embedding
// shape), records the constructor for dependency injection on a
// best-effort basis, registers the controller and binds the capability
// base to the registered descriptor.
//
// Attaching a second instance of the same controller type is rejected
// unless WithIgnoreDuplicate was given, in which case the existing
// descriptor is returned untouched and the new instance binds to it.
func Attach(instance any, prefix string, opts ...Option) (*APIController, error) {
	c := &APIController{
		prefix:         prefix,
		auth:           engine.NotSet,
		permissions:    []permission.Permission{permission.AllowAny{}},
		autoImport:     true,
		registry:       DefaultRegistry(),
		injector:       inject.Default(),
		log:            zap.NewNop(),
		pathOperations: make(map[string]*PathView),
	}
	for _, opt := range opts {
		opt(c)
	}

	capability, ok := instance.(Capability)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrMissingCapability, instance)
	}

	t := reflect.TypeOf(instance)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	c.controllerType = t
	c.instance = instance
	c.base = capability

	if len(c.tags) == 0 {
		c.tags = []string{defaultTag(t.Name())}
	}

	if err := c.collectRouteFunctions(instance); err != nil {
		return nil, err
	}

	c.ensureInjectable(instance, t)

	// Bind only once registration is settled: a rejected duplicate leaves
	// the instance unbound, an ignored one binds to the registered
	// descriptor rather than the discarded candidate.
	if existing, err := c.registry.Add(c); err != nil {
		if errors.Is(err, ErrControllerRegistered) && c.ignoreDuplicate {
			capability.bind(existing, instance)
			return existing, nil
		}
		return nil, err
	}
	capability.bind(c, instance)
	return c, nil
}

// MustAttach is Attach for wiring code where a failure is a programming
// error.
func MustAttach(instance any, prefix string, opts ...Option) *APIController {
	c, err := Attach(instance, prefix, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// collectRouteFunctions walks the embedding order and converts every
// declared route function into an operation, deduplicated by the declaring
// method so a mixin shared between two embedding paths registers once.
func (c *APIController) collectRouteFunctions(instance any) error {
	seen := make(map[uintptr]bool)
	for _, ancestor := range ancestorValues(instance) {
		provider, ok := ancestor.Interface().(RoutesProvider)
		if !ok {
			continue
		}
		for _, rf := range provider.Routes() {
			if rf == nil || rf.handler == nil {
				continue
			}
			key := rf.handlerKey()
			if seen[key] {
				continue
			}
			seen[key] = true
			if err := c.AddOperationFromRouteFunction(rf); err != nil {
				return err
			}
		}
	}
	return nil
}

// ensureInjectable records the controller for dependency injection unless a
// constructor is already registered. Failure here is logged and discarded:
// a controller still finalizes and registers without injection wiring.
func (c *APIController) ensureInjectable(instance any, t reflect.Type) {
	ptr := reflect.PtrTo(t)
	if c.injector.IsProvided(ptr) || c.injector.IsProvided(t) {
		return
	}
	if err := c.injector.ProvideInstance(instance); err != nil {
		c.log.Debug("controller injection wiring skipped",
			zap.String("controller", t.Name()),
			zap.Error(err),
		)
	}
}

// AddOperationFromRouteFunction binds the route function to this controller,
// stamps a fresh operation id and registers the operation. Converting the
// same route function twice for one controller is rejected.
func (c *APIController) AddOperationFromRouteFunction(rf *RouteFunction) error {
	if rf.converted && rf.apiController == c {
		return fmt.Errorf("controller: route %s already converted for %s", rf.name, c.Name())
	}
	rf.apiController = c
	rf.params.OperationID = newOperationID(rf.name)
	if rf.params.URLName == "" {
		rf.params.URLName = rf.name
	}
	rf.converted = true
	_, err := c.AddAPIOperation(rf.params, rf.view())
	return err
}

// AddAPIOperation looks up or creates the PathView for the definition's
// path and registers the operation there, merging controller defaults into
// fields the route left unset.
func (c *APIController) AddAPIOperation(def engine.RouteDefinition, view engine.Handler) (*engine.Operation, error) {
	if !engine.IsSet(def.Auth) {
		def.Auth = c.auth
	}
	if len(def.Tags) == 0 {
		def.Tags = c.tags
	}
	pv, ok := c.pathOperations[def.Path]
	if !ok {
		pv = &PathView{}
		c.pathOperations[def.Path] = pv
		c.pathOrder = append(c.pathOrder, def.Path)
	}
	return pv.AddOperation(def, view)
}

// SetAPIInstance binds the controller to its owning application instance
// and rebinds every path view against it. A controller binds exactly once.
func (c *APIController) SetAPIInstance(api API) error {
	if c.registered {
		return fmt.Errorf("%w: %s", ErrAlreadyBound, c.Name())
	}
	c.registered = true
	c.base.bindAPI(api)
	for _, path := range c.pathOrder {
		c.pathOperations[path].SetAPIInstance(api)
	}
	return nil
}

// Bound reports whether the controller was registered with an application.
func (c *APIController) Bound() bool { return c.registered }

// BuildRouters returns the mounting unit consumed by the application: one
// (prefix, controller) pair.
func (c *APIController) BuildRouters() []RouterEntry {
	return []RouterEntry{{Prefix: c.prefix, Controller: c}}
}

// URLPaths yields one routable entry per registered operation, with path
// parameters translated from the declared {name} style to the target
// engine's <name> style, joined under the given prefix.
func (c *APIController) URLPaths(prefix string) []engine.URLEntry {
	var entries []engine.URLEntry
	for _, path := range c.pathOrder {
		pv := c.pathOperations[path]
		route := translatePathParams(path)
		route = joinURLPath(prefix, route)
		for _, op := range pv.Operations() {
			entries = append(entries, engine.URLEntry{
				Path:    route,
				Name:    op.URLName,
				Methods: op.Methods,
				View:    pv.View(),
			})
		}
	}
	return entries
}

// Name returns the controller type's name.
func (c *APIController) Name() string {
	if c.controllerType == nil {
		return ""
	}
	return c.controllerType.Name()
}

// Prefix returns the controller's URL prefix.
func (c *APIController) Prefix() string { return c.prefix }

// Tags returns the controller-level documentation tags.
func (c *APIController) Tags() []string { return c.tags }

// AutoImport reports whether registry auto discovery should mount this
// controller.
func (c *APIController) AutoImport() bool { return c.autoImport }

// Type returns the wrapped controller type.
func (c *APIController) Type() reflect.Type { return c.controllerType }

// Instance returns the wrapped controller instance.
func (c *APIController) Instance() any { return c.instance }

// PathViews returns the path-to-operations map keys in registration order.
func (c *APIController) PathViews() []*PathView {
	views := make([]*PathView, 0, len(c.pathOrder))
	for _, path := range c.pathOrder {
		views = append(views, c.pathOperations[path])
	}
	return views
}

// Operations returns every registered operation across all paths.
func (c *APIController) Operations() []*engine.Operation {
	var ops []*engine.Operation
	for _, path := range c.pathOrder {
		ops = append(ops, c.pathOperations[path].Operations()...)
	}
	return ops
}

func defaultTag(typeName string) string {
	return strings.TrimSuffix(strings.ToLower(typeName), "controller")
}

func translatePathParams(path string) string {
	return strings.NewReplacer("{", "<", "}", ">").Replace(path)
}

// joinURLPath joins prefix and path with a single separator, collapses
// accidental doubled separators and strips the leading one, producing an
// entry the target URL dispatcher accepts.
func joinURLPath(prefix, path string) string {
	parts := make([]string, 0, 2)
	for _, part := range []string{prefix, path} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	route := strings.Join(parts, "/")
	for strings.Contains(route, "//") {
		route = strings.ReplaceAll(route, "//", "/")
	}
	return strings.TrimPrefix(route, "/")
}
