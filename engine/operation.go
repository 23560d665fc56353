package engine

import "strings"

// RouteDefinition is the full registration payload for one operation. It
// carries everything a route declaration captured, including values that are
// still deferred sentinels (Auth, Response) at declaration time.
type RouteDefinition struct {
	Path            string
	Methods         []string
	Auth            any
	Response        any
	OperationID     string
	Summary         string
	Description     string
	Tags            []string
	Deprecated      bool
	ByAlias         bool
	ExcludeUnset    bool
	ExcludeDefaults bool
	ExcludeNone     bool
	URLName         string
	IncludeInSchema bool
}

// Operation is the registered unit of (path, HTTP methods, handler,
// metadata). The controller layer creates operations and rebinds their
// deferred fields once the owning application instance is known.
type Operation struct {
	ID              string
	Path            string
	Methods         []string
	Auth            any
	Response        any
	Summary         string
	Description     string
	Tags            []string
	Deprecated      bool
	ByAlias         bool
	ExcludeUnset    bool
	ExcludeDefaults bool
	ExcludeNone     bool
	URLName         string
	IncludeInSchema bool

	view Handler
}

// NewOperation builds an operation from a route definition and its dispatch
// adapter. Methods are normalized to upper case.
func NewOperation(def RouteDefinition, view Handler) *Operation {
	methods := make([]string, 0, len(def.Methods))
	for _, m := range def.Methods {
		methods = append(methods, strings.ToUpper(strings.TrimSpace(m)))
	}
	return &Operation{
		ID:              def.OperationID,
		Path:            def.Path,
		Methods:         methods,
		Auth:            def.Auth,
		Response:        def.Response,
		Summary:         def.Summary,
		Description:     def.Description,
		Tags:            def.Tags,
		Deprecated:      def.Deprecated,
		ByAlias:         def.ByAlias,
		ExcludeUnset:    def.ExcludeUnset,
		ExcludeDefaults: def.ExcludeDefaults,
		ExcludeNone:     def.ExcludeNone,
		URLName:         def.URLName,
		IncludeInSchema: def.IncludeInSchema,
		view:            view,
	}
}

// View returns the dispatch adapter registered for this operation.
func (op *Operation) View() Handler {
	return op.view
}

// HandlesMethod reports whether the operation serves the given HTTP method.
func (op *Operation) HandlesMethod(method string) bool {
	method = strings.ToUpper(strings.TrimSpace(method))
	for _, m := range op.Methods {
		if m == method {
			return true
		}
	}
	return false
}
