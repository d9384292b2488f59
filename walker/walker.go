package walker

import (
	"fmt"

	"github.com/erraggy/ramltools/parser"
)

// Action controls the walker's behavior after visiting a node.
type Action int

const (
	// Continue continues walking normally, visiting children and siblings.
	Continue Action = iota

	// SkipChildren skips all children of the current node but continues with siblings.
	SkipChildren

	// Stop stops the walk immediately. No more nodes will be visited.
	Stop
)

// IsValid returns true if the action is one of the defined constants.
func (a Action) IsValid() bool {
	return a >= Continue && a <= Stop
}

// String returns a string representation of the action.
func (a Action) String() string {
	switch a {
	case Continue:
		return "Continue"
	case SkipChildren:
		return "SkipChildren"
	case Stop:
		return "Stop"
	default:
		return fmt.Sprintf("Action(%d)", a)
	}
}

// Handler types for each RAML node type.
// Each handler receives the node and returns an Action.

// RootHandler is called once for the document root.
type RootHandler func(root *parser.RootNode) Action

// ResourceHandler is called for each resolved resource node in declaration
// order, parents before children.
type ResourceHandler func(res *parser.ResourceNode) Action

// ParameterHandler is called for each named parameter of a visited node.
// The owner is the ResourceNode the parameter belongs to, or nil for
// parameters declared at the document root.
type ParameterHandler func(owner *parser.ResourceNode, param *parser.Parameter) Action

// BodyHandler is called for each request body declaration of a visited node.
type BodyHandler func(owner *parser.ResourceNode, body *parser.Body) Action

// ResponseHandler is called for each response declaration of a visited node.
type ResponseHandler func(owner *parser.ResourceNode, resp *parser.Response) Action

// TraitHandler is called for each trait declared at the document root.
type TraitHandler func(trait *parser.TraitNode) Action

// ResourceTypeHandler is called for each resource type declared at the
// document root.
type ResourceTypeHandler func(rt *parser.ResourceTypeNode) Action

// SecuritySchemeHandler is called for each security scheme declared at the
// document root.
type SecuritySchemeHandler func(scheme *parser.SecurityScheme) Action

// Walker traverses resolved RAML documents and calls handlers for each
// node type.
type Walker struct {
	onRoot           RootHandler
	onResource       ResourceHandler
	onParameter      ParameterHandler
	onBody           BodyHandler
	onResponse       ResponseHandler
	onTrait          TraitHandler
	onResourceType   ResourceTypeHandler
	onSecurityScheme SecuritySchemeHandler

	stopped bool
}

// New creates a new Walker with the given options.
func New(opts ...Option) *Walker {
	w := &Walker{}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Option configures the Walker.
type Option func(*Walker)

// WithRootHandler sets the handler for the document root.
func WithRootHandler(fn RootHandler) Option {
	return func(w *Walker) { w.onRoot = fn }
}

// WithResourceHandler sets the handler for resource nodes.
func WithResourceHandler(fn ResourceHandler) Option {
	return func(w *Walker) { w.onResource = fn }
}

// WithParameterHandler sets the handler for named parameters.
func WithParameterHandler(fn ParameterHandler) Option {
	return func(w *Walker) { w.onParameter = fn }
}

// WithBodyHandler sets the handler for request bodies.
func WithBodyHandler(fn BodyHandler) Option {
	return func(w *Walker) { w.onBody = fn }
}

// WithResponseHandler sets the handler for responses.
func WithResponseHandler(fn ResponseHandler) Option {
	return func(w *Walker) { w.onResponse = fn }
}

// WithTraitHandler sets the handler for declared traits.
func WithTraitHandler(fn TraitHandler) Option {
	return func(w *Walker) { w.onTrait = fn }
}

// WithResourceTypeHandler sets the handler for declared resource types.
func WithResourceTypeHandler(fn ResourceTypeHandler) Option {
	return func(w *Walker) { w.onResourceType = fn }
}

// WithSecuritySchemeHandler sets the handler for declared security schemes.
func WithSecuritySchemeHandler(fn SecuritySchemeHandler) Option {
	return func(w *Walker) { w.onSecurityScheme = fn }
}

// Walk traverses the resolved document in result, calling the handlers
// configured by opts. Declarations (security schemes, traits, resource
// types) are visited first, then the resource tree depth first in
// declaration order.
func Walk(result *parser.ParseResult, opts ...Option) error {
	if result == nil || result.Root == nil {
		return fmt.Errorf("walker: no resolved document to walk")
	}
	return New(opts...).WalkRoot(result.Root)
}

// WalkRoot traverses a resolved document graph directly.
func (w *Walker) WalkRoot(root *parser.RootNode) error {
	if root == nil {
		return fmt.Errorf("walker: nil root node")
	}
	w.stopped = false

	if w.onRoot != nil {
		switch w.onRoot(root) {
		case Stop:
			return nil
		case SkipChildren:
			return nil
		}
	}

	for _, scheme := range root.SecuritySchemes {
		if w.onSecurityScheme != nil && w.visit(w.onSecurityScheme(scheme)) {
			return nil
		}
	}
	for _, trait := range root.Traits {
		if w.onTrait != nil && w.visit(w.onTrait(trait)) {
			return nil
		}
	}
	for _, rt := range root.ResourceTypes {
		if w.onResourceType != nil && w.visit(w.onResourceType(rt)) {
			return nil
		}
	}

	for _, res := range root.Resources {
		w.walkResource(res)
		if w.stopped {
			return nil
		}
	}
	return nil
}

// visit records a Stop action and reports whether the walk should end.
func (w *Walker) visit(a Action) bool {
	if a == Stop {
		w.stopped = true
	}
	return w.stopped
}

// walkResource visits one resource node, its parameters, bodies, and
// responses, then recurses into children.
func (w *Walker) walkResource(res *parser.ResourceNode) {
	if w.stopped {
		return
	}

	skipChildren := false
	if w.onResource != nil {
		switch w.onResource(res) {
		case Stop:
			w.stopped = true
			return
		case SkipChildren:
			skipChildren = true
		}
	}

	if w.onParameter != nil {
		for _, params := range [][]*parser.Parameter{
			res.URIParams, res.BaseURIParams, res.QueryParams, res.Headers, res.FormParams,
		} {
			for _, param := range params {
				if w.visit(w.onParameter(res, param)) {
					return
				}
			}
		}
	}
	if w.onBody != nil {
		for _, body := range res.Body {
			if w.visit(w.onBody(res, body)) {
				return
			}
		}
	}
	if w.onResponse != nil {
		for _, resp := range res.Responses {
			if w.visit(w.onResponse(res, resp)) {
				return
			}
		}
	}

	if skipChildren {
		return
	}
	for _, child := range res.Children {
		w.walkResource(child)
		if w.stopped {
			return
		}
	}
}
