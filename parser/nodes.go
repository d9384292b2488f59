package parser

// RootNode is the API's top-level description and the sole root of the
// resolved object graph. It owns the registries and the resource tree;
// back-references from nodes to the root are lookup-only.
//
// A RootNode is constructed once per document and must be treated as
// immutable after Parse returns.
type RootNode struct {
	// Raw is the raw document tree, retained for introspection
	Raw *RawMap
	// RAMLVersion is the rule set the document was resolved under
	RAMLVersion RAMLVersion
	// Version is the API version string, or empty
	Version string
	// BaseURI is the templated base URI, possibly embedding {version}
	BaseURI string
	// BaseURIParams are parameters declared for the base URI
	BaseURIParams []*Parameter
	// URIParams are URI parameters applicable to all resources
	URIParams []*Parameter
	// Protocols is the supported subset of {HTTP, HTTPS}; defaults to the
	// scheme of BaseURI
	Protocols []string
	// Title is the required API title
	Title string
	// Documentation holds the root-level documentation entries
	Documentation []*Documentation
	// Schemas holds named raw schema blobs in declaration order
	Schemas []*NamedSchema
	// MediaType is the default request/response media type, or empty
	MediaType string
	// ResourceTypes holds the declared resource types in declaration order,
	// one node per declared method variant
	ResourceTypes []*ResourceTypeNode
	// Traits holds the declared traits in declaration order
	Traits []*TraitNode
	// SecuritySchemes holds the declared security schemes in declaration order
	SecuritySchemes []*SecurityScheme
	// Resources holds the top-level resources in declaration order
	Resources []*ResourceNode
}

// BaseNode carries the fields shared by traits, resource types, and
// resources. It is never instantiated on its own.
type BaseNode struct {
	// Raw is the raw fragment this node was built from
	Raw *RawMap
	// Root is a non-owning back-reference to the document root.
	// It must never be used to mutate the root.
	Root *RootNode
	// Headers are the node's header declarations
	Headers []*Parameter
	// Body are the node's request body declarations
	Body []*Body
	// Responses are the node's response declarations
	Responses []*Response
	// URIParams are the node's URI parameter declarations
	URIParams []*Parameter
	// BaseURIParams are the node's base URI parameter overrides
	BaseURIParams []*Parameter
	// QueryParams are the node's query parameter declarations
	QueryParams []*Parameter
	// FormParams are the node's form parameter declarations
	FormParams []*Parameter
	// MediaType is the node's media type; inherited from the root unless overridden
	MediaType string
	// Description describes the node
	Description string
	// Protocols are the node's protocols; inherited from the root unless overridden
	Protocols []string
	// Violations holds the structural errors attached to this node when
	// resolving in permissive mode. Empty in strict mode, which aborts on
	// the first violation instead.
	Violations []error
}

// TraitNode is a named, reusable overlay of BaseNode fields. Traits never
// appear standalone in the resolved resource tree; they act only as merge
// sources.
type TraitNode struct {
	BaseNode
	// Name is the trait's unique key within the traits registry
	Name string
	// Usage describes how the trait should be used
	Usage string
}

// ResourceTypeNode is a named, reusable template of resource behavior.
// A resource type block declaring several HTTP methods yields one
// ResourceTypeNode per method variant.
type ResourceTypeNode struct {
	BaseNode
	// Name is the type's unique key within the resource types registry
	Name string
	// Type names the parent resource type this one inherits from, or empty
	Type string
	// Method is the HTTP verb this variant applies to, or empty for a
	// method-agnostic variant
	Method string
	// Usage describes how the resource type should be used
	Usage string
	// Optional is true when the method was declared with a trailing "?";
	// the variant then applies only to resources that define the method
	Optional bool
	// Is holds the assigned trait names
	Is []string
	// Traits holds the resolved TraitNode objects for Is
	Traits []*TraitNode
	// SecuredBy holds the raw securedBy references
	SecuredBy []any
	// SecuritySchemes holds the resolved scheme objects for SecuredBy
	SecuritySchemes []*SecurityScheme
	// DisplayName is the user-friendly name; defaults to Name
	DisplayName string
}

// ResourceNode is one resolved API endpoint: a URI path plus, when the
// path declares methods, one node per method.
type ResourceNode struct {
	BaseNode
	// Name is the resource's path segment name
	Name string
	// Parent is a non-owning reference to the parent resource, or nil for
	// top-level resources. It must never be used to mutate the parent.
	Parent *ResourceNode
	// Method is the HTTP verb, or empty for a resource that declares no
	// methods of its own and exists only to hold nested resources
	Method string
	// DisplayName is the user-friendly name; defaults to Name
	DisplayName string
	// Path is this resource's full path template from the API root,
	// e.g. "/widgets/{id}"
	Path string
	// AbsoluteURI is BaseURI joined with Path
	AbsoluteURI string
	// Is holds the assigned trait references as declared (names or
	// name-to-settings mappings)
	Is []any
	// Traits holds the resolved TraitNode objects for Is
	Traits []*TraitNode
	// Type names the assigned resource type, or empty
	Type string
	// ResourceType is the resolved type variant applied to this resource
	ResourceType *ResourceTypeNode
	// SecuredBy holds the raw securedBy references; nil means security is
	// inherited, an empty non-nil slice means explicitly unsecured
	SecuredBy []any
	// SecuritySchemes holds the resolved scheme objects securing this node
	SecuritySchemes []*SecurityScheme
	// Children holds nested resources. Children are attached to the path's
	// anchor node: the method-less node when the path declares no methods,
	// otherwise the node for the first declared method.
	Children []*ResourceNode
}

// Documentation is one root-level user documentation entry.
type Documentation struct {
	// Title of the documentation entry
	Title string
	// Content of the documentation entry
	Content string
}

// NamedSchema is one named raw schema blob from the root schemas list.
type NamedSchema struct {
	// Name is the schema's key
	Name string
	// Value is the raw schema content (string or mapping)
	Value any
}

// SecurityScheme is a named authentication/authorization mechanism
// definition, referenced by nodes via securedBy.
type SecurityScheme struct {
	// Name of the security scheme
	Name string
	// Raw is the raw fragment the scheme was built from
	Raw *RawMap
	// Type of authentication, e.g. "OAuth 2.0", "Basic Authentication",
	// or an "x-" custom type
	Type string
	// DescribedBy declares the headers, query parameters, and responses
	// a consumer should expect when using the scheme
	DescribedBy *SchemeUsage
	// Description of the security scheme
	Description string
	// Settings holds scheme-specific configuration (e.g. OAuth 2.0 scopes).
	// Settings merged from a securedBy reference produce a per-use copy;
	// the registry entry is never mutated.
	Settings *RawMap
}

// SchemeUsage is the describedBy block of a security scheme.
type SchemeUsage struct {
	// Headers expected when using the scheme
	Headers []*Parameter
	// QueryParams expected when using the scheme
	QueryParams []*Parameter
	// Responses possible when using the scheme
	Responses []*Response
}
