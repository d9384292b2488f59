package parser

import (
	"regexp"
	"strings"

	"github.com/yosida95/uritemplate/v3"

	"github.com/erraggy/ramltools/ramlerrors"
)

// templateVarRe extracts {param} names when a URI is not a well-formed
// RFC 6570 template; coverage checking still reports the names it can see.
var templateVarRe = regexp.MustCompile(`\{([^{}]+)\}`)

// templateVars returns the template parameter names of a URI template.
func templateVars(uri string) []string {
	if tmpl, err := uritemplate.New(uri); err == nil {
		return tmpl.Varnames()
	}
	matches := templateVarRe.FindAllStringSubmatch(uri, -1)
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m[1])
	}
	return names
}

// buildResources walks the path-keyed mappings at the document root into
// the resource tree. A document with no resources fails validation.
func (b *builder) buildResources() error {
	for _, key := range b.raw.Keys() {
		if !strings.HasPrefix(key, "/") {
			continue
		}
		nodes, err := b.buildResourceBranch(key, b.raw.Get(key), nil)
		if err != nil {
			return err
		}
		b.root.Resources = append(b.root.Resources, nodes...)
	}
	if len(b.root.Resources) == 0 {
		err := &ramlerrors.InvalidResourceError{Path: "/", Message: "API defines no resources"}
		if err := b.report(err); err != nil {
			return err
		}
	}
	b.log().Debug("resource tree built", "topLevel", len(b.root.Resources))
	return nil
}

// buildResourceBranch builds the nodes for one path segment: one
// ResourceNode per declared HTTP method, or a single method-less node when
// the segment only holds nested resources. Nested paths attach to the
// segment's anchor node (its first node in declaration order).
func (b *builder) buildResourceBranch(segment string, v any, parent *ResourceNode) ([]*ResourceNode, error) {
	fullPath := segment
	if parent != nil {
		fullPath = parent.Path + segment
	}

	var raw *RawMap
	if v != nil {
		var ok bool
		if raw, ok = v.(*RawMap); !ok {
			err := typeMismatch(pathOf(parent), segment, "mapping", v)
			return nil, b.report(err)
		}
	}

	var methods, childPaths []string
	for _, key := range raw.Keys() {
		switch {
		case isHTTPMethod(key):
			methods = append(methods, key)
		case strings.HasPrefix(key, "/"):
			childPaths = append(childPaths, key)
		}
	}

	if len(methods) == 0 && len(childPaths) == 0 {
		err := &ramlerrors.InvalidResourceError{
			Path:    fullPath,
			Message: "path declares neither methods nor nested resources",
		}
		if err := b.report(err); err != nil {
			return nil, err
		}
	}

	var nodes []*ResourceNode
	if len(methods) == 0 {
		node, err := b.buildResourceNode(segment, fullPath, raw, "", parent)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	} else {
		for _, method := range methods {
			node, err := b.buildResourceNode(segment, fullPath, raw, method, parent)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, node)
		}
	}

	anchor := nodes[0]
	for _, childPath := range childPaths {
		children, err := b.buildResourceBranch(childPath, raw.Get(childPath), anchor)
		if err != nil {
			return nil, err
		}
		anchor.Children = append(anchor.Children, children...)
	}
	return nodes, nil
}

// buildResourceNode resolves one resource node by overlaying, in ascending
// precedence: inherited parent/root fields, trait contributions in list
// order, the resource type chain (most distant ancestor first), and the
// resource's own declarations.
func (b *builder) buildResourceNode(segment, fullPath string, raw *RawMap, method string, parent *ResourceNode) (*ResourceNode, error) {
	mark := b.mark()
	node := &ResourceNode{
		Name:        segment,
		Parent:      parent,
		Method:      method,
		DisplayName: segment,
		Path:        fullPath,
	}
	node.Raw = raw
	node.Root = b.root

	tctx := templateContext{
		resourcePath:     fullPath,
		resourcePathName: pathName(fullPath),
		methodName:       method,
	}

	var err error
	if dn, err := raw.String(fullPath, "displayName"); err != nil {
		if err = b.report(err); err != nil {
			return nil, err
		}
	} else if dn != "" {
		node.DisplayName = dn
	}

	// Own declarations: the method block's fields win over segment-level
	// fields, and the pair together forms the highest-precedence source.
	segmentBase, err := b.buildBaseFields(fullPath, raw, method)
	if err != nil {
		return nil, err
	}
	var methodRaw *RawMap
	ownMerge := newOverlay()
	ownMerge.applyBase(&segmentBase, provInherited)
	if method != "" {
		if methodRaw, err = raw.Map(fullPath, method); err != nil {
			if err = b.report(err); err != nil {
				return nil, err
			}
		}
		if methodRaw != nil {
			methodBase, err := b.buildBaseFields(fullPath+"."+method, methodRaw, method)
			if err != nil {
				return nil, err
			}
			ownMerge.applyBase(&methodBase, provOwn)
		}
	}
	var own BaseNode
	ownMerge.finish(&own)

	merge := newOverlay()
	merge.applyBase(b.inheritedBase(parent), provInherited)

	// Traits: segment-level is applies to every method, method-level is
	// extends it; later entries override earlier ones.
	isList, err := b.resourceRefList(fullPath, raw, methodRaw, "is")
	if err != nil {
		return nil, err
	}
	if len(isList) > 0 {
		node.Is = isList
		traits, err := b.resolveTraits(fullPath, isList, tctx)
		if err != nil {
			return nil, err
		}
		node.Traits = traits
		for _, trait := range traits {
			merge.applyBase(&trait.BaseNode, provTrait)
		}
	}

	// Resource type chain, ancestor-first so the closest type wins.
	typeName, typeSettings, err := b.typeRef(fullPath, raw)
	if err != nil {
		if err = b.report(err); err != nil {
			return nil, err
		}
	}
	if typeName != "" {
		node.Type = typeName
		contributions, registryNode, err := b.resolveResourceType(fullPath, typeName, typeSettings, method, tctx)
		if err != nil {
			return nil, err
		}
		node.ResourceType = registryNode
		for _, contribution := range contributions {
			merge.applyBase(contribution, provResourceType)
		}
	}

	merge.applyBase(&own, provOwn)
	merge.finish(&node.BaseNode)
	node.Raw = raw
	node.Root = b.root

	if err := b.resolveResourceSecurity(fullPath, node, raw, methodRaw); err != nil {
		return nil, err
	}
	if err := b.resolveResourceURI(node); err != nil {
		return nil, err
	}

	node.Violations = b.since(mark)
	return node, nil
}

// resourceRefList reads an is or securedBy list declared at the segment
// level, extended or overridden by the method block. For is, both lists
// apply with the method block's entries later (higher trait precedence).
func (b *builder) resourceRefList(path string, raw, methodRaw *RawMap, key string) ([]any, error) {
	read := func(m *RawMap) []any {
		if m == nil || !m.Has(key) {
			return nil
		}
		switch val := m.Get(key).(type) {
		case nil:
			return nil
		case []any:
			return val
		default:
			return []any{val}
		}
	}
	return append(append([]any{}, read(raw)...), read(methodRaw)...), nil
}

// resolveResourceSecurity resolves the node's securedBy: the method block
// wins over the segment level, which wins over inheritance from the parent
// chain and finally the root-level securedBy.
func (b *builder) resolveResourceSecurity(path string, node *ResourceNode, raw, methodRaw *RawMap) error {
	refs, declared, err := b.refList(raw, methodRaw, node.Method, "securedBy")
	if err != nil {
		return err
	}
	if declared {
		node.SecuredBy = refs
		schemes, err := b.resolveSecuredBy(path, refs, true)
		if err != nil {
			return err
		}
		node.SecuritySchemes = schemes
		return nil
	}
	if node.Parent != nil && node.Parent.SecuredBy != nil {
		node.SecuredBy = node.Parent.SecuredBy
		node.SecuritySchemes = node.Parent.SecuritySchemes
		return nil
	}
	if b.rootSecDeclared {
		node.SecuredBy = b.rootSecuredBy
		node.SecuritySchemes = b.rootSecurity
	}
	return nil
}

// resolveResourceURI computes the node's absolute URI and verifies its
// template: the URI must be syntactically valid and every template
// parameter must have a declaration that is visible to this node.
func (b *builder) resolveResourceURI(node *ResourceNode) error {
	node.AbsoluteURI = joinURI(b.root.BaseURI, node.Path)

	if _, err := uritemplate.New(node.AbsoluteURI); err != nil {
		uriErr := &ramlerrors.InvalidResourceError{
			Path:    node.Path,
			Message: "absolute URI is not a valid URI template: " + err.Error(),
		}
		if err := b.report(uriErr); err != nil {
			return err
		}
		return nil
	}

	// The {version} placeholder is only covered inside the base URI; a
	// resource path segment using it still needs a declaration.
	for _, name := range templateVars(node.Path) {
		if b.uriParamVisible(node, name) {
			continue
		}
		err := &ramlerrors.URIParameterMismatchError{
			Path:      node.Path,
			Parameter: name,
			URI:       node.AbsoluteURI,
		}
		if err := b.report(err); err != nil {
			return err
		}
	}
	return nil
}

// uriParamVisible reports whether a URI parameter declaration for name is
// visible to node: its own merged parameters, any ancestor's, or the root's.
// Ancestor declarations are visible without being copied into descendants.
func (b *builder) uriParamVisible(node *ResourceNode, name string) bool {
	for n := node; n != nil; n = n.Parent {
		if paramDeclared(name, n.URIParams) || paramDeclared(name, n.BaseURIParams) {
			return true
		}
	}
	return paramDeclared(name, b.root.URIParams) || paramDeclared(name, b.root.BaseURIParams)
}

// inheritedBase assembles the lowest-precedence merge source: the parent
// resource's resolved media type, protocols, and base URI parameters, or
// the root's for top-level resources.
func (b *builder) inheritedBase(parent *ResourceNode) *BaseNode {
	if parent != nil {
		return &BaseNode{
			MediaType:     parent.MediaType,
			Protocols:     parent.Protocols,
			BaseURIParams: parent.BaseURIParams,
		}
	}
	return &BaseNode{
		MediaType:     b.root.MediaType,
		Protocols:     b.root.Protocols,
		BaseURIParams: b.root.BaseURIParams,
	}
}

// joinURI concatenates the base URI and a resource path without doubling
// the slash between them.
func joinURI(baseURI, path string) string {
	if baseURI == "" {
		return path
	}
	if strings.HasSuffix(baseURI, "/") && strings.HasPrefix(path, "/") {
		return strings.TrimSuffix(baseURI, "/") + path
	}
	return baseURI + path
}

// pathName returns the last path segment with template braces stripped,
// used as the reserved <<resourcePathName>> template parameter.
func pathName(path string) string {
	idx := strings.LastIndex(path, "/")
	name := path[idx+1:]
	name = strings.TrimPrefix(name, "{")
	return strings.TrimSuffix(name, "}")
}

// pathOf names a parent's path for error context, or "/" for the root.
func pathOf(parent *ResourceNode) string {
	if parent == nil {
		return "/"
	}
	return parent.Path
}
