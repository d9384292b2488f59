package parser

import (
	"github.com/erraggy/ramltools/ramlerrors"
)

// resourceTypeRegistry holds the declared resource types keyed by name, with
// raw templates retained for inheritance walking and per-use substitution.
type resourceTypeRegistry struct {
	order []string
	raws  map[string]*RawMap
}

// parseResourceTypes builds the resource types registry from the root-level
// resourceTypes declaration. Registration is two-pass: names are collected
// before any body is resolved, so a type may inherit from one declared later
// in the document. Inheritance chains are cycle-checked up front.
func (b *builder) parseResourceTypes() error {
	reg := &resourceTypeRegistry{raws: make(map[string]*RawMap)}
	b.types = reg

	entries, err := b.namedBlocks("resourceTypes")
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if _, dup := reg.raws[entry.name]; !dup {
			reg.order = append(reg.order, entry.name)
		}
		reg.raws[entry.name] = entry.raw
	}

	for _, name := range reg.order {
		if err := b.checkTypeChain(name); err != nil {
			return err
		}
	}

	for _, name := range reg.order {
		if err := b.buildResourceTypeNodes(name, reg.raws[name]); err != nil {
			return err
		}
	}
	if len(entries) > 0 {
		b.log().Debug("resource types registered", "count", len(reg.order))
	}
	return nil
}

// typeRef reads a node's type reference, which is a bare name or a
// single-entry name-to-parameters mapping.
func (b *builder) typeRef(path string, raw *RawMap) (string, *RawMap, error) {
	v := raw.Get("type")
	if v == nil {
		return "", nil, nil
	}
	return splitRef(path, "type", 0, v)
}

// checkTypeChain walks a type's inheritance chain with a visited set,
// failing with a cyclic inheritance error when a name repeats and an
// undefined resource type error when a parent does not resolve.
func (b *builder) checkTypeChain(name string) error {
	path := "resourceTypes." + name
	visited := map[string]bool{}
	chain := []string{name}
	current := name
	for {
		visited[current] = true
		raw := b.types.raws[current]
		parent, _, err := b.typeRef(path, raw)
		if err != nil {
			return b.report(err)
		}
		if parent == "" {
			return nil
		}
		chain = append(chain, parent)
		if visited[parent] {
			return b.report(&ramlerrors.CyclicInheritanceError{Path: path, Chain: chain})
		}
		if _, ok := b.types.raws[parent]; !ok {
			return b.report(&ramlerrors.UndefinedReferenceError{
				Path: path, Name: parent, Kind: ramlerrors.KindResourceType,
			})
		}
		current = parent
	}
}

// buildResourceTypeNodes builds the registry-view ResourceTypeNode variants
// for one declared type: one node per method block, plus a method-agnostic
// node when the type declares no methods. Registry-view nodes carry the
// type's own declarations only; ancestor fields are overlaid at resolution
// time so that the closest type wins.
func (b *builder) buildResourceTypeNodes(name string, raw *RawMap) error {
	path := "resourceTypes." + name

	parent, _, err := b.typeRef(path, raw)
	if err != nil {
		if err = b.report(err); err != nil {
			return err
		}
	}

	methodKeys := make([]string, 0, 2)
	for _, key := range raw.Keys() {
		if m, _ := splitOptionalMethod(key); isHTTPMethod(m) {
			methodKeys = append(methodKeys, key)
		}
	}

	build := func(methodKey string) error {
		node, err := b.buildResourceTypeVariant(path, name, parent, raw, methodKey, templateContext{}, nil)
		if err != nil {
			return err
		}
		b.root.ResourceTypes = append(b.root.ResourceTypes, node)
		return nil
	}

	if len(methodKeys) == 0 {
		return build("")
	}
	for _, key := range methodKeys {
		if err := build(key); err != nil {
			return err
		}
	}
	return nil
}

// buildResourceTypeVariant builds one ResourceTypeNode for a method key
// ("get", "get?", or empty for method-agnostic), substituting template
// parameters and flattening the type's own traits under its explicit fields.
func (b *builder) buildResourceTypeVariant(path, name, parent string, raw *RawMap, methodKey string, tctx templateContext, settings *RawMap) (*ResourceTypeNode, error) {
	substituted, ok := deepSubstitute(raw, tctx.params(settings)).(*RawMap)
	if !ok {
		substituted = raw
	}

	node := &ResourceTypeNode{Name: name, Type: parent, DisplayName: name}
	method, optional := splitOptionalMethod(methodKey)
	if methodKey != "" {
		node.Method = method
		node.Optional = optional
	}

	var err error
	if node.Usage, err = substituted.String(path, "usage"); err != nil {
		if err = b.report(err); err != nil {
			return nil, err
		}
	}
	if dn, err := substituted.String(path, "displayName"); err != nil {
		if err = b.report(err); err != nil {
			return nil, err
		}
	} else if dn != "" {
		node.DisplayName = dn
	}

	// Type-level declarations form the method-agnostic block; the method
	// block's fields win over them within this type.
	typeLevel, err := b.buildBaseFields(path, substituted, "")
	if err != nil {
		return nil, err
	}
	flat := newOverlay()
	flat.applyBase(&typeLevel, provInherited)

	methodPath := path
	methodRaw := substituted
	if methodKey != "" {
		methodRaw, err = substituted.Map(path, methodKey)
		if err != nil {
			if err = b.report(err); err != nil {
				return nil, err
			}
			methodRaw = nil
		}
		methodPath = path + "." + methodKey
		if methodRaw != nil {
			methodLevel, err := b.buildBaseFields(methodPath, methodRaw, method)
			if err != nil {
				return nil, err
			}
			flat.applyBase(&methodLevel, provOwn)
		}
	}

	// The type's own traits sit under its explicit fields: type-contributed
	// fields override trait-contributed ones.
	isList, _, err := b.refList(substituted, methodRaw, methodKey, "is")
	if err != nil {
		return nil, err
	}
	if len(isList) > 0 {
		node.Is = refNames(isList)
		traits, err := b.resolveTraits(path, isList, tctx)
		if err != nil {
			return nil, err
		}
		node.Traits = traits
		for _, trait := range traits {
			flat.applyBase(&trait.BaseNode, provTrait)
		}
	}

	flat.finish(&node.BaseNode)
	node.Raw = raw

	securedBy, declaredSec, err := b.refList(substituted, methodRaw, methodKey, "securedBy")
	if err != nil {
		return nil, err
	}
	if declaredSec {
		node.SecuredBy = securedBy
		schemes, err := b.resolveSecuredBy(path, securedBy, true)
		if err != nil {
			return nil, err
		}
		node.SecuritySchemes = schemes
	}
	return node, nil
}

// refList reads a reference list (is, securedBy) declared at the type level
// or overridden inside the method block; the method block wins.
func (b *builder) refList(typeLevel, methodRaw *RawMap, methodKey, key string) ([]any, bool, error) {
	read := func(m *RawMap) ([]any, bool) {
		if m == nil || !m.Has(key) {
			return nil, false
		}
		switch val := m.Get(key).(type) {
		case nil:
			return nil, true
		case []any:
			return val, true
		default:
			return []any{val}, true
		}
	}
	if methodKey != "" {
		if list, ok := read(methodRaw); ok {
			return list, true, nil
		}
	}
	list, ok := read(typeLevel)
	return list, ok, nil
}

// refNames extracts the reference names from an is or securedBy list.
func refNames(refs []any) []string {
	names := make([]string, 0, len(refs))
	for i, entry := range refs {
		if name, _, err := splitRef("", "", i, entry); err == nil && name != "" {
			names = append(names, name)
		}
	}
	return names
}

// resolveResourceType resolves a resource's type reference into the ordered
// list of flattened type contributions (most distant ancestor first, so the
// closest type wins under the restatable resource-type rank) plus the
// registry-view node for the resource's method.
func (b *builder) resolveResourceType(path, name string, settings *RawMap, method string, tctx templateContext) ([]*BaseNode, *ResourceTypeNode, error) {
	if _, ok := b.types.raws[name]; !ok {
		err := &ramlerrors.UndefinedReferenceError{Path: path, Name: name, Kind: ramlerrors.KindResourceType}
		return nil, nil, b.report(err)
	}

	// Walk the chain closest-first; cycles were rejected at registration,
	// but the walk still guards with a visited set so permissive mode
	// cannot loop.
	var chain []string
	visited := map[string]bool{}
	current := name
	for current != "" && !visited[current] {
		visited[current] = true
		raw, ok := b.types.raws[current]
		if !ok {
			break
		}
		chain = append(chain, current)
		parent, _, err := b.typeRef(path, raw)
		if err != nil {
			return nil, nil, b.report(err)
		}
		current = parent
	}

	contributions := make([]*BaseNode, 0, len(chain))
	for i := len(chain) - 1; i >= 0; i-- {
		typeName := chain[i]
		raw := b.types.raws[typeName]
		methodKey := b.selectMethodBlock(raw, method)
		typePath := "resourceTypes." + typeName

		// Only the use-site reference carries settings; ancestors see the
		// reserved parameters alone.
		useSettings := settings
		if typeName != name {
			useSettings = nil
		}
		variant, err := b.buildResourceTypeVariant(typePath, typeName, "", raw, methodKey, tctx, useSettings)
		if err != nil {
			return nil, nil, err
		}
		contributions = append(contributions, &variant.BaseNode)
	}

	return contributions, b.registryTypeNode(name, method), nil
}

// selectMethodBlock picks the method block key a resource's method maps to:
// the exact method block when present, else the optional "method?" block.
// Optional blocks apply here because the resource declares the method by
// construction; resources without the method never reach this selection and
// the optional block is silently skipped for them.
func (b *builder) selectMethodBlock(raw *RawMap, method string) string {
	if method == "" {
		return ""
	}
	if raw.Has(method) {
		return method
	}
	if raw.Has(method + "?") {
		return method + "?"
	}
	return ""
}

// registryTypeNode finds the registry-view node for a type name and method,
// preferring the method-specific variant over the method-agnostic one.
func (b *builder) registryTypeNode(name, method string) *ResourceTypeNode {
	var agnostic *ResourceTypeNode
	for _, node := range b.root.ResourceTypes {
		if node.Name != name {
			continue
		}
		if node.Method == method && method != "" {
			return node
		}
		if node.Method == "" {
			agnostic = node
		}
	}
	return agnostic
}
