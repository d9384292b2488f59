package parser

import (
	"fmt"
	"strings"

	"github.com/erraggy/ramltools/ramlerrors"
)

// templateContext carries the reserved template parameters available when a
// trait or resource type is applied to a resource.
type templateContext struct {
	resourcePath     string
	resourcePathName string
	methodName       string
}

// params returns the reserved parameters merged with the invocation-site
// settings. Settings win over reserved names, matching declaration intent.
// Unset reserved parameters are omitted so their placeholders stay verbatim;
// registry-view builds carry an empty context and keep templates intact.
func (c templateContext) params(settings *RawMap) map[string]string {
	params := make(map[string]string, 3)
	if c.resourcePath != "" {
		params["resourcePath"] = c.resourcePath
	}
	if c.resourcePathName != "" {
		params["resourcePathName"] = c.resourcePathName
	}
	if c.methodName != "" {
		params["methodName"] = c.methodName
	}
	settings.Each(func(key string, value any) {
		params[key] = fmt.Sprintf("%v", value)
	})
	return params
}

// substitute replaces <<parameterName>> placeholders in s. Placeholders with
// no matching parameter are left verbatim.
func substitute(s string, params map[string]string) string {
	if !strings.Contains(s, "<<") {
		return s
	}
	for name, value := range params {
		s = strings.ReplaceAll(s, "<<"+name+">>", value)
	}
	return s
}

// deepSubstitute returns a copy of v with <<parameterName>> placeholders
// replaced in every string scalar and mapping key. The input is never
// mutated; registry templates stay pristine across applications.
func deepSubstitute(v any, params map[string]string) any {
	switch val := v.(type) {
	case string:
		return substitute(val, params)
	case *RawMap:
		out := NewRawMap()
		val.Each(func(key string, value any) {
			out.Set(substitute(key, params), deepSubstitute(value, params))
		})
		return out
	case []any:
		out := make([]any, 0, len(val))
		for _, item := range val {
			out = append(out, deepSubstitute(item, params))
		}
		return out
	default:
		return v
	}
}

// traitRegistry holds the declared traits keyed by name, with raw templates
// retained for per-use parameter substitution.
type traitRegistry struct {
	order []string
	raws  map[string]*RawMap
	nodes map[string]*TraitNode
}

// parseTraits builds the traits registry from the root-level traits
// declaration. RAML 0.8 declares traits as a sequence of single-entry
// mappings; RAML 1.0 as one mapping. Both shapes are accepted.
func (b *builder) parseTraits() error {
	reg := &traitRegistry{
		raws:  make(map[string]*RawMap),
		nodes: make(map[string]*TraitNode),
	}
	b.traits = reg

	entries, err := b.namedBlocks("traits")
	if err != nil {
		return err
	}
	for _, entry := range entries {
		path := "traits." + entry.name
		node, err := b.buildTraitNode(path, entry.name, entry.raw)
		if err != nil {
			return err
		}
		if _, dup := reg.raws[entry.name]; !dup {
			reg.order = append(reg.order, entry.name)
		}
		reg.raws[entry.name] = entry.raw
		reg.nodes[entry.name] = node
		b.root.Traits = append(b.root.Traits, node)
	}
	if len(entries) > 0 {
		b.log().Debug("traits registered", "count", len(reg.order))
	}
	return nil
}

// buildTraitNode builds one TraitNode from its (possibly substituted) raw
// fragment.
func (b *builder) buildTraitNode(path, name string, raw *RawMap) (*TraitNode, error) {
	node := &TraitNode{Name: name}
	base, err := b.buildBaseFields(path, raw, "")
	if err != nil {
		return nil, err
	}
	node.BaseNode = base
	if node.Usage, err = raw.String(path, "usage"); err != nil {
		if err = b.report(err); err != nil {
			return nil, err
		}
	}
	return node, nil
}

// resolveTraits resolves an is list into per-use TraitNode instances, with
// invocation-site settings and the reserved resourcePath/resourcePathName/
// methodName parameters substituted into each trait's template.
//
// isList entries are bare names or single-entry name-to-settings mappings.
// Unresolvable names fail with an undefined trait error.
func (b *builder) resolveTraits(path string, isList []any, tctx templateContext) ([]*TraitNode, error) {
	if len(isList) == 0 {
		return nil, nil
	}
	resolved := make([]*TraitNode, 0, len(isList))
	for i, entry := range isList {
		name, settings, err := splitRef(path, "is", i, entry)
		if err != nil {
			if err = b.report(err); err != nil {
				return nil, err
			}
			continue
		}
		raw, ok := b.traits.raws[name]
		if !ok {
			err := &ramlerrors.UndefinedReferenceError{Path: path, Name: name, Kind: ramlerrors.KindTrait}
			if err := b.report(err); err != nil {
				return nil, err
			}
			continue
		}
		substituted := deepSubstitute(raw, tctx.params(settings)).(*RawMap)
		node, err := b.buildTraitNode(path+".is."+name, name, substituted)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, node)
	}
	return resolved, nil
}

// splitRef splits one reference entry (used by is and securedBy lists) into
// its name and optional settings mapping.
func splitRef(path, key string, idx int, entry any) (string, *RawMap, error) {
	switch val := entry.(type) {
	case string:
		return val, nil, nil
	case *RawMap:
		if val.Len() != 1 {
			return "", nil, typeMismatch(path, fmt.Sprintf("%s[%d]", key, idx), "single-entry mapping", entry)
		}
		name := val.Keys()[0]
		settings, err := val.Map(path+"."+key, name)
		if err != nil {
			return "", nil, err
		}
		return name, settings, nil
	default:
		return "", nil, typeMismatch(path, fmt.Sprintf("%s[%d]", key, idx), "string or mapping", entry)
	}
}

// namedEntry is one (name, raw fragment) pair from a root-level registry
// declaration.
type namedEntry struct {
	name string
	raw  *RawMap
}

// namedBlocks reads a root-level registry declaration (traits,
// resourceTypes, securitySchemes) as an ordered list of named entries,
// accepting both the 0.8 sequence-of-mappings shape and the 1.0 mapping
// shape.
func (b *builder) namedBlocks(key string) ([]namedEntry, error) {
	v := b.raw.Get(key)
	if v == nil {
		return nil, nil
	}
	var entries []namedEntry
	appendFrom := func(m *RawMap) error {
		for _, name := range m.Keys() {
			raw, err := m.Map(key, name)
			if err != nil {
				if err = b.report(err); err != nil {
					return err
				}
				continue
			}
			if raw == nil {
				raw = NewRawMap()
			}
			entries = append(entries, namedEntry{name: name, raw: raw})
		}
		return nil
	}

	switch val := v.(type) {
	case *RawMap:
		if err := appendFrom(val); err != nil {
			return nil, err
		}
	case []any:
		for i, item := range val {
			m, ok := item.(*RawMap)
			if !ok {
				err := typeMismatch("", fmt.Sprintf("%s[%d]", key, i), "mapping", item)
				if err = b.report(err); err != nil {
					return nil, err
				}
				continue
			}
			if err := appendFrom(m); err != nil {
				return nil, err
			}
		}
	default:
		return nil, b.report(typeMismatch("", key, "list or mapping", v))
	}
	return entries, nil
}
