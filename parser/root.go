package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/erraggy/ramltools/ramlerrors"
)

// mediaTypeRe checks the type/subtype shape of a declared media type.
var mediaTypeRe = regexp.MustCompile(`^[a-zA-Z0-9!#$&^_.+-]+/[a-zA-Z0-9!#$&^_.*+-]+$`)

// build assembles the RootNode graph in strict dependency order: root
// metadata first, then the registries (security schemes, traits, resource
// types), then the resource tree, each stage consuming only already-built
// prior stages.
func (b *builder) build() (*RootNode, error) {
	if err := b.buildRootMetadata(); err != nil {
		return nil, err
	}
	if err := b.parseSecuritySchemes(); err != nil {
		return nil, err
	}
	if err := b.parseTraits(); err != nil {
		return nil, err
	}
	if err := b.parseResourceTypes(); err != nil {
		return nil, err
	}
	if err := b.resolveRootSecurity(); err != nil {
		return nil, err
	}
	if err := b.buildResources(); err != nil {
		return nil, err
	}
	return b.root, nil
}

// buildRootMetadata validates and assembles the root-level metadata so that
// later per-resource resolution can assume a valid root.
func (b *builder) buildRootMetadata() error {
	root := b.root

	title, err := b.raw.RequireString("", "title")
	if err != nil {
		if err = b.report(err); err != nil {
			return err
		}
	}
	root.Title = title

	if root.Version, err = b.stringOrNumber("version"); err != nil {
		if err = b.report(err); err != nil {
			return err
		}
	}
	if root.BaseURI, err = b.raw.String("", "baseUri"); err != nil {
		if err = b.report(err); err != nil {
			return err
		}
	}
	if strings.Contains(root.BaseURI, "{version}") && root.Version == "" {
		missing := &ramlerrors.MissingFieldError{
			Path:    "baseUri",
			Field:   "version",
			Message: "baseUri contains {version} but no version is declared",
		}
		if err := b.report(missing); err != nil {
			return err
		}
	}

	if err := b.buildRootMediaType(); err != nil {
		return err
	}

	if root.Protocols, err = b.buildProtocols("", b.raw); err != nil {
		return err
	}
	if len(root.Protocols) == 0 {
		root.Protocols = protocolsFromBaseURI(root.BaseURI)
	}

	if root.BaseURIParams, err = b.buildNamedParameters("", b.raw, "baseUriParameters", InBaseURI); err != nil {
		return err
	}
	if root.URIParams, err = b.buildNamedParameters("", b.raw, "uriParameters", InURI); err != nil {
		return err
	}
	if err := b.checkBaseURIParams(); err != nil {
		return err
	}
	if err := b.buildDocumentation(); err != nil {
		return err
	}
	if err := b.buildSchemas(); err != nil {
		return err
	}

	b.log().Debug("root metadata built", "title", root.Title, "baseUri", root.BaseURI)
	return nil
}

// stringOrNumber reads a root field that YAML may decode as a number, such
// as "version: 2".
func (b *builder) stringOrNumber(key string) (string, error) {
	v := b.raw.Get(key)
	switch val := v.(type) {
	case nil:
		return "", nil
	case string:
		return val, nil
	case int, int64, float64:
		return fmt.Sprintf("%v", val), nil
	default:
		return "", typeMismatch("", key, "string", v)
	}
}

// buildRootMediaType reads the default media type. RAML 1.0 allows a
// sequence of media types, in which case the first entry becomes the
// default; RAML 0.8 requires a single scalar.
func (b *builder) buildRootMediaType() error {
	v := b.raw.Get("mediaType")
	if v == nil {
		return nil
	}
	switch val := v.(type) {
	case string:
		b.root.MediaType = val
	case []any:
		if b.version != RAMLVersion10 {
			return b.report(typeMismatch("", "mediaType", "string", v))
		}
		if len(val) > 0 {
			s, ok := val[0].(string)
			if !ok {
				return b.report(typeMismatch("", "mediaType[0]", "string", val[0]))
			}
			b.root.MediaType = s
		}
	default:
		return b.report(typeMismatch("", "mediaType", "string", v))
	}
	if b.root.MediaType != "" && !mediaTypeRe.MatchString(b.root.MediaType) {
		return b.report(b.invalidParam("", "mediaType", "format",
			"media type must have the form type/subtype"))
	}
	return nil
}

// checkBaseURIParams verifies every {param} in baseUri has a declaration.
// The {version} placeholder is covered by the root version field.
func (b *builder) checkBaseURIParams() error {
	root := b.root
	if root.BaseURI == "" {
		return nil
	}
	for _, name := range templateVars(root.BaseURI) {
		if name == "version" {
			continue
		}
		if paramDeclared(name, root.BaseURIParams) || paramDeclared(name, root.URIParams) {
			continue
		}
		err := &ramlerrors.URIParameterMismatchError{
			Path:      "baseUri",
			Parameter: name,
			URI:       root.BaseURI,
		}
		if err := b.report(err); err != nil {
			return err
		}
	}
	return nil
}

// buildDocumentation reads the root documentation entries; each needs a
// title and content.
func (b *builder) buildDocumentation() error {
	list, err := b.raw.List("", "documentation")
	if err != nil {
		return b.report(err)
	}
	for i, item := range list {
		m, ok := item.(*RawMap)
		if !ok {
			if err := b.report(typeMismatch("", indexKey("documentation", i), "mapping", item)); err != nil {
				return err
			}
			continue
		}
		path := indexKey("documentation", i)
		doc := &Documentation{}
		if doc.Title, err = m.RequireString(path, "title"); err != nil {
			if err = b.report(err); err != nil {
				return err
			}
		}
		if doc.Content, err = m.RequireString(path, "content"); err != nil {
			if err = b.report(err); err != nil {
				return err
			}
		}
		b.root.Documentation = append(b.root.Documentation, doc)
	}
	return nil
}

// buildSchemas reads the named schema blobs. RAML 0.8 declares schemas as a
// sequence of single-entry mappings; RAML 1.0 as one mapping. Values stay
// raw: schema content is opaque to the resolver.
func (b *builder) buildSchemas() error {
	v := b.raw.Get("schemas")
	if v == nil {
		return nil
	}
	appendFrom := func(m *RawMap) {
		m.Each(func(name string, value any) {
			b.root.Schemas = append(b.root.Schemas, &NamedSchema{Name: name, Value: value})
		})
	}
	switch val := v.(type) {
	case *RawMap:
		appendFrom(val)
	case []any:
		for i, item := range val {
			m, ok := item.(*RawMap)
			if !ok {
				if err := b.report(typeMismatch("", indexKey("schemas", i), "mapping", item)); err != nil {
					return err
				}
				continue
			}
			appendFrom(m)
		}
	default:
		return b.report(typeMismatch("", "schemas", "list or mapping", v))
	}
	return nil
}

// resolveRootSecurity resolves the root-level securedBy declaration, which
// resources inherit when they declare none of their own.
func (b *builder) resolveRootSecurity() error {
	refs, declared, err := b.refList(b.raw, nil, "", "securedBy")
	if err != nil {
		return err
	}
	if !declared {
		return nil
	}
	b.rootSecDeclared = true
	b.rootSecuredBy = refs
	schemes, err := b.resolveSecuredBy("securedBy", refs, true)
	if err != nil {
		return err
	}
	b.rootSecurity = schemes
	return nil
}

// protocolsFromBaseURI derives the default protocols list from the base
// URI's scheme.
func protocolsFromBaseURI(baseURI string) []string {
	switch {
	case strings.HasPrefix(strings.ToLower(baseURI), "https://"):
		return []string{ProtocolHTTPS}
	case strings.HasPrefix(strings.ToLower(baseURI), "http://"):
		return []string{ProtocolHTTP}
	default:
		return nil
	}
}

// paramDeclared reports whether a parameter list declares name.
func paramDeclared(name string, params []*Parameter) bool {
	for _, p := range params {
		if p.Name == name {
			return true
		}
	}
	return false
}

// indexKey formats a sequence entry key for error paths, e.g. "schemas[1]".
func indexKey(key string, i int) string {
	return fmt.Sprintf("%s[%d]", key, i)
}
