package parser

import (
	"strings"

	"github.com/erraggy/ramltools/ramlerrors"
)

// schemeRegistry holds the declared security schemes keyed by name.
type schemeRegistry struct {
	order  []string
	byName map[string]*SecurityScheme
}

// parseSecuritySchemes builds the security scheme registry from the
// root-level securitySchemes declaration.
func (b *builder) parseSecuritySchemes() error {
	reg := &schemeRegistry{byName: make(map[string]*SecurityScheme)}
	b.schemes = reg

	entries, err := b.namedBlocks("securitySchemes")
	if err != nil {
		return err
	}
	for _, entry := range entries {
		scheme, err := b.buildSecurityScheme(entry.name, entry.raw)
		if err != nil {
			return err
		}
		if _, dup := reg.byName[entry.name]; !dup {
			reg.order = append(reg.order, entry.name)
		}
		reg.byName[entry.name] = scheme
		b.root.SecuritySchemes = append(b.root.SecuritySchemes, scheme)
	}
	if len(entries) > 0 {
		b.log().Debug("security schemes registered", "count", len(reg.order))
	}
	return nil
}

// buildSecurityScheme builds one scheme definition. The type field is
// required by the RAML spec.
func (b *builder) buildSecurityScheme(name string, raw *RawMap) (*SecurityScheme, error) {
	path := "securitySchemes." + name
	scheme := &SecurityScheme{Name: name, Raw: raw}

	var err error
	if scheme.Type, err = raw.RequireString(path, "type"); err != nil {
		if err = b.report(err); err != nil {
			return nil, err
		}
	}
	if scheme.Description, err = raw.String(path, "description"); err != nil {
		if err = b.report(err); err != nil {
			return nil, err
		}
	}
	if scheme.Settings, err = raw.Map(path, "settings"); err != nil {
		if err = b.report(err); err != nil {
			return nil, err
		}
	}

	describedBy, err := raw.Map(path, "describedBy")
	if err != nil {
		if err = b.report(err); err != nil {
			return nil, err
		}
	}
	if describedBy != nil {
		usage := &SchemeUsage{}
		descPath := path + ".describedBy"
		if usage.Headers, err = b.buildNamedParameters(descPath, describedBy, "headers", InHeader); err != nil {
			return nil, err
		}
		if usage.QueryParams, err = b.buildNamedParameters(descPath, describedBy, "queryParameters", InQuery); err != nil {
			return nil, err
		}
		if usage.Responses, err = b.buildResponses(descPath, describedBy, ""); err != nil {
			return nil, err
		}
		scheme.DescribedBy = usage
	}
	return scheme, nil
}

// isNullScheme reports whether a securedBy entry means "explicitly
// unsecured". RAML convention accepts a YAML null and the names "null" and
// "none", case-insensitively.
func isNullScheme(entry any) bool {
	if entry == nil {
		return true
	}
	s, ok := entry.(string)
	if !ok {
		return false
	}
	switch strings.ToLower(s) {
	case "null", "none":
		return true
	}
	return false
}

// resolveSecuredBy resolves a securedBy reference list into concrete scheme
// instances. declared reports whether the node declared securedBy at all:
// a declared list, even one containing only null, overrides inherited
// security, while an absent list leaves inheritance in place.
//
// References carrying settings (e.g. OAuth 2.0 scopes) yield a per-use copy
// of the registry entry with the settings merged; the shared entry is never
// mutated.
func (b *builder) resolveSecuredBy(path string, refs []any, declared bool) ([]*SecurityScheme, error) {
	if !declared || len(refs) == 0 {
		return nil, nil
	}
	resolved := make([]*SecurityScheme, 0, len(refs))
	for i, entry := range refs {
		if isNullScheme(entry) {
			continue
		}
		name, settings, err := splitRef(path, "securedBy", i, entry)
		if err != nil {
			if err = b.report(err); err != nil {
				return nil, err
			}
			continue
		}
		scheme, ok := b.schemes.byName[name]
		if !ok {
			err := &ramlerrors.UndefinedReferenceError{Path: path, Name: name, Kind: ramlerrors.KindSecurityScheme}
			if err := b.report(err); err != nil {
				return nil, err
			}
			continue
		}
		if settings != nil && settings.Len() > 0 {
			scheme = scheme.withSettings(settings)
		}
		resolved = append(resolved, scheme)
	}
	return resolved, nil
}

// withSettings returns a per-use copy of the scheme with use-site settings
// overlaid onto the declared ones.
func (s *SecurityScheme) withSettings(use *RawMap) *SecurityScheme {
	clone := *s
	merged := NewRawMap()
	s.Settings.Each(func(key string, value any) {
		merged.Set(key, value)
	})
	use.Each(func(key string, value any) {
		merged.Set(key, value)
	})
	clone.Settings = merged
	return &clone
}
