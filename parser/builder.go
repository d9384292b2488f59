package parser

import (
	"fmt"
	"slices"

	"github.com/erraggy/ramltools/ramlerrors"
)

// builder carries the state of one resolution run. Resolution is a pure,
// single-threaded computation: registries are built once and read-only
// afterwards, and the raw input tree is never mutated.
type builder struct {
	raw     *RawMap
	version RAMLVersion
	mode    ValidationMode
	logger  Logger

	root    *RootNode
	traits  *traitRegistry
	types   *resourceTypeRegistry
	schemes *schemeRegistry

	// rootSecurity holds the root-level securedBy resolution, inherited by
	// resources that do not declare their own.
	rootSecuredBy   []any
	rootSecurity    []*SecurityScheme
	rootSecDeclared bool

	// violations collects structural errors in permissive mode.
	violations []error
}

func newBuilder(raw *RawMap, version RAMLVersion, mode ValidationMode, logger Logger) *builder {
	return &builder{
		raw:     raw,
		version: version,
		mode:    mode,
		logger:  logger,
		root:    &RootNode{Raw: raw, RAMLVersion: version},
	}
}

// log returns the configured logger, or a no-op logger if none is set.
func (b *builder) log() Logger {
	if b.logger != nil {
		return b.logger
	}
	return NopLogger{}
}

// report routes a structural error according to the validation mode:
// strict returns it to abort the resolution, permissive records it and
// returns nil so resolution continues with a best-effort merge.
func (b *builder) report(err error) error {
	if err == nil {
		return nil
	}
	if b.mode == ModeStrict {
		return err
	}
	b.violations = append(b.violations, err)
	return nil
}

// mark returns the current violation count; since returns a copy of the
// violations recorded after a mark, used to attach per-node reports.
func (b *builder) mark() int { return len(b.violations) }

func (b *builder) since(mark int) []error {
	if mark >= len(b.violations) {
		return nil
	}
	return slices.Clone(b.violations[mark:])
}

// invalidParam builds an InvalidParameterError at a node path.
func (b *builder) invalidParam(path, name, constraint, msg string) error {
	return &ramlerrors.InvalidParameterError{
		Path:       path,
		Parameter:  name,
		Constraint: constraint,
		Message:    msg,
	}
}

// buildBaseFields builds the BaseNode fields declared directly on one raw
// fragment. method is recorded on responses when the fragment is a method
// block, and empty otherwise.
func (b *builder) buildBaseFields(path string, raw *RawMap, method string) (BaseNode, error) {
	base := BaseNode{Raw: raw, Root: b.root}
	if raw == nil {
		return base, nil
	}

	var err error
	if base.Headers, err = b.buildNamedParameters(path, raw, "headers", InHeader); err != nil {
		return base, err
	}
	if base.Body, err = b.buildBodies(path, raw); err != nil {
		return base, err
	}
	if base.Responses, err = b.buildResponses(path, raw, method); err != nil {
		return base, err
	}
	if base.URIParams, err = b.buildNamedParameters(path, raw, "uriParameters", InURI); err != nil {
		return base, err
	}
	if base.BaseURIParams, err = b.buildNamedParameters(path, raw, "baseUriParameters", InBaseURI); err != nil {
		return base, err
	}
	if base.QueryParams, err = b.buildNamedParameters(path, raw, "queryParameters", InQuery); err != nil {
		return base, err
	}
	if base.FormParams, err = b.buildNamedParameters(path, raw, "formParameters", InForm); err != nil {
		return base, err
	}
	if base.Description, err = raw.String(path, "description"); err != nil {
		if err = b.report(err); err != nil {
			return base, err
		}
	}
	if base.MediaType, err = raw.String(path, "mediaType"); err != nil {
		if err = b.report(err); err != nil {
			return base, err
		}
	}
	if base.Protocols, err = b.buildProtocols(path, raw); err != nil {
		return base, err
	}
	return base, nil
}

// buildProtocols reads and validates a protocols list: values must form a
// subset of {HTTP, HTTPS}.
func (b *builder) buildProtocols(path string, raw *RawMap) ([]string, error) {
	protocols, err := raw.StringSlice(path, "protocols")
	if err != nil {
		return nil, b.report(err)
	}
	for _, p := range protocols {
		if !isProtocol(p) {
			if err := b.report(b.invalidParam(path, "protocols", "protocols",
				fmt.Sprintf("protocol must be HTTP or HTTPS, got %q", p))); err != nil {
				return nil, err
			}
		}
	}
	return protocols, nil
}
