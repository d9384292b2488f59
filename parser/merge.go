package parser

import "strconv"

// provenance ranks a field's merge source. Higher ranks win. Trait and
// resource type ranks additionally allow equal-rank restating, which makes
// the last-listed trait win among traits and the closest type win within an
// inheritance chain.
type provenance int

const (
	// provInherited marks fields inherited from the root or a parent resource.
	provInherited provenance = iota
	// provTrait marks trait-contributed fields.
	provTrait
	// provResourceType marks resource-type-contributed fields.
	provResourceType
	// provOwn marks fields declared directly on the target node.
	provOwn
)

// restatable reports whether a source may override a previous value of the
// same rank. Traits restate each other in list order; resource types restate
// their ancestors along the inheritance chain.
func (p provenance) restatable() bool {
	return p == provTrait || p == provResourceType
}

// provField holds one merged field value with the rank that set it.
type provField[T any] struct {
	value T
	rank  provenance
	isSet bool
}

// apply sets the field when the new rank beats the current one under the
// single precedence rule used everywhere: higher rank wins, equal rank wins
// only for restatable sources.
func (f *provField[T]) apply(v T, r provenance) {
	if !f.isSet || r > f.rank || (r == f.rank && r.restatable()) {
		f.value, f.rank, f.isSet = v, r, true
	}
}

// get returns the merged value, or the zero value when never set.
func (f *provField[T]) get() T {
	return f.value
}

// keyedSet merges a keyed collection (parameters by name, bodies by media
// type, responses by code) element-wise: each key is its own field, and the
// first source to contribute a key fixes its position in the output order.
type keyedSet[T any] struct {
	order  []string
	fields map[string]*provField[T]
}

func newKeyedSet[T any]() *keyedSet[T] {
	return &keyedSet[T]{fields: make(map[string]*provField[T])}
}

// apply merges one element under key at the given rank.
func (s *keyedSet[T]) apply(key string, v T, r provenance) {
	f, ok := s.fields[key]
	if !ok {
		f = &provField[T]{}
		s.fields[key] = f
		s.order = append(s.order, key)
	}
	f.apply(v, r)
}

// values returns the merged elements in first-contribution order.
func (s *keyedSet[T]) values() []T {
	if len(s.order) == 0 {
		return nil
	}
	result := make([]T, 0, len(s.order))
	for _, key := range s.order {
		result = append(result, s.fields[key].get())
	}
	return result
}

// overlay accumulates the merged BaseNode fields of one resolution target.
// Sources are applied in ascending precedence order (inherited, traits,
// resource type chain, own declarations); provField enforces the final
// precedence regardless of application order.
type overlay struct {
	description *provField[string]
	mediaType   *provField[string]
	protocols   *provField[[]string]
	headers     *keyedSet[*Parameter]
	uriParams   *keyedSet[*Parameter]
	baseParams  *keyedSet[*Parameter]
	queryParams *keyedSet[*Parameter]
	formParams  *keyedSet[*Parameter]
	bodies      *keyedSet[*Body]
	responses   *keyedSet[*Response]
}

func newOverlay() *overlay {
	return &overlay{
		description: &provField[string]{},
		mediaType:   &provField[string]{},
		protocols:   &provField[[]string]{},
		headers:     newKeyedSet[*Parameter](),
		uriParams:   newKeyedSet[*Parameter](),
		baseParams:  newKeyedSet[*Parameter](),
		queryParams: newKeyedSet[*Parameter](),
		formParams:  newKeyedSet[*Parameter](),
		bodies:      newKeyedSet[*Body](),
		responses:   newKeyedSet[*Response](),
	}
}

// applyBase merges all fields of src at the given rank. Empty scalar fields
// and nil collections contribute nothing: a source that does not declare a
// field never erases another source's value.
func (o *overlay) applyBase(src *BaseNode, r provenance) {
	if src == nil {
		return
	}
	if src.Description != "" {
		o.description.apply(src.Description, r)
	}
	if src.MediaType != "" {
		o.mediaType.apply(src.MediaType, r)
	}
	if len(src.Protocols) > 0 {
		o.protocols.apply(src.Protocols, r)
	}
	for _, p := range src.Headers {
		o.headers.apply(p.Name, p, r)
	}
	for _, p := range src.URIParams {
		o.uriParams.apply(p.Name, p, r)
	}
	for _, p := range src.BaseURIParams {
		o.baseParams.apply(p.Name, p, r)
	}
	for _, p := range src.QueryParams {
		o.queryParams.apply(p.Name, p, r)
	}
	for _, p := range src.FormParams {
		o.formParams.apply(p.Name, p, r)
	}
	for _, body := range src.Body {
		o.bodies.apply(body.MimeType, body, r)
	}
	for _, resp := range src.Responses {
		o.responses.apply(strconv.Itoa(resp.Code), resp, r)
	}
}

// finish writes the merged fields into dst.
func (o *overlay) finish(dst *BaseNode) {
	dst.Description = o.description.get()
	dst.MediaType = o.mediaType.get()
	dst.Protocols = o.protocols.get()
	dst.Headers = o.headers.values()
	dst.URIParams = o.uriParams.values()
	dst.BaseURIParams = o.baseParams.values()
	dst.QueryParams = o.queryParams.values()
	dst.FormParams = o.formParams.values()
	dst.Body = o.bodies.values()
	dst.Responses = o.responses.values()
}
