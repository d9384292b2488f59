package parser

import (
	"encoding/json"
	"fmt"
	"math"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/ramltools/ramlerrors"
)

// RawMap is an order-preserving, read-only view over one mapping of the raw
// document tree. Values are scalars (string, bool, int, float64), []any
// sequences, nested *RawMap mappings, or nil.
//
// Declaration order is preserved because RAML merge precedence depends on
// it: later declarations of the same key override earlier ones.
type RawMap struct {
	om *orderedmap.OrderedMap[string, any]
}

// NewRawMap creates an empty RawMap.
func NewRawMap() *RawMap {
	return &RawMap{om: orderedmap.New[string, any]()}
}

// MarshalJSON marshals the mapping preserving declaration order.
func (m *RawMap) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("null"), nil
	}
	return json.Marshal(m.om)
}

// Len returns the number of keys in the mapping.
func (m *RawMap) Len() int {
	if m == nil {
		return 0
	}
	return m.om.Len()
}

// Keys returns the keys in declaration order.
func (m *RawMap) Keys() []string {
	if m == nil {
		return nil
	}
	keys := make([]string, 0, m.om.Len())
	for pair := m.om.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Has reports whether key is present.
func (m *RawMap) Has(key string) bool {
	if m == nil {
		return false
	}
	_, ok := m.om.Get(key)
	return ok
}

// Get returns the raw value for key, or nil when absent.
// Note that a present key with an explicit null value is indistinguishable
// from an absent key through Get; use Has to tell them apart.
func (m *RawMap) Get(key string) any {
	if m == nil {
		return nil
	}
	v, _ := m.om.Get(key)
	return v
}

// GetOr returns the raw value for key, or def when absent.
func (m *RawMap) GetOr(key string, def any) any {
	if m == nil {
		return def
	}
	if v, ok := m.om.Get(key); ok {
		return v
	}
	return def
}

// Set stores a value under key, preserving the key's original position when
// it already exists.
func (m *RawMap) Set(key string, value any) {
	m.om.Set(key, value)
}

// Each calls fn for every key/value pair in declaration order.
func (m *RawMap) Each(fn func(key string, value any)) {
	if m == nil {
		return
	}
	for pair := m.om.Oldest(); pair != nil; pair = pair.Next() {
		fn(pair.Key, pair.Value)
	}
}

// Require returns the raw value for key, failing with a MissingFieldError
// when the key is absent. path locates the mapping for error context.
func (m *RawMap) Require(path, key string) (any, error) {
	if m == nil || !m.Has(key) {
		return nil, &ramlerrors.MissingFieldError{Path: path, Field: key}
	}
	return m.Get(key), nil
}

// String returns the string value for key. Absent keys yield "". A present
// non-string value fails with a TypeMismatchError.
func (m *RawMap) String(path, key string) (string, error) {
	v := m.Get(key)
	if v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", typeMismatch(path, key, "string", v)
	}
	return s, nil
}

// RequireString returns the string value for key, failing with a
// MissingFieldError when absent or empty.
func (m *RawMap) RequireString(path, key string) (string, error) {
	if m == nil || !m.Has(key) {
		return "", &ramlerrors.MissingFieldError{Path: path, Field: key}
	}
	s, err := m.String(path, key)
	if err != nil {
		return "", err
	}
	if s == "" {
		return "", &ramlerrors.MissingFieldError{Path: path, Field: key, Message: "value is empty"}
	}
	return s, nil
}

// List returns the sequence value for key. Absent keys yield nil. A present
// non-sequence value fails with a TypeMismatchError.
func (m *RawMap) List(path, key string) ([]any, error) {
	v := m.Get(key)
	if v == nil {
		return nil, nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil, typeMismatch(path, key, "list", v)
	}
	return list, nil
}

// RequireList returns the sequence value for key, failing with a
// MissingFieldError when absent.
func (m *RawMap) RequireList(path, key string) ([]any, error) {
	if m == nil || !m.Has(key) {
		return nil, &ramlerrors.MissingFieldError{Path: path, Field: key}
	}
	return m.List(path, key)
}

// Map returns the nested mapping for key. Absent keys yield nil. A present
// non-mapping value fails with a TypeMismatchError.
func (m *RawMap) Map(path, key string) (*RawMap, error) {
	v := m.Get(key)
	if v == nil {
		return nil, nil
	}
	sub, ok := v.(*RawMap)
	if !ok {
		return nil, typeMismatch(path, key, "mapping", v)
	}
	return sub, nil
}

// RequireMap returns the nested mapping for key, failing with a
// MissingFieldError when absent.
func (m *RawMap) RequireMap(path, key string) (*RawMap, error) {
	if m == nil || !m.Has(key) {
		return nil, &ramlerrors.MissingFieldError{Path: path, Field: key}
	}
	return m.Map(path, key)
}

// Bool returns the boolean value for key, or def when absent.
func (m *RawMap) Bool(path, key string, def bool) (bool, error) {
	v := m.Get(key)
	if v == nil {
		return def, nil
	}
	b, ok := v.(bool)
	if !ok {
		return def, typeMismatch(path, key, "boolean", v)
	}
	return b, nil
}

// Int returns the integer value for key, or nil when absent.
// Float values with no fractional part are accepted.
func (m *RawMap) Int(path, key string) (*int, error) {
	v := m.Get(key)
	if v == nil {
		return nil, nil
	}
	switch n := v.(type) {
	case int:
		return &n, nil
	case int64:
		i := int(n)
		return &i, nil
	case float64:
		if n != math.Trunc(n) {
			return nil, typeMismatch(path, key, "integer", v)
		}
		i := int(n)
		return &i, nil
	default:
		return nil, typeMismatch(path, key, "integer", v)
	}
}

// Float returns the numeric value for key, or nil when absent.
func (m *RawMap) Float(path, key string) (*float64, error) {
	v := m.Get(key)
	if v == nil {
		return nil, nil
	}
	switch n := v.(type) {
	case float64:
		return &n, nil
	case int:
		f := float64(n)
		return &f, nil
	case int64:
		f := float64(n)
		return &f, nil
	default:
		return nil, typeMismatch(path, key, "number", v)
	}
}

// StringSlice returns the value for key as a list of strings. A bare scalar
// string is promoted to a single-element list, matching RAML shorthand such
// as "is: paged". Absent keys yield nil.
func (m *RawMap) StringSlice(path, key string) ([]string, error) {
	v := m.Get(key)
	if v == nil {
		return nil, nil
	}
	switch val := v.(type) {
	case string:
		return []string{val}, nil
	case []any:
		result := make([]string, 0, len(val))
		for i, item := range val {
			s, ok := item.(string)
			if !ok {
				return nil, typeMismatch(path, fmt.Sprintf("%s[%d]", key, i), "string", item)
			}
			result = append(result, s)
		}
		return result, nil
	default:
		return nil, typeMismatch(path, key, "list", v)
	}
}

// typeMismatch builds a TypeMismatchError describing the found value's kind.
func typeMismatch(path, field, expected string, actual any) error {
	return &ramlerrors.TypeMismatchError{
		Path:     path,
		Field:    field,
		Expected: expected,
		Actual:   rawKind(actual),
	}
}

// rawKind names the raw kind of a decoded value for error messages.
func rawKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case int, int64:
		return "integer"
	case float64:
		return "number"
	case []any:
		return "list"
	case *RawMap:
		return "mapping"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// DecodeRaw decodes YAML source into a RawMap, preserving key declaration
// order. Aliases are followed and merge keys (<<) are expanded without
// overriding keys declared on the mapping itself.
func DecodeRaw(data []byte) (*RawMap, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ramlerrors.ParseError{Message: "invalid YAML", Cause: err}
	}
	if len(doc.Content) == 0 {
		return NewRawMap(), nil
	}
	v, err := rawFromNode(doc.Content[0])
	if err != nil {
		return nil, err
	}
	m, ok := v.(*RawMap)
	if !ok {
		return nil, &ramlerrors.ParseError{
			Message: fmt.Sprintf("document root must be a mapping, got %s", rawKind(v)),
		}
	}
	return m, nil
}

// rawFromNode converts one yaml.Node subtree into raw values.
func rawFromNode(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.AliasNode:
		return rawFromNode(node.Alias)

	case yaml.ScalarNode:
		var v any
		if err := node.Decode(&v); err != nil {
			return nil, &ramlerrors.ParseError{Message: "invalid scalar", Cause: err}
		}
		return v, nil

	case yaml.SequenceNode:
		list := make([]any, 0, len(node.Content))
		for _, item := range node.Content {
			v, err := rawFromNode(item)
			if err != nil {
				return nil, err
			}
			list = append(list, v)
		}
		return list, nil

	case yaml.MappingNode:
		m := NewRawMap()
		for i := 0; i+1 < len(node.Content); i += 2 {
			keyNode, valNode := node.Content[i], node.Content[i+1]
			if keyNode.Tag == "!!merge" {
				if err := mergeInto(m, valNode); err != nil {
					return nil, err
				}
				continue
			}
			v, err := rawFromNode(valNode)
			if err != nil {
				return nil, err
			}
			m.Set(keyNode.Value, v)
		}
		return m, nil

	default:
		return nil, &ramlerrors.ParseError{
			Message: fmt.Sprintf("unsupported YAML node kind %d", node.Kind),
		}
	}
}

// mergeInto expands a YAML merge key value (a mapping or a sequence of
// mappings) into dst. Keys already present on dst win, per YAML merge
// semantics.
func mergeInto(dst *RawMap, valNode *yaml.Node) error {
	nodes := []*yaml.Node{valNode}
	if valNode.Kind == yaml.SequenceNode {
		nodes = valNode.Content
	}
	for _, n := range nodes {
		v, err := rawFromNode(n)
		if err != nil {
			return err
		}
		src, ok := v.(*RawMap)
		if !ok {
			return &ramlerrors.ParseError{
				Message: fmt.Sprintf("merge key value must be a mapping, got %s", rawKind(v)),
			}
		}
		src.Each(func(key string, value any) {
			if !dst.Has(key) {
				dst.Set(key, value)
			}
		})
	}
	return nil
}
