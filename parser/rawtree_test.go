package parser

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/ramltools/ramlerrors"
)

func TestDecodeRaw_PreservesKeyOrder(t *testing.T) {
	src := []byte(`
zebra: 1
alpha: 2
middle: 3
`)
	m, err := DecodeRaw(src)
	require.NoError(t, err)
	assert.Equal(t, []string{"zebra", "alpha", "middle"}, m.Keys())
}

func TestDecodeRaw_NestedShapes(t *testing.T) {
	src := []byte(`
title: Test API
count: 42
ratio: 0.5
enabled: true
tags:
  - one
  - two
nested:
  inner: value
absent: null
`)
	m, err := DecodeRaw(src)
	require.NoError(t, err)

	assert.Equal(t, "Test API", m.Get("title"))
	assert.Equal(t, 42, m.Get("count"))
	assert.Equal(t, 0.5, m.Get("ratio"))
	assert.Equal(t, true, m.Get("enabled"))
	assert.Equal(t, []any{"one", "two"}, m.Get("tags"))

	nested, ok := m.Get("nested").(*RawMap)
	require.True(t, ok)
	assert.Equal(t, "value", nested.Get("inner"))

	assert.True(t, m.Has("absent"))
	assert.Nil(t, m.Get("absent"))
}

func TestDecodeRaw_NumericKeysBecomeStrings(t *testing.T) {
	src := []byte(`
responses:
  200:
    description: ok
  404:
    description: missing
`)
	m, err := DecodeRaw(src)
	require.NoError(t, err)
	responses, ok := m.Get("responses").(*RawMap)
	require.True(t, ok)
	assert.Equal(t, []string{"200", "404"}, responses.Keys())
}

func TestDecodeRaw_AliasAndMergeKeys(t *testing.T) {
	src := []byte(`
base: &base
  type: string
  required: true
derived:
  <<: *base
  required: false
copied: *base
`)
	m, err := DecodeRaw(src)
	require.NoError(t, err)

	derived, ok := m.Get("derived").(*RawMap)
	require.True(t, ok)
	assert.Equal(t, "string", derived.Get("type"))
	// The mapping's own key wins over the merged value
	assert.Equal(t, false, derived.Get("required"))

	copied, ok := m.Get("copied").(*RawMap)
	require.True(t, ok)
	assert.Equal(t, true, copied.Get("required"))
}

func TestDecodeRaw_InvalidYAML(t *testing.T) {
	_, err := DecodeRaw([]byte("title: [unclosed"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ramlerrors.ErrParse))
}

func TestDecodeRaw_NonMappingRoot(t *testing.T) {
	_, err := DecodeRaw([]byte("- just\n- a\n- list\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ramlerrors.ErrParse))
	assert.Contains(t, err.Error(), "mapping")
}

func TestDecodeRaw_EmptyDocument(t *testing.T) {
	m, err := DecodeRaw(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, m.Len())
}

func TestRawMap_NilSafety(t *testing.T) {
	var m *RawMap
	assert.Equal(t, 0, m.Len())
	assert.Nil(t, m.Keys())
	assert.False(t, m.Has("key"))
	assert.Nil(t, m.Get("key"))
	assert.Equal(t, "fallback", m.GetOr("key", "fallback"))

	_, err := m.Require("", "key")
	assert.True(t, errors.Is(err, ramlerrors.ErrMissingField))
}

func TestRawMap_String(t *testing.T) {
	m := NewRawMap()
	m.Set("name", "value")
	m.Set("count", 3)

	s, err := m.String("", "name")
	require.NoError(t, err)
	assert.Equal(t, "value", s)

	s, err = m.String("", "missing")
	require.NoError(t, err)
	assert.Equal(t, "", s)

	_, err = m.String("root", "count")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ramlerrors.ErrTypeMismatch))
	assert.Contains(t, err.Error(), "integer")
}

func TestRawMap_RequireString(t *testing.T) {
	m := NewRawMap()
	m.Set("title", "Widget API")
	m.Set("empty", "")

	s, err := m.RequireString("", "title")
	require.NoError(t, err)
	assert.Equal(t, "Widget API", s)

	_, err = m.RequireString("", "missing")
	assert.True(t, errors.Is(err, ramlerrors.ErrMissingField))

	_, err = m.RequireString("", "empty")
	assert.True(t, errors.Is(err, ramlerrors.ErrMissingField))
}

func TestRawMap_Bool(t *testing.T) {
	m := NewRawMap()
	m.Set("flag", true)
	m.Set("notFlag", "yes")

	b, err := m.Bool("", "flag", false)
	require.NoError(t, err)
	assert.True(t, b)

	b, err = m.Bool("", "missing", true)
	require.NoError(t, err)
	assert.True(t, b)

	_, err = m.Bool("", "notFlag", false)
	assert.True(t, errors.Is(err, ramlerrors.ErrTypeMismatch))
}

func TestRawMap_Int(t *testing.T) {
	m := NewRawMap()
	m.Set("count", 7)
	m.Set("whole", float64(3))
	m.Set("frac", 3.5)
	m.Set("word", "three")

	n, err := m.Int("", "count")
	require.NoError(t, err)
	require.NotNil(t, n)
	assert.Equal(t, 7, *n)

	n, err = m.Int("", "whole")
	require.NoError(t, err)
	require.NotNil(t, n)
	assert.Equal(t, 3, *n)

	n, err = m.Int("", "missing")
	require.NoError(t, err)
	assert.Nil(t, n)

	_, err = m.Int("", "frac")
	assert.True(t, errors.Is(err, ramlerrors.ErrTypeMismatch))
	_, err = m.Int("", "word")
	assert.True(t, errors.Is(err, ramlerrors.ErrTypeMismatch))
}

func TestRawMap_StringSlice(t *testing.T) {
	m := NewRawMap()
	m.Set("list", []any{"a", "b"})
	m.Set("scalar", "solo")
	m.Set("mixed", []any{"a", 1})

	s, err := m.StringSlice("", "list")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, s)

	// A bare scalar promotes to a single-element list
	s, err = m.StringSlice("", "scalar")
	require.NoError(t, err)
	assert.Equal(t, []string{"solo"}, s)

	s, err = m.StringSlice("", "missing")
	require.NoError(t, err)
	assert.Nil(t, s)

	_, err = m.StringSlice("", "mixed")
	assert.True(t, errors.Is(err, ramlerrors.ErrTypeMismatch))
}

func TestRawMap_MarshalJSON(t *testing.T) {
	m, err := DecodeRaw([]byte("zebra: 1\nalpha: 2\n"))
	require.NoError(t, err)

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"zebra":1,"alpha":2}`, string(data))
	// Declaration order survives the round trip
	assert.Equal(t, `{"zebra":1,"alpha":2}`, string(data))

	var nilMap *RawMap
	data, err = json.Marshal(nilMap)
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}

func TestRawMap_ListAndMap(t *testing.T) {
	m, err := DecodeRaw([]byte("items:\n  - a\n  - b\nnested:\n  key: value\nscalar: 1\n"))
	require.NoError(t, err)

	list, err := m.List("", "items")
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "b"}, list)

	list, err = m.List("", "missing")
	require.NoError(t, err)
	assert.Nil(t, list)

	_, err = m.List("", "scalar")
	assert.True(t, errors.Is(err, ramlerrors.ErrTypeMismatch))

	sub, err := m.Map("", "nested")
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.Equal(t, "value", sub.Get("key"))

	_, err = m.Map("", "scalar")
	assert.True(t, errors.Is(err, ramlerrors.ErrTypeMismatch))
}

func TestRawMap_RequireListAndMap(t *testing.T) {
	m, err := DecodeRaw([]byte("items:\n  - a\nnested:\n  key: value\n"))
	require.NoError(t, err)

	list, err := m.RequireList("", "items")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = m.RequireList("", "missing")
	assert.True(t, errors.Is(err, ramlerrors.ErrMissingField))

	sub, err := m.RequireMap("", "nested")
	require.NoError(t, err)
	require.NotNil(t, sub)

	_, err = m.RequireMap("", "missing")
	assert.True(t, errors.Is(err, ramlerrors.ErrMissingField))
}
