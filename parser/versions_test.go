package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRAMLVersionString(t *testing.T) {
	assert.Equal(t, "0.8", RAMLVersion08.String())
	assert.Equal(t, "1.0", RAMLVersion10.String())
	assert.Equal(t, "unknown", RAMLVersionUnknown.String())
}

func TestParseRAMLVersion(t *testing.T) {
	v, ok := ParseRAMLVersion("0.8")
	assert.True(t, ok)
	assert.Equal(t, RAMLVersion08, v)

	v, ok = ParseRAMLVersion(" 1.0 ")
	assert.True(t, ok)
	assert.Equal(t, RAMLVersion10, v)

	v, ok = ParseRAMLVersion("2.0")
	assert.False(t, ok)
	assert.Equal(t, RAMLVersionUnknown, v)
}

func TestSniffVersion(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		expected RAMLVersion
	}{
		{"0.8 header", "#%RAML 0.8\ntitle: Test\n", RAMLVersion08},
		{"1.0 header", "#%RAML 1.0\ntitle: Test\n", RAMLVersion10},
		{"1.0 fragment identifier", "#%RAML 1.0 Library\nusage: shared\n", RAMLVersion10},
		{"no header", "title: Test\n", RAMLVersionUnknown},
		{"plain comment", "# not a raml header\ntitle: Test\n", RAMLVersionUnknown},
		{"unsupported version", "#%RAML 2.0\ntitle: Test\n", RAMLVersionUnknown},
		{"header only", "#%RAML 0.8", RAMLVersion08},
		{"leading whitespace on header", "  #%RAML 0.8\ntitle: Test\n", RAMLVersion08},
		{"byte order mark before header", "\uFEFF#%RAML 1.0\ntitle: Test\n", RAMLVersion10},
		{"empty input", "", RAMLVersionUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sniffVersion([]byte(tt.source)))
		})
	}
}

func TestSplitOptionalMethod(t *testing.T) {
	method, optional := splitOptionalMethod("get?")
	assert.Equal(t, "get", method)
	assert.True(t, optional)

	method, optional = splitOptionalMethod("post")
	assert.Equal(t, "post", method)
	assert.False(t, optional)
}

func TestIsHTTPMethod(t *testing.T) {
	for _, m := range []string{"get", "post", "put", "delete", "patch", "options", "head", "trace", "connect"} {
		assert.True(t, isHTTPMethod(m), m)
	}
	assert.False(t, isHTTPMethod("GET"))
	assert.False(t, isHTTPMethod("fetch"))
	assert.False(t, isHTTPMethod("get?"))
}

func TestValidationModeString(t *testing.T) {
	assert.Equal(t, "strict", ModeStrict.String())
	assert.Equal(t, "permissive", ModePermissive.String())
	assert.Equal(t, "ValidationMode(9)", ValidationMode(9).String())
}
