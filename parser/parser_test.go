package parser

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/ramltools/ramlerrors"
)

func fixture(name string) string {
	return filepath.Join("..", "testdata", name)
}

// hasViolation reports whether any collected error matches the target
// sentinel.
func hasViolation(errs []error, target error) bool {
	for _, err := range errs {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func TestParse_Widgets(t *testing.T) {
	p := New()
	result, err := p.Parse(fixture("widgets.raml"))
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.True(t, result.Valid())
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)
	assert.Equal(t, "0.8", result.Version)
	assert.Equal(t, RAMLVersion08, result.RAMLVersion)
	assert.Equal(t, fixture("widgets.raml"), result.SourcePath)
	assert.Greater(t, result.SourceSize, int64(0))
	require.NotNil(t, result.Data)
	require.NotNil(t, result.Root)

	root := result.Root
	assert.Equal(t, "Widget API", root.Title)
	assert.Equal(t, "v1", root.Version)
	assert.Equal(t, "https://api.example.com/{version}", root.BaseURI)
	assert.Equal(t, "application/json", root.MediaType)
	assert.Equal(t, []string{ProtocolHTTPS}, root.Protocols)

	require.Len(t, root.Documentation, 1)
	assert.Equal(t, "Home", root.Documentation[0].Title)
	require.Len(t, root.Schemas, 1)
	assert.Equal(t, "Widget", root.Schemas[0].Name)

	require.Len(t, root.Traits, 2)
	assert.Equal(t, "paged", root.Traits[0].Name)
	assert.Equal(t, "keyed", root.Traits[1].Name)
	require.Len(t, root.SecuritySchemes, 2)

	// collection declares get? and post, member declares get?
	require.Len(t, root.ResourceTypes, 3)

	// /widgets declares two methods, /orders one; a method's node order
	// follows declaration order
	require.Len(t, root.Resources, 3)
	widgetsGet := root.Resources[0]
	widgetsPost := root.Resources[1]
	ordersPost := root.Resources[2]
	assert.Equal(t, "get", widgetsGet.Method)
	assert.Equal(t, "post", widgetsPost.Method)
	assert.Equal(t, "post", ordersPost.Method)
	assert.Equal(t, "/orders", ordersPost.Path)
}

func TestParse_Widgets_GetNode(t *testing.T) {
	result, err := New().Parse(fixture("widgets.raml"))
	require.NoError(t, err)
	node := result.Root.Resources[0]

	assert.Equal(t, "/widgets", node.Path)
	assert.Equal(t, "Widgets", node.DisplayName)
	// {version} stays a template parameter in the absolute URI
	assert.Equal(t, "https://api.example.com/{version}/widgets", node.AbsoluteURI)

	// The method's own description beats the type's substituted one
	assert.Equal(t, "custom", node.Description)

	// Inherited from the root
	assert.Equal(t, "application/json", node.MediaType)
	assert.Equal(t, []string{ProtocolHTTPS}, node.Protocols)

	assert.Equal(t, "collection", node.Type)
	require.NotNil(t, node.ResourceType)
	assert.Equal(t, "get", node.ResourceType.Method)
	assert.True(t, node.ResourceType.Optional)

	require.Len(t, node.Traits, 1)
	assert.Equal(t, "paged", node.Traits[0].Name)

	// Trait parameters land before the method's own, in contribution order
	require.Len(t, node.QueryParams, 3)
	assert.Equal(t, "offset", node.QueryParams[0].Name)
	assert.Equal(t, "limit", node.QueryParams[1].Name)
	assert.Equal(t, "q", node.QueryParams[2].Name)
	assert.Equal(t, "integer", node.QueryParams[0].Type)

	// No securedBy anywhere up the chain
	assert.Nil(t, node.SecuredBy)
	assert.Nil(t, node.SecuritySchemes)

	// Nested resources attach to the first node of the path
	require.Len(t, node.Children, 2)
	assert.Empty(t, result.Root.Resources[1].Children)
}

func TestParse_Widgets_PostNode(t *testing.T) {
	result, err := New().Parse(fixture("widgets.raml"))
	require.NoError(t, err)
	node := result.Root.Resources[1]

	// No own description, so the type's substituted one applies
	assert.Equal(t, "Create a new item in widgets", node.Description)

	require.Len(t, node.SecuritySchemes, 1)
	assert.Equal(t, "oauth_2_0", node.SecuritySchemes[0].Name)

	require.Len(t, node.Body, 1)
	assert.Equal(t, "application/json", node.Body[0].MimeType)
	assert.Equal(t, "Widget", node.Body[0].Schema)
}

func TestParse_Widgets_NestedNodes(t *testing.T) {
	result, err := New().Parse(fixture("widgets.raml"))
	require.NoError(t, err)
	anchor := result.Root.Resources[0]
	require.Len(t, anchor.Children, 2)

	get := anchor.Children[0]
	del := anchor.Children[1]

	assert.Equal(t, "/widgets/{id}", get.Path)
	assert.Equal(t, "https://api.example.com/{version}/widgets/{id}", get.AbsoluteURI)
	assert.Same(t, anchor, get.Parent)
	assert.Equal(t, "member", get.Type)
	assert.Equal(t, "Retrieve one of the id", get.Description)

	require.Len(t, get.URIParams, 1)
	assert.Equal(t, "id", get.URIParams[0].Name)
	assert.True(t, get.URIParams[0].Required)

	require.Len(t, get.Responses, 1)
	assert.Equal(t, 200, get.Responses[0].Code)
	assert.Equal(t, "The requested widget", get.Responses[0].Description)
	assert.Equal(t, "get", get.Responses[0].Method)

	// securedBy: [null] explicitly removes security
	assert.Equal(t, "delete", del.Method)
	require.Len(t, del.SecuredBy, 1)
	assert.Empty(t, del.SecuritySchemes)

	// member declares no delete block and no method-agnostic variant, so
	// the registry view is empty while the type-level fields still apply
	assert.Equal(t, "member", del.Type)
	assert.Nil(t, del.ResourceType)
	assert.Equal(t, "A single member of id", del.Description)
}

func TestParse_Widgets_OptionalMethodSkipped(t *testing.T) {
	result, err := New().Parse(fixture("widgets.raml"))
	require.NoError(t, err)

	// collection's get? block applies only to resources declaring a get
	// method, so /orders yields a single post node
	var orders []*ResourceNode
	for _, res := range result.Root.Resources {
		if res.Path == "/orders" {
			orders = append(orders, res)
		}
	}
	require.Len(t, orders, 1)
	assert.Equal(t, "post", orders[0].Method)
	// The resource's own description beats the type's
	assert.Equal(t, "Place an order", orders[0].Description)
}

func TestParse_Widgets_Stats(t *testing.T) {
	result, err := New().Parse(fixture("widgets.raml"))
	require.NoError(t, err)

	stats := result.Stats
	assert.Equal(t, 3, stats.ResourceCount)
	assert.Equal(t, 5, stats.MethodCount)
	assert.Equal(t, 2, stats.TraitCount)
	assert.Equal(t, 3, stats.ResourceTypeCount)
	assert.Equal(t, 2, stats.SecuritySchemeCount)
	assert.Equal(t, 2, stats.MaxDepth)
	// The segment-level paged trait also contributes to the post node
	assert.Equal(t, 7, stats.ParameterCount)
}

func TestParse_Deterministic(t *testing.T) {
	first, err := New().Parse(fixture("widgets.raml"))
	require.NoError(t, err)
	second, err := New().Parse(fixture("widgets.raml"))
	require.NoError(t, err)

	require.Equal(t, len(first.Root.Resources), len(second.Root.Resources))
	for i := range first.Root.Resources {
		a, b := first.Root.Resources[i], second.Root.Resources[i]
		assert.Equal(t, a.Path, b.Path)
		assert.Equal(t, a.Method, b.Method)
		require.Equal(t, len(a.QueryParams), len(b.QueryParams))
		for j := range a.QueryParams {
			assert.Equal(t, a.QueryParams[j].Name, b.QueryParams[j].Name)
		}
	}
}

func TestParse_CyclicTypesStrict(t *testing.T) {
	result, err := New().Parse(fixture("cycle.raml"))
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, ramlerrors.ErrCyclicInheritance))

	var cycleErr *ramlerrors.CyclicInheritanceError
	require.True(t, errors.As(err, &cycleErr))
	assert.Equal(t, []string{"alpha", "beta", "alpha"}, cycleErr.Chain)
}

func TestParse_VersionMissingStrict(t *testing.T) {
	result, err := New().Parse(fixture("version-missing.raml"))
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, ramlerrors.ErrMissingField))

	var missingErr *ramlerrors.MissingFieldError
	require.True(t, errors.As(err, &missingErr))
	assert.Equal(t, "baseUri", missingErr.Path)
	assert.Equal(t, "version", missingErr.Field)
}

func TestParse_PathVersionParamNeedsDeclaration(t *testing.T) {
	// Only the base URI's {version} is covered by the root version field;
	// a path segment reusing the name still needs a uriParameter
	src := []byte(`#%RAML 0.8
title: Versioned API
version: v2
baseUri: https://api.example.com/{version}
/{version}/things:
  get:
    description: List things
`)
	_, err := New().ParseBytes(src, "versioned.raml")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ramlerrors.ErrURIParameterMismatch))

	var mismatchErr *ramlerrors.URIParameterMismatchError
	require.True(t, errors.As(err, &mismatchErr))
	assert.Equal(t, "version", mismatchErr.Parameter)
	assert.Equal(t, "/{version}/things", mismatchErr.Path)
}

func TestParse_Permissive(t *testing.T) {
	p := New()
	p.ValidationMode = ModePermissive
	result, err := p.Parse(fixture("permissive.raml"))
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.False(t, result.Valid())
	assert.True(t, hasViolation(result.Errors, ramlerrors.ErrInvalidParameter))
	assert.True(t, hasViolation(result.Errors, ramlerrors.ErrUndefinedTrait))
	assert.True(t, hasViolation(result.Errors, ramlerrors.ErrInvalidResource))
	assert.True(t, hasViolation(result.Errors, ramlerrors.ErrURIParameterMismatch))

	// The graph is still complete
	root := result.Root
	require.NotNil(t, root)
	assert.Equal(t, "Sloppy API", root.Title)

	var widgets, empty *ResourceNode
	for _, res := range root.Resources {
		switch res.Path {
		case "/widgets":
			widgets = res
		case "/empty":
			empty = res
		}
	}
	require.NotNil(t, widgets)
	require.NotNil(t, empty)

	// The bad response code is skipped but the node survives, with the
	// violations it caused attached to it
	assert.Empty(t, widgets.Responses)
	assert.True(t, hasViolation(widgets.Violations, ramlerrors.ErrUndefinedTrait))
	assert.True(t, hasViolation(widgets.Violations, ramlerrors.ErrInvalidParameter))

	// /empty has neither methods nor children but still resolves
	assert.Equal(t, "", empty.Method)
	assert.Empty(t, empty.Children)

	require.Len(t, widgets.Children, 1)
	byID := widgets.Children[0]
	assert.Equal(t, "/widgets/{id}", byID.Path)
	assert.True(t, hasViolation(byID.Violations, ramlerrors.ErrURIParameterMismatch))
}

func TestParse_LenientStructure(t *testing.T) {
	p := New()
	p.ValidateStructure = false
	result, err := p.Parse(fixture("permissive.raml"))
	require.NoError(t, err)
	require.NotNil(t, result)

	// Violations are demoted to warnings
	assert.True(t, result.Valid())
	assert.Empty(t, result.Errors)
	assert.NotEmpty(t, result.Warnings)
	require.NotNil(t, result.Root)
}

func TestParse_Modern(t *testing.T) {
	result, err := New().Parse(fixture("modern.raml"))
	require.NoError(t, err)

	assert.Equal(t, RAMLVersion10, result.RAMLVersion)
	assert.Equal(t, "1.0", result.Version)
	// A media type sequence resolves to its first entry
	assert.Equal(t, "application/json", result.Root.MediaType)

	require.Len(t, result.Root.Resources, 1)
	items := result.Root.Resources[0]
	require.Len(t, items.QueryParams, 1)
	// RAML 1.0 parameters default to required
	assert.True(t, items.QueryParams[0].Required)
}

func TestParseBytes_MissingHeader(t *testing.T) {
	doc := []byte("title: Headerless API\nbaseUri: https://api.example.com\n/ping:\n  get:\n")
	result, err := New().ParseBytes(doc, "")
	require.NoError(t, err)

	assert.Equal(t, "ParseBytes.raml", result.SourcePath)
	assert.Equal(t, RAMLVersion08, result.RAMLVersion)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "assuming RAML 0.8")
}

func TestParseBytes_PinnedVersion(t *testing.T) {
	doc := []byte("title: Pinned API\nbaseUri: https://api.example.com\nmediaType: [application/json]\n/ping:\n  get:\n")
	p := New()
	p.RAMLVersion = RAMLVersion10
	result, err := p.ParseBytes(doc, "pinned.raml")
	require.NoError(t, err)

	// Pinning skips header detection entirely
	assert.Equal(t, RAMLVersion10, result.RAMLVersion)
	assert.Empty(t, result.Warnings)
	assert.Equal(t, "application/json", result.Root.MediaType)
}

func TestParseReader(t *testing.T) {
	data, err := os.ReadFile(fixture("simple.raml"))
	require.NoError(t, err)

	result, err := New().ParseReader(strings.NewReader(string(data)), "simple.raml")
	require.NoError(t, err)
	assert.Equal(t, "simple.raml", result.SourcePath)
	assert.Equal(t, "Ping API", result.Root.Title)
	require.Len(t, result.Root.Resources, 1)
	assert.Equal(t, "https://ping.example.com/ping", result.Root.Resources[0].AbsoluteURI)
}

func TestParse_FileNotFound(t *testing.T) {
	result, err := New().Parse(fixture("nope.raml"))
	require.Error(t, err)
	assert.Nil(t, result)

	var parseErr *ramlerrors.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, fixture("nope.raml"), parseErr.Path)
}

func TestParse_NotAMapping(t *testing.T) {
	_, err := New().ParseBytes([]byte("#%RAML 0.8\n- just\n- a\n- list\n"), "list.raml")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ramlerrors.ErrParse))
}
