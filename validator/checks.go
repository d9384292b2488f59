package validator

import (
	"fmt"

	"github.com/erraggy/ramltools/parser"
)

// validateRoot runs the best practice checks over a resolved document.
// Structural violations are the parser's job; everything reported here is
// advisory unless StrictMode promotes it.
func (v *Validator) validateRoot(root *parser.RootNode, result *ValidationResult) {
	if root.BaseURI == "" {
		v.addWarning(result, "baseUri", "API does not declare a baseUri")
	}
	if len(root.Documentation) == 0 {
		v.addWarning(result, "documentation", "API has no user documentation")
	}
	if root.Version == "" {
		v.addWarning(result, "version", "API does not declare a version")
	}

	usage := collectUsage(root)
	for _, trait := range root.Traits {
		if !usage.traits[trait.Name] {
			v.addWarning(result, "traits", fmt.Sprintf("trait '%s' is declared but never applied", trait.Name),
				withField(trait.Name))
		}
	}
	for _, rt := range root.ResourceTypes {
		if !usage.types[rt.Name] {
			v.addWarning(result, "resourceTypes", fmt.Sprintf("resource type '%s' is declared but never applied", rt.Name),
				withField(rt.Name))
		}
	}
	for _, scheme := range root.SecuritySchemes {
		if !usage.schemes[scheme.Name] {
			v.addWarning(result, "securitySchemes", fmt.Sprintf("security scheme '%s' is declared but never referenced", scheme.Name),
				withField(scheme.Name))
		}
	}

	for _, res := range root.Resources {
		v.validateResource(res, result)
	}
}

// validateResource checks one resource node and recurses into its children.
func (v *Validator) validateResource(res *parser.ResourceNode, result *ValidationResult) {
	ctx := withContext(res.Path, res.Method)
	if res.Method != "" && res.Description == "" {
		v.addWarning(result, res.Path, "method has no description", ctx, withField(res.Method))
	}

	for _, param := range res.QueryParams {
		if param.Description == "" {
			v.addWarning(result, res.Path,
				fmt.Sprintf("query parameter '%s' has no description", param.Name), ctx, withField(param.Name))
		}
	}
	// Only parameters declared at this node are checked; inherited and
	// trait-contributed declarations are the declaring node's problem.
	if res.Raw.Has("uriParameters") {
		for _, param := range res.URIParams {
			if param.Description == "" {
				v.addWarning(result, res.Path,
					fmt.Sprintf("URI parameter '%s' has no description", param.Name), ctx, withField(param.Name))
			}
		}
	}

	for _, resp := range res.Responses {
		if resp.Description == "" {
			v.addWarning(result, res.Path,
				fmt.Sprintf("response %d has no description", resp.Code), ctx, withField(fmt.Sprintf("%d", resp.Code)))
		}
	}

	for _, child := range res.Children {
		v.validateResource(child, result)
	}
}

// usageSet tracks which declared reusables the resource tree applies.
type usageSet struct {
	traits  map[string]bool
	types   map[string]bool
	schemes map[string]bool
}

// collectUsage walks the resolved tree recording every trait, resource
// type, and security scheme actually applied. Resource types referencing
// other types, and root-level securedBy, count as usage too.
func collectUsage(root *parser.RootNode) usageSet {
	u := usageSet{
		traits:  make(map[string]bool),
		types:   make(map[string]bool),
		schemes: make(map[string]bool),
	}
	for _, rt := range root.ResourceTypes {
		if rt.Type != "" {
			u.types[rt.Type] = true
		}
		for _, trait := range rt.Traits {
			u.traits[trait.Name] = true
		}
		for _, scheme := range rt.SecuritySchemes {
			u.schemes[scheme.Name] = true
		}
	}
	var walk func(res *parser.ResourceNode)
	walk = func(res *parser.ResourceNode) {
		for _, trait := range res.Traits {
			u.traits[trait.Name] = true
		}
		if res.ResourceType != nil {
			u.types[res.ResourceType.Name] = true
		}
		for _, scheme := range res.SecuritySchemes {
			u.schemes[scheme.Name] = true
		}
		for _, child := range res.Children {
			walk(child)
		}
	}
	for _, res := range root.Resources {
		walk(res)
	}
	return u
}
