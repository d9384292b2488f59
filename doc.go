// Package ramltools provides tools for working with RAML (RESTful API
// Modeling Language) documents.
//
// ramltools resolves a raw RAML document into a fully linked object graph:
// resource types applied to resources, traits applied to resources and
// resource types, security schemes resolved by reference, and derived values
// such as absolute URIs and effective parameter sets computed according to
// RAML's precedence rules.
//
// # Overview
//
// The library consists of three primary packages:
//
//   - parser: Parse a RAML document and resolve it into a RootNode graph
//   - validator: Validate a RAML document against its structural rules
//   - walker: Traverse a resolved RootNode graph with visitor callbacks
//
// Both RAML 0.8 and RAML 1.0 rule sets are supported; the version is
// detected from the document's #%RAML header or selected explicitly.
//
// # Quick Start
//
// Parse and resolve a RAML document:
//
//	import "github.com/erraggy/ramltools/parser"
//
//	p := parser.New()
//	result, err := p.Parse("api.raml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("API: %s\n", result.Root.Title)
//
// Validate a RAML document:
//
//	import "github.com/erraggy/ramltools/validator"
//
//	result, err := validator.ValidateWithOptions(validator.WithFilePath("api.raml"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, issue := range result.Errors {
//		fmt.Println(issue.String())
//	}
//
// Walk a resolved graph:
//
//	import "github.com/erraggy/ramltools/walker"
//
//	w := walker.New()
//	w.OnResource = func(res *parser.ResourceNode, path string) walker.Action {
//		fmt.Printf("%s %s\n", res.Method, res.AbsoluteURI)
//		return walker.Continue
//	}
//	_ = w.Walk(result.Root)
//
// # Error Handling
//
// Structured errors live in the ramlerrors package and support errors.Is
// and errors.As for programmatic handling.
package ramltools
