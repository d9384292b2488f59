package parser_test

import (
	"fmt"
	"log"

	"github.com/erraggy/ramltools/parser"
)

// Example demonstrates basic usage of the parser to resolve a RAML document.
func Example() {
	p := parser.New()
	result, err := p.Parse("../testdata/widgets.raml")
	if err != nil {
		log.Fatalf("failed to parse: %v", err)
	}
	fmt.Printf("Version: %s\n", result.Version)
	fmt.Printf("Title: %s\n", result.Root.Title)
	fmt.Printf("Has errors: %v\n", len(result.Errors) > 0)
	// Output:
	// Version: 0.8
	// Title: Widget API
	// Has errors: false
}

// Example_functionalOptions demonstrates parsing using functional options.
func Example_functionalOptions() {
	result, err := parser.ParseWithOptions(
		parser.WithFilePath("../testdata/widgets.raml"),
		parser.WithValidationMode(parser.ModePermissive),
	)
	if err != nil {
		log.Fatalf("failed to parse: %v", err)
	}
	fmt.Printf("Resources: %d\n", result.Stats.ResourceCount)
	fmt.Printf("Valid: %v\n", result.Valid())
	// Output:
	// Resources: 3
	// Valid: true
}

// Example_permissive demonstrates collecting violations instead of aborting
// on the first one.
func Example_permissive() {
	p := parser.New()
	p.ValidationMode = parser.ModePermissive
	result, err := p.Parse("../testdata/permissive.raml")
	if err != nil {
		log.Fatalf("failed to parse: %v", err)
	}
	fmt.Printf("Valid: %v\n", result.Valid())
	fmt.Printf("Graph built: %v\n", result.Root != nil)
	// Output:
	// Valid: false
	// Graph built: true
}

// Example_resourceTree demonstrates walking the resolved resource tree.
func Example_resourceTree() {
	result, err := parser.ParseWithOptions(
		parser.WithFilePath("../testdata/widgets.raml"),
	)
	if err != nil {
		log.Fatalf("failed to parse: %v", err)
	}
	for _, res := range result.Root.Resources {
		fmt.Printf("%s %s\n", res.Method, res.AbsoluteURI)
	}
	// Output:
	// get https://api.example.com/{version}/widgets
	// post https://api.example.com/{version}/widgets
	// post https://api.example.com/{version}/orders
}
