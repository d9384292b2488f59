// Package parser provides parsing and semantic resolution for RAML
// documents.
//
// The parser supports RAML 0.8 and 1.0. It decodes the raw YAML tree into
// an order-preserving form, resolves resource type and trait inheritance,
// applies security scheme references, and computes derived values such as
// absolute URIs and inherited media types and protocols.
//
// # Quick Start
//
// Parse a file using functional options:
//
//	result, err := parser.ParseWithOptions(
//		parser.WithFilePath("api.raml"),
//		parser.WithValidationMode(parser.ModePermissive),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if len(result.Errors) > 0 {
//		fmt.Printf("structural violations: %d\n", len(result.Errors))
//	}
//
// Or create a reusable Parser instance:
//
//	p := parser.New()
//	p.ValidationMode = parser.ModePermissive
//	result1, _ := p.Parse("api1.raml")
//	result2, _ := p.Parse("api2.raml")
//
// # Validation Modes
//
// In strict mode (the default), resolution aborts on the first structural
// violation and no partial graph is returned. In permissive mode, the
// parser collects every violation it can recover from, continues with a
// best-effort merge, and returns the complete graph with violations
// attached to the nodes that produced them (and aggregated on the result).
//
// # Inheritance
//
// Field values on a resolved resource carry a strict precedence: values
// stated on the resource itself win over values contributed by its
// resource type, which win over trait contributions, which win over
// values inherited from the parent resource or document root. Within a
// trait list the last listed trait wins; within a resource type chain the
// type closest to the resource wins. Cyclic type chains are rejected.
package parser
