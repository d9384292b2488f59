// Package validator provides validation for RAML documents.
//
// The validator parses a document permissively, converts every structural
// violation the resolver collected into a validation error, and layers
// best practice warnings on top: missing descriptions, undeclared baseUri,
// and declared traits, resource types, or security schemes that nothing
// applies.
//
// # Quick Start
//
//	result, err := validator.ValidateWithOptions(
//		validator.WithFilePath("api.raml"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if !result.Valid {
//		for _, issue := range result.Errors {
//			fmt.Println(issue.String())
//		}
//	}
//
// An already parsed document can be validated without re-reading it:
//
//	parsed, _ := parser.ParseWithOptions(parser.WithFilePath("api.raml"))
//	result, err := validator.ValidateWithOptions(validator.WithParsed(*parsed))
//
// StrictMode promotes best practice warnings to errors; IncludeWarnings
// drops them from the result entirely.
package validator
