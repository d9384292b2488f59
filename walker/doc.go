// Package walker provides traversal of resolved RAML documents.
//
// The walker visits the declarations at the document root (security
// schemes, traits, resource types) and then the resource tree depth first
// in declaration order, calling the handlers configured via functional
// options. Handlers return an Action: Continue, SkipChildren, or Stop.
//
// # Quick Start
//
//	result, _ := parser.ParseWithOptions(parser.WithFilePath("api.raml"))
//	err := walker.Walk(result,
//		walker.WithResourceHandler(func(res *parser.ResourceNode) walker.Action {
//			fmt.Printf("%s %s\n", res.Method, res.AbsoluteURI)
//			return walker.Continue
//		}),
//	)
//
// For common traversals the package provides collectors: CollectResources,
// CollectByMethod, CollectParameters, ResourceByPath, and
// ResourceByAbsoluteURI.
package walker
