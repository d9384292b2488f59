package walker

import (
	"github.com/erraggy/ramltools/parser"
)

// ResourceCollector holds resources collected during a walk.
type ResourceCollector struct {
	// All contains every resource node in traversal order, parents before
	// children.
	All []*parser.ResourceNode

	// ByPath groups resource nodes by path. A path with several methods
	// has one node per method.
	ByPath map[string][]*parser.ResourceNode

	// ByMethod groups resource nodes by HTTP method. Method-less nodes are
	// grouped under the empty string.
	ByMethod map[string][]*parser.ResourceNode
}

// CollectResources walks the resolved document and collects all resource
// nodes.
func CollectResources(result *parser.ParseResult) (*ResourceCollector, error) {
	collector := &ResourceCollector{
		All:      make([]*parser.ResourceNode, 0),
		ByPath:   make(map[string][]*parser.ResourceNode),
		ByMethod: make(map[string][]*parser.ResourceNode),
	}

	err := Walk(result,
		WithResourceHandler(func(res *parser.ResourceNode) Action {
			collector.All = append(collector.All, res)
			collector.ByPath[res.Path] = append(collector.ByPath[res.Path], res)
			collector.ByMethod[res.Method] = append(collector.ByMethod[res.Method], res)
			return Continue
		}),
	)
	if err != nil {
		return nil, err
	}
	return collector, nil
}

// CollectByMethod returns the resource nodes declaring the given HTTP
// method, in traversal order.
func CollectByMethod(result *parser.ParseResult, method string) ([]*parser.ResourceNode, error) {
	collector, err := CollectResources(result)
	if err != nil {
		return nil, err
	}
	return collector.ByMethod[method], nil
}

// ResourceByPath returns the first resource node with the given full path,
// or nil when the document declares no such path.
func ResourceByPath(result *parser.ParseResult, path string) (*parser.ResourceNode, error) {
	var found *parser.ResourceNode
	err := Walk(result,
		WithResourceHandler(func(res *parser.ResourceNode) Action {
			if res.Path == path {
				found = res
				return Stop
			}
			return Continue
		}),
	)
	if err != nil {
		return nil, err
	}
	return found, nil
}

// ResourceByAbsoluteURI returns the first resource node whose computed
// absolute URI matches uri, or nil when none does.
func ResourceByAbsoluteURI(result *parser.ParseResult, uri string) (*parser.ResourceNode, error) {
	var found *parser.ResourceNode
	err := Walk(result,
		WithResourceHandler(func(res *parser.ResourceNode) Action {
			if res.AbsoluteURI == uri {
				found = res
				return Stop
			}
			return Continue
		}),
	)
	if err != nil {
		return nil, err
	}
	return found, nil
}

// ParameterInfo pairs a collected parameter with the resource that owns it.
type ParameterInfo struct {
	// Parameter is the collected parameter.
	Parameter *parser.Parameter

	// Owner is the resource node the parameter belongs to.
	Owner *parser.ResourceNode
}

// CollectParameters walks the resolved document and collects every named
// parameter on every resource node, in traversal order.
func CollectParameters(result *parser.ParseResult) ([]*ParameterInfo, error) {
	var infos []*ParameterInfo
	err := Walk(result,
		WithParameterHandler(func(owner *parser.ResourceNode, param *parser.Parameter) Action {
			infos = append(infos, &ParameterInfo{Parameter: param, Owner: owner})
			return Continue
		}),
	)
	if err != nil {
		return nil, err
	}
	return infos, nil
}
