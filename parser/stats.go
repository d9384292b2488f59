package parser

// DocumentStats contains statistical information about a resolved document.
type DocumentStats struct {
	ResourceCount       int
	MethodCount         int
	TraitCount          int
	ResourceTypeCount   int
	SecuritySchemeCount int
	ParameterCount      int
	MaxDepth            int
}

// computeStats walks the resolved graph and counts its surfaces.
func computeStats(root *RootNode) DocumentStats {
	stats := DocumentStats{
		TraitCount:          len(root.Traits),
		ResourceTypeCount:   len(root.ResourceTypes),
		SecuritySchemeCount: len(root.SecuritySchemes),
		ParameterCount:      len(root.BaseURIParams) + len(root.URIParams),
	}
	seen := make(map[string]bool)
	for _, res := range root.Resources {
		countResource(res, 1, seen, &stats)
	}
	return stats
}

func countResource(res *ResourceNode, depth int, seen map[string]bool, stats *DocumentStats) {
	if !seen[res.Path] {
		seen[res.Path] = true
		stats.ResourceCount++
		if depth > stats.MaxDepth {
			stats.MaxDepth = depth
		}
	}
	if res.Method != "" {
		stats.MethodCount++
	}
	stats.ParameterCount += len(res.URIParams) + len(res.QueryParams) + len(res.FormParams) + len(res.Headers)
	for _, child := range res.Children {
		countResource(child, depth+1, seen, stats)
	}
}
