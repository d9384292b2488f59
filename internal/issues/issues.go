// Package issues provides a unified issue type for resolution and validation problems.
package issues

import (
	"fmt"

	"github.com/erraggy/ramltools/internal/severity"
)

// Issue represents a single problem found during resolution or validation.
type Issue struct {
	// Path is the node path to the problematic declaration
	// (e.g., "resources./widgets.get.queryParameters.page")
	Path string
	// Message is a human-readable description of the issue
	Message string
	// Severity indicates the severity level of the issue
	Severity severity.Severity
	// Field is the specific field name that has the issue
	Field string
	// Value is the problematic value (optional)
	Value any
	// ResourceContext provides resource context when the issue relates to a
	// resource or one of its methods. Nil when not applicable.
	ResourceContext *ResourceContext
}

// ResourceContext identifies the resource and method an issue belongs to.
type ResourceContext struct {
	// Path is the resource's full path template (e.g., "/widgets/{id}")
	Path string
	// Method is the HTTP method, or empty for method-less resources
	Method string
}

// IsEmpty returns true if the context carries no information.
func (c *ResourceContext) IsEmpty() bool {
	return c == nil || (c.Path == "" && c.Method == "")
}

// String returns a compact representation like "[get /widgets/{id}]".
func (c *ResourceContext) String() string {
	if c.IsEmpty() {
		return ""
	}
	if c.Method == "" {
		return "[" + c.Path + "]"
	}
	return "[" + c.Method + " " + c.Path + "]"
}

// String returns a formatted string representation of the issue.
// Uses different symbols based on severity level:
// - "✗" for Error or Critical severity
// - "⚠" for Warning severity
// - "ℹ" for Info severity
func (i Issue) String() string {
	var symbol string
	switch i.Severity {
	case severity.SeverityError, severity.SeverityCritical:
		symbol = "✗"
	case severity.SeverityWarning:
		symbol = "⚠"
	case severity.SeverityInfo:
		symbol = "ℹ"
	default:
		symbol = "?"
	}

	pathWithContext := i.Path
	if !i.ResourceContext.IsEmpty() {
		pathWithContext = fmt.Sprintf("%s %s", i.Path, i.ResourceContext.String())
	}

	return fmt.Sprintf("%s %s: %s", symbol, pathWithContext, i.Message)
}
