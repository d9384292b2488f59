package parser

import (
	"bytes"
	"strings"
)

// RAMLVersion is an enumerated RAML specification version.
type RAMLVersion int

const (
	// RAMLVersionUnknown indicates the version could not be determined.
	RAMLVersionUnknown RAMLVersion = iota
	// RAMLVersion08 is RAML 0.8.
	RAMLVersion08
	// RAMLVersion10 is RAML 1.0.
	RAMLVersion10
)

// String returns the version as it appears in a #%RAML header.
func (v RAMLVersion) String() string {
	switch v {
	case RAMLVersion08:
		return "0.8"
	case RAMLVersion10:
		return "1.0"
	default:
		return "unknown"
	}
}

// ParseRAMLVersion parses a version string like "0.8" or "1.0".
func ParseRAMLVersion(s string) (RAMLVersion, bool) {
	switch strings.TrimSpace(s) {
	case "0.8":
		return RAMLVersion08, true
	case "1.0":
		return RAMLVersion10, true
	default:
		return RAMLVersionUnknown, false
	}
}

// sniffVersion detects the RAML version from the document's first line.
// A RAML document begins with a comment line of the form "#%RAML 0.8".
// Returns RAMLVersionUnknown when the header is absent or unrecognized.
func sniffVersion(data []byte) RAMLVersion {
	line := data
	if idx := bytes.IndexByte(data, '\n'); idx >= 0 {
		line = data[:idx]
	}
	header := strings.TrimSpace(strings.TrimPrefix(string(line), "\uFEFF"))
	if !strings.HasPrefix(header, "#%RAML") {
		return RAMLVersionUnknown
	}
	rest := strings.TrimSpace(strings.TrimPrefix(header, "#%RAML"))
	// RAML 1.0 allows fragment identifiers after the version, e.g. "#%RAML 1.0 Library".
	if idx := strings.IndexByte(rest, ' '); idx >= 0 {
		rest = rest[:idx]
	}
	v, _ := ParseRAMLVersion(rest)
	return v
}
