package parser

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/erraggy/ramltools/ramlerrors"
)

// ValidationMode selects how structural violations are handled during
// resolution.
type ValidationMode int

const (
	// ModeStrict aborts resolution on the first violation; no partial graph
	// is returned.
	ModeStrict ValidationMode = iota
	// ModePermissive collects violations and continues with a best-effort
	// merge; the returned graph is complete, with violations attached to
	// the nodes they belong to.
	ModePermissive
)

// String returns "strict" or "permissive".
func (m ValidationMode) String() string {
	switch m {
	case ModeStrict:
		return "strict"
	case ModePermissive:
		return "permissive"
	default:
		return fmt.Sprintf("ValidationMode(%d)", int(m))
	}
}

// Parser handles RAML document parsing and resolution.
type Parser struct {
	// ValidateStructure determines whether structural violations are
	// reported at all. When false, parsing is lenient: violations are
	// demoted to warnings on the result.
	ValidateStructure bool
	// ValidationMode selects strict (abort on first violation) or
	// permissive (collect and continue) resolution.
	ValidationMode ValidationMode
	// RAMLVersion pins the rule set to apply. When unset, the version is
	// detected from the document's #%RAML header, defaulting to 0.8.
	RAMLVersion RAMLVersion
	// Logger is the structured logger for debug output.
	// If nil, logging is disabled (default).
	Logger Logger
}

// New creates a new Parser instance with default settings.
func New() *Parser {
	return &Parser{
		ValidateStructure: true,
		ValidationMode:    ModeStrict,
	}
}

// log returns the configured logger, or a no-op logger if none is set.
func (p *Parser) log() Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return NopLogger{}
}

// ParseResult contains the resolved RAML document and metadata.
//
// While Go does not enforce immutability, callers should treat ParseResult
// and the graph under Root as read-only after parsing. Resolution shares
// registry nodes across the graph, so modifying one node may be visible
// through others.
type ParseResult struct {
	// SourcePath is the document's input source path. When the source was
	// not a file path, this is the name of the parse method used.
	SourcePath string
	// Version is the RAML version string (e.g., "0.8")
	Version string
	// RAMLVersion is the enumerated RAML version
	RAMLVersion RAMLVersion
	// Data is the raw decoded document tree
	Data *RawMap
	// Root is the resolved document graph
	Root *RootNode
	// Errors contains the structural violations collected during
	// permissive resolution. Empty after a successful strict resolution.
	Errors []error
	// Warnings contains non-fatal notices, such as a missing #%RAML header
	Warnings []string
	// LoadTime is the time taken to load the source data
	LoadTime time.Duration
	// SourceSize is the size of the source data in bytes
	SourceSize int64
	// Stats contains statistical information about the document
	Stats DocumentStats
}

// Valid reports whether resolution finished without structural violations.
func (r *ParseResult) Valid() bool {
	return len(r.Errors) == 0
}

// Parse reads and resolves the RAML document at path.
func (p *Parser) Parse(path string) (*ParseResult, error) {
	start := time.Now()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ramlerrors.ParseError{Path: path, Message: "failed to read file", Cause: err}
	}
	result, err := p.parseBytes(data, path)
	if err != nil {
		return nil, err
	}
	result.LoadTime = time.Since(start)
	return result, nil
}

// ParseBytes resolves a RAML document from an in-memory buffer.
// sourcePath names the source in errors and on the result.
func (p *Parser) ParseBytes(data []byte, sourcePath string) (*ParseResult, error) {
	if sourcePath == "" {
		sourcePath = "ParseBytes.raml"
	}
	start := time.Now()
	result, err := p.parseBytes(data, sourcePath)
	if err != nil {
		return nil, err
	}
	result.LoadTime = time.Since(start)
	return result, nil
}

// ParseReader resolves a RAML document read from r.
func (p *Parser) ParseReader(r io.Reader, sourcePath string) (*ParseResult, error) {
	if sourcePath == "" {
		sourcePath = "ParseReader.raml"
	}
	start := time.Now()
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &ramlerrors.ParseError{Path: sourcePath, Message: "failed to read source", Cause: err}
	}
	result, err := p.parseBytes(data, sourcePath)
	if err != nil {
		return nil, err
	}
	result.LoadTime = time.Since(start)
	return result, nil
}

// parseBytes is the shared parse path: version detection, raw decode, and
// graph resolution under the configured validation mode.
func (p *Parser) parseBytes(data []byte, sourcePath string) (*ParseResult, error) {
	logger := p.log()

	var warnings []string
	version := p.RAMLVersion
	if version == RAMLVersionUnknown {
		version = sniffVersion(data)
	}
	if version == RAMLVersionUnknown {
		version = RAMLVersion08
		warnings = append(warnings, "missing or unrecognized #%RAML header; assuming RAML 0.8")
	}

	raw, err := DecodeRaw(data)
	if err != nil {
		if perr, ok := err.(*ramlerrors.ParseError); ok && perr.Path == "" {
			perr.Path = sourcePath
		}
		return nil, err
	}

	mode := p.ValidationMode
	if !p.ValidateStructure {
		mode = ModePermissive
	}

	logger.Debug("resolving document", "source", sourcePath, "ramlVersion", version.String(), "mode", mode.String())
	b := newBuilder(raw, version, mode, p.Logger)
	root, err := b.build()
	if err != nil {
		return nil, err
	}

	result := &ParseResult{
		SourcePath:  sourcePath,
		Version:     version.String(),
		RAMLVersion: version,
		Data:        raw,
		Root:        root,
		Errors:      b.violations,
		Warnings:    warnings,
		SourceSize:  int64(len(data)),
		Stats:       computeStats(root),
	}
	if !p.ValidateStructure {
		for _, violation := range result.Errors {
			result.Warnings = append(result.Warnings, violation.Error())
		}
		result.Errors = nil
	}
	logger.Debug("document resolved",
		"resources", result.Stats.ResourceCount,
		"violations", len(result.Errors))
	return result, nil
}
