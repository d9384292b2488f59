package validator

import (
	"fmt"
	"time"

	"github.com/erraggy/ramltools/internal/issues"
	"github.com/erraggy/ramltools/internal/severity"
	"github.com/erraggy/ramltools/parser"
)

// Severity indicates the severity level of a validation issue
type Severity = severity.Severity

const (
	// SeverityError indicates a structural violation that makes the document invalid
	SeverityError = severity.SeverityError
	// SeverityWarning indicates a best practice violation or recommendation
	SeverityWarning = severity.SeverityWarning
	// SeverityInfo indicates informational messages
	SeverityInfo = severity.SeverityInfo
	// SeverityCritical indicates critical issues
	SeverityCritical = severity.SeverityCritical
)

const (
	// defaultErrorCapacity is the initial capacity for error slices
	defaultErrorCapacity = 10
	// defaultWarningCapacity is the initial capacity for warning slices
	defaultWarningCapacity = 10
)

// ValidationError represents a single validation issue
type ValidationError = issues.Issue

// ResourceContext identifies the resource and method an issue belongs to
type ResourceContext = issues.ResourceContext

// ValidationResult contains the results of validating a RAML document
type ValidationResult struct {
	// Valid is true if no errors were found (warnings are allowed)
	Valid bool
	// Version is the detected RAML version string
	Version string
	// RAMLVersion is the enumerated RAML version
	RAMLVersion parser.RAMLVersion
	// Errors contains all validation errors
	Errors []ValidationError
	// Warnings contains all validation warnings
	Warnings []ValidationError
	// ErrorCount is the total number of errors
	ErrorCount int
	// WarningCount is the total number of warnings
	WarningCount int
	// LoadTime is the time taken to load the source data
	LoadTime time.Duration
	// SourceSize is the size of the source data in bytes
	SourceSize int64
	// Stats contains statistical information about the document
	Stats parser.DocumentStats
	// Root is the resolved document graph, complete even when invalid
	Root *parser.RootNode
	// SourcePath is the original source path from the parsed document
	SourcePath string
}

// Validator handles RAML document validation
type Validator struct {
	// IncludeWarnings determines whether to include best practice warnings
	IncludeWarnings bool
	// StrictMode promotes best practice warnings, such as unused
	// declarations and missing documentation, to errors
	StrictMode bool
	// RAMLVersion pins the rule set instead of detecting it from the
	// document header
	RAMLVersion parser.RAMLVersion
}

// New creates a new Validator instance with default settings
func New() *Validator {
	return &Validator{
		IncludeWarnings: true,
		StrictMode:      false,
	}
}

// ValidateWithOptions validates a RAML document using functional options.
//
// Example:
//
//	result, err := validator.ValidateWithOptions(
//	    validator.WithFilePath("api.raml"),
//	    validator.WithStrictMode(true),
//	)
func ValidateWithOptions(opts ...Option) (*ValidationResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("validator: invalid options: %w", err)
	}

	v := &Validator{
		IncludeWarnings: cfg.includeWarnings,
		StrictMode:      cfg.strictMode,
		RAMLVersion:     cfg.ramlVersion,
	}

	if cfg.parsed != nil {
		return v.ValidateParsed(*cfg.parsed)
	}
	// cfg.filePath must be non-nil here (validated by applyOptions)
	return v.Validate(*cfg.filePath)
}

// addError appends a validation error
func (v *Validator) addError(result *ValidationResult, path, message string, opts ...func(*ValidationError)) {
	err := ValidationError{
		Path:     path,
		Message:  message,
		Severity: SeverityError,
	}
	for _, opt := range opts {
		opt(&err)
	}
	result.Errors = append(result.Errors, err)
}

// addWarning appends a validation issue at the severity StrictMode implies
func (v *Validator) addWarning(result *ValidationResult, path, message string, opts ...func(*ValidationError)) {
	if v.StrictMode {
		v.addError(result, path, message, opts...)
		return
	}
	warn := ValidationError{
		Path:     path,
		Message:  message,
		Severity: SeverityWarning,
	}
	for _, opt := range opts {
		opt(&warn)
	}
	result.Warnings = append(result.Warnings, warn)
}

// withField sets the Field on a ValidationError.
func withField(field string) func(*ValidationError) {
	return func(e *ValidationError) { e.Field = field }
}

// withValue sets the Value on a ValidationError.
func withValue(value any) func(*ValidationError) {
	return func(e *ValidationError) { e.Value = value }
}

// withContext sets the ResourceContext on a ValidationError.
func withContext(path, method string) func(*ValidationError) {
	return func(e *ValidationError) {
		e.ResourceContext = &ResourceContext{Path: path, Method: method}
	}
}

// ValidateParsed validates an already parsed RAML document
func (v *Validator) ValidateParsed(parseResult parser.ParseResult) (*ValidationResult, error) {
	result := &ValidationResult{
		Version:     parseResult.Version,
		RAMLVersion: parseResult.RAMLVersion,
		Errors:      make([]ValidationError, 0, defaultErrorCapacity),
		Warnings:    make([]ValidationError, 0, defaultWarningCapacity),
		LoadTime:    parseResult.LoadTime,
		SourceSize:  parseResult.SourceSize,
		Stats:       parseResult.Stats,
		Root:        parseResult.Root,
		SourcePath:  parseResult.SourcePath,
	}

	// Structural violations collected by the parser become errors
	for _, parseErr := range parseResult.Errors {
		result.Errors = append(result.Errors, ValidationError{
			Path:     "document",
			Message:  parseErr.Error(),
			Severity: SeverityError,
		})
	}

	// Parser warnings carry through
	for _, warning := range parseResult.Warnings {
		result.Warnings = append(result.Warnings, ValidationError{
			Path:     "document",
			Message:  warning,
			Severity: SeverityWarning,
		})
	}

	if parseResult.Root == nil {
		return nil, fmt.Errorf("validator: parse result has no resolved document")
	}
	v.validateRoot(parseResult.Root, result)

	result.ErrorCount = len(result.Errors)
	result.WarningCount = len(result.Warnings)
	result.Valid = result.ErrorCount == 0

	if !v.IncludeWarnings {
		result.Warnings = nil
		result.WarningCount = 0
	}

	return result, nil
}

// Validate validates the RAML document at specPath
func (v *Validator) Validate(specPath string) (*ValidationResult, error) {
	// Permissive parsing collects every violation so the result can report
	// them all at once
	p := parser.New()
	p.ValidationMode = parser.ModePermissive
	p.RAMLVersion = v.RAMLVersion

	parseResult, err := p.Parse(specPath)
	if err != nil {
		return nil, fmt.Errorf("validator: failed to parse document: %w", err)
	}

	return v.ValidateParsed(*parseResult)
}
