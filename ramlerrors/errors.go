// Package ramlerrors provides structured error types for ramltools.
//
// These error types enable programmatic error handling via errors.Is() and
// errors.As(), allowing callers to distinguish between different categories
// of resolution failures and implement appropriate recovery strategies.
package ramlerrors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrMissingField indicates a required field was absent.
	ErrMissingField = errors.New("missing required field")

	// ErrTypeMismatch indicates a raw value had the wrong shape for a field.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrInvalidParameter indicates a parameter constraint or type conflict.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrUndefinedReference indicates an unresolved name reference.
	ErrUndefinedReference = errors.New("undefined reference")

	// ErrUndefinedTrait indicates an unresolved trait name.
	ErrUndefinedTrait = errors.New("undefined trait")

	// ErrUndefinedResourceType indicates an unresolved resource type name.
	ErrUndefinedResourceType = errors.New("undefined resource type")

	// ErrUndefinedSecurityScheme indicates an unresolved security scheme name.
	ErrUndefinedSecurityScheme = errors.New("undefined security scheme")

	// ErrCyclicInheritance indicates a resource type inheritance cycle.
	ErrCyclicInheritance = errors.New("cyclic inheritance")

	// ErrInvalidResource indicates a structurally empty or malformed path node.
	ErrInvalidResource = errors.New("invalid resource")

	// ErrURIParameterMismatch indicates a URI template parameter with no declaration.
	ErrURIParameterMismatch = errors.New("uri parameter mismatch")

	// ErrParse indicates a YAML parsing failure.
	ErrParse = errors.New("parse error")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// ReferenceKind identifies which registry an unresolved reference targeted.
type ReferenceKind string

const (
	// KindTrait identifies a reference into the traits registry.
	KindTrait ReferenceKind = "trait"
	// KindResourceType identifies a reference into the resource types registry.
	KindResourceType ReferenceKind = "resourceType"
	// KindSecurityScheme identifies a reference into the security schemes registry.
	KindSecurityScheme ReferenceKind = "securityScheme"
)

// MissingFieldError reports a required field that is absent from the raw tree.
type MissingFieldError struct {
	// Path is the node path to the mapping that lacks the field (e.g., "resourceTypes.collection")
	Path string
	// Field is the name of the absent field
	Field string
	// Message provides additional context, if any
	Message string
}

// Error returns a human-readable error message.
func (e *MissingFieldError) Error() string {
	msg := "missing required field"
	if e.Field != "" {
		msg += " " + quote(e.Field)
	}
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}

// TypeMismatchError reports a raw value whose shape does not match the
// expected scalar or collection kind for a field.
type TypeMismatchError struct {
	// Path is the node path to the mapping holding the field
	Path string
	// Field is the field name with the wrong shape
	Field string
	// Expected is the expected raw kind (e.g., "string", "list", "mapping")
	Expected string
	// Actual describes the kind that was found
	Actual string
}

// Error returns a human-readable error message.
func (e *TypeMismatchError) Error() string {
	msg := "type mismatch"
	if e.Field != "" {
		msg += " for " + quote(e.Field)
	}
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.Expected != "" {
		msg += fmt.Sprintf(": expected %s", e.Expected)
		if e.Actual != "" {
			msg += fmt.Sprintf(", got %s", e.Actual)
		}
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *TypeMismatchError) Is(target error) bool {
	return target == ErrTypeMismatch
}

// InvalidParameterError reports a named parameter whose constraints conflict
// with its declared type, or whose values violate a declared constraint.
type InvalidParameterError struct {
	// Path is the node path to the parameter declaration
	Path string
	// Parameter is the parameter name
	Parameter string
	// Constraint is the conflicting constraint name (e.g., "pattern", "enum")
	Constraint string
	// Message describes the conflict
	Message string
}

// Error returns a human-readable error message.
func (e *InvalidParameterError) Error() string {
	msg := "invalid parameter"
	if e.Parameter != "" {
		msg += " " + quote(e.Parameter)
	}
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.Constraint != "" {
		msg += " (constraint: " + e.Constraint + ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *InvalidParameterError) Is(target error) bool {
	return target == ErrInvalidParameter
}

// UndefinedReferenceError reports a name reference that does not resolve
// within its registry (traits, resource types, or security schemes).
type UndefinedReferenceError struct {
	// Path is the node path where the reference appears
	Path string
	// Name is the unresolved name
	Name string
	// Kind identifies the registry the reference targeted
	Kind ReferenceKind
}

// Error returns a human-readable error message.
func (e *UndefinedReferenceError) Error() string {
	msg := "undefined " + string(e.Kind)
	if e.Kind == "" {
		msg = "undefined reference"
	}
	if e.Name != "" {
		msg += " " + quote(e.Name)
	}
	if e.Path != "" {
		msg += " at " + e.Path
	}
	return msg
}

// Is reports whether target matches this error type.
// Matches ErrUndefinedReference, and the kind-specific sentinel
// (ErrUndefinedTrait, ErrUndefinedResourceType, ErrUndefinedSecurityScheme)
// matching the Kind field.
func (e *UndefinedReferenceError) Is(target error) bool {
	if target == ErrUndefinedReference {
		return true
	}
	switch e.Kind {
	case KindTrait:
		return target == ErrUndefinedTrait
	case KindResourceType:
		return target == ErrUndefinedResourceType
	case KindSecurityScheme:
		return target == ErrUndefinedSecurityScheme
	}
	return false
}

// CyclicInheritanceError reports a cycle in a resource type inheritance chain.
type CyclicInheritanceError struct {
	// Path is the node path where the cycle was detected
	Path string
	// Chain is the inheritance chain up to and including the repeated name
	Chain []string
}

// Error returns a human-readable error message.
func (e *CyclicInheritanceError) Error() string {
	msg := "cyclic inheritance"
	if len(e.Chain) > 0 {
		msg += ": " + strings.Join(e.Chain, " -> ")
	}
	if e.Path != "" {
		msg += " at " + e.Path
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *CyclicInheritanceError) Is(target error) bool {
	return target == ErrCyclicInheritance
}

// InvalidResourceError reports a structurally empty or malformed path node,
// such as a path segment with neither methods nor nested child paths.
type InvalidResourceError struct {
	// Path is the resource path (e.g., "/widgets/{id}")
	Path string
	// Message describes the structural problem
	Message string
}

// Error returns a human-readable error message.
func (e *InvalidResourceError) Error() string {
	msg := "invalid resource"
	if e.Path != "" {
		msg += " " + quote(e.Path)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *InvalidResourceError) Is(target error) bool {
	return target == ErrInvalidResource
}

// URIParameterMismatchError reports a URI template parameter that has no
// corresponding declaration (own, inherited, or type/trait-contributed).
type URIParameterMismatchError struct {
	// Path is the resource path where the template parameter appears
	Path string
	// Parameter is the undeclared template parameter name
	Parameter string
	// URI is the URI template containing the parameter
	URI string
}

// Error returns a human-readable error message.
func (e *URIParameterMismatchError) Error() string {
	msg := "uri parameter mismatch"
	if e.Parameter != "" {
		msg += ": no declaration for " + quote("{"+e.Parameter+"}")
	}
	if e.URI != "" {
		msg += " in " + quote(e.URI)
	}
	if e.Path != "" {
		msg += " at " + e.Path
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *URIParameterMismatchError) Is(target error) bool {
	return target == ErrURIParameterMismatch
}

// ParseError represents a failure to decode RAML source into a raw tree.
type ParseError struct {
	// Path is the file path or source identifier
	Path string
	// Message describes the parsing failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// ConfigError represents an invalid configuration or input.
// This includes invalid options, missing required inputs, and conflicting settings.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

// quote quotes a name for inclusion in error messages.
func quote(name string) string {
	return "'" + name + "'"
}
