package parser

import "strings"

// Recognized HTTP methods for resources, resource types, and headers.
var httpMethods = []string{
	"get", "post", "put", "delete", "patch", "options",
	"head", "trace", "connect",
}

// Supported protocol values for the root and per-node protocols lists.
const (
	ProtocolHTTP  = "HTTP"
	ProtocolHTTPS = "HTTPS"
)

// Primitive types recognized for named parameters.
var parameterTypes = []string{
	"string", "number", "integer", "date", "boolean", "file",
}

// Media types whose request bodies carry form parameters instead of a schema.
var formMimeTypes = []string{
	"application/x-www-form-urlencoded",
	"multipart/form-data",
}

// isHTTPMethod reports whether s is a recognized HTTP method name.
func isHTTPMethod(s string) bool {
	for _, m := range httpMethods {
		if s == m {
			return true
		}
	}
	return false
}

// splitOptionalMethod splits a resource type method key into its method name
// and optional flag. "get?" yields ("get", true), "get" yields ("get", false).
// The returned method name is not guaranteed to be a recognized verb.
func splitOptionalMethod(key string) (method string, optional bool) {
	if strings.HasSuffix(key, "?") {
		return strings.TrimSuffix(key, "?"), true
	}
	return key, false
}

// isParameterType reports whether s is a recognized primitive parameter type.
func isParameterType(s string) bool {
	for _, t := range parameterTypes {
		if s == t {
			return true
		}
	}
	return false
}

// isFormMimeType reports whether mime carries form parameters in its body.
func isFormMimeType(mime string) bool {
	for _, m := range formMimeTypes {
		if mime == m {
			return true
		}
	}
	return false
}

// isProtocol reports whether s is a supported protocol value.
func isProtocol(s string) bool {
	return s == ProtocolHTTP || s == ProtocolHTTPS
}
