package parser

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/erraggy/ramltools/ramlerrors"
)

// Locations a named parameter can be declared in.
const (
	// InURI marks a URI parameter, e.g. the id of /widgets/{id}
	InURI = "uri"
	// InBaseURI marks a base URI parameter
	InBaseURI = "baseUri"
	// InQuery marks a query parameter
	InQuery = "query"
	// InForm marks a form parameter
	InForm = "form"
	// InHeader marks a header
	InHeader = "header"
)

// Parameter is a named parameter as defined by the RAML spec's
// "Named Parameters" section. The same shape covers URI, query, form,
// and header parameters; In records which kind this is.
type Parameter struct {
	// Name is the item name of the parameter
	Name string
	// In is the parameter location: "uri", "baseUri", "query", "form", or "header"
	In string
	// Raw is the raw declaration fragment, or nil for a bare declaration
	Raw *RawMap
	// DisplayName is the user-friendly name; defaults to Name
	DisplayName string
	// Description of the parameter
	Description string
	// Type is the primitive type; defaults to "string"
	Type string
	// Required reports whether the parameter must be provided.
	// URI and base URI parameters default to required; under RAML 0.8 other
	// kinds default to optional, under RAML 1.0 they default to required.
	Required bool
	// Default value for the parameter, matching Type
	Default any
	// Example value for the parameter, matching Type
	Example any
	// Enum lists the valid values; entries match Type
	Enum []any
	// Pattern is a regular expression a string parameter must match
	Pattern string
	// MinLength is the minimum character count for string parameters
	MinLength *int
	// MaxLength is the maximum character count for string parameters
	MaxLength *int
	// Minimum value for integer or number parameters
	Minimum *float64
	// Maximum value for integer or number parameters
	Maximum *float64
	// Repeat reports whether the parameter can appear repeatedly
	Repeat bool
}

// Body is one request or response body declaration.
type Body struct {
	// MimeType the body applies to
	MimeType string
	// Raw is the raw declaration fragment, or nil for a bare declaration
	Raw *RawMap
	// Schema is the body schema (a named schema reference or inline blob).
	// Never set for form media types.
	Schema any
	// Example of the body. Never set for form media types.
	Example any
	// FormParams are the form parameters accepted in the body.
	// Only set for form media types.
	FormParams []*Parameter
}

// Response is one declared response of a method.
type Response struct {
	// Code is the HTTP response status code
	Code int
	// Raw is the raw declaration fragment, or nil for a bare declaration
	Raw *RawMap
	// Description of the response
	Description string
	// Headers expected on the response
	Headers []*Parameter
	// Body declarations of the response
	Body []*Body
	// Method is the HTTP method the response belongs to, or empty
	Method string
}

// defaultRequired returns the default for a parameter's required flag.
func defaultRequired(in string, version RAMLVersion) bool {
	if in == InURI || in == InBaseURI {
		return true
	}
	return version == RAMLVersion10
}

// buildNamedParameters builds the parameters declared under raw[key].
// Entries keep their declaration order. Returns nil when the key is absent.
func (b *builder) buildNamedParameters(path string, raw *RawMap, key, in string) ([]*Parameter, error) {
	m, err := raw.Map(path, key)
	if err != nil {
		return nil, b.report(err)
	}
	if m == nil {
		return nil, nil
	}
	params := make([]*Parameter, 0, m.Len())
	for _, name := range m.Keys() {
		p, err := b.buildParameter(path+"."+key, name, m.Get(name), in)
		if err != nil {
			return nil, err
		}
		if p != nil {
			params = append(params, p)
		}
	}
	return params, nil
}

// buildParameter builds one named parameter. A nil raw value is the bare
// shorthand and yields a parameter with all defaults applied.
func (b *builder) buildParameter(path, name string, v any, in string) (*Parameter, error) {
	p := &Parameter{
		Name:        name,
		In:          in,
		DisplayName: name,
		Type:        "string",
		Required:    defaultRequired(in, b.version),
	}
	if v == nil {
		return p, nil
	}
	raw, ok := v.(*RawMap)
	if !ok {
		return p, b.report(typeMismatch(path, name, "mapping", v))
	}
	p.Raw = raw

	paramPath := path + "." + name
	var err error
	if p.Description, err = raw.String(paramPath, "description"); err != nil {
		return p, b.report(err)
	}
	if dn, err := raw.String(paramPath, "displayName"); err != nil {
		return p, b.report(err)
	} else if dn != "" {
		p.DisplayName = dn
	}
	if t, err := raw.String(paramPath, "type"); err != nil {
		return p, b.report(err)
	} else if t != "" {
		if !isParameterType(t) {
			if err := b.report(b.invalidParam(paramPath, name, "type",
				fmt.Sprintf("unknown parameter type %q", t))); err != nil {
				return p, err
			}
		}
		p.Type = t
	}
	if raw.Has("required") {
		req, err := raw.Bool(paramPath, "required", p.Required)
		if err != nil {
			return p, b.report(err)
		}
		p.Required = req
	}
	if p.Repeat, err = raw.Bool(paramPath, "repeat", false); err != nil {
		return p, b.report(err)
	}
	p.Default = raw.Get("default")
	p.Example = raw.Get("example")

	if err := b.buildParamConstraints(paramPath, p, raw); err != nil {
		return p, err
	}
	return p, nil
}

// buildParamConstraints reads the constraint fields of a named parameter and
// enforces type compatibility: pattern, enum, and length bounds apply only
// to string parameters, numeric bounds only to integer or number parameters.
func (b *builder) buildParamConstraints(path string, p *Parameter, raw *RawMap) error {
	isString := p.Type == "string"
	isNumeric := p.Type == "integer" || p.Type == "number"

	var err error
	if p.Pattern, err = raw.String(path, "pattern"); err != nil {
		return b.report(err)
	}
	if p.Pattern != "" && !isString {
		if err := b.report(b.invalidParam(path, p.Name, "pattern",
			fmt.Sprintf("pattern does not apply to type %q", p.Type))); err != nil {
			return err
		}
	}
	if p.MinLength, err = raw.Int(path, "minLength"); err != nil {
		return b.report(err)
	}
	if p.MaxLength, err = raw.Int(path, "maxLength"); err != nil {
		return b.report(err)
	}
	if (p.MinLength != nil || p.MaxLength != nil) && !isString {
		if err := b.report(b.invalidParam(path, p.Name, "minLength",
			fmt.Sprintf("length bounds do not apply to type %q", p.Type))); err != nil {
			return err
		}
	}
	if p.Minimum, err = raw.Float(path, "minimum"); err != nil {
		return b.report(err)
	}
	if p.Maximum, err = raw.Float(path, "maximum"); err != nil {
		return b.report(err)
	}
	if (p.Minimum != nil || p.Maximum != nil) && !isNumeric {
		if err := b.report(b.invalidParam(path, p.Name, "minimum",
			fmt.Sprintf("numeric bounds do not apply to type %q", p.Type))); err != nil {
			return err
		}
	}

	enum, err := raw.List(path, "enum")
	if err != nil {
		return b.report(err)
	}
	if enum != nil {
		if err := b.checkEnum(path, p, enum); err != nil {
			return err
		}
		p.Enum = enum
	}
	return nil
}

// checkEnum verifies every enum entry matches the parameter's declared type.
func (b *builder) checkEnum(path string, p *Parameter, enum []any) error {
	var match func(v any) bool
	switch p.Type {
	case "string":
		match = func(v any) bool { _, ok := v.(string); return ok }
	case "integer":
		match = func(v any) bool {
			switch v.(type) {
			case int, int64:
				return true
			}
			return false
		}
	case "number":
		match = func(v any) bool {
			switch v.(type) {
			case int, int64, float64:
				return true
			}
			return false
		}
	case "boolean":
		match = func(v any) bool { _, ok := v.(bool); return ok }
	default:
		return b.report(b.invalidParam(path, p.Name, "enum",
			fmt.Sprintf("enum does not apply to type %q", p.Type)))
	}
	for _, v := range enum {
		if !match(v) {
			return b.report(b.invalidParam(path, p.Name, "enum",
				fmt.Sprintf("enum value %v does not match type %q", v, p.Type)))
		}
	}
	return nil
}

// buildBodies builds the body declarations under raw["body"].
//
// A body mapping normally keys on media types. RAML also allows the
// shorthand of declaring schema/example directly under body, in which case
// the root default media type applies; using the shorthand without a root
// mediaType is a missing-field error.
func (b *builder) buildBodies(path string, raw *RawMap) ([]*Body, error) {
	m, err := raw.Map(path, "body")
	if err != nil {
		return nil, b.report(err)
	}
	if m == nil {
		return nil, nil
	}
	bodyPath := path + ".body"

	if b.isBodyShorthand(m) {
		if b.root.MediaType == "" {
			if err := b.report(&ramlerrors.MissingFieldError{
				Path:    bodyPath,
				Field:   "mediaType",
				Message: "body shorthand requires a root default mediaType",
			}); err != nil {
				return nil, err
			}
			return nil, nil
		}
		body, err := b.buildBody(bodyPath, b.root.MediaType, m)
		if err != nil || body == nil {
			return nil, err
		}
		return []*Body{body}, nil
	}

	bodies := make([]*Body, 0, m.Len())
	for _, mime := range m.Keys() {
		var sub *RawMap
		if v := m.Get(mime); v != nil {
			var ok bool
			if sub, ok = v.(*RawMap); !ok {
				if err := b.report(typeMismatch(bodyPath, mime, "mapping", v)); err != nil {
					return nil, err
				}
				continue
			}
		}
		body, err := b.buildBody(bodyPath, mime, sub)
		if err != nil {
			return nil, err
		}
		if body != nil {
			bodies = append(bodies, body)
		}
	}
	return bodies, nil
}

// isBodyShorthand reports whether a body mapping uses the default-media-type
// shorthand (schema/example/formParameters declared directly under body).
func (b *builder) isBodyShorthand(m *RawMap) bool {
	if m.Len() == 0 {
		return false
	}
	for _, key := range m.Keys() {
		switch key {
		case "schema", "example", "formParameters":
		default:
			return false
		}
	}
	return true
}

// buildBody builds one body declaration for a media type, enforcing that
// form media types carry form parameters rather than a schema or example.
func (b *builder) buildBody(path, mime string, raw *RawMap) (*Body, error) {
	body := &Body{MimeType: mime, Raw: raw}
	if raw == nil {
		return body, nil
	}
	bodyPath := path + "." + mime

	body.Schema = raw.Get("schema")
	body.Example = raw.Get("example")
	formParams, err := b.buildNamedParameters(bodyPath, raw, "formParameters", InForm)
	if err != nil {
		return nil, err
	}
	body.FormParams = formParams

	if isFormMimeType(mime) {
		if body.Schema != nil || body.Example != nil {
			if err := b.report(b.invalidParam(bodyPath, mime, "schema",
				"form media types cannot declare a schema or example")); err != nil {
				return nil, err
			}
			body.Schema = nil
			body.Example = nil
		}
	} else if len(body.FormParams) > 0 {
		if err := b.report(b.invalidParam(bodyPath, mime, "formParameters",
			fmt.Sprintf("form parameters do not apply to media type %q", mime))); err != nil {
			return nil, err
		}
		body.FormParams = nil
	}
	return body, nil
}

// buildResponses builds the response declarations under raw["responses"].
// method is recorded on each response for back-reference.
func (b *builder) buildResponses(path string, raw *RawMap, method string) ([]*Response, error) {
	m, err := raw.Map(path, "responses")
	if err != nil {
		return nil, b.report(err)
	}
	if m == nil {
		return nil, nil
	}
	respPath := path + ".responses"

	responses := make([]*Response, 0, m.Len())
	for _, codeKey := range m.Keys() {
		code, err := strconv.Atoi(codeKey)
		if err != nil || http.StatusText(code) == "" {
			if rerr := b.report(b.invalidParam(respPath, codeKey, "code",
				fmt.Sprintf("unknown HTTP status code %q", codeKey))); rerr != nil {
				return nil, rerr
			}
			continue
		}
		resp := &Response{Code: code, Method: method}
		if v := m.Get(codeKey); v != nil {
			sub, ok := v.(*RawMap)
			if !ok {
				if err := b.report(typeMismatch(respPath, codeKey, "mapping", v)); err != nil {
					return nil, err
				}
				continue
			}
			resp.Raw = sub
			codePath := respPath + "." + codeKey
			if resp.Description, err = sub.String(codePath, "description"); err != nil {
				if err := b.report(err); err != nil {
					return nil, err
				}
			}
			if resp.Headers, err = b.buildNamedParameters(codePath, sub, "headers", InHeader); err != nil {
				return nil, err
			}
			if resp.Body, err = b.buildBodies(codePath, sub); err != nil {
				return nil, err
			}
		}
		responses = append(responses, resp)
	}
	return responses, nil
}
