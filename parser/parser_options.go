package parser

import (
	"io"

	"github.com/erraggy/ramltools/internal/options"
	"github.com/erraggy/ramltools/ramlerrors"
)

// ParseOption configures a ParseWithOptions call.
type ParseOption func(*parseConfig)

type parseConfig struct {
	filePath string
	data     []byte
	dataSet  bool
	reader   io.Reader

	ramlVersion       RAMLVersion
	mode              ValidationMode
	modeSet           bool
	logger            Logger
	validateSet       bool
	validateStructure bool
}

// WithFilePath sets the input source to the file at path.
func WithFilePath(path string) ParseOption {
	return func(c *parseConfig) {
		c.filePath = path
	}
}

// WithBytes sets the input source to an in-memory buffer.
func WithBytes(data []byte) ParseOption {
	return func(c *parseConfig) {
		c.data = data
		c.dataSet = true
	}
}

// WithReader sets the input source to r.
func WithReader(r io.Reader) ParseOption {
	return func(c *parseConfig) {
		c.reader = r
	}
}

// WithRAMLVersion pins the RAML rule set instead of detecting it from the
// document header.
func WithRAMLVersion(v RAMLVersion) ParseOption {
	return func(c *parseConfig) {
		c.ramlVersion = v
	}
}

// WithValidationMode selects strict or permissive resolution.
func WithValidationMode(m ValidationMode) ParseOption {
	return func(c *parseConfig) {
		c.mode = m
		c.modeSet = true
	}
}

// WithLogger sets the structured logger for debug output.
func WithLogger(l Logger) ParseOption {
	return func(c *parseConfig) {
		c.logger = l
	}
}

// WithValidateStructure enables or disables structural validation. When
// disabled, violations are demoted to warnings on the result.
func WithValidateStructure(validate bool) ParseOption {
	return func(c *parseConfig) {
		c.validateStructure = validate
		c.validateSet = true
	}
}

// ParseWithOptions parses a RAML document configured by opts. Exactly one
// input source option (WithFilePath, WithBytes, or WithReader) is required.
func ParseWithOptions(opts ...ParseOption) (*ParseResult, error) {
	cfg := &parseConfig{
		validateStructure: true,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if err := options.ValidateSingleInputSource(
		"no input source specified: use WithFilePath, WithBytes, or WithReader",
		"multiple input sources specified: use only one of WithFilePath, WithBytes, or WithReader",
		cfg.filePath != "", cfg.dataSet, cfg.reader != nil,
	); err != nil {
		return nil, &ramlerrors.ConfigError{Option: "input source", Message: err.Error(), Cause: err}
	}

	switch cfg.mode {
	case ModeStrict, ModePermissive:
	default:
		return nil, &ramlerrors.ConfigError{
			Option:  "WithValidationMode",
			Value:   cfg.mode,
			Message: "unknown validation mode",
		}
	}

	p := New()
	p.RAMLVersion = cfg.ramlVersion
	p.Logger = cfg.logger
	if cfg.modeSet {
		p.ValidationMode = cfg.mode
	}
	if cfg.validateSet {
		p.ValidateStructure = cfg.validateStructure
	}

	switch {
	case cfg.filePath != "":
		return p.Parse(cfg.filePath)
	case cfg.dataSet:
		return p.ParseBytes(cfg.data, "ParseWithOptions.raml")
	default:
		return p.ParseReader(cfg.reader, "ParseWithOptions.raml")
	}
}
