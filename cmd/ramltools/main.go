package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/erraggy/ramltools"
	"github.com/erraggy/ramltools/parser"
	"github.com/erraggy/ramltools/validator"
	"github.com/erraggy/ramltools/walker"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version", "-v", "--version":
		fmt.Printf("ramltools v%s\n", ramltools.Version())
	case "help", "-h", "--help":
		printUsage()
	case "validate":
		if err := handleValidate(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "parse":
		if err := handleParse(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		if suggestion := suggestCommand(command); suggestion != "" {
			fmt.Fprintf(os.Stderr, "Did you mean '%s'?\n", suggestion)
		}
		fmt.Fprintln(os.Stderr)
		printUsage()
		os.Exit(1)
	}
}

// suggestCommand returns the closest known command within edit distance 2,
// or empty when nothing is close enough.
func suggestCommand(input string) string {
	commands := []string{"validate", "parse", "version", "help"}
	best := ""
	bestDistance := 3
	for _, cmd := range commands {
		if d := editDistance(input, cmd); d < bestDistance {
			best = cmd
			bestDistance = d
		}
	}
	return best
}

// editDistance computes the Levenshtein distance between two strings.
func editDistance(a, b string) int {
	if a == b {
		return 0
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, min(curr[j-1]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

// parseFlags contains flags for the parse command
type parseFlags struct {
	output      string
	permissive  bool
	ramlVersion string
}

func setupParseFlags() (*flag.FlagSet, *parseFlags) {
	fs := flag.NewFlagSet("parse", flag.ContinueOnError)
	flags := &parseFlags{}

	fs.StringVar(&flags.output, "output", "", "emit the resolved resource summary as 'json' or 'yaml'")
	fs.BoolVar(&flags.permissive, "permissive", false, "collect structural violations instead of aborting on the first")
	fs.StringVar(&flags.ramlVersion, "raml-version", "", "pin the RAML rule set (0.8 or 1.0) instead of detecting it")

	fs.Usage = func() {
		output := fs.Output()
		_, _ = fmt.Fprintf(output, "Usage: ramltools parse [flags] <file>\n\n")
		_, _ = fmt.Fprintf(output, "Parse and resolve a RAML document.\n\n")
		_, _ = fmt.Fprintf(output, "Flags:\n")
		fs.PrintDefaults()
		_, _ = fmt.Fprintf(output, "\nExamples:\n")
		_, _ = fmt.Fprintf(output, "  ramltools parse api.raml\n")
		_, _ = fmt.Fprintf(output, "  ramltools parse --permissive api.raml\n")
		_, _ = fmt.Fprintf(output, "  ramltools parse --output json api.raml\n")
	}

	return fs, flags
}

func handleParse(args []string) error {
	fs, flags := setupParseFlags()

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("parse command requires exactly one file path")
	}

	specPath := fs.Arg(0)

	p := parser.New()
	if flags.permissive {
		p.ValidationMode = parser.ModePermissive
	}
	if flags.ramlVersion != "" {
		v, ok := parser.ParseRAMLVersion(flags.ramlVersion)
		if !ok {
			return fmt.Errorf("unknown RAML version %q (expected 0.8 or 1.0)", flags.ramlVersion)
		}
		p.RAMLVersion = v
	}

	result, err := p.Parse(specPath)
	if err != nil {
		return fmt.Errorf("parsing file: %w", err)
	}

	if flags.output != "" {
		return printSummary(result, flags.output)
	}

	fmt.Printf("RAML Document Parser\n")
	fmt.Printf("====================\n\n")
	fmt.Printf("ramltools version: %s\n", ramltools.Version())
	fmt.Printf("Document: %s\n", specPath)
	fmt.Printf("RAML Version: %s\n", result.Version)
	fmt.Printf("Source Size: %s\n", parser.FormatBytes(result.SourceSize))
	fmt.Printf("Resources: %d\n", result.Stats.ResourceCount)
	fmt.Printf("Methods: %d\n", result.Stats.MethodCount)
	fmt.Printf("Traits: %d\n", result.Stats.TraitCount)
	fmt.Printf("Resource Types: %d\n", result.Stats.ResourceTypeCount)
	fmt.Printf("Load Time: %v\n\n", result.LoadTime)

	if len(result.Warnings) > 0 {
		fmt.Printf("Warnings:\n")
		for _, warning := range result.Warnings {
			fmt.Printf("  - %s\n", warning)
		}
		fmt.Println()
	}

	if len(result.Errors) > 0 {
		fmt.Printf("Structural Violations:\n")
		for _, err := range result.Errors {
			fmt.Printf("  - %s\n", err)
		}
		fmt.Println()
		os.Exit(1)
	}

	fmt.Printf("Title: %s\n", result.Root.Title)
	if result.Root.Version != "" {
		fmt.Printf("API Version: %s\n", result.Root.Version)
	}
	if result.Root.BaseURI != "" {
		fmt.Printf("Base URI: %s\n", result.Root.BaseURI)
	}
	if result.Root.MediaType != "" {
		fmt.Printf("Media Type: %s\n", result.Root.MediaType)
	}
	fmt.Println()

	collector, err := walker.CollectResources(result)
	if err != nil {
		return fmt.Errorf("collecting resources: %w", err)
	}
	fmt.Printf("Resources:\n")
	for _, res := range collector.All {
		if res.Method == "" {
			fmt.Printf("  %s\n", res.Path)
			continue
		}
		fmt.Printf("  %-7s %s\n", res.Method, res.AbsoluteURI)
	}

	fmt.Printf("\nParsing completed successfully!\n")
	return nil
}

// resourceSummary is the per-resource shape emitted by --output.
type resourceSummary struct {
	Method      string   `json:"method,omitempty" yaml:"method,omitempty"`
	Path        string   `json:"path" yaml:"path"`
	AbsoluteURI string   `json:"absoluteUri" yaml:"absoluteUri"`
	DisplayName string   `json:"displayName,omitempty" yaml:"displayName,omitempty"`
	Type        string   `json:"type,omitempty" yaml:"type,omitempty"`
	Traits      []string `json:"traits,omitempty" yaml:"traits,omitempty"`
	SecuredBy   []string `json:"securedBy,omitempty" yaml:"securedBy,omitempty"`
}

// documentSummary is the document shape emitted by --output.
type documentSummary struct {
	Title       string            `json:"title" yaml:"title"`
	Version     string            `json:"version,omitempty" yaml:"version,omitempty"`
	RAMLVersion string            `json:"ramlVersion" yaml:"ramlVersion"`
	BaseURI     string            `json:"baseUri,omitempty" yaml:"baseUri,omitempty"`
	MediaType   string            `json:"mediaType,omitempty" yaml:"mediaType,omitempty"`
	Protocols   []string          `json:"protocols,omitempty" yaml:"protocols,omitempty"`
	Resources   []resourceSummary `json:"resources" yaml:"resources"`
}

func printSummary(result *parser.ParseResult, format string) error {
	collector, err := walker.CollectResources(result)
	if err != nil {
		return fmt.Errorf("collecting resources: %w", err)
	}

	doc := documentSummary{
		Title:       result.Root.Title,
		Version:     result.Root.Version,
		RAMLVersion: result.Version,
		BaseURI:     result.Root.BaseURI,
		MediaType:   result.Root.MediaType,
		Protocols:   result.Root.Protocols,
		Resources:   make([]resourceSummary, 0, len(collector.All)),
	}
	for _, res := range collector.All {
		summary := resourceSummary{
			Method:      res.Method,
			Path:        res.Path,
			AbsoluteURI: res.AbsoluteURI,
			DisplayName: res.DisplayName,
		}
		if res.ResourceType != nil {
			summary.Type = res.ResourceType.Name
		}
		for _, trait := range res.Traits {
			summary.Traits = append(summary.Traits, trait.Name)
		}
		for _, scheme := range res.SecuritySchemes {
			summary.SecuredBy = append(summary.SecuredBy, scheme.Name)
		}
		doc.Resources = append(doc.Resources, summary)
	}

	switch format {
	case "json":
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling to JSON: %w", err)
		}
		fmt.Println(string(data))
	case "yaml":
		data, err := yaml.Marshal(doc)
		if err != nil {
			return fmt.Errorf("marshaling to YAML: %w", err)
		}
		fmt.Print(string(data))
	default:
		return fmt.Errorf("unknown output format %q (expected json or yaml)", format)
	}
	return nil
}

// validateFlags contains flags for the validate command
type validateFlags struct {
	strict      bool
	noWarnings  bool
	ramlVersion string
}

func setupValidateFlags() (*flag.FlagSet, *validateFlags) {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	flags := &validateFlags{}

	fs.BoolVar(&flags.strict, "strict", false, "promote best practice warnings to errors")
	fs.BoolVar(&flags.noWarnings, "no-warnings", false, "suppress warning messages (only show errors)")
	fs.StringVar(&flags.ramlVersion, "raml-version", "", "pin the RAML rule set (0.8 or 1.0) instead of detecting it")

	fs.Usage = func() {
		_, _ = fmt.Fprintf(fs.Output(), "Usage: ramltools validate [flags] <file>\n\n")
		_, _ = fmt.Fprintf(fs.Output(), "Validate a RAML document against the version it declares.\n\n")
		_, _ = fmt.Fprintf(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		_, _ = fmt.Fprintf(fs.Output(), "\nExamples:\n")
		_, _ = fmt.Fprintf(fs.Output(), "  ramltools validate api.raml\n")
		_, _ = fmt.Fprintf(fs.Output(), "  ramltools validate --strict api.raml\n")
		_, _ = fmt.Fprintf(fs.Output(), "  ramltools validate --no-warnings api.raml\n")
	}

	return fs, flags
}

func handleValidate(args []string) error {
	fs, flags := setupValidateFlags()

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("validate command requires exactly one file path")
	}

	specPath := fs.Arg(0)

	v := validator.New()
	v.StrictMode = flags.strict
	v.IncludeWarnings = !flags.noWarnings
	if flags.ramlVersion != "" {
		rv, ok := parser.ParseRAMLVersion(flags.ramlVersion)
		if !ok {
			return fmt.Errorf("unknown RAML version %q (expected 0.8 or 1.0)", flags.ramlVersion)
		}
		v.RAMLVersion = rv
	}

	startTime := time.Now()
	result, err := v.Validate(specPath)
	totalTime := time.Since(startTime)
	if err != nil {
		return fmt.Errorf("validating file: %w", err)
	}

	fmt.Printf("RAML Document Validator\n")
	fmt.Printf("=======================\n\n")
	fmt.Printf("ramltools version: %s\n", ramltools.Version())
	fmt.Printf("Document: %s\n", specPath)
	fmt.Printf("RAML Version: %s\n", result.Version)
	fmt.Printf("Source Size: %s\n", parser.FormatBytes(result.SourceSize))
	fmt.Printf("Resources: %d\n", result.Stats.ResourceCount)
	fmt.Printf("Methods: %d\n", result.Stats.MethodCount)
	fmt.Printf("Load Time: %v\n", result.LoadTime)
	fmt.Printf("Total Time: %v\n\n", totalTime)

	if len(result.Errors) > 0 {
		fmt.Printf("Errors (%d):\n", result.ErrorCount)
		for _, err := range result.Errors {
			fmt.Printf("  %s\n", err.String())
		}
		fmt.Println()
	}

	if len(result.Warnings) > 0 {
		fmt.Printf("Warnings (%d):\n", result.WarningCount)
		for _, warning := range result.Warnings {
			fmt.Printf("  %s\n", warning.String())
		}
		fmt.Println()
	}

	if result.Valid {
		fmt.Printf("✓ Validation passed")
		if result.WarningCount > 0 {
			fmt.Printf(" with %d warning(s)", result.WarningCount)
		}
		fmt.Println()
	} else {
		fmt.Printf("✗ Validation failed: %d error(s)", result.ErrorCount)
		if result.WarningCount > 0 {
			fmt.Printf(", %d warning(s)", result.WarningCount)
		}
		fmt.Println()
		os.Exit(1)
	}

	return nil
}

func printUsage() {
	fmt.Println(`ramltools - RAML Document Tools

Usage:
  ramltools <command> [options]

Commands:
  validate    Validate a RAML document
  parse       Parse, resolve, and display a RAML document
  version     Show version information
  help        Show this help message

Examples:
  ramltools validate api.raml
  ramltools validate --strict api.raml
  ramltools parse api.raml
  ramltools parse --output json api.raml

Run 'ramltools <command> --help' for more information on a command.`)
}
