package parser

import (
	"os"
	"testing"
)

// Note on b.Fatalf usage in benchmarks:
// Using b.Fatalf for errors in benchmark setup or execution is an acceptable pattern.
// These operations should never fail with valid test fixtures. If they do fail,
// it indicates a bug that should halt the benchmark immediately.

// Benchmark fixtures
const (
	simplePath  = "../testdata/simple.raml"
	widgetsPath = "../testdata/widgets.raml"
	modernPath  = "../testdata/modern.raml"
)

// BenchmarkParse benchmarks parsing RAML documents of various shapes
func BenchmarkParse(b *testing.B) {
	tests := []struct {
		name string
		path string
	}{
		{"Simple", simplePath},
		{"Widgets", widgetsPath},
		{"Modern", modernPath},
	}

	for _, tt := range tests {
		b.Run(tt.name, func(b *testing.B) {
			p := New()

			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_, err := p.Parse(tt.path)
				if err != nil {
					b.Fatalf("Failed to parse: %v", err)
				}
			}
		})
	}
}

// BenchmarkParseBytes benchmarks parsing from a preloaded byte slice,
// isolating resolution cost from file IO
func BenchmarkParseBytes(b *testing.B) {
	data, err := os.ReadFile(widgetsPath)
	if err != nil {
		b.Fatalf("Failed to read fixture: %v", err)
	}

	p := New()

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, err := p.ParseBytes(data, widgetsPath)
		if err != nil {
			b.Fatalf("Failed to parse: %v", err)
		}
	}
}

// BenchmarkParsePermissive benchmarks permissive resolution of a document
// with structural violations, where the graph is still fully built
func BenchmarkParsePermissive(b *testing.B) {
	data, err := os.ReadFile("../testdata/permissive.raml")
	if err != nil {
		b.Fatalf("Failed to read fixture: %v", err)
	}

	p := New()
	p.ValidationMode = ModePermissive

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		result, err := p.ParseBytes(data, "permissive.raml")
		if err != nil {
			b.Fatalf("Failed to parse: %v", err)
		}
		if result.Root == nil {
			b.Fatal("Expected a resolved root")
		}
	}
}

// BenchmarkDecodeRaw benchmarks the YAML decode step alone
func BenchmarkDecodeRaw(b *testing.B) {
	data, err := os.ReadFile(widgetsPath)
	if err != nil {
		b.Fatalf("Failed to read fixture: %v", err)
	}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := DecodeRaw(data); err != nil {
			b.Fatalf("Failed to decode: %v", err)
		}
	}
}
