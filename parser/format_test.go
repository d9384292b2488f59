package parser

import "testing"

// TestFormatBytes tests the FormatBytes helper function with various byte sizes
func TestFormatBytes(t *testing.T) {
	tests := []struct {
		name     string
		bytes    int64
		expected string
	}{
		{"zero bytes", 0, "0 B"},
		{"bytes", 512, "512 B"},
		{"kilobytes", 1024, "1.0 KiB"},
		{"kilobytes decimal", 1536, "1.5 KiB"},
		{"megabytes", 1048576, "1.0 MiB"},
		{"gigabytes", 1073741824, "1.0 GiB"},
		{"terabytes", 1099511627776, "1.0 TiB"},
		{"petabytes", 1125899906842624, "1.0 PiB"},
		{"exabytes", 1152921504606846976, "1.0 EiB"},
		{"negative bytes", -1024, "-1024 B"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatBytes(tt.bytes)
			if got != tt.expected {
				t.Errorf("FormatBytes(%d) = %q, want %q", tt.bytes, got, tt.expected)
			}
		})
	}
}
