package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSingleInputSource(t *testing.T) {
	const noSource = "no source"
	const multiSource = "multiple sources"

	tests := []struct {
		name    string
		sources []bool
		wantErr string
	}{
		{"exactly one", []bool{true, false, false}, ""},
		{"one of one", []bool{true}, ""},
		{"none", []bool{false, false}, noSource},
		{"empty", nil, noSource},
		{"two", []bool{true, true, false}, multiSource},
		{"all", []bool{true, true, true}, multiSource},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSingleInputSource(noSource, multiSource, tt.sources...)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}
