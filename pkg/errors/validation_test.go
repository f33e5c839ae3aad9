package errors

import (
	"strings"
	"testing"
)

func TestValidateParticipantID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "hubb", false},
		{"with dash", "region-a", false},
		{"unicode", "övriga", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 65), true},
		{"space", "two words", true},
		{"tab", "a\tb", true},
		{"newline", "a\nb", true},
		{"control char", "a\x01b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateParticipantID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateParticipantID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateBaseName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"default name", "regiongemensam-hubb-sekvens", false},
		{"with dot", "diagram.v2", false},

		{"empty", "", true},
		{"slash", "out/diagram", true},
		{"backslash", "out\\diagram", true},
		{"traversal", "a..b", true},
		{"hidden", ".diagram", true},
		{"space", "my diagram", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBaseName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateBaseName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidateBaseName(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidPath)
			}
		})
	}
}

func TestValidateOutputDir(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"relative", "exports/go", false},
		{"absolute", "/tmp/exports", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 501), true},
		{"null byte", "out\x00", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputDir(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputDir(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
