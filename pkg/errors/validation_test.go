package errors

import (
	"strings"
	"testing"
)

func TestValidateSolverName(t *testing.T) {
	known := []string{"zielonka", "safety", "antichain"}
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"exact", "zielonka", false},
		{"case insensitive", "Safety", false},
		{"surrounding space", " antichain ", false},
		{"empty", "", true},
		{"unknown", "mcnaughton", true},
		{"too long", strings.Repeat("z", 100), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSolverName(tt.input, known)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSolverName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidSolver) {
				t.Errorf("error code = %v, want %v", GetCode(err), ErrCodeInvalidSolver)
			}
		})
	}
}

func TestValidateRecordID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"uuid", "7b0e3c1e-8a0f-4bd4-9d6e-1f3a5c7e9b21", false},
		{"short", "abc", false},
		{"empty", "", true},
		{"slash", "a/b", true},
		{"backslash", "a\\b", true},
		{"traversal", "..", true},
		{"space", "a b", true},
		{"control", "a\x01b", true},
		{"too long", strings.Repeat("a", 65), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRecordID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRecordID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateArenaSize(t *testing.T) {
	if err := ValidateArenaSize(10, 0); err != nil {
		t.Errorf("limit 0 should disable the check, got %v", err)
	}
	if err := ValidateArenaSize(10, 10); err != nil {
		t.Errorf("size at limit should pass, got %v", err)
	}
	if err := ValidateArenaSize(11, 10); err == nil {
		t.Error("size above limit should fail")
	}
}
