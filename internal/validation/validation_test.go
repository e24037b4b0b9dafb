package validation

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateLocation(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		min     int
		max     int
		want    string
		wantErr error
	}{
		{"empty", "", 1, 100, "", ErrLocationEmpty},
		{"spaces", "   ", 1, 100, "", ErrLocationEmpty},
		{"tab", "\t", 1, 100, "", ErrLocationEmpty},
		{"too short", "x", 2, 100, "", ErrLocationTooShort},
		{"too long", strings.Repeat("a", 101), 1, 100, "", ErrLocationTooLong},
		{"max counts runes", strings.Repeat("ü", 100), 1, 100, strings.Repeat("ü", 100), nil},
		{"bounds disabled", strings.Repeat("a", 500), 0, 0, strings.Repeat("a", 500), nil},
		{"simple", "London", 1, 100, "London", nil},
		{"trimmed", "  Paris  ", 1, 100, "Paris", nil},
		{"collapses inner space", "New    York", 1, 100, "New York", nil},
		{"country suffix", "Zürich, CH", 1, 100, "Zürich, CH", nil},
		{"punctuation", "St. John's", 1, 100, "St. John's", nil},
		{"hyphen", "Stratford-upon-Avon", 1, 100, "Stratford-upon-Avon", nil},
		{"non latin", "東京", 1, 100, "東京", nil},
		{"query injection", "London&appid=x", 1, 100, "", ErrLocationInvalidChars},
		{"slash", "a/b", 1, 100, "", ErrLocationInvalidChars},
		{"angle brackets", "<script>", 1, 100, "", ErrLocationInvalidChars},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateLocation(tt.input, tt.min, tt.max)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ValidateLocation(%q) error = %v, want %v", tt.input, err, tt.wantErr)
				}
				if !IsValidationError(err) {
					t.Errorf("IsValidationError(%v) = false", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ValidateLocation(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ValidateLocation(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsValidationError_Other(t *testing.T) {
	if IsValidationError(errors.New("boom")) {
		t.Error("IsValidationError(boom) = true, want false")
	}
	if IsValidationError(nil) {
		t.Error("IsValidationError(nil) = true, want false")
	}
}
