// Package validation checks free-text city input before it goes upstream.
package validation

import (
	"errors"
	"strings"
	"unicode"
)

var (
	ErrLocationEmpty        = errors.New("location is required")
	ErrLocationTooShort     = errors.New("location too short")
	ErrLocationTooLong      = errors.New("location too long")
	ErrLocationInvalidChars = errors.New("location contains invalid characters")
)

// ValidateLocation trims input and checks its rune length against minLen and
// maxLen (zero disables a bound). Allowed characters are Unicode letters and
// marks, digits, space and , - . ' which covers names like "St. John's" and
// "Zürich, CH". Inner whitespace runs are collapsed to one space.
func ValidateLocation(input string, minLen, maxLen int) (string, error) {
	s := strings.Join(strings.Fields(input), " ")
	r := []rune(s)
	n := len(r)
	if n == 0 {
		return "", ErrLocationEmpty
	}
	if minLen > 0 && n < minLen {
		return "", ErrLocationTooShort
	}
	if maxLen > 0 && n > maxLen {
		return "", ErrLocationTooLong
	}
	for _, c := range r {
		if !isAllowedLocationRune(c) {
			return "", ErrLocationInvalidChars
		}
	}
	return s, nil
}

// IsValidationError reports whether err came from ValidateLocation.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrLocationEmpty) ||
		errors.Is(err, ErrLocationTooShort) ||
		errors.Is(err, ErrLocationTooLong) ||
		errors.Is(err, ErrLocationInvalidChars)
}

func isAllowedLocationRune(r rune) bool {
	if unicode.IsLetter(r) || unicode.IsMark(r) || unicode.IsDigit(r) {
		return true
	}
	switch r {
	case ' ', ',', '-', '.', '\'':
		return true
	}
	return false
}
