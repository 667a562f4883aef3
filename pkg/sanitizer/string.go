package sanitizer

import (
	"strings"
	"unicode"
)

// TrimAndNormalize trims leading/trailing whitespace and collapses inner
// whitespace runs to a single space.
func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)

	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

// NormalizeHolderName normalizes the name a reservation is held under.
func NormalizeHolderName(name string) string {
	return TrimAndNormalize(name)
}

// NormalizeHolderEmail lowercases and trims an email address. Email addresses
// are case-insensitive for the holder-uniqueness rule.
func NormalizeHolderEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
