package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultMaxLength is used whenever a caller passes a non-positive length.
const DefaultMaxLength = 50

var (
	// nonAlphanumeric matches every run of characters that cannot appear in a slug.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)
	// valid matches a well-formed slug: hyphen-separated groups of [a-z0-9].
	valid = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
)

// Make converts s into a slug of at most maxLength bytes.
// A non-positive maxLength selects DefaultMaxLength.
func Make(s string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}

	s = Transliterate(norm.NFC.String(s))

	// transform.Chain keeps state, so each call builds its own.
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(fold, s); err == nil {
		s = folded
	}

	s = strings.ToLower(s)
	s = nonAlphanumeric.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")

	return truncate(s, maxLength)
}

// Valid reports whether s is a well-formed slug.
func Valid(s string) bool {
	return valid.MatchString(s)
}

// truncate cuts s to n bytes and drops any hyphen left dangling at the end.
// Slugs are ASCII, so byte and rune lengths agree.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return strings.TrimRight(s[:n], "-")
}
