// Package songtext cleans up submitted song text and renders chord markup.
//
// Songs are written as plain text with chords wrapped in a marker on both
// sides, for example "@Am@ @G#@". The stored text is normalized with
// NormalizeBlankLines; AnnotateChords turns it into HTML for display.
package songtext

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

const (
	// ChordMarker delimits a chord token on both sides.
	ChordMarker = '@'

	// ChordClass is the CSS class of the element wrapping a chord.
	ChordClass = "chord"
)

var (
	// field matches a maximal run of non-whitespace characters.
	field = regexp.MustCompile(`\S+`)
	// chordToken matches a whole field of the form @X@.
	chordToken = regexp.MustCompile(`^` + string(ChordMarker) + `([^` + string(ChordMarker) + `]+)` + string(ChordMarker) + `$`)
)

// TrimBlankLines removes whitespace-only lines from the start and end of s.
// Windows line endings are converted to "\n".
func TrimBlankLines(s string) string {
	lines := splitLines(s)

	start, end := 0, len(lines)
	for start < end && isBlank(lines[start]) {
		start++
	}
	for end > start && isBlank(lines[end-1]) {
		end--
	}
	return strings.Join(lines[start:end], "\n")
}

// NormalizeBlankLines trims blank lines at both ends of s and collapses every
// internal run of blank lines into one empty line. Lines with content are
// never changed. Applying it twice gives the same result as applying it once.
func NormalizeBlankLines(s string) string {
	lines := splitLines(TrimBlankLines(s))

	out := make([]string, 0, len(lines))
	prevBlank := false
	for _, line := range lines {
		if isBlank(line) {
			if !prevBlank {
				out = append(out, "")
			}
			prevBlank = true
			continue
		}
		prevBlank = false
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// AnnotateChords renders song text as HTML. Blank lines at both ends are
// dropped, every whitespace-bounded @X@ token becomes
// <span class="chord">X</span>, and all other text is HTML-escaped.
// Whitespace between tokens is preserved exactly.
func AnnotateChords(s string) string {
	return field.ReplaceAllStringFunc(TrimBlankLines(s), func(tok string) string {
		if m := chordToken.FindStringSubmatch(tok); m != nil {
			return fmt.Sprintf(`<span class="%s">%s</span>`, ChordClass, html.EscapeString(m[1]))
		}
		return html.EscapeString(tok)
	})
}

// Chords returns the distinct chords of s in order of first appearance.
func Chords(s string) []string {
	seen := make(map[string]struct{})
	chords := []string{}
	for _, tok := range field.FindAllString(s, -1) {
		m := chordToken.FindStringSubmatch(tok)
		if m == nil {
			continue
		}
		if _, ok := seen[m[1]]; ok {
			continue
		}
		seen[m[1]] = struct{}{}
		chords = append(chords, m[1])
	}
	return chords
}

func splitLines(s string) []string {
	return strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}
