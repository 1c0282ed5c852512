package generate

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var spaceBeforePunctRe = regexp.MustCompile(`\s+([,.])`)

// FormatCaption tidies raw model output for display: underscores become
// spaces, whitespace before commas and periods is removed, and the first
// letter is capitalized. Applying it twice yields the same string.
func FormatCaption(caption string) string {
	out := strings.ReplaceAll(caption, "_", " ")
	out = spaceBeforePunctRe.ReplaceAllString(out, "$1")
	if out == "" {
		return out
	}
	r, size := utf8.DecodeRuneInString(out)
	return string(unicode.ToUpper(r)) + out[size:]
}
