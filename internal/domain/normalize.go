package domain

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize turns a free-text species name into a lookup key:
//   - strips diacritics (Évoli -> evoli)
//   - converts to lowercase
//   - collapses every run of characters outside [a-z0-9] into one hyphen
//   - trims leading and trailing hyphens
//
// The result may be empty, e.g. for "♀" or "  ".
func Normalize(text string) string {
	stripped, _, err := transform.String(stripMarks, text)
	if err != nil {
		stripped = text
	}
	stripped = strings.ToLower(stripped)

	var b strings.Builder
	b.Grow(len(stripped))
	pendingHyphen := false
	for _, r := range stripped {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	return b.String()
}

// SanitizeFlavorText replaces form feeds with spaces, collapses whitespace
// runs (including newlines) into single spaces and trims the result.
func SanitizeFlavorText(text string) string {
	text = strings.ReplaceAll(text, "\f", " ")
	return strings.Join(strings.Fields(text), " ")
}
