package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Row is one parsed line of the roster input.
type Row struct {
	Person  string
	Species string
	// Line is the 1-based line number in the input, used in log output.
	Line int
}

// TeamRecord is one card of the team directory.
// Name and Pokemon are always set; Image is nil when the reference API has no artwork.
type TeamRecord struct {
	Name        string  `json:"name"`
	Pokemon     string  `json:"pokemon"`
	Image       *string `json:"image"`
	Description string  `json:"description"`
}

// Dataset is the ordered list of records written to data.json.
type Dataset []TeamRecord

// Capitalize title-cases s word by word: "mr mime" -> "Mr Mime", "PIKACHU" -> "Pikachu".
// Runs of whitespace are collapsed to a single space.
func Capitalize(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + strings.ToLower(w[size:])
	}
	return strings.Join(words, " ")
}
