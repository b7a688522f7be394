// Package detect implements the claim detection pipeline: sentence
// segmentation, pattern-family classification, and near-duplicate removal.
// Everything here is pure computation over the input text; malformed input
// degrades to "no candidates," never an error.
package detect

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// minFragmentLen filters out fragments too short to carry a checkable
// claim. Measured in runes after trimming; fragments must be strictly
// longer than this.
const minFragmentLen = 10

// Segment splits transcript text into candidate sentences. It splits on
// '.', '!' and '?', except for a '.' sitting between two digits so decimal
// figures like "3.2 percent" survive intact. Surviving fragments are
// trimmed and get their first letter capitalized.
func Segment(text string) []string {
	var sentences []string
	var current strings.Builder

	runes := []rune(text)
	for i, r := range runes {
		switch r {
		case '.':
			if i > 0 && i+1 < len(runes) && unicode.IsDigit(runes[i-1]) && unicode.IsDigit(runes[i+1]) {
				current.WriteRune(r)
				continue
			}
			appendFragment(&sentences, current.String())
			current.Reset()
		case '!', '?':
			// Runs like "?!" produce empty fragments that are dropped below
			appendFragment(&sentences, current.String())
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	appendFragment(&sentences, current.String())

	return sentences
}

func appendFragment(out *[]string, fragment string) {
	fragment = strings.TrimSpace(fragment)
	if utf8.RuneCountInString(fragment) <= minFragmentLen {
		return
	}
	*out = append(*out, capitalize(fragment))
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if unicode.IsLower(r) {
		return string(unicode.ToUpper(r)) + s[size:]
	}
	return s
}
