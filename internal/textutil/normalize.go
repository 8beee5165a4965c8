// Package textutil provides text normalization helpers used throughout the
// label-analysis pipeline.
//
// OCR output is noisy: non-breaking spaces, ragged line endings, runs of
// blank lines. Every downstream consumer (composition extraction, pattern
// detection, nutrient parsing) expects the canonical form produced by
// NormalizeSpaces, so it is applied once at the pipeline boundary and is
// safe to re-apply (idempotent).
package textutil

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	horizontalWS = regexp.MustCompile(`[ \t]+`)
	trailingWS   = regexp.MustCompile(`[ \t]+\n`)
	blankRuns    = regexp.MustCompile(`\n{3,}`)
	nonNumeric   = regexp.MustCompile(`[^0-9.]`)
)

// NormalizeSpaces canonicalizes whitespace in OCR or user-supplied text.
//
// Transformations, in order:
//   - non-breaking spaces (U+00A0) become regular spaces
//   - runs of spaces/tabs collapse to a single space
//   - trailing spaces/tabs before a newline are removed
//   - three or more consecutive newlines collapse to exactly two
//   - leading and trailing whitespace is trimmed
//
// The function is pure and idempotent: NormalizeSpaces(NormalizeSpaces(s))
// equals NormalizeSpaces(s) for any input.
func NormalizeSpaces(s string) string {
	t := strings.ReplaceAll(s, " ", " ")
	t = horizontalWS.ReplaceAllString(t, " ")
	t = trailingWS.ReplaceAllString(t, "\n")
	t = blankRuns.ReplaceAllString(t, "\n\n")
	return strings.TrimSpace(t)
}

// ParseDecimal parses a locale-formatted decimal number.
//
// A comma is accepted as the decimal separator (common on Russian and
// European labels) and treated as a dot. Any other non-numeric characters
// (units, stray OCR artifacts) are stripped before parsing.
//
// Returns the parsed value and true, or 0 and false when the input contains
// no parseable number. Unparseable input is a normal outcome for label
// text, not an error.
func ParseDecimal(s string) (float64, bool) {
	t := strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	t = nonNumeric.ReplaceAllString(t, "")
	if t == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(t, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
