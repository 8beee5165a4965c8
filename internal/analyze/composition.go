package analyze

import (
	"regexp"
	"strings"

	"github.com/labelspy/labelspy/internal/textutil"
)

// compositionFallbackLen bounds the text prefix (in runes) used when no
// start marker is found; downstream detectors still get material to scan.
const compositionFallbackLen = 700

// startMarkers are tried in priority order; the composition block begins
// immediately after the first marker present in the text.
var startMarkers = compileMarkers(
	"состав:", "состав :",
	"ингредиенты:", "ингредиенты :",
	"ingredients:", "composition:",
)

// stopMarkers end the composition block at their nearest occurrence.
var stopMarkers = compileMarkers(
	"пищевая ценность", "питательная ценность", "энергетическая ценность",
	"срок годности", "хранить", "условия хранения",
	"изготовитель", "производитель", "масса нетто",
	"calories", "nutrition", "storage conditions", "manufacturer",
)

// compileMarkers builds case-insensitive matchers for literal marker
// strings. Matching runs against the original text, never a lowered copy:
// Unicode lowercasing is not byte-length-preserving, so indices found in a
// lowered string cannot safely slice the original.
func compileMarkers(markers ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(markers))
	for i, m := range markers {
		out[i] = regexp.MustCompile(`(?i)` + regexp.QuoteMeta(m))
	}
	return out
}

// ExtractCompositionBlock locates the ingredient-list substring inside
// free-form recognized text.
//
// Markers are matched case-insensitively. When no start marker is found
// the first ~700 characters are returned as a fallback. The block ends at
// the nearest stop marker after the start, or at end-of-text. Empty input
// yields an empty string.
func ExtractCompositionBlock(text string) string {
	t := textutil.NormalizeSpaces(text)
	if t == "" {
		return ""
	}

	start := -1
	for _, re := range startMarkers {
		if loc := re.FindStringIndex(t); loc != nil {
			start = loc[1]
			break
		}
	}

	if start < 0 {
		runes := []rune(t)
		if len(runes) > compositionFallbackLen {
			return string(runes[:compositionFallbackLen])
		}
		return t
	}

	end := len(t)
	tail := t[start:]
	for _, re := range stopMarkers {
		if loc := re.FindStringIndex(tail); loc != nil && start+loc[0] < end {
			end = start + loc[0]
		}
	}

	return strings.TrimSpace(t[start:end])
}
