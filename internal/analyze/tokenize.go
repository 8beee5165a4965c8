package analyze

import (
	"regexp"
	"strings"

	"github.com/labelspy/labelspy/internal/textutil"
)

var ingredientSplit = regexp.MustCompile(`[,;]+|\n+`)

// TokenizeIngredients splits a composition block into individual
// ingredient phrases.
//
// Separators are commas, semicolons, bullet characters and newlines.
// Pieces shorter than two characters are discarded; duplicates are removed
// case-insensitively while preserving first-seen order and the original
// casing.
func TokenizeIngredients(text string) []string {
	t := textutil.NormalizeSpaces(text)
	if t == "" {
		return nil
	}

	t = strings.NewReplacer("•", ",", "·", ",").Replace(t)

	seen := make(map[string]bool)
	var out []string
	for _, part := range ingredientSplit.Split(t, -1) {
		p := strings.TrimSpace(part)
		key := strings.ToLower(p)
		if len([]rune(key)) < 2 || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, p)
	}
	return out
}
