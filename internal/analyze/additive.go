package analyze

import (
	"regexp"
	"strings"

	"github.com/labelspy/labelspy/internal/textutil"
)

// additiveRe matches E-number tokens: a Latin or Cyrillic E, an optional
// space or hyphen, 3-4 digits and an optional trailing letter. The leading
// group keeps matches from starting mid-word.
var additiveRe = regexp.MustCompile(`(?:^|[^A-Za-zА-Яа-я0-9])([EЕ])\s?-?\s?(\d{3,4})([a-zA-Zа-яА-Я])?`)

var additiveStrip = regexp.MustCompile(`[^E0-9A-Z]`)

// CanonicalAdditiveCode normalizes an additive-code token to the canonical
// E<digits><suffix> form: uppercased, separators stripped, Cyrillic Е
// folded to Latin E. Returns "" for input without a code.
func CanonicalAdditiveCode(code string) string {
	c := strings.ToUpper(strings.TrimSpace(code))
	c = strings.ReplaceAll(c, " ", "")
	if strings.HasPrefix(c, "Е") { // Cyrillic
		c = "E" + strings.TrimPrefix(c, "Е")
	}
	c = strings.TrimPrefix(c, "E-")
	if !strings.HasPrefix(c, "E") {
		c = "E" + c
	}
	c = additiveStrip.ReplaceAllString(c, "")
	if c == "E" {
		return ""
	}
	return c
}

// ExtractAdditiveCodes scans text for additive codes (E-numbers) and
// returns the deduplicated canonical set in first-seen order.
//
// "Е-330" (Cyrillic), "E 330" and "e330" all canonicalize to "E330".
func ExtractAdditiveCodes(text string) []string {
	t := textutil.NormalizeSpaces(text)
	if t == "" {
		return nil
	}

	seen := make(map[string]bool)
	var out []string
	for _, m := range additiveRe.FindAllStringSubmatch(t, -1) {
		code := CanonicalAdditiveCode("E" + m[2] + m[3])
		if code == "" || seen[code] {
			continue
		}
		seen[code] = true
		out = append(out, code)
	}
	return out
}
