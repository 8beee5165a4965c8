package analyze

import "strings"

// PatternGroup maps one canonical label to the substring patterns that
// trigger it. A group is hit when any of its patterns appears as a
// case-insensitive substring of the scanned text.
type PatternGroup struct {
	Label    string
	Patterns []string
}

// PatternTable is an ordered set of pattern groups. Detection reports
// canonical labels, not the raw matched substrings, so the tables stay
// swappable and testable independently of the matching logic.
type PatternTable []PatternGroup

// AllergenTable covers the common allergen families as they appear on
// Russian-language labels. Patterns are word stems so that inflected forms
// match ("молоко", "молочный", ...).
var AllergenTable = PatternTable{
	{Label: "Молоко", Patterns: []string{"молоко", "молочн", "сыворот", "лактоз", "казеин", "сливк", "йогурт", "сыр", "масло слив"}},
	{Label: "Глютен/злаки", Patterns: []string{"пшениц", "рож", "ячмен", "овес", "овёс", "мука", "клейковин", "глютен", "манка"}},
	{Label: "Соя", Patterns: []string{"соя", "соев", "lecithin", "лецитин соев"}},
	{Label: "Яйцо", Patterns: []string{"яйц", "альбумин", "меланж"}},
	{Label: "Орехи", Patterns: []string{"орех", "миндаль", "фундук", "грецк", "кешью", "пекан", "фисташ", "арахис"}},
	{Label: "Рыба", Patterns: []string{"рыб", "икр", "анчоус"}},
	{Label: "Морепродукты", Patterns: []string{"кревет", "краб", "мид", "устриц", "моллюск"}},
	{Label: "Сельдерей", Patterns: []string{"сельдер"}},
	{Label: "Горчица", Patterns: []string{"горчиц"}},
	{Label: "Кунжут", Patterns: []string{"кунжут"}},
}

// HiddenSugarTable lists ingredient phrasings that denote added sugar
// under a non-obvious name. Label and pattern coincide: the matched
// keyword is the useful signal.
var HiddenSugarTable = selfLabeled(
	"сироп", "глюкоз", "фруктоз", "мальтоз", "декстроз", "лактоз", "мёд", "мед",
	"паток", "инвертн", "сахароз", "концентрат сока", "juice concentrate",
)

// EnhancerTable lists flavor-enhancer markers (glutamate and friends).
var EnhancerTable = selfLabeled(
	"глутамат", "e621", "e-621", "гидролизат", "yeast extract", "дрожжев", "экстракт дрожж",
)

func selfLabeled(patterns ...string) PatternTable {
	table := make(PatternTable, 0, len(patterns))
	for _, p := range patterns {
		table = append(table, PatternGroup{Label: p, Patterns: []string{p}})
	}
	return table
}

// Detect returns the deduplicated canonical labels of every group in the
// table with at least one pattern present in text (case-insensitive
// substring match). Every table entry is checked; order follows the table.
func Detect(text string, table PatternTable) []string {
	lower := strings.ToLower(text)

	seen := make(map[string]bool)
	var hits []string
	for _, group := range table {
		if seen[group.Label] {
			continue
		}
		for _, p := range group.Patterns {
			if strings.Contains(lower, strings.ToLower(p)) {
				seen[group.Label] = true
				hits = append(hits, group.Label)
				break
			}
		}
	}
	return hits
}

// DetectAllergens reports allergen families present in the text.
func DetectAllergens(text string) []string { return Detect(text, AllergenTable) }

// DetectHiddenSugars reports added-sugar phrasings present in the text.
func DetectHiddenSugars(text string) []string { return Detect(text, HiddenSugarTable) }

// DetectEnhancers reports flavor-enhancer markers present in the text.
func DetectEnhancers(text string) []string { return Detect(text, EnhancerTable) }
