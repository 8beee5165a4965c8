package analyze

import (
	"fmt"

	"github.com/labelspy/labelspy/internal/textutil"
)

// Result aggregates everything one analysis pass derived from the
// recognized text. A Result is immutable once produced: re-analysis or a
// nutrient edit yields a new Result (see WithNutrients), never a mutation.
type Result struct {
	// RawText is the normalized input text.
	RawText string `json:"raw_text"`

	// Composition is the extracted ingredient-list block.
	Composition string `json:"composition"`

	// Ingredients are the deduplicated ingredient phrases.
	Ingredients []string `json:"ingredients,omitempty"`

	// AdditiveCodes is the canonical E-number set, first-seen order.
	AdditiveCodes []string `json:"additive_codes,omitempty"`

	// Allergens, HiddenSugars and Enhancers are the matched canonical
	// labels from the pattern tables.
	Allergens    []string `json:"allergens,omitempty"`
	HiddenSugars []string `json:"hidden_sugars,omitempty"`
	Enhancers    []string `json:"enhancers,omitempty"`

	// Nutrients are the per-100g values used for banding: auto-extracted
	// from the text, possibly overridden by the caller.
	Nutrients Nutrients `json:"nutrients"`

	// Bands and Verdict are derived from Nutrients and the signals above.
	Bands   Bands   `json:"bands"`
	Verdict Verdict `json:"verdict"`
}

// Analyze runs the full heuristic pipeline over recognized label text.
//
// It is synchronous, deterministic and side-effect free: identical input
// produces an identical Result. Empty input yields an empty Result: all
// bands unknown and an ok verdict, since the absence of flags is not an
// error.
func Analyze(text string) *Result {
	raw := textutil.NormalizeSpaces(text)

	composition := ExtractCompositionBlock(raw)

	// Detectors scan the composition block when one was found, falling
	// back to the whole text so a label without markers still gets
	// scanned.
	scan := composition
	if scan == "" {
		scan = raw
	}

	r := &Result{
		RawText:       raw,
		Composition:   composition,
		Ingredients:   TokenizeIngredients(scan),
		AdditiveCodes: ExtractAdditiveCodes(scan),
		Allergens:     DetectAllergens(scan),
		HiddenSugars:  DetectHiddenSugars(scan),
		Enhancers:     DetectEnhancers(scan),
		// Nutrition lines sit outside the composition block, so nutrient
		// extraction always scans the full text.
		Nutrients: ExtractNutrients(raw),
	}

	r.Bands = ClassifyNutrients(r.Nutrients)
	r.Verdict = ComputeVerdict(VerdictSignals{
		Bands:          r.Bands,
		AdditiveCount:  len(r.AdditiveCodes),
		AllergenCount:  len(r.Allergens),
		SugarHintCount: len(r.HiddenSugars),
	})
	return r
}

// WithNutrients returns a copy of the Result with the given nutrient
// values and freshly derived bands and verdict. All other fields are held
// fixed; the receiver is not modified.
func (r *Result) WithNutrients(n Nutrients) *Result {
	out := *r
	out.Nutrients = n
	out.Bands = ClassifyNutrients(n)
	out.Verdict = ComputeVerdict(VerdictSignals{
		Bands:          out.Bands,
		AdditiveCount:  len(out.AdditiveCodes),
		AllergenCount:  len(out.Allergens),
		SugarHintCount: len(out.HiddenSugars),
	})
	return &out
}

// Summary is a short human-readable rollup used by history entries.
func (r *Result) Summary() string {
	return fmt.Sprintf("%d E-кодов · %d аллергенов · %d признаков сахаров",
		len(r.AdditiveCodes), len(r.Allergens), len(r.HiddenSugars))
}
