package analyze

import (
	"math"
	"regexp"
	"strings"

	"github.com/labelspy/labelspy/internal/textutil"
)

// Band is a traffic-light classification of one nutrient level.
type Band string

const (
	BandUnknown Band = "unknown"
	BandLow     Band = "low"
	BandMid     Band = "mid"
	BandHigh    Band = "high"
)

// Thresholds define the traffic-light boundaries for one nutrient in grams
// per 100 g: values <= LowMax band low, values >= HighMin band high.
type Thresholds struct {
	LowMax  float64 `json:"low_max"`
	HighMin float64 `json:"high_min"`
}

// UK traffic-light thresholds, as commonly referenced for per-100g values.
var (
	SugarThresholds = Thresholds{LowMax: 5.0, HighMin: 22.5}
	FatThresholds   = Thresholds{LowMax: 3.0, HighMin: 17.5}
	SaltThresholds  = Thresholds{LowMax: 0.3, HighMin: 1.75}
)

// Nutrients holds optional per-100g quantities. A nil field means the
// value is unknown (absent from the label or unparseable).
type Nutrients struct {
	Sugar *float64 `json:"sugar,omitempty"`
	Fat   *float64 `json:"fat,omitempty"`
	Salt  *float64 `json:"salt,omitempty"`
}

// Bands holds the traffic-light band per nutrient.
type Bands struct {
	Sugar Band `json:"sugar"`
	Fat   Band `json:"fat"`
	Salt  Band `json:"salt"`
}

// ClassifyTraffic bands a nutrient value against its thresholds. A nil or
// non-finite value yields BandUnknown.
func ClassifyTraffic(value *float64, thr Thresholds) Band {
	if value == nil || math.IsNaN(*value) || math.IsInf(*value, 0) {
		return BandUnknown
	}
	switch {
	case *value <= thr.LowMax:
		return BandLow
	case *value >= thr.HighMin:
		return BandHigh
	default:
		return BandMid
	}
}

// ClassifyNutrients bands all three tracked nutrients.
func ClassifyNutrients(n Nutrients) Bands {
	return Bands{
		Sugar: ClassifyTraffic(n.Sugar, SugarThresholds),
		Fat:   ClassifyTraffic(n.Fat, FatThresholds),
		Salt:  ClassifyTraffic(n.Salt, SaltThresholds),
	}
}

// Best-effort matchers for "per 100 g" nutrition lines, Russian and
// English variants.
var nutrientRes = struct {
	sugar, fat, salt []*regexp.Regexp
}{
	sugar: []*regexp.Regexp{
		regexp.MustCompile(`сахар[аы]?\s*[:\-]?\s*([0-9]+[.,]?[0-9]*)\s*г`),
		regexp.MustCompile(`sugars?\s*[:\-]?\s*([0-9]+[.,]?[0-9]*)\s*g`),
	},
	fat: []*regexp.Regexp{
		regexp.MustCompile(`жир[аы]?\s*[:\-]?\s*([0-9]+[.,]?[0-9]*)\s*г`),
		regexp.MustCompile(`fat\s*[:\-]?\s*([0-9]+[.,]?[0-9]*)\s*g`),
	},
	salt: []*regexp.Regexp{
		regexp.MustCompile(`соль\s*[:\-]?\s*([0-9]+[.,]?[0-9]*)\s*г`),
		regexp.MustCompile(`salt\s*[:\-]?\s*([0-9]+[.,]?[0-9]*)\s*g`),
	},
}

// ExtractNutrients scans recognized text for per-100g sugar/fat/salt
// quantities. Missing or unparseable values stay nil; that is a normal
// outcome, not an error.
func ExtractNutrients(text string) Nutrients {
	t := strings.ToLower(text)
	return Nutrients{
		Sugar: grabNumber(t, nutrientRes.sugar),
		Fat:   grabNumber(t, nutrientRes.fat),
		Salt:  grabNumber(t, nutrientRes.salt),
	}
}

func grabNumber(text string, res []*regexp.Regexp) *float64 {
	for _, re := range res {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if v, ok := textutil.ParseDecimal(m[1]); ok {
			return &v
		}
	}
	return nil
}
