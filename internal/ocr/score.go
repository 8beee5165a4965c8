package ocr

import (
	"regexp"

	"github.com/labelspy/labelspy/internal/textutil"
)

// Scorer rates a recognized-text candidate; higher is better. The adapter
// keeps the best-scoring candidate when several preprocessed variants are
// recognized. The scoring heuristic is a replaceable strategy: it has no
// documented accuracy baseline, only the observation that binarized images
// make engines hallucinate symbol noise.
type Scorer func(text string) float64

var (
	cyrillicRe = regexp.MustCompile(`[А-Яа-яЁё]`)
	latinRe    = regexp.MustCompile(`[A-Za-z]`)
	// Everything outside alphanumerics, Cyrillic, whitespace and basic
	// label punctuation counts as noise.
	noiseRe = regexp.MustCompile(`[^0-9A-Za-zА-Яа-яЁё\s.,:;()%+\-–—/]`)
)

// ScoreText is the default Scorer. Empty text scores effectively minus
// infinity; otherwise the score rewards target-script (Cyrillic) letters
// and heavily penalizes characters outside the allow-list:
//
//	score = 2*cyrillic - 0.2*latin - 6*noise
//
// The noise weight dominates small script-mix differences so that a clean
// result always beats a garbled one.
func ScoreText(text string) float64 {
	s := textutil.NormalizeSpaces(text)
	if s == "" {
		return -1e9
	}

	cyr := len(cyrillicRe.FindAllString(s, -1))
	lat := len(latinRe.FindAllString(s, -1))
	noise := len(noiseRe.FindAllString(s, -1))

	return float64(cyr)*2 - float64(lat)*0.2 - float64(noise)*6
}
