// Package analyze implements the heuristic classification of recognized
// label text: locating the composition block, tokenizing ingredients,
// extracting additive codes, matching allergen / hidden-sugar / enhancer
// keyword tables, banding nutrient values against traffic-light thresholds
// and aggregating everything into an overall verdict.
//
// Every function here is pure, deterministic and total over its input:
// absence of matches is a valid outcome, never an error. Analysis results
// are immutable; recomputing with edited nutrient values produces a new
// Result rather than mutating the old one.
//
// The heuristics are a best-effort assistant, not a certified food-safety
// analyzer.
package analyze
