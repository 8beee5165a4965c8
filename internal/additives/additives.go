// Package additives provides the reference database of food-additive
// codes: localized name, functional category and attention level per
// E-number. The data ships as a flat JSON file loaded once at startup;
// missing or unreadable data degrades to an empty database so that
// detection keeps working and display falls back to "unknown" per code.
package additives

import (
	"encoding/json"
	"os"
	"strings"
)

// Attention is the risk/attention level assigned to an additive.
type Attention string

const (
	AttentionLow         Attention = "low"
	AttentionMedium      Attention = "medium"
	AttentionHigh        Attention = "high"
	AttentionUnspecified Attention = "unspecified"
)

// ParseAttention folds the free-form attention spellings found in the
// data files (Russian and English) to a canonical level.
func ParseAttention(s string) Attention {
	v := strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.Contains(v, "выс") || strings.Contains(v, "high"):
		return AttentionHigh
	case strings.Contains(v, "сред") || strings.Contains(v, "med"):
		return AttentionMedium
	case strings.Contains(v, "низ") || strings.Contains(v, "low"):
		return AttentionLow
	default:
		return AttentionUnspecified
	}
}

// record mirrors one entry of the JSON data file. Field names vary across
// data revisions, so several aliases are accepted per attribute.
type record struct {
	NameRU     string `json:"name_ru"`
	Name       string `json:"name"`
	Title      string `json:"title"`
	FunctionRU string `json:"function_ru"`
	Type       string `json:"type"`
	Category   string `json:"category"`
	Attention  string `json:"attention"`
	Risk       string `json:"risk"`
}

// Info describes one additive code.
type Info struct {
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Attention Attention `json:"attention"`
}

// DB is a read-only mapping from canonical additive code to its Info.
type DB struct {
	entries map[string]Info
}

// Load reads the additive database from a JSON file keyed by additive
// code. Any error (missing file, malformed JSON) yields an empty database
// and the error for logging; the empty database is fully usable.
func Load(path string) (*DB, error) {
	db := &DB{entries: map[string]Info{}}

	data, err := os.ReadFile(path)
	if err != nil {
		return db, err
	}

	var raw map[string]record
	if err := json.Unmarshal(data, &raw); err != nil {
		return db, err
	}

	for code, r := range raw {
		key := strings.ToUpper(strings.TrimSpace(code))
		name := firstNonEmpty(r.NameRU, r.Name, r.Title)
		category := firstNonEmpty(r.FunctionRU, r.Type, r.Category)
		db.entries[key] = Info{
			Code:      key,
			Name:      name,
			Category:  category,
			Attention: ParseAttention(firstNonEmpty(r.Attention, r.Risk)),
		}
	}
	return db, nil
}

// Lookup returns the Info for a canonical additive code. Unknown codes
// report ok=false together with a placeholder Info carrying the code and
// an unspecified attention level.
func (db *DB) Lookup(code string) (Info, bool) {
	key := strings.ToUpper(strings.TrimSpace(code))
	if info, ok := db.entries[key]; ok {
		return info, true
	}
	return Info{Code: key, Attention: AttentionUnspecified}, false
}

// Len reports the number of known additive codes.
func (db *DB) Len() int { return len(db.entries) }

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
