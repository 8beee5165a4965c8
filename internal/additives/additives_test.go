package additives

import (
	"os"
	"path/filepath"
	"testing"
)

func writeDB(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "e_additives.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test db: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeDB(t, `{
		"E330": {"name_ru": "Лимонная кислота", "function_ru": "регулятор кислотности", "attention": "низкий"},
		"e211": {"name": "Sodium benzoate", "type": "preservative", "risk": "high"},
		"E621": {"title": "Глутамат натрия", "category": "усилитель вкуса", "attention": "средний"}
	}`)

	db, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if db.Len() != 3 {
		t.Fatalf("Len = %d, want 3", db.Len())
	}

	tests := []struct {
		code      string
		wantName  string
		wantAtt   Attention
		wantFound bool
	}{
		{"E330", "Лимонная кислота", AttentionLow, true},
		{"e330", "Лимонная кислота", AttentionLow, true}, // case-folded lookup
		{"E211", "Sodium benzoate", AttentionHigh, true}, // case-folded key
		{"E621", "Глутамат натрия", AttentionMedium, true},
		{"E999", "", AttentionUnspecified, false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			info, ok := db.Lookup(tt.code)
			if ok != tt.wantFound {
				t.Fatalf("found = %v, want %v", ok, tt.wantFound)
			}
			if info.Name != tt.wantName {
				t.Errorf("name = %q, want %q", info.Name, tt.wantName)
			}
			if info.Attention != tt.wantAtt {
				t.Errorf("attention = %s, want %s", info.Attention, tt.wantAtt)
			}
		})
	}
}

func TestLoad_DegradesToEmpty(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
	}{
		{"missing file", func(t *testing.T) string {
			return filepath.Join(t.TempDir(), "nope.json")
		}},
		{"malformed json", func(t *testing.T) string {
			return writeDB(t, "{not json")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, err := Load(tt.path(t))
			if err == nil {
				t.Error("expected a load error for logging")
			}
			if db == nil {
				t.Fatal("db must never be nil")
			}
			if db.Len() != 0 {
				t.Errorf("Len = %d, want 0", db.Len())
			}
			// Lookups still work on the empty database.
			info, ok := db.Lookup("E330")
			if ok {
				t.Error("unexpected hit in empty db")
			}
			if info.Attention != AttentionUnspecified {
				t.Errorf("attention = %s, want unspecified", info.Attention)
			}
		})
	}
}

func TestParseAttention(t *testing.T) {
	tests := []struct {
		in   string
		want Attention
	}{
		{"высокий", AttentionHigh},
		{"high", AttentionHigh},
		{"средний", AttentionMedium},
		{"medium", AttentionMedium},
		{"низкий", AttentionLow},
		{"LOW", AttentionLow},
		{"", AttentionUnspecified},
		{"что-то ещё", AttentionUnspecified},
	}

	for _, tt := range tests {
		if got := ParseAttention(tt.in); got != tt.want {
			t.Errorf("ParseAttention(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
