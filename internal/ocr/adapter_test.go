package ocr

import (
	"context"
	"encoding/json"
	"image"
	"net/http"
	"net/http/httptest"
	"testing"
)

// fakeEngine returns canned texts in sequence, recording the calls.
type fakeEngine struct {
	texts []string
	calls int
	langs [][]string
}

func (f *fakeEngine) Recognize(img image.Image, languages []string) (string, error) {
	f.langs = append(f.langs, languages)
	text := ""
	if f.calls < len(f.texts) {
		text = f.texts[f.calls]
	}
	f.calls++
	return text, nil
}

func (f *fakeEngine) Close() error { return nil }

func TestAdapter_KeepsBestVariant(t *testing.T) {
	// Garbled first variant, clean second: the adapter must keep the
	// higher-scoring second candidate.
	fake := &fakeEngine{texts: []string{"©®±§ мусор ©®±§", "Состав: вода, сахар, соль"}}
	a := &Adapter{local: fake, Score: ScoreText}

	text, err := a.Recognize(context.Background(), testImage(20, 20), Options{Enhance: true})
	if err != nil {
		t.Fatalf("Recognize failed: %v", err)
	}

	if text != "Состав: вода, сахар, соль" {
		t.Errorf("text = %q, want the clean candidate", text)
	}
	if fake.calls != 2 {
		t.Errorf("engine calls = %d, want 2 (normal + inverted variant)", fake.calls)
	}
}

func TestAdapter_SingleVariantWithoutEnhance(t *testing.T) {
	fake := &fakeEngine{texts: []string{"  Ingredients: water  "}}
	a := &Adapter{local: fake}

	text, err := a.Recognize(context.Background(), testImage(20, 20), Options{})
	if err != nil {
		t.Fatalf("Recognize failed: %v", err)
	}

	if text != "Ingredients: water" {
		t.Errorf("text = %q, want normalized single result", text)
	}
	if fake.calls != 1 {
		t.Errorf("engine calls = %d, want 1", fake.calls)
	}
}

func TestAdapter_DefaultLanguages(t *testing.T) {
	fake := &fakeEngine{texts: []string{"x"}}
	a := &Adapter{local: fake}

	if _, err := a.Recognize(context.Background(), testImage(8, 8), Options{}); err != nil {
		t.Fatalf("Recognize failed: %v", err)
	}

	if len(fake.langs) != 1 || len(fake.langs[0]) != 2 ||
		fake.langs[0][0] != "rus" || fake.langs[0][1] != "eng" {
		t.Errorf("languages = %v, want [rus eng]", fake.langs)
	}
}

func TestAdapter_EmptyTextIsValid(t *testing.T) {
	fake := &fakeEngine{texts: []string{""}}
	a := &Adapter{local: fake}

	text, err := a.Recognize(context.Background(), testImage(8, 8), Options{})
	if err != nil {
		t.Fatalf("empty recognition must not be an error, got %v", err)
	}
	if text != "" {
		t.Errorf("text = %q, want empty", text)
	}
}

func TestAdapter_NilImage(t *testing.T) {
	a := NewAdapter(nil)
	if _, err := a.Recognize(context.Background(), nil, Options{}); err == nil {
		t.Fatal("expected error for nil image")
	}
}

func TestAdapter_CloudMapsLanguages(t *testing.T) {
	var got recognizeRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		json.NewEncoder(w).Encode(recognizeResponse{Text: "ok"})
	}))
	defer srv.Close()

	a := NewAdapter(NewRemoteEngine(srv.URL))
	_, err := a.Recognize(context.Background(), testImage(8, 8), Options{
		Engine:    EngineCloud,
		Languages: []string{"rus", "eng"},
	})
	if err != nil {
		t.Fatalf("Recognize failed: %v", err)
	}

	if len(got.LanguageCodes) != 2 || got.LanguageCodes[0] != "ru" || got.LanguageCodes[1] != "en" {
		t.Errorf("languageCodes = %v, want [ru en]", got.LanguageCodes)
	}
}

func TestAdapter_ProgressReachesDone(t *testing.T) {
	fake := &fakeEngine{texts: []string{"text"}}
	a := &Adapter{local: fake}

	var fractions []float64
	_, err := a.Recognize(context.Background(), testImage(8, 8), Options{
		Progress: func(f float64, _ string) { fractions = append(fractions, f) },
	})
	if err != nil {
		t.Fatalf("Recognize failed: %v", err)
	}

	if len(fractions) == 0 || fractions[len(fractions)-1] != 1 {
		t.Errorf("progress fractions = %v, want final value 1", fractions)
	}
	for i := 1; i < len(fractions); i++ {
		if fractions[i] < fractions[i-1] {
			t.Errorf("progress went backwards: %v", fractions)
		}
	}
}
