package ocr

import (
	"context"
	"fmt"
	"image"
	"sync"

	"github.com/labelspy/labelspy/internal/preprocess"
	"github.com/labelspy/labelspy/internal/textutil"
)

// Engine selects where recognition runs.
type Engine string

const (
	// EngineLocal runs Tesseract on this machine.
	EngineLocal Engine = "local"

	// EngineCloud sends the image to the configured OCR proxy.
	EngineCloud Engine = "cloud"
)

// Progress reports recognition progress to the caller: a 0..1 fraction plus
// a short status label. Callbacks are invoked synchronously from the
// recognizing goroutine and must be cheap.
type Progress func(fraction float64, status string)

// Options configures one recognition.
type Options struct {
	// Languages are Tesseract language codes ("rus", "eng"). For the
	// cloud engine they are mapped to short codes ("ru", "en").
	Languages []string

	// Engine selects local or cloud recognition. Defaults to EngineLocal.
	Engine Engine

	// Enhance enables preprocessing: recognition runs on a normal and a
	// force-inverted binarized variant and keeps the better-scoring text.
	// Without it, the raw image goes straight to the engine.
	Enhance bool

	// Progress receives status updates when non-nil.
	Progress Progress
}

// Adapter routes recognition through the local or cloud engine and picks
// the best candidate among preprocessed variants.
//
// The adapter owns the live engine handles; it is the explicit session
// context object a caller passes into pipeline operations. Recognitions
// are serialized: a second Recognize blocks until the first returns.
type Adapter struct {
	mu     sync.Mutex
	local  textRecognizer
	remote *RemoteEngine

	// Score rates candidate texts. Defaults to ScoreText.
	Score Scorer
}

// textRecognizer is the local-engine seam; satisfied by *LocalEngine.
type textRecognizer interface {
	Recognize(img image.Image, languages []string) (string, error)
	Close() error
}

// NewAdapter creates an adapter. remote may be nil when only local
// recognition is used.
func NewAdapter(remote *RemoteEngine) *Adapter {
	return &Adapter{
		local:  NewLocalEngine(),
		remote: remote,
		Score:  ScoreText,
	}
}

// Recognize extracts normalized text from a label photograph.
//
// Empty text is a valid result ("nothing found"). Errors follow the engine
// taxonomy: *EngineUnavailableError for a broken local installation,
// *UpstreamError / *TimeoutError from the cloud engine.
func (a *Adapter) Recognize(ctx context.Context, img image.Image, opts Options) (string, error) {
	if img == nil {
		return "", fmt.Errorf("no image provided")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if opts.Engine == EngineCloud {
		return a.recognizeCloud(ctx, img, opts)
	}
	return a.recognizeLocal(ctx, img, opts)
}

func (a *Adapter) recognizeLocal(ctx context.Context, img image.Image, opts Options) (string, error) {
	report := opts.Progress
	if report == nil {
		report = func(float64, string) {}
	}

	languages := opts.Languages
	if len(languages) == 0 {
		languages = []string{"rus", "eng"}
	}

	report(0.02, "preparing")

	var variants []image.Image
	if opts.Enhance {
		forceInvert := true
		auto, _ := preprocess.ForOCR(img, preprocess.DefaultOptions())
		inverted, _ := preprocess.ForOCR(img, preprocess.Options{
			Scale:       preprocess.DefaultOptions().Scale,
			Contrast:    preprocess.DefaultOptions().Contrast,
			ForceInvert: &forceInvert,
		})
		variants = []image.Image{auto, inverted}
	} else {
		variants = []image.Image{img}
	}

	score := a.Score
	if score == nil {
		score = ScoreText
	}

	bestText := ""
	bestScore := -1e9
	haveResult := false

	for i, variant := range variants {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		report(0.1+0.8*float64(i)/float64(len(variants)),
			fmt.Sprintf("recognizing %d/%d", i+1, len(variants)))

		raw, err := a.local.Recognize(variant, languages)
		if err != nil {
			return "", err
		}

		text := textutil.NormalizeSpaces(raw)
		if sc := score(text); !haveResult || sc > bestScore {
			bestText = text
			bestScore = sc
			haveResult = true
		}
	}

	report(1, "done")
	return bestText, nil
}

func (a *Adapter) recognizeCloud(ctx context.Context, img image.Image, opts Options) (string, error) {
	if a.remote == nil {
		return "", fmt.Errorf("cloud OCR endpoint is not configured")
	}

	report := opts.Progress
	if report == nil {
		report = func(float64, string) {}
	}

	report(0.02, "preparing")
	report(0.15, "uploading")

	text, err := a.remote.Recognize(ctx, img, shortLanguageCodes(opts.Languages))
	if err != nil {
		return "", err
	}

	report(1, "done")
	return textutil.NormalizeSpaces(text), nil
}

// shortLanguageCodes maps Tesseract language names to the two-letter codes
// the cloud proxy expects.
func shortLanguageCodes(languages []string) []string {
	if len(languages) == 0 {
		return []string{"ru", "en"}
	}
	out := make([]string, 0, len(languages))
	for _, l := range languages {
		switch l {
		case "rus":
			out = append(out, "ru")
		case "eng":
			out = append(out, "en")
		default:
			out = append(out, l)
		}
	}
	return out
}

// Close releases the adapter's local engine resources.
func (a *Adapter) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.local.Close()
}
