package ocr

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"strings"
	"sync"

	"github.com/otiai10/gosseract/v2"
)

// LocalEngine runs text recognition through an embedded Tesseract instance.
//
// The underlying client is created lazily on first use and kept alive
// across recognitions; changing the language set tears the old client down
// completely before a new one is initialized. Only one recognition runs at
// a time per engine: all calls are serialized by an internal mutex.
type LocalEngine struct {
	mu     sync.Mutex
	client *gosseract.Client
	langs  string
}

// NewLocalEngine creates an engine without initializing Tesseract yet.
// Initialization errors surface on the first Recognize call.
func NewLocalEngine() *LocalEngine {
	return &LocalEngine{}
}

// ensureClient returns a client configured for the given languages,
// recreating it when the language set changed.
func (e *LocalEngine) ensureClient(languages []string) (*gosseract.Client, error) {
	key := strings.Join(languages, "+")
	if e.client != nil && e.langs == key {
		return e.client, nil
	}

	if e.client != nil {
		if err := e.client.Close(); err != nil {
			return nil, fmt.Errorf("failed to tear down previous engine: %w", err)
		}
		e.client = nil
		e.langs = ""
	}

	client := gosseract.NewClient()

	if err := client.SetLanguage(languages...); err != nil {
		client.Close()
		return nil, &EngineUnavailableError{Err: fmt.Errorf("failed to set language %q: %w", key, err)}
	}

	// Ingredient lists are a single uniform block of text; preserving
	// inter-word spacing keeps comma-separated phrases intact.
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK); err != nil {
		client.Close()
		return nil, &EngineUnavailableError{Err: fmt.Errorf("failed to set page segmentation mode: %w", err)}
	}
	if err := client.SetVariable("preserve_interword_spaces", "1"); err != nil {
		client.Close()
		return nil, &EngineUnavailableError{Err: fmt.Errorf("failed to set engine variable: %w", err)}
	}

	e.client = client
	e.langs = key
	return client, nil
}

// Recognize extracts text from an in-memory image.
//
// Empty recognized text is a valid result meaning "nothing found", not an
// error. Engine initialization failures are returned as
// *EngineUnavailableError.
func (e *LocalEngine) Recognize(img image.Image, languages []string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	client, err := e.ensureClient(languages)
	if err != nil {
		return "", err
	}

	// Tesseract needs a file path; round-trip through a temporary PNG.
	tmpFile, err := os.CreateTemp("", "labelspy-ocr-*.png")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	if err := png.Encode(tmpFile, img); err != nil {
		tmpFile.Close()
		return "", fmt.Errorf("failed to encode temp image: %w", err)
	}
	tmpFile.Close()

	if err := client.SetImage(tmpPath); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}

	return text, nil
}

// Close releases the Tesseract client. The engine can be reused afterwards;
// the next Recognize call re-initializes it.
func (e *LocalEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.client == nil {
		return nil
	}
	err := e.client.Close()
	e.client = nil
	e.langs = ""
	return err
}

// Version returns the Tesseract version string, or an error when the
// engine is unavailable on this system.
func Version() (string, error) {
	client := gosseract.NewClient()
	defer client.Close()
	v := client.Version()
	if v == "" {
		return "", &EngineUnavailableError{Err: fmt.Errorf("tesseract not detected")}
	}
	return v, nil
}
