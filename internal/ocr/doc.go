// Package ocr abstracts text recognition over two engines: a local
// Tesseract instance (via gosseract/v2) and a remote cloud OCR proxy.
//
// # Local engine
//
// Tesseract must be installed on the system together with the language
// data for the configured languages:
//   - Ubuntu/Debian: apt-get install tesseract-ocr tesseract-ocr-rus
//   - macOS: brew install tesseract tesseract-lang
//
// The engine is configured for a single uniform text block with preserved
// inter-word spacing, which suits ingredient lists. When enhancement is
// enabled the adapter recognizes both a normal and a force-inverted
// preprocessed variant and keeps the candidate with the best text-quality
// score (see ScoreText).
//
// # Cloud engine
//
// The remote path downsizes the image, re-encodes it as JPEG and posts it
// base64-encoded to an OCR proxy (see internal/proxy for the server side
// of the contract). One request, bounded timeout, no silent retries.
//
// # Error taxonomy
//
//   - *EngineUnavailableError: local engine failed to initialize
//   - *UpstreamError: proxy returned a non-success status
//   - *TimeoutError: the remote call exceeded its deadline
//
// Empty recognized text is a valid, non-error outcome.
package ocr
