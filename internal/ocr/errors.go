package ocr

import "fmt"

// EngineUnavailableError reports that the local recognition engine could not
// be initialized (missing tesseract installation or language data). It is a
// fatal configuration problem, not a property of the input image.
type EngineUnavailableError struct {
	Err error
}

func (e *EngineUnavailableError) Error() string {
	return fmt.Sprintf("recognition engine unavailable: %v", e.Err)
}

func (e *EngineUnavailableError) Unwrap() error { return e.Err }

// UpstreamError reports a non-success HTTP status from the cloud OCR
// service. Body carries a truncated excerpt of the upstream error body for
// diagnostics.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("cloud OCR: HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("cloud OCR: HTTP %d. %s", e.StatusCode, e.Body)
}

// TimeoutError reports that the cloud OCR call exceeded its deadline. The
// call is never retried automatically; the caller decides whether to
// re-trigger.
type TimeoutError struct {
	Err error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("cloud OCR timed out: %v", e.Err)
}

func (e *TimeoutError) Unwrap() error { return e.Err }
