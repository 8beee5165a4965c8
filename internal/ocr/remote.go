package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/disintegration/imaging"
)

const (
	// remoteMaxSide bounds the longest image side before upload; cloud
	// function payloads are limited to a few megabytes of JSON.
	remoteMaxSide = 1600

	// remoteJPEGQuality is the re-encode quality for uploads.
	remoteJPEGQuality = 86

	// upstreamBodyLimit truncates upstream error bodies in diagnostics.
	upstreamBodyLimit = 180

	// DefaultRemoteTimeout bounds one cloud OCR round trip.
	DefaultRemoteTimeout = 20 * time.Second
)

// recognizeRequest is the proxy's wire contract.
type recognizeRequest struct {
	Image         string   `json:"image"`
	MimeType      string   `json:"mimeType"`
	LanguageCodes []string `json:"languageCodes"`
	Model         string   `json:"model"`
}

// recognizeResponse is the proxy's success payload.
type recognizeResponse struct {
	Text string `json:"text"`
}

// RemoteEngine sends images to a cloud OCR proxy for recognition.
//
// The image is downsized and re-encoded as JPEG to respect payload limits,
// then submitted as a single base64-encoded POST. Failures are never
// retried; the caller re-triggers by user action.
type RemoteEngine struct {
	// Endpoint is the proxy URL. Required.
	Endpoint string

	// Model is the recognition model requested from the proxy.
	// Defaults to "page".
	Model string

	// Client is the HTTP client used for requests. Defaults to a client
	// with DefaultRemoteTimeout.
	Client *http.Client
}

// NewRemoteEngine creates a cloud OCR client for the given proxy endpoint.
func NewRemoteEngine(endpoint string) *RemoteEngine {
	return &RemoteEngine{
		Endpoint: endpoint,
		Model:    "page",
		Client:   &http.Client{Timeout: DefaultRemoteTimeout},
	}
}

// Recognize submits an image to the cloud proxy and returns the recognized
// text. Language codes use the proxy's short form ("ru", "en").
//
// Error mapping: a non-success HTTP status becomes *UpstreamError carrying
// the status and a truncated error body; a deadline or network timeout
// becomes *TimeoutError.
func (e *RemoteEngine) Recognize(ctx context.Context, img image.Image, languageCodes []string) (string, error) {
	if e.Endpoint == "" {
		return "", fmt.Errorf("cloud OCR endpoint is not configured")
	}

	fitted := imaging.Fit(img, remoteMaxSide, remoteMaxSide, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, fitted, imaging.JPEG, imaging.JPEGQuality(remoteJPEGQuality)); err != nil {
		return "", fmt.Errorf("failed to encode upload image: %w", err)
	}

	if len(languageCodes) == 0 {
		languageCodes = []string{"ru", "en"}
	}
	model := e.Model
	if model == "" {
		model = "page"
	}

	payload, err := json.Marshal(recognizeRequest{
		Image:         base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:      "JPEG",
		LanguageCodes: languageCodes,
		Model:         model,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := e.Client
	if client == nil {
		client = &http.Client{Timeout: DefaultRemoteTimeout}
	}

	resp, err := client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return "", &TimeoutError{Err: err}
		}
		return "", fmt.Errorf("cloud OCR request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, upstreamBodyLimit))
		return "", &UpstreamError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var out recognizeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", &UpstreamError{StatusCode: resp.StatusCode, Body: "malformed response body"}
	}

	return out.Text, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
