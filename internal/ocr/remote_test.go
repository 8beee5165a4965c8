package ocr

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func testImage(w, h int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{200, 200, 200, 255})
		}
	}
	return img
}

func TestRemoteEngine_Recognize(t *testing.T) {
	var got recognizeRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q, want application/json", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		json.NewEncoder(w).Encode(recognizeResponse{Text: "Состав: вода, соль"})
	}))
	defer srv.Close()

	engine := NewRemoteEngine(srv.URL)
	text, err := engine.Recognize(context.Background(), testImage(10, 10), []string{"ru", "en"})
	if err != nil {
		t.Fatalf("Recognize failed: %v", err)
	}

	if text != "Состав: вода, соль" {
		t.Errorf("text = %q", text)
	}
	if got.MimeType != "JPEG" {
		t.Errorf("mimeType = %q, want JPEG", got.MimeType)
	}
	if got.Model != "page" {
		t.Errorf("model = %q, want page", got.Model)
	}
	if len(got.LanguageCodes) != 2 || got.LanguageCodes[0] != "ru" {
		t.Errorf("languageCodes = %v", got.LanguageCodes)
	}
	if _, err := base64.StdEncoding.DecodeString(got.Image); err != nil {
		t.Errorf("image is not valid base64: %v", err)
	}
}

func TestRemoteEngine_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"error":"Vision OCR request failed","status":429,"details":"` + strings.Repeat("x", 400) + `"}`))
	}))
	defer srv.Close()

	engine := NewRemoteEngine(srv.URL)
	_, err := engine.Recognize(context.Background(), testImage(10, 10), nil)

	var upErr *UpstreamError
	if !errors.As(err, &upErr) {
		t.Fatalf("error = %v (%T), want *UpstreamError", err, err)
	}
	if upErr.StatusCode != http.StatusBadGateway {
		t.Errorf("StatusCode = %d, want 502", upErr.StatusCode)
	}
	if len(upErr.Body) > upstreamBodyLimit {
		t.Errorf("Body length = %d, want <= %d (truncated)", len(upErr.Body), upstreamBodyLimit)
	}
}

func TestRemoteEngine_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	engine := NewRemoteEngine(srv.URL)
	engine.Client = &http.Client{Timeout: 20 * time.Millisecond}

	_, err := engine.Recognize(context.Background(), testImage(10, 10), nil)

	var toErr *TimeoutError
	if !errors.As(err, &toErr) {
		t.Fatalf("error = %v (%T), want *TimeoutError", err, err)
	}
}

func TestRemoteEngine_NoEndpoint(t *testing.T) {
	engine := &RemoteEngine{}
	if _, err := engine.Recognize(context.Background(), testImage(4, 4), nil); err == nil {
		t.Fatal("expected error for missing endpoint")
	}
}

func TestRemoteEngine_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json at all"))
	}))
	defer srv.Close()

	engine := NewRemoteEngine(srv.URL)
	_, err := engine.Recognize(context.Background(), testImage(10, 10), nil)

	var upErr *UpstreamError
	if !errors.As(err, &upErr) {
		t.Fatalf("error = %v (%T), want *UpstreamError", err, err)
	}
}
