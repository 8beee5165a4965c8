// Package proxy implements the cloud OCR proxy: a small HTTP service that
// accepts a base64 image from the client, forwards it to the Vision OCR
// API with server-side credentials and returns the recognized plain text.
//
// Keeping the API key behind the proxy is the whole point: the client
// (CLI or web UI) never sees the upstream credentials. The contract is a
// single POST endpoint plus a CORS preflight; every other method is
// rejected.
package proxy

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// DefaultVisionURL is the Yandex Vision OCR endpoint.
const DefaultVisionURL = "https://ocr.api.cloud.yandex.net/ocr/v1/recognizeText"

// DefaultUpstreamTimeout bounds one Vision round trip.
const DefaultUpstreamTimeout = 20 * time.Second

// Server proxies OCR requests to the Vision API.
type Server struct {
	// APIKey authenticates against the Vision API. Required.
	APIKey string

	// VisionURL overrides the upstream endpoint; defaults to
	// DefaultVisionURL.
	VisionURL string

	// AllowedOrigins is the CORS allow-list. Empty means any origin.
	AllowedOrigins []string

	// DataLogging forwards the upstream data-logging opt-in; off by
	// default.
	DataLogging bool

	// Client is the HTTP client for upstream calls; defaults to one with
	// DefaultUpstreamTimeout.
	Client *http.Client
}

// request is the client-facing contract.
type request struct {
	Image         string   `json:"image"`
	MimeType      string   `json:"mimeType"`
	LanguageCodes []string `json:"languageCodes"`
	Model         string   `json:"model"`
}

// visionPayload is the upstream contract.
type visionPayload struct {
	MimeType      string   `json:"mimeType"`
	LanguageCodes []string `json:"languageCodes"`
	Model         string   `json:"model"`
	Content       string   `json:"content"`
}

// Handler builds the HTTP handler: POST / for recognition, OPTIONS / for
// CORS preflight, 405 for everything else.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(s.corsHeaders)

	r.Post("/", s.handleRecognize)
	r.Options("/", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"error": "Method Not Allowed"})
	})

	return r
}

// corsHeaders applies the allow-list policy to every response.
func (s *Server) corsHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		h := w.Header()
		h.Set("Access-Control-Allow-Methods", "POST,OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type")
		h.Set("Access-Control-Max-Age", "86400")

		if len(s.AllowedOrigins) == 0 || origin == "" {
			h.Set("Access-Control-Allow-Origin", "*")
		} else {
			h.Set("Vary", "Origin")
			allowed := s.AllowedOrigins[0]
			for _, o := range s.AllowedOrigins {
				if o == origin {
					allowed = origin
					break
				}
			}
			h.Set("Access-Control-Allow-Origin", allowed)
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleRecognize(w http.ResponseWriter, r *http.Request) {
	if s.APIKey == "" {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "vision API key is not set"})
		return
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Invalid JSON body"})
		return
	}

	image := strings.TrimSpace(req.Image)
	if image == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "image (base64) is required"})
		return
	}

	mimeType := strings.ToUpper(strings.TrimSpace(req.MimeType))
	if mimeType != "PNG" {
		mimeType = "JPEG"
	}
	languageCodes := req.LanguageCodes
	if len(languageCodes) == 0 {
		languageCodes = []string{"ru", "en"}
	}
	model := strings.TrimSpace(req.Model)
	if model == "" {
		model = "page"
	}

	status, body, err := s.callVision(r, visionPayload{
		MimeType:      mimeType,
		LanguageCodes: languageCodes,
		Model:         model,
		Content:       image,
	})
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]any{
			"error":   "Vision OCR request error",
			"details": err.Error(),
		})
		return
	}

	if status < 200 || status >= 300 {
		writeJSON(w, http.StatusBadGateway, map[string]any{
			"error":   "Vision OCR request failed",
			"status":  status,
			"details": detailsValue(body),
		})
		return
	}

	var vr visionResponse
	if err := json.Unmarshal(body, &vr); err != nil {
		// An unparseable success body still counts as "no text found".
		writeJSON(w, http.StatusOK, map[string]any{"text": ""})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"text": extractText(&vr)})
}

// callVision forwards the payload upstream and returns the raw response.
func (s *Server) callVision(r *http.Request, payload visionPayload) (int, []byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to marshal upstream payload: %w", err)
	}

	url := s.VisionURL
	if url == "" {
		url = DefaultVisionURL
	}

	upReq, err := http.NewRequestWithContext(r.Context(), http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return 0, nil, fmt.Errorf("failed to build upstream request: %w", err)
	}
	upReq.Header.Set("Content-Type", "application/json")
	upReq.Header.Set("Authorization", "Api-Key "+s.APIKey)
	upReq.Header.Set("x-data-logging-enabled", fmt.Sprintf("%t", s.DataLogging))

	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: DefaultUpstreamTimeout}
	}

	resp, err := client.Do(upReq)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read upstream response: %w", err)
	}
	return resp.StatusCode, body, nil
}

// detailsValue forwards the upstream error body as JSON when it parses,
// raw text otherwise.
func detailsValue(body []byte) any {
	var parsed any
	if err := json.Unmarshal(body, &parsed); err == nil {
		return parsed
	}
	return string(body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
