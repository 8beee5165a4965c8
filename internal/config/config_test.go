package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	oldwd, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(oldwd)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.OCR.Engine != "local" {
		t.Errorf("engine = %q, want local", cfg.OCR.Engine)
	}
	if len(cfg.OCR.Languages) != 2 || cfg.OCR.Languages[0] != "rus" || cfg.OCR.Languages[1] != "eng" {
		t.Errorf("languages = %v, want [rus eng]", cfg.OCR.Languages)
	}
	if !cfg.OCR.Enhance {
		t.Error("enhance should default to true")
	}
	if cfg.OCR.Timeout != 20*time.Second {
		t.Errorf("timeout = %v, want 20s", cfg.OCR.Timeout)
	}
	if cfg.Proxy.Listen != ":8080" {
		t.Errorf("listen = %q, want :8080", cfg.Proxy.Listen)
	}
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
ocr:
  engine: cloud
  endpoint: https://proxy.example/recognize
  enhance: false
proxy:
  listen: 127.0.0.1:9000
  allowed_origins:
    - https://labelspy.example
additives_path: /data/additives.json
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.OCR.Engine != "cloud" {
		t.Errorf("engine = %q, want cloud", cfg.OCR.Engine)
	}
	if cfg.OCR.Endpoint != "https://proxy.example/recognize" {
		t.Errorf("endpoint = %q", cfg.OCR.Endpoint)
	}
	if cfg.OCR.Enhance {
		t.Error("enhance should be false")
	}
	if cfg.Proxy.Listen != "127.0.0.1:9000" {
		t.Errorf("listen = %q", cfg.Proxy.Listen)
	}
	if len(cfg.Proxy.AllowedOrigins) != 1 || cfg.Proxy.AllowedOrigins[0] != "https://labelspy.example" {
		t.Errorf("allowed origins = %v", cfg.Proxy.AllowedOrigins)
	}
	if cfg.AdditivesPath != "/data/additives.json" {
		t.Errorf("additives path = %q", cfg.AdditivesPath)
	}
	// Untouched keys keep their defaults.
	if cfg.OCR.Model != "page" {
		t.Errorf("model = %q, want page", cfg.OCR.Model)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("LABELSPY_OCR_ENGINE", "cloud")
	t.Setenv("LABELSPY_PROXY_API_KEY", "secret")

	dir := t.TempDir()
	oldwd, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(oldwd)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.OCR.Engine != "cloud" {
		t.Errorf("engine = %q, want cloud from env", cfg.OCR.Engine)
	}
	if cfg.Proxy.APIKey != "secret" {
		t.Errorf("api key = %q, want secret from env", cfg.Proxy.APIKey)
	}
}
