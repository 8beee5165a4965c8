// Package config loads runtime settings for the labelspy CLI and proxy.
//
// Settings come from three layers, later layers winning: built-in
// defaults, an optional YAML config file, and LABELSPY_* environment
// variables (dots replaced by underscores, e.g. LABELSPY_OCR_ENGINE).
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// OCR selects engine and recognition behavior.
type OCR struct {
	// Engine is "local" (tesseract) or "cloud" (proxy-backed).
	Engine string `mapstructure:"engine"`

	// Languages are tesseract language codes, e.g. rus, eng.
	Languages []string `mapstructure:"languages"`

	// Enhance runs the extra inverted preprocessing pass and keeps the
	// better-scoring result.
	Enhance bool `mapstructure:"enhance"`

	// Endpoint is the cloud proxy URL; required for the cloud engine.
	Endpoint string `mapstructure:"endpoint"`

	// Model is the cloud recognition model.
	Model string `mapstructure:"model"`

	// Timeout bounds one cloud recognition round trip.
	Timeout time.Duration `mapstructure:"timeout"`
}

// Proxy configures the server started by `labelspy proxy`.
type Proxy struct {
	// Listen is the host:port the proxy binds to.
	Listen string `mapstructure:"listen"`

	// APIKey authenticates against the Vision API. Never sent to
	// clients.
	APIKey string `mapstructure:"api_key"`

	// VisionURL overrides the upstream Vision endpoint.
	VisionURL string `mapstructure:"vision_url"`

	// AllowedOrigins is the CORS allow-list; empty allows any origin.
	AllowedOrigins []string `mapstructure:"allowed_origins"`

	// DataLogging opts in to upstream request logging.
	DataLogging bool `mapstructure:"data_logging"`
}

// Config is the root of the settings tree.
type Config struct {
	OCR   OCR   `mapstructure:"ocr"`
	Proxy Proxy `mapstructure:"proxy"`

	// AdditivesPath points at the E-code reference JSON. Empty runs
	// with an empty additive database.
	AdditivesPath string `mapstructure:"additives_path"`

	// HistoryPath is the scan history JSON file.
	HistoryPath string `mapstructure:"history_path"`
}

// Load reads configuration from the given file, or from config.yaml in
// the working directory when path is empty. A missing file is fine; the
// defaults and environment still apply.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("LABELSPY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// Every key gets a default so that environment overrides are visible to
// Unmarshal; viper only resolves env vars for keys it already knows.
func setDefaults(v *viper.Viper) {
	v.SetDefault("ocr.engine", "local")
	v.SetDefault("ocr.languages", []string{"rus", "eng"})
	v.SetDefault("ocr.enhance", true)
	v.SetDefault("ocr.endpoint", "")
	v.SetDefault("ocr.model", "page")
	v.SetDefault("ocr.timeout", 20*time.Second)
	v.SetDefault("proxy.listen", ":8080")
	v.SetDefault("proxy.api_key", "")
	v.SetDefault("proxy.vision_url", "")
	v.SetDefault("proxy.allowed_origins", []string{})
	v.SetDefault("proxy.data_logging", false)
	v.SetDefault("additives_path", "")
	v.SetDefault("history_path", "labelspy-history.json")
}
