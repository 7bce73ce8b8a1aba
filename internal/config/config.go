// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

// EnvPrefix prefixes every environment variable read by ApplyEnv.
const EnvPrefix = "PORTFOLIO_"

// Config is the site configuration. It can be loaded from a JSON file and
// overridden from the environment; missing values use Defaults.
type Config struct {
	// Server
	Addr          string `json:"addr,omitempty"           env:"ADDR"           validate:"omitempty,hostname_port"`
	SecureCookies bool   `json:"secure_cookies,omitempty" env:"SECURE_COOKIES"`

	// Content
	Translations    string `json:"translations,omitempty"     env:"TRANSLATIONS"`                                          // Path or URL of the translation file; empty uses the embedded one
	DefaultLanguage string `json:"default_language,omitempty" env:"DEFAULT_LANGUAGE" validate:"omitempty,bcp47_language_tag"` // Language used when nothing else selects one
	PrefsFile       string `json:"prefs_file,omitempty"       env:"PREFS_FILE"`                                            // CLI preference file
	CVBaseName      string `json:"cv_base_name,omitempty"     env:"CV_BASE_NAME"     validate:"omitempty,excludesall=/\\"`

	// Behavior
	SubmitDelayMS     int     `json:"submit_delay_ms,omitempty"     env:"SUBMIT_DELAY_MS"     validate:"gte=0,lte=60000"`
	PDFTimeoutSeconds int     `json:"pdf_timeout_seconds,omitempty" env:"PDF_TIMEOUT_SECONDS" validate:"gte=0,lte=600"`
	ChromePath        string  `json:"chrome_path,omitempty"         env:"CHROME_PATH"`
	RateLimitRPS      float64 `json:"rate_limit_rps,omitempty"      env:"RATE_LIMIT_RPS"      validate:"gte=0"`
	RateLimitBurst    int     `json:"rate_limit_burst,omitempty"    env:"RATE_LIMIT_BURST"    validate:"gte=0"`

	// Logging
	LogLevel   string `json:"log_level,omitempty"   env:"LOG_LEVEL"   validate:"omitempty,oneof=debug info warn warning error"`
	LogColored bool   `json:"log_colored,omitempty" env:"LOG_COLORED"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Addr:              ":8080",
		DefaultLanguage:   "en",
		PrefsFile:         ".portfolio-prefs.json",
		CVBaseName:        "Moussaab_Boucetta",
		SubmitDelayMS:     2000,
		PDFTimeoutSeconds: 30,
		RateLimitRPS:      1,
		RateLimitBurst:    5,
		LogLevel:          "info",
	}
}

// SubmitDelay returns the simulated submission delay.
func (c *Config) SubmitDelay() time.Duration {
	return time.Duration(c.SubmitDelayMS) * time.Millisecond
}

// PDFTimeout returns the headless browser timeout.
func (c *Config) PDFTimeout() time.Duration {
	return time.Duration(c.PDFTimeoutSeconds) * time.Second
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// ApplyEnv overrides fields from PORTFOLIO_* environment variables.
// Variables that are not set leave the field untouched.
func (c *Config) ApplyEnv() error {
	if err := env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}
	return nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks that the configuration has valid values.
// It doesn't require any field; required values are checked after merging.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if c.Translations != "" && !isURL(c.Translations) {
		if _, err := os.Stat(c.Translations); os.IsNotExist(err) {
			return fmt.Errorf("config error: translations file not found: %s", c.Translations)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Addr == "" {
		result.Addr = defaults.Addr
	}
	if result.Translations == "" {
		result.Translations = defaults.Translations
	}
	if result.DefaultLanguage == "" {
		result.DefaultLanguage = defaults.DefaultLanguage
	}
	if result.PrefsFile == "" {
		result.PrefsFile = defaults.PrefsFile
	}
	if result.CVBaseName == "" {
		result.CVBaseName = defaults.CVBaseName
	}
	if result.ChromePath == "" {
		result.ChromePath = defaults.ChromePath
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}

	if result.SubmitDelayMS == 0 {
		result.SubmitDelayMS = defaults.SubmitDelayMS
	}
	if result.PDFTimeoutSeconds == 0 {
		result.PDFTimeoutSeconds = defaults.PDFTimeoutSeconds
	}
	if result.RateLimitRPS == 0 {
		result.RateLimitRPS = defaults.RateLimitRPS
	}
	if result.RateLimitBurst == 0 {
		result.RateLimitBurst = defaults.RateLimitBurst
	}

	// Bool fields: cannot distinguish unset from false, so flags and env win.

	return result
}

// Load builds the effective configuration: the optional JSON file, then the
// environment, then Defaults for anything still empty.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	merged := cfg.MergeWithDefaults(Defaults())
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
