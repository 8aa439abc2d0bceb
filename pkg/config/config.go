// Package config loads figmatest settings from defaults, an optional YAML
// file, a .env file and the environment, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables read by Load.
const (
	EnvFigmaToken     = "FIGMA_TOKEN"
	EnvFigmaBaseURL   = "FIGMA_BASE_URL"
	EnvMistralAPIKey  = "MISTRAL_API_KEY"
	EnvMistralBaseURL = "MISTRAL_BASE_URL"
	EnvMistralModel   = "MISTRAL_MODEL"
	EnvAddr           = "FIGMATEST_ADDR"
	EnvLogLevel       = "FIGMATEST_LOG_LEVEL"
)

// Placeholder credentials that count as unconfigured.
const (
	PlaceholderFigmaToken = "demo_token"
	PlaceholderMistralKey = "demo_key"
)

// Config is the full process configuration.
type Config struct {
	Figma    FigmaConfig    `yaml:"figma"    json:"figma"`
	Mistral  MistralConfig  `yaml:"mistral"  json:"mistral"`
	Server   ServerConfig   `yaml:"server"   json:"server"`
	Log      LogConfig      `yaml:"log"      json:"log"`
	Generate GenerateConfig `yaml:"generate" json:"generate"`
}

// FigmaConfig configures the design-file API client.
type FigmaConfig struct {
	Token          string `yaml:"token,omitempty"           json:"token,omitempty"`
	BaseURL        string `yaml:"base_url,omitempty"        json:"base_url,omitempty"        jsonschema:"format=uri"`
	TimeoutSeconds int    `yaml:"timeout_seconds,omitempty" json:"timeout_seconds,omitempty" jsonschema:"minimum=1,maximum=600"`
}

// MistralConfig configures the chat-completion client.
type MistralConfig struct {
	APIKey         string `yaml:"api_key,omitempty"         json:"api_key,omitempty"`
	BaseURL        string `yaml:"base_url,omitempty"        json:"base_url,omitempty"        jsonschema:"format=uri"`
	Model          string `yaml:"model,omitempty"           json:"model,omitempty"`
	TimeoutSeconds int    `yaml:"timeout_seconds,omitempty" json:"timeout_seconds,omitempty" jsonschema:"minimum=1,maximum=600"`
	Attempts       int    `yaml:"attempts,omitempty"        json:"attempts,omitempty"        jsonschema:"minimum=1,maximum=10"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr string `yaml:"addr,omitempty" json:"addr,omitempty"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level       string `yaml:"level,omitempty"       json:"level,omitempty"       jsonschema:"enum=debug,enum=info,enum=warn,enum=error"`
	Development bool   `yaml:"development,omitempty" json:"development,omitempty"`
}

// GenerateConfig holds generation defaults.
type GenerateConfig struct {
	Mode string `yaml:"mode,omitempty" json:"mode,omitempty" jsonschema:"enum=fixed,enum=adaptive,enum=ai"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Figma: FigmaConfig{
			BaseURL:        "https://api.figma.com/v1",
			TimeoutSeconds: 30,
		},
		Mistral: MistralConfig{
			BaseURL:        "https://api.mistral.ai/v1",
			Model:          "mistral-large-latest",
			TimeoutSeconds: 60,
			Attempts:       3,
		},
		Server:   ServerConfig{Addr: ":5000"},
		Log:      LogConfig{Level: "info"},
		Generate: GenerateConfig{Mode: "fixed"},
	}
}

// Options controls where Load looks for configuration.
type Options struct {
	// Path is an optional YAML file. Empty skips the file layer.
	Path string
	// EnvFile is a dotenv file; a missing file is ignored. Empty skips it.
	EnvFile string
}

// Load builds a Config from defaults, the YAML file, the dotenv file and
// the environment. Variables already set in the environment are never
// overridden by the dotenv file.
func Load(opts Options) (*Config, error) {
	cfg := Default()

	if opts.Path != "" {
		f, err := os.Open(opts.Path)
		if err != nil {
			return nil, fmt.Errorf("open config: %w", err)
		}
		defer f.Close()
		if err := decodeInto(f, cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", opts.Path, err)
		}
	}

	if opts.EnvFile != "" {
		if err := godotenv.Load(opts.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", opts.EnvFile, err)
		}
	}

	cfg.applyEnv(os.LookupEnv)
	return cfg, nil
}

// Decode reads YAML from r over the defaults with strict unknown-field
// rejection, then checks the result against the JSON Schema.
func Decode(r io.Reader) (*Config, error) {
	cfg := Default()
	if err := decodeInto(r, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decodeInto(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode config: %w", err)
	}
	if errs := ValidateSchema(cfg); len(errs) > 0 {
		return errs[0]
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	set := func(dst *string, key string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	set(&c.Figma.Token, EnvFigmaToken)
	set(&c.Figma.BaseURL, EnvFigmaBaseURL)
	set(&c.Mistral.APIKey, EnvMistralAPIKey)
	set(&c.Mistral.BaseURL, EnvMistralBaseURL)
	set(&c.Mistral.Model, EnvMistralModel)
	set(&c.Server.Addr, EnvAddr)
	set(&c.Log.Level, EnvLogLevel)
}

// FigmaConfigured reports whether a real design-file token is set.
func (c *Config) FigmaConfigured() bool {
	return c.Figma.Token != "" && c.Figma.Token != PlaceholderFigmaToken
}

// MistralConfigured reports whether a real completion API key is set.
func (c *Config) MistralConfigured() bool {
	return c.Mistral.APIKey != "" && c.Mistral.APIKey != PlaceholderMistralKey
}

// Validate checks the configuration against the schema and reports
// unusable values as errors and missing credentials as warnings.
func (c *Config) Validate() []*ValidationError {
	errs := ValidateSchema(c)
	if strings.TrimSpace(c.Server.Addr) == "" {
		errs = append(errs, &ValidationError{Path: "server/addr", Message: "listen address is empty", Severity: "error"})
	}
	if !c.FigmaConfigured() {
		errs = append(errs, &ValidationError{
			Path:     "figma/token",
			Message:  fmt.Sprintf("%s is not set; design files cannot be fetched", EnvFigmaToken),
			Severity: "warning",
		})
	}
	if !c.MistralConfigured() {
		errs = append(errs, &ValidationError{
			Path:     "mistral/api_key",
			Message:  fmt.Sprintf("%s is not set; ai mode will fall back to adaptive", EnvMistralAPIKey),
			Severity: "warning",
		})
	}
	return errs
}

// Redacted returns a copy with secrets masked for display.
func (c *Config) Redacted() *Config {
	out := *c
	out.Figma.Token = mask(c.Figma.Token)
	out.Mistral.APIKey = mask(c.Mistral.APIKey)
	return &out
}

const maskPrefix = 20

func mask(secret string) string {
	switch {
	case secret == "":
		return ""
	case len(secret) > maskPrefix:
		return secret[:maskPrefix] + "..."
	default:
		return "***"
	}
}
