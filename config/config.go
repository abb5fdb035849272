// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ByLCY/cvpress/layout"
)

// AllTemplates selects every template variant in one run.
const AllTemplates = "all"

// Renderer backends.
const (
	RendererCanvas = "canvas"
	RendererFPDF   = "fpdf"
)

// EnvPrefix is the prefix of environment overrides, e.g. CVPRESS_TEMPLATE.
const EnvPrefix = "CVPRESS_"

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	Input  string `json:"input,omitempty"`   // Resume file (.json or .cv)
	OutDir string `json:"out_dir,omitempty"` // Output directory
	Debug  string `json:"debug,omitempty"`   // Layout debug JSON path

	// Layout
	Template        string   `json:"template,omitempty"`         // Template key or "all"
	Renderer        string   `json:"renderer,omitempty"`         // canvas | fpdf
	PageSize        string   `json:"page_size,omitempty"`        // A4 | A5 | LETTER
	Landscape       bool     `json:"landscape,omitempty"`        // Swap page width and height
	Margin          []string `json:"margin,omitempty"`           // CSS-like margin lengths
	FilenamePattern string   `json:"filename_pattern,omitempty"` // ${name}, ${template}, ${ext}

	// Behavior
	Strict  bool `json:"strict,omitempty"`  // Reject documents that fail completeness checks
	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		OutDir:          "output",
		Template:        layout.SingleColumnLeft.String(),
		Renderer:        RendererCanvas,
		PageSize:        "A4",
		Margin:          []string{"15mm"},
		FilenamePattern: layout.DefaultFilenamePattern,
	}
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

// FromEnv reads CVPRESS_* overrides through getenv (os.Getenv in production).
// CVPRESS_MARGIN accepts values separated by spaces or commas.
func FromEnv(getenv func(string) string) Config {
	get := func(key string) string { return strings.TrimSpace(getenv(EnvPrefix + key)) }
	cfg := Config{
		Input:           get("INPUT"),
		OutDir:          get("OUT_DIR"),
		Debug:           get("DEBUG"),
		Template:        get("TEMPLATE"),
		Renderer:        get("RENDERER"),
		PageSize:        get("PAGE_SIZE"),
		FilenamePattern: get("FILENAME_PATTERN"),
		Landscape:       truthy(get("LANDSCAPE")),
		Strict:          truthy(get("STRICT")),
		Verbose:         truthy(get("VERBOSE")),
	}
	if m := get("MARGIN"); m != "" {
		cfg.Margin = strings.FieldsFunc(m, func(r rune) bool { return r == ',' || r == ' ' })
	}
	return cfg
}

func truthy(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	switch c.Renderer {
	case "", RendererCanvas, RendererFPDF:
	default:
		return fmt.Errorf("config error: unknown renderer %q (want %s or %s)", c.Renderer, RendererCanvas, RendererFPDF)
	}

	if c.Template != "" && c.Template != AllTemplates {
		if _, err := layout.ParseVariant(c.Template); err != nil {
			return fmt.Errorf("config error: %w", err)
		}
	}

	if strings.ContainsAny(c.FilenamePattern, `/\`) {
		return fmt.Errorf("config error: 'filename_pattern' must not contain path separators")
	}

	if c.PageSize != "" || len(c.Margin) > 0 {
		if _, err := c.PageSpec(); err != nil {
			return fmt.Errorf("config error: %w", err)
		}
	}

	if c.Input != "" {
		if _, err := os.Stat(c.Input); os.IsNotExist(err) {
			return fmt.Errorf("config error: input file not found: %s", c.Input)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to layer flags over env over config file over built-in defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Input == "" {
		result.Input = defaults.Input
	}
	if result.OutDir == "" {
		result.OutDir = defaults.OutDir
	}
	if result.Debug == "" {
		result.Debug = defaults.Debug
	}
	if result.Template == "" {
		result.Template = defaults.Template
	}
	if result.Renderer == "" {
		result.Renderer = defaults.Renderer
	}
	if result.PageSize == "" {
		result.PageSize = defaults.PageSize
	}
	if result.FilenamePattern == "" {
		result.FilenamePattern = defaults.FilenamePattern
	}
	if len(result.Margin) == 0 {
		result.Margin = append([]string(nil), defaults.Margin...)
	}

	// Bool fields cannot distinguish unset from false; a true in any layer wins.
	result.Landscape = result.Landscape || defaults.Landscape
	result.Strict = result.Strict || defaults.Strict
	result.Verbose = result.Verbose || defaults.Verbose

	return result
}

// PageSpec resolves page size, orientation and margins.
func (c *Config) PageSpec() (layout.PageSpec, error) {
	return layout.ResolvePage(c.PageSize, c.Landscape, c.Margin)
}

// Variants returns the selected templates in their fixed order.
func (c *Config) Variants() ([]layout.Variant, error) {
	if c.Template == AllTemplates {
		return layout.Variants(), nil
	}
	v, err := layout.ParseVariant(c.Template)
	if err != nil {
		return nil, err
	}
	return []layout.Variant{v}, nil
}
