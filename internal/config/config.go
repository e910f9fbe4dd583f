package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-texprep/internal/pipeline"
	"github.com/alnah/go-texprep/internal/sanitize"
	"github.com/alnah/go-texprep/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidBuilder  = errors.New("invalid builder")
	ErrInvalidEngine   = errors.New("invalid LaTeX engine")
	ErrInvalidTable    = errors.New("invalid replacement table")
)

// Field length limits.
const (
	MaxBuilderLength       = 20
	MaxEngineLength        = 20
	MaxDocumentClassLength = 100
	MaxReplacementLength   = 200 // Either side of one entry
	MaxReplacements        = 256
	MaxPreambleLength      = 10000
	MaxPathLength          = 4096
)

// Builders accepted in the builder field.
var knownBuilders = []string{"latex", "html"}

// Config holds all configuration for a build run.
type Config struct {
	Builder      string        `yaml:"builder"` // "latex" (default) or "html"
	Replacements []Replacement `yaml:"replacements"`
	LaTeX        LaTeXConfig   `yaml:"latex"`
	HTML         HTMLConfig    `yaml:"html"`
	Input        InputConfig   `yaml:"input"`
	Output       OutputConfig  `yaml:"output"`
}

// Replacement extends or overrides one entry of the default table.
type Replacement struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// LaTeXConfig defines LaTeX writer options.
type LaTeXConfig struct {
	Standalone       bool   `yaml:"standalone"`
	Engine           string `yaml:"engine"`           // "xelatex", "lualatex", "pdflatex" (default: "xelatex")
	DocumentClass    string `yaml:"documentClass"`    // default: "article"
	UnicodeFallbacks *bool  `yaml:"unicodeFallbacks"` // nil = enabled
	Preamble         string `yaml:"preamble"`         // Extra LaTeX appended to the preamble
}

// HTMLConfig defines HTML writer options.
type HTMLConfig struct {
	Title          string `yaml:"title"`
	HighlightStyle string `yaml:"highlightStyle"` // chroma style name (default: "github")
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
}

// FallbacksEnabled reports whether \newunicodechar fallbacks are on.
func (c LaTeXConfig) FallbacksEnabled() bool {
	return c.UnicodeFallbacks == nil || *c.UnicodeFallbacks
}

// Validate checks builder and engine names, field lengths, and that the
// replacements extend the default table without breaking its invariants.
// Called automatically by LoadConfig.
func (c *Config) Validate() error {
	if err := validateFieldLength("builder", c.Builder, MaxBuilderLength); err != nil {
		return err
	}
	if c.Builder != "" && !isKnownBuilder(c.Builder) {
		return fmt.Errorf("%w: %q (must be %s)", ErrInvalidBuilder, c.Builder, strings.Join(knownBuilders, " or "))
	}

	if err := validateFieldLength("latex.engine", c.LaTeX.Engine, MaxEngineLength); err != nil {
		return err
	}
	if c.LaTeX.Engine != "" && !pipeline.ValidEngine(c.LaTeX.Engine) {
		return fmt.Errorf("%w: %q", ErrInvalidEngine, c.LaTeX.Engine)
	}
	if err := validateFieldLength("latex.documentClass", c.LaTeX.DocumentClass, MaxDocumentClassLength); err != nil {
		return err
	}
	if err := validateFieldLength("latex.preamble", c.LaTeX.Preamble, MaxPreambleLength); err != nil {
		return err
	}

	if err := validateFieldLength("input.defaultDir", c.Input.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}

	return c.validateReplacements()
}

func (c *Config) validateReplacements() error {
	if len(c.Replacements) > MaxReplacements {
		return fmt.Errorf("replacements: %d entries (max %d)", len(c.Replacements), MaxReplacements)
	}

	entries := make([]sanitize.Entry, len(c.Replacements))
	for i, r := range c.Replacements {
		if err := validateFieldLength(fmt.Sprintf("replacements[%d].from", i), r.From, MaxReplacementLength); err != nil {
			return err
		}
		if err := validateFieldLength(fmt.Sprintf("replacements[%d].to", i), r.To, MaxReplacementLength); err != nil {
			return err
		}
		entries[i] = sanitize.Entry{From: r.From, To: r.To}
	}

	if _, err := sanitize.DefaultTable().Extend(entries...); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTable, err)
	}
	return nil
}

func isKnownBuilder(builder string) bool {
	for _, b := range knownBuilders {
		if b == builder {
			return true
		}
	}
	return false
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the LaTeX builder with the default table.
func DefaultConfig() *Config {
	return &Config{
		Builder: "latex",
		LaTeX: LaTeXConfig{
			Engine:        pipeline.EngineXeLaTeX,
			DocumentClass: pipeline.DefaultDocumentClass,
		},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-texprep/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "go-texprep", name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
