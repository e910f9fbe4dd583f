package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Builder != "latex" {
		t.Errorf("Builder = %q, want %q", cfg.Builder, "latex")
	}
	if cfg.LaTeX.Engine != "xelatex" {
		t.Errorf("LaTeX.Engine = %q, want %q", cfg.LaTeX.Engine, "xelatex")
	}
	if cfg.LaTeX.DocumentClass != "article" {
		t.Errorf("LaTeX.DocumentClass = %q, want %q", cfg.LaTeX.DocumentClass, "article")
	}
	if cfg.LaTeX.Standalone {
		t.Error("LaTeX.Standalone = true, want false")
	}
	if !cfg.LaTeX.FallbacksEnabled() {
		t.Error("FallbacksEnabled() = false, want true")
	}
	if len(cfg.Replacements) != 0 {
		t.Errorf("Replacements = %v, want empty", cfg.Replacements)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestValidateFieldLength(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		maxLength int
		wantErr   bool
	}{
		{name: "empty value is valid", value: "", maxLength: 10},
		{name: "value at limit is valid", value: "1234567890", maxLength: 10},
		{name: "value over limit returns error", value: "12345678901", maxLength: 10, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFieldLength("test.field", tt.value, tt.maxLength)
			if tt.wantErr {
				if !errors.Is(err, ErrFieldTooLong) {
					t.Fatalf("error = %v, want ErrFieldTooLong", err)
				}
				if !strings.Contains(err.Error(), "test.field") {
					t.Errorf("error %q should name the field", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	disabled := false

	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr error
	}{
		{
			name:   "html builder",
			modify: func(c *Config) { c.Builder = "html" },
		},
		{
			name:   "empty builder",
			modify: func(c *Config) { c.Builder = "" },
		},
		{
			name:    "unknown builder",
			modify:  func(c *Config) { c.Builder = "epub" },
			wantErr: ErrInvalidBuilder,
		},
		{
			name:    "builder is case sensitive",
			modify:  func(c *Config) { c.Builder = "LaTeX" },
			wantErr: ErrInvalidBuilder,
		},
		{
			name:   "pdflatex without fallbacks",
			modify: func(c *Config) { c.LaTeX.Engine = "pdflatex"; c.LaTeX.UnicodeFallbacks = &disabled },
		},
		{
			name:    "unknown engine",
			modify:  func(c *Config) { c.LaTeX.Engine = "tectonic" },
			wantErr: ErrInvalidEngine,
		},
		{
			name:    "document class too long",
			modify:  func(c *Config) { c.LaTeX.DocumentClass = strings.Repeat("a", MaxDocumentClassLength+1) },
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "output dir too long",
			modify:  func(c *Config) { c.Output.DefaultDir = strings.Repeat("d", MaxPathLength+1) },
			wantErr: ErrFieldTooLong,
		},
		{
			name: "valid replacements",
			modify: func(c *Config) {
				c.Replacements = []Replacement{{From: "♯", To: `\#`}, {From: "➔", To: `\textrightarrow{}`}}
			},
		},
		{
			name:    "replacement value contains its key",
			modify:  func(c *Config) { c.Replacements = []Replacement{{From: "x", To: "xx"}} },
			wantErr: ErrInvalidTable,
		},
		{
			name:    "replacement value contains default key",
			modify:  func(c *Config) { c.Replacements = []Replacement{{From: "->", To: "➔"}} },
			wantErr: ErrInvalidTable,
		},
		{
			name:    "replacement with empty key",
			modify:  func(c *Config) { c.Replacements = []Replacement{{From: "", To: "y"}} },
			wantErr: ErrInvalidTable,
		},
		{
			name:    "replacement too long",
			modify:  func(c *Config) { c.Replacements = []Replacement{{From: "a", To: strings.Repeat("b", MaxReplacementLength+1)}} },
			wantErr: ErrFieldTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Errorf("Validate() unexpected error: %v", err)
			}
		})
	}
}

func TestConfig_Validate_TooManyReplacements(t *testing.T) {
	cfg := DefaultConfig()
	for i := 0; i <= MaxReplacements; i++ {
		cfg.Replacements = append(cfg.Replacements, Replacement{From: string(rune('a' + i%26)), To: "z"})
	}
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() expected error for too many replacements")
	}
}

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("empty name returns ErrEmptyConfigName", func(t *testing.T) {
		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("valid file path loads config", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "book.yaml", `builder: latex
replacements:
  - from: "♯"
    to: '\#'
latex:
  standalone: true
  engine: lualatex
  unicodeFallbacks: false
html:
  title: "Book"
input:
  defaultDir: "/path/to/input"
output:
  defaultDir: "/path/to/output"
`)

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if !cfg.LaTeX.Standalone {
			t.Error("LaTeX.Standalone = false, want true")
		}
		if cfg.LaTeX.Engine != "lualatex" {
			t.Errorf("LaTeX.Engine = %q, want %q", cfg.LaTeX.Engine, "lualatex")
		}
		if cfg.LaTeX.FallbacksEnabled() {
			t.Error("FallbacksEnabled() = true, want false")
		}
		if cfg.LaTeX.DocumentClass != "article" {
			t.Errorf("LaTeX.DocumentClass = %q, want default %q", cfg.LaTeX.DocumentClass, "article")
		}
		if len(cfg.Replacements) != 1 || cfg.Replacements[0].From != "♯" || cfg.Replacements[0].To != `\#` {
			t.Errorf("Replacements = %+v", cfg.Replacements)
		}
		if cfg.HTML.Title != "Book" {
			t.Errorf("HTML.Title = %q, want %q", cfg.HTML.Title, "Book")
		}
		if cfg.Input.DefaultDir != "/path/to/input" {
			t.Errorf("Input.DefaultDir = %q, want %q", cfg.Input.DefaultDir, "/path/to/input")
		}
		if cfg.Output.DefaultDir != "/path/to/output" {
			t.Errorf("Output.DefaultDir = %q, want %q", cfg.Output.DefaultDir, "/path/to/output")
		}
	})

	t.Run("nonexistent file path returns ErrConfigNotFound", func(t *testing.T) {
		_, err := LoadConfig("/nonexistent/path/config.yaml")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("invalid YAML returns ErrConfigParse", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "invalid.yaml", "builder: [unclosed")

		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("unknown field returns ErrConfigParse in strict mode", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "unknown.yaml", "builder: latex\nfooter:\n  enabled: true\n")

		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("validation error is returned", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "bad.yaml", "latex:\n  engine: context\n")

		_, err := LoadConfig(path)
		if !errors.Is(err, ErrInvalidEngine) {
			t.Errorf("error = %v, want ErrInvalidEngine", err)
		}
	})

	t.Run("name resolves in current directory", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "local.yml", "builder: html\n")
		t.Chdir(dir)

		cfg, err := LoadConfig("local")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Builder != "html" {
			t.Errorf("Builder = %q, want %q", cfg.Builder, "html")
		}
	})

	t.Run("unresolved name lists tried paths", func(t *testing.T) {
		t.Chdir(t.TempDir())

		_, err := LoadConfig("missing-config-name")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("error = %v, want ErrConfigNotFound", err)
		}
		if !strings.Contains(err.Error(), "missing-config-name.yaml") {
			t.Errorf("error %q should list tried paths", err)
		}
	})
}

func TestIsFilePath(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"work", false},
		{"./work.yaml", true},
		{"configs/work", true},
		{`C:\configs\work.yaml`, true},
	}

	for _, tt := range tests {
		if got := isFilePath(tt.input); got != tt.want {
			t.Errorf("isFilePath(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
