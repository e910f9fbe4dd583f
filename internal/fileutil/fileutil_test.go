package fileutil_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alnah/go-texprep/internal/fileutil"
)

func TestValidateExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		ext     string
		wantErr error
	}{
		{name: "tex", ext: "tex"},
		{name: "html", ext: "html"},
		{name: "empty", ext: "", wantErr: fileutil.ErrExtensionEmpty},
		{name: "slash", ext: "../tex", wantErr: fileutil.ErrExtensionPathTraversal},
		{name: "backslash", ext: `a\b`, wantErr: fileutil.ErrExtensionPathTraversal},
		{name: "null byte", ext: "te\x00x", wantErr: fileutil.ErrExtensionPathTraversal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := fileutil.ValidateExtension(tt.ext)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateExtension(%q) = %v, want %v", tt.ext, err, tt.wantErr)
			}
		})
	}
}

func TestFileExistsAndIsDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "a.md")
	if err := os.WriteFile(file, []byte("x"), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}

	tests := []struct {
		name       string
		path       string
		wantFile   bool
		wantDirRes bool
	}{
		{name: "regular file", path: file, wantFile: true},
		{name: "directory", path: dir, wantDirRes: true},
		{name: "missing", path: filepath.Join(dir, "missing.md")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := fileutil.FileExists(tt.path); got != tt.wantFile {
				t.Errorf("FileExists(%q) = %v, want %v", tt.path, got, tt.wantFile)
			}
			if got := fileutil.IsDir(tt.path); got != tt.wantDirRes {
				t.Errorf("IsDir(%q) = %v, want %v", tt.path, got, tt.wantDirRes)
			}
		})
	}
}

func TestOutputPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		outputDir string
		baseDir   string
		ext       string
		want      string
		wantErr   error
	}{
		{
			name:  "next to source",
			input: filepath.Join("docs", "intro.md"),
			ext:   "tex",
			want:  filepath.Join("docs", "intro.tex"),
		},
		{
			name:  "markdown extension",
			input: "notes.markdown",
			ext:   "html",
			want:  "notes.html",
		},
		{
			name:  "no extension",
			input: "README",
			ext:   "tex",
			want:  "README.tex",
		},
		{
			name:      "mirrors tree under output dir",
			input:     filepath.Join("docs", "guide", "a.md"),
			outputDir: "out",
			baseDir:   "docs",
			ext:       "tex",
			want:      filepath.Join("out", "guide", "a.tex"),
		},
		{
			name:      "outside base keeps name",
			input:     filepath.Join("other", "b.md"),
			outputDir: "out",
			baseDir:   "docs",
			ext:       "tex",
			want:      filepath.Join("out", "b.tex"),
		},
		{
			name:      "no base dir keeps name",
			input:     filepath.Join("docs", "c.md"),
			outputDir: "out",
			ext:       "tex",
			want:      filepath.Join("out", "c.tex"),
		},
		{
			name:    "invalid extension",
			input:   "a.md",
			ext:     "",
			wantErr: fileutil.ErrExtensionEmpty,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := fileutil.OutputPath(tt.input, tt.outputDir, tt.baseDir, tt.ext)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("OutputPath() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("OutputPath() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("OutputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWriteFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "deeper", "doc.tex")
	if err := fileutil.WriteFile(path, "\\section{A}\n"); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if string(data) != "\\section{A}\n" {
		t.Errorf("content = %q", data)
	}

	info, err := os.Stat(filepath.Dir(path))
	if err != nil {
		t.Fatalf("stat dir: %v", err)
	}
	if !info.IsDir() {
		t.Error("parent is not a directory")
	}
}

func TestWriteFile_ParentIsFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}

	if err := fileutil.WriteFile(filepath.Join(blocker, "doc.tex"), "x"); err == nil {
		t.Error("WriteFile() expected error when parent is a file")
	}
}
