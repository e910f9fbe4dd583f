package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-texprep"
	"github.com/alnah/go-texprep/internal/fileutil"
)

// MaxWorkers bounds --workers.
const MaxWorkers = 64

// Sentinel errors for file discovery.
var (
	ErrInvalidExtension   = errors.New("file must have .md or .markdown extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrTooManyArgs        = errors.New("expected a single input file or directory")
)

// FileToBuild represents a single file to process.
type FileToBuild struct {
	InputPath  string
	OutputPath string
}

// outputExtension returns the output file extension for builder.
func outputExtension(builder string) string {
	if builder == texprep.HTMLBuilder {
		return "html"
	}
	return "tex"
}

// isMarkdown reports whether path has a Markdown extension.
func isMarkdown(path string) bool {
	ext := filepath.Ext(path)
	return ext == ".md" || ext == ".markdown"
}

// discoverFiles finds all markdown files under inputPath. A single-file
// input whose output already ends in "."+ext is written there directly.
func discoverFiles(inputPath, output, ext string) ([]FileToBuild, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if !isMarkdown(inputPath) {
			return nil, fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(inputPath))
		}
		if strings.HasSuffix(output, "."+ext) {
			return []FileToBuild{{InputPath: inputPath, OutputPath: output}}, nil
		}
		outPath, err := fileutil.OutputPath(inputPath, output, filepath.Dir(inputPath), ext)
		if err != nil {
			return nil, err
		}
		return []FileToBuild{{InputPath: inputPath, OutputPath: outPath}}, nil
	}

	var files []FileToBuild
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() || !isMarkdown(path) {
			return nil
		}
		outPath, err := fileutil.OutputPath(path, output, inputPath, ext)
		if err != nil {
			return err
		}
		files = append(files, FileToBuild{InputPath: path, OutputPath: outPath})
		return nil
	})

	return files, err
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > MaxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, MaxWorkers)
	}
	return nil
}
