// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Permissions for files and directories created by WriteFile.
const (
	DirPerm  = 0o750
	FilePerm = 0o644
)

// Sentinel errors for file utility operations.
var (
	ErrExtensionEmpty         = errors.New("extension cannot be empty")
	ErrExtensionPathTraversal = errors.New("extension contains path separator or null byte")
)

// ValidateExtension checks that ext is a bare extension such as "tex".
func ValidateExtension(ext string) error {
	if ext == "" {
		return ErrExtensionEmpty
	}
	if strings.ContainsAny(ext, "/\\\x00") {
		return ErrExtensionPathTraversal
	}
	return nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsDir returns true if the path exists and is a directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// OutputPath returns where the rendered form of input is written.
//
// The source extension is replaced by ext. With an empty outputDir the file
// lands next to its source. Otherwise the path of input relative to baseDir
// is mirrored under outputDir; inputs outside baseDir keep only their name.
func OutputPath(input, outputDir, baseDir, ext string) (string, error) {
	if err := ValidateExtension(ext); err != nil {
		return "", err
	}

	name := strings.TrimSuffix(input, filepath.Ext(input)) + "." + ext
	if outputDir == "" {
		return name, nil
	}

	rel := filepath.Base(name)
	if baseDir != "" {
		if r, err := filepath.Rel(baseDir, name); err == nil && !strings.HasPrefix(r, "..") {
			rel = r
		}
	}
	return filepath.Join(outputDir, rel), nil
}

// WriteFile writes content to path, creating parent directories as needed.
func WriteFile(path, content string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, DirPerm); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(content), FilePerm); err != nil { // #nosec G306 -- output is meant to be readable
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
