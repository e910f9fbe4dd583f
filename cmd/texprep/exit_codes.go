package main

import (
	"errors"
	"os"

	"github.com/alnah/go-texprep"
	"github.com/alnah/go-texprep/internal/config"
)

// Exit codes for the texprep CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // All files built
	ExitGeneral = 1 // Build or unexpected error
	ExitUsage   = 2 // Invalid flags, config, or input
	ExitIO      = 3 // File not found, permission denied
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidBuilder) ||
		errors.Is(err, config.ErrInvalidEngine) ||
		errors.Is(err, config.ErrInvalidTable) ||
		errors.Is(err, texprep.ErrEmptyMarkdown) ||
		errors.Is(err, texprep.ErrUnknownBuilder) ||
		errors.Is(err, texprep.ErrInvalidEngine) ||
		errors.Is(err, texprep.ErrInvalidReplacement) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrTooManyArgs) {
		return ExitUsage
	}

	return ExitGeneral
}
