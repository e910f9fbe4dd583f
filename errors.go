package texprep

import (
	"errors"

	"github.com/alnah/go-texprep/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown      = errors.New("markdown content cannot be empty")
	ErrUnknownBuilder     = errors.New("unknown builder")
	ErrInvalidReplacement = errors.New("invalid replacement table")
	ErrInvalidEngine      = errors.New("invalid LaTeX engine")

	// ErrRender is returned when a writer fails. It is the same value the
	// writers in internal/pipeline wrap.
	ErrRender = pipeline.ErrRender
)
