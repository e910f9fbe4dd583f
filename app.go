package texprep

import (
	"context"
	"fmt"

	"github.com/alnah/go-texprep/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.Writer = (*pipeline.LaTeXWriter)(nil)
	_ pipeline.Writer = (*pipeline.HTMLWriter)(nil)
)

// App is a document build pipeline for one builder. For each document it
// emits source-read, parses and resolves the tree, emits doctree-resolved,
// then renders.
//
// Connect handlers before the first Build. After that, Build is safe for
// concurrent use.
type App struct {
	builder    string
	cfg        appConfig
	parser     *pipeline.Parser
	writer     pipeline.Writer
	sourceRead []SourceReadFunc
	resolved   []DoctreeResolvedFunc
}

// NewApp creates an App for builder with no handlers connected.
// Returns ErrUnknownBuilder unless builder is LaTeXBuilder or HTMLBuilder.
func NewApp(builder string, opts ...Option) (*App, error) {
	if !isKnownBuilder(builder) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBuilder, builder)
	}

	a := &App{
		builder: builder,
		cfg: appConfig{
			engine:           pipeline.EngineXeLaTeX,
			documentClass:    pipeline.DefaultDocumentClass,
			unicodeFallbacks: true,
		},
		parser: pipeline.NewParser(),
	}

	for _, opt := range opts {
		opt(a)
	}

	if !pipeline.ValidEngine(a.cfg.engine) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEngine, a.cfg.engine)
	}

	switch builder {
	case LaTeXBuilder:
		a.writer = &pipeline.LaTeXWriter{
			Standalone: a.cfg.standalone,
			Preamble: pipeline.PreambleOptions{
				Engine:           a.cfg.engine,
				DocumentClass:    a.cfg.documentClass,
				UnicodeFallbacks: a.cfg.unicodeFallbacks,
				Extra:            a.cfg.preambleExtra,
			},
		}
	case HTMLBuilder:
		w, err := pipeline.NewHTMLWriter(a.cfg.htmlTitle, a.cfg.highlightStyle)
		if err != nil {
			return nil, fmt.Errorf("initializing HTML writer: %w", err)
		}
		a.writer = w
	}

	return a, nil
}

// New creates an App with the sanitizer and math tagger connected.
// Replacements given with WithReplacements extend the default table.
func New(builder string, opts ...Option) (*App, error) {
	a, err := NewApp(builder, opts...)
	if err != nil {
		return nil, err
	}

	ext, err := NewExtension(a.cfg.replacements...)
	if err != nil {
		return nil, err
	}
	Setup(a, ext)

	return a, nil
}

// Builder returns the builder name the App was created for.
func (a *App) Builder() string {
	return a.builder
}

// ConnectSourceRead implements Registrar.
func (a *App) ConnectSourceRead(fn SourceReadFunc) {
	if fn != nil {
		a.sourceRead = append(a.sourceRead, fn)
	}
}

// ConnectDoctreeResolved implements Registrar.
func (a *App) ConnectDoctreeResolved(fn DoctreeResolvedFunc) {
	if fn != nil {
		a.resolved = append(a.resolved, fn)
	}
}

// Build runs the pipeline on one document. Handlers run in the order they
// were connected. Recovers from panics in handlers and renderers so they
// surface as errors.
func (a *App) Build(ctx context.Context, doc Document) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if doc.Markdown == "" {
		return nil, ErrEmptyMarkdown
	}

	src := &Source{DocName: doc.Name, Text: doc.Markdown}
	for _, fn := range a.sourceRead {
		fn(a.builder, src)
	}

	source := []byte(src.Text)
	tree := a.parser.Parse(source)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	for _, fn := range a.resolved {
		fn(a.builder, tree)
	}

	total, tagged := countDisplayMath(tree)

	out, err := a.writer.Render(tree, source)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", doc.Name, err)
	}

	return &Result{
		Name:        doc.Name,
		Builder:     a.builder,
		Output:      out,
		DisplayMath: total,
		Tagged:      tagged,
	}, nil
}
