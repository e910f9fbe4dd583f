package texprep

import "github.com/yuin/goldmark/ast"

// SourceReadFunc handles the source-read event. It may replace src.Text.
type SourceReadFunc func(builder string, src *Source)

// DoctreeResolvedFunc handles the doctree-resolved event. It may annotate
// nodes but must not add, remove or reorder them.
type DoctreeResolvedFunc func(builder string, doc ast.Node)

// Registrar exposes the two extension points of a build pipeline.
type Registrar interface {
	ConnectSourceRead(fn SourceReadFunc)
	ConnectDoctreeResolved(fn DoctreeResolvedFunc)
}

// Hooks is implemented by pipeline extensions.
type Hooks interface {
	OnSourceRead(builder string, src *Source)
	OnTreeResolved(builder string, doc ast.Node)
}

// Compile-time interface implementation checks.
var (
	_ Hooks     = (*Extension)(nil)
	_ Registrar = (*App)(nil)
)

// Extension bundles the Sanitizer and the Tagger behind Hooks.
// The zero value behaves like NewExtension().
type Extension struct {
	sanitizer *Sanitizer
	tagger    *Tagger
}

// NewExtension creates an Extension whose sanitizer uses the default table
// extended with replacements.
func NewExtension(replacements ...Replacement) (*Extension, error) {
	s, err := NewSanitizer(replacements...)
	if err != nil {
		return nil, err
	}
	return &Extension{sanitizer: s, tagger: NewTagger()}, nil
}

// OnSourceRead implements Hooks.
func (e *Extension) OnSourceRead(builder string, src *Source) {
	e.sanitizer.OnSourceRead(builder, src)
}

// OnTreeResolved implements Hooks.
func (e *Extension) OnTreeResolved(builder string, doc ast.Node) {
	e.tagger.OnTreeResolved(builder, doc)
}

// Setup connects h to both extension points of r. Call it once, before the
// first build.
func Setup(r Registrar, h Hooks) {
	r.ConnectSourceRead(h.OnSourceRead)
	r.ConnectDoctreeResolved(h.OnTreeResolved)
}
