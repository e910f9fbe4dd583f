package mathast

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/util"
)

// Parser priorities. Lower values run first; fenced code is 700 in goldmark.
const (
	mathBlockPriority  = 701
	inlineMathPriority = 501
	resolverPriority   = 100
)

type extension struct{}

// Extension registers the math parsers and the display-math resolver.
var Extension goldmark.Extender = &extension{}

func (e *extension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(Options()...)
}

// Options returns the parser options installed by Extension, for callers
// that assemble a parser.Parser directly.
func Options() []parser.Option {
	return []parser.Option{
		parser.WithBlockParsers(util.Prioritized(NewMathBlockParser(), mathBlockPriority)),
		parser.WithInlineParsers(util.Prioritized(NewInlineMathParser(), inlineMathPriority)),
		parser.WithASTTransformers(util.Prioritized(NewDisplayMathResolver(), resolverPriority)),
	}
}
