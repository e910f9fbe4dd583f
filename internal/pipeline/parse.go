package pipeline

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/alnah/go-texprep/internal/mathast"
)

// Parser turns sanitized Markdown into a resolved document tree.
// Display-math resolution runs as part of Parse.
type Parser struct {
	p parser.Parser
}

// NewParser creates a Parser with GFM and math support.
func NewParser() *Parser {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM, // Tables, strikethrough, autolinks, task lists
			mathast.Extension,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
	)
	return &Parser{p: md.Parser()}
}

// Parse parses src. The returned tree references src, so src must not be
// modified while the tree is in use.
func (p *Parser) Parse(src []byte) ast.Node {
	return p.p.Parse(text.NewReader(src))
}
