package mathast

import (
	"bytes"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// mathLanguage is the fenced code info word that denotes display math.
const mathLanguage = "math"

// DisplayMathResolver replaces "math" fenced code blocks with DisplayMath
// nodes. Text after the language word is taken as the label. Labelled
// nodes are numbered in document order starting at 1.
type DisplayMathResolver struct{}

// NewDisplayMathResolver returns the resolver transformer.
func NewDisplayMathResolver() *DisplayMathResolver {
	return &DisplayMathResolver{}
}

var _ parser.ASTTransformer = (*DisplayMathResolver)(nil)

// Transform implements parser.ASTTransformer.
func (r *DisplayMathResolver) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	source := reader.Source()

	var fences []*ast.FencedCodeBlock
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if fcb, ok := n.(*ast.FencedCodeBlock); ok && string(fcb.Language(source)) == mathLanguage {
			fences = append(fences, fcb)
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	number := 0
	for _, fcb := range fences {
		dm := NewDisplayMath(fenceLabel(fcb, source))
		if dm.Label != "" {
			number++
			dm.Number = number
		}
		dm.SetLines(fcb.Lines())
		dm.SetBlankPreviousLines(fcb.HasBlankPreviousLines())

		parent := fcb.Parent()
		parent.ReplaceChild(parent, fcb, dm)
	}
}

// fenceLabel returns the info text following the language word.
func fenceLabel(fcb *ast.FencedCodeBlock, source []byte) string {
	if fcb.Info == nil {
		return ""
	}
	info := fcb.Info.Segment.Value(source)
	rest := bytes.TrimPrefix(bytes.TrimSpace(info), []byte(mathLanguage))
	return string(bytes.TrimSpace(rest))
}
