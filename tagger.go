package texprep

import (
	"github.com/yuin/goldmark/ast"

	"github.com/alnah/go-texprep/internal/mathast"
)

// Tagger marks display math in resolved trees so the LaTeX writer emits
// \[ ... \] instead of an equation/split environment. split cannot be
// nested inside some multi-column constructs.
type Tagger struct{}

// NewTagger returns a Tagger.
func NewTagger() *Tagger {
	return &Tagger{}
}

// Tag sets the nowrap attribute on every MathBlock and DisplayMath node
// reachable from doc and returns how many it visited. Other nodes are not
// touched. Non-LaTeX builders leave the tree unchanged and return 0.
func (t *Tagger) Tag(builder string, doc ast.Node) int {
	if doc == nil || !IsTypesetting(builder) {
		return 0
	}

	tagged := 0
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if mathast.IsDisplayMath(n) {
			mathast.SetNoWrap(n)
			tagged++
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return tagged
}

// OnTreeResolved tags doc for builder.
func (t *Tagger) OnTreeResolved(builder string, doc ast.Node) {
	t.Tag(builder, doc)
}

// countDisplayMath returns the number of display-math nodes in doc and how
// many of them carry nowrap.
func countDisplayMath(doc ast.Node) (total, tagged int) {
	if doc == nil {
		return 0, 0
	}
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering && mathast.IsDisplayMath(n) {
			total++
			if mathast.NoWrap(n) {
				tagged++
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return total, tagged
}
