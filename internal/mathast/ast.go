// Package mathast adds math nodes to the goldmark AST.
//
// Two block kinds represent display math:
//   - MathBlock, parsed from "$$" fences.
//   - DisplayMath, produced during resolution from fenced code blocks whose
//     info string starts with "math". It may carry a label and a number.
//
// InlineMath covers "$...$" spans. It is never display math.
package mathast

import (
	"bytes"
	"strconv"

	"github.com/yuin/goldmark/ast"
)

// AttrNoWrap is the node attribute read by renderers to emit a plain
// bracketed display instead of an equation environment.
const AttrNoWrap = "nowrap"

// KindMathBlock is the kind of a "$$" block.
var KindMathBlock = ast.NewNodeKind("MathBlock")

// KindDisplayMath is the kind of a resolved math fence.
var KindDisplayMath = ast.NewNodeKind("DisplayMath")

// KindInlineMath is the kind of a "$...$" span.
var KindInlineMath = ast.NewNodeKind("InlineMath")

// MathBlock is a block of display math between "$$" fences.
type MathBlock struct {
	ast.BaseBlock
}

// NewMathBlock returns an empty MathBlock.
func NewMathBlock() *MathBlock {
	return &MathBlock{}
}

// Kind implements ast.Node.
func (n *MathBlock) Kind() ast.NodeKind { return KindMathBlock }

// IsRaw implements ast.Node.
func (n *MathBlock) IsRaw() bool { return true }

// Dump implements ast.Node.
func (n *MathBlock) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, nil, nil)
}

// DisplayMath is display math created by resolving a math fence.
type DisplayMath struct {
	ast.BaseBlock

	// Label is the cross-reference target, empty when unlabelled.
	Label string

	// Number is the equation number, 0 when unlabelled.
	Number int
}

// NewDisplayMath returns a DisplayMath with the given label.
func NewDisplayMath(label string) *DisplayMath {
	return &DisplayMath{Label: label}
}

// Kind implements ast.Node.
func (n *DisplayMath) Kind() ast.NodeKind { return KindDisplayMath }

// IsRaw implements ast.Node.
func (n *DisplayMath) IsRaw() bool { return true }

// Dump implements ast.Node.
func (n *DisplayMath) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Label":  n.Label,
		"Number": strconv.Itoa(n.Number),
	}, nil)
}

// InlineMath is a "$...$" span. Value holds the content without delimiters.
type InlineMath struct {
	ast.BaseInline

	Value []byte
}

// NewInlineMath returns an InlineMath holding value.
func NewInlineMath(value []byte) *InlineMath {
	return &InlineMath{Value: value}
}

// Kind implements ast.Node.
func (n *InlineMath) Kind() ast.NodeKind { return KindInlineMath }

// Dump implements ast.Node.
func (n *InlineMath) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Value": string(n.Value)}, nil)
}

// IsDisplayMath reports whether n is one of the display-math kinds.
func IsDisplayMath(n ast.Node) bool {
	if n == nil {
		return false
	}
	switch n.Kind() {
	case KindMathBlock, KindDisplayMath:
		return true
	}
	return false
}

// SetNoWrap marks n for bracketed rendering.
func SetNoWrap(n ast.Node) {
	n.SetAttributeString(AttrNoWrap, true)
}

// NoWrap reports whether the nowrap attribute is set to true on n.
func NoWrap(n ast.Node) bool {
	v, ok := n.AttributeString(AttrNoWrap)
	if !ok {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

// HasNoWrap reports whether the nowrap attribute is present at all.
func HasNoWrap(n ast.Node) bool {
	_, ok := n.AttributeString(AttrNoWrap)
	return ok
}

// Body returns the raw content of a display-math node with surrounding
// whitespace trimmed.
func Body(n ast.Node, source []byte) []byte {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(source))
	}
	return bytes.TrimSpace(buf.Bytes())
}
