package mathast

import (
	"bytes"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

var mathBlockInfoKey = parser.NewContextKey()

type mathBlockData struct {
	indent int
	closed bool
}

type mathBlockParser struct{}

// NewMathBlockParser returns a parser for "$$" fenced display math.
func NewMathBlockParser() parser.BlockParser {
	return &mathBlockParser{}
}

func (b *mathBlockParser) Trigger() []byte {
	return []byte{'$'}
}

func (b *mathBlockParser) Open(parent ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	line, segment := reader.PeekLine()
	pos := pc.BlockOffset()
	if pos < 0 || pos >= len(line) || line[pos] != '$' {
		return nil, parser.NoChildren
	}

	i := pos
	for ; i < len(line) && line[i] == '$'; i++ {
	}
	if i-pos < 2 {
		return nil, parser.NoChildren
	}

	node := NewMathBlock()

	// Single line form: "$$ x = 1 $$".
	rest := line[i:]
	if !util.IsBlank(rest) {
		closing := bytes.Index(rest, []byte("$$"))
		if closing < 0 || !util.IsBlank(rest[closing+2:]) {
			return nil, parser.NoChildren
		}
		start := segment.Start + i
		node.Lines().Append(text.NewSegment(start, start+closing))
		reader.Advance(segment.Len() - 1)
		pc.Set(mathBlockInfoKey, &mathBlockData{indent: pos, closed: true})
		return node, parser.NoChildren
	}

	pc.Set(mathBlockInfoKey, &mathBlockData{indent: pos})
	return node, parser.NoChildren
}

func (b *mathBlockParser) Continue(node ast.Node, reader text.Reader, pc parser.Context) parser.State {
	line, segment := reader.PeekLine()
	data, _ := pc.Get(mathBlockInfoKey).(*mathBlockData)
	if data == nil || data.closed {
		return parser.Close
	}

	w, pos := util.IndentWidth(line, reader.LineOffset())
	if w < 4 {
		i := pos
		for ; i < len(line) && line[i] == '$'; i++ {
		}
		if i-pos >= 2 && util.IsBlank(line[i:]) {
			reader.Advance(segment.Stop - segment.Start - segment.Padding)
			return parser.Close
		}
	}

	pos, padding := util.DedentPosition(line, reader.LineOffset(), data.indent)
	seg := text.NewSegmentPadding(segment.Start+pos, segment.Stop, padding)
	node.Lines().Append(seg)
	reader.AdvanceAndSetPadding(segment.Stop-segment.Start-pos-1, padding)
	return parser.Continue | parser.NoChildren
}

func (b *mathBlockParser) Close(node ast.Node, reader text.Reader, pc parser.Context) {
	pc.Set(mathBlockInfoKey, nil)
}

func (b *mathBlockParser) CanInterruptParagraph() bool {
	return true
}

func (b *mathBlockParser) CanAcceptIndentedLine() bool {
	return false
}

type inlineMathParser struct{}

// NewInlineMathParser returns a parser for "$...$" spans.
// The opening "$" must be followed by a non-space and the closing "$"
// preceded by one, so prices such as "$5 and $6" stay text.
func NewInlineMathParser() parser.InlineParser {
	return &inlineMathParser{}
}

func (p *inlineMathParser) Trigger() []byte {
	return []byte{'$'}
}

func (p *inlineMathParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	line, _ := block.PeekLine()
	if len(line) < 3 || line[0] != '$' || line[1] == '$' || isSpace(line[1]) {
		return nil
	}

	end := -1
	for i := 1; i < len(line); i++ {
		switch line[i] {
		case '\\':
			i++
		case '$':
			if !isSpace(line[i-1]) {
				end = i
			}
		}
		if end > 0 {
			break
		}
	}
	if end < 0 {
		return nil
	}

	value := make([]byte, end-1)
	copy(value, line[1:end])
	block.Advance(end + 1)
	return NewInlineMath(value)
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
