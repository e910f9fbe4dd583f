package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"

	"github.com/alnah/go-texprep/internal/mathast"
)

// ErrRender indicates a document tree could not be rendered.
var ErrRender = errors.New("rendering failed")

// Writer renders a resolved document tree for one builder.
type Writer interface {
	Render(doc ast.Node, source []byte) (string, error)
}

// latexSpecials escapes the characters LaTeX treats as commands in text.
var latexSpecials = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`{`, `\{`,
	`}`, `\}`,
	`#`, `\#`,
	`$`, `\$`,
	`%`, `\%`,
	`&`, `\&`,
	`_`, `\_`,
	`~`, `\textasciitilde{}`,
	`^`, `\textasciicircum{}`,
)

// urlSpecials escapes the characters \href and \url cannot take raw.
var urlSpecials = strings.NewReplacer(`%`, `\%`, `#`, `\#`)

// EscapeLaTeX escapes s for use as LaTeX body text.
func EscapeLaTeX(s string) string {
	return latexSpecials.Replace(s)
}

var headingCommands = [...]string{"", "section", "subsection", "subsubsection", "paragraph", "subparagraph", "subparagraph"}

// LaTeXWriter renders trees as LaTeX. With Standalone set, the body is
// wrapped in a document with the preamble built from Preamble.
type LaTeXWriter struct {
	Standalone bool
	Preamble   PreambleOptions
}

var _ Writer = (*LaTeXWriter)(nil)

// NewLaTeXWriter returns a LaTeXWriter producing body-only output.
func NewLaTeXWriter() *LaTeXWriter {
	return &LaTeXWriter{Preamble: DefaultPreambleOptions()}
}

// Render implements Writer.
func (w *LaTeXWriter) Render(doc ast.Node, source []byte) (string, error) {
	r := renderer.NewRenderer(
		renderer.WithNodeRenderers(util.Prioritized(NewLaTeXRenderer(), 1000)),
	)

	var buf bytes.Buffer
	if err := r.Render(&buf, source, doc); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRender, err)
	}

	body := strings.TrimRight(buf.String(), "\n") + "\n"
	if !w.Standalone {
		return body, nil
	}
	return Preamble(w.Preamble) + "\\begin{document}\n\n" + body + "\n\\end{document}\n", nil
}

// LaTeXRenderer is a goldmark node renderer emitting LaTeX.
// Nodes without a registered function render only their children.
//
// Display math carrying the nowrap attribute is written verbatim inside
// \[ ... \]. Its body must then be valid on its own: & alignment and
// multi-line \\ breaks need an environment such as aligned written by the
// author, since no split wraps them.
type LaTeXRenderer struct{}

// NewLaTeXRenderer returns a LaTeXRenderer.
func NewLaTeXRenderer() *LaTeXRenderer {
	return &LaTeXRenderer{}
}

var _ renderer.NodeRenderer = (*LaTeXRenderer)(nil)

// RegisterFuncs implements renderer.NodeRenderer.
func (r *LaTeXRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindDocument, r.document)
	reg.Register(ast.KindHeading, r.heading)
	reg.Register(ast.KindParagraph, r.paragraph)
	reg.Register(ast.KindTextBlock, r.textBlock)
	reg.Register(ast.KindText, r.text)
	reg.Register(ast.KindString, r.str)
	reg.Register(ast.KindEmphasis, r.emphasis)
	reg.Register(ast.KindCodeSpan, r.codeSpan)
	reg.Register(ast.KindFencedCodeBlock, r.codeBlock)
	reg.Register(ast.KindCodeBlock, r.codeBlock)
	reg.Register(ast.KindBlockquote, r.blockquote)
	reg.Register(ast.KindList, r.list)
	reg.Register(ast.KindListItem, r.listItem)
	reg.Register(ast.KindThematicBreak, r.thematicBreak)
	reg.Register(ast.KindLink, r.link)
	reg.Register(ast.KindAutoLink, r.autoLink)
	reg.Register(ast.KindImage, r.image)
	reg.Register(ast.KindRawHTML, r.skip)
	reg.Register(ast.KindHTMLBlock, r.skip)

	reg.Register(east.KindStrikethrough, r.strikethrough)
	reg.Register(east.KindTaskCheckBox, r.taskCheckBox)
	reg.Register(east.KindTable, r.table)
	reg.Register(east.KindTableHeader, r.tableRow)
	reg.Register(east.KindTableRow, r.tableRow)
	reg.Register(east.KindTableCell, r.tableCell)

	reg.Register(mathast.KindMathBlock, r.displayMath)
	reg.Register(mathast.KindDisplayMath, r.displayMath)
	reg.Register(mathast.KindInlineMath, r.inlineMath)
}

func (r *LaTeXRenderer) document(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	return ast.WalkContinue, nil
}

func (r *LaTeXRenderer) skip(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	return ast.WalkSkipChildren, nil
}

func (r *LaTeXRenderer) heading(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	node := n.(*ast.Heading)
	if entering {
		level := node.Level
		if level < 1 || level >= len(headingCommands) {
			level = len(headingCommands) - 1
		}
		_, _ = w.WriteString("\\" + headingCommands[level] + "{")
		return ast.WalkContinue, nil
	}
	_, _ = w.WriteString("}\n")
	if id, ok := node.AttributeString("id"); ok {
		if b, ok := id.([]byte); ok {
			_, _ = w.WriteString("\\label{" + string(b) + "}\n")
		}
	}
	_ = w.WriteByte('\n')
	return ast.WalkContinue, nil
}

func (r *LaTeXRenderer) paragraph(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		_, _ = w.WriteString("\n\n")
	}
	return ast.WalkContinue, nil
}

func (r *LaTeXRenderer) textBlock(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering && n.NextSibling() != nil {
		_ = w.WriteByte('\n')
	}
	return ast.WalkContinue, nil
}

func (r *LaTeXRenderer) text(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	node := n.(*ast.Text)
	value := node.Segment.Value(source)
	if node.IsRaw() {
		_, _ = w.Write(value)
	} else {
		_, _ = w.WriteString(EscapeLaTeX(string(util.UnescapePunctuations(value))))
	}
	switch {
	case node.HardLineBreak():
		_, _ = w.WriteString("\\\\\n")
	case node.SoftLineBreak():
		_ = w.WriteByte('\n')
	}
	return ast.WalkContinue, nil
}

func (r *LaTeXRenderer) str(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	node := n.(*ast.String)
	if node.IsCode() || node.IsRaw() {
		_, _ = w.Write(node.Value)
	} else {
		_, _ = w.WriteString(EscapeLaTeX(string(node.Value)))
	}
	return ast.WalkContinue, nil
}

func (r *LaTeXRenderer) emphasis(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	node := n.(*ast.Emphasis)
	if entering {
		if node.Level == 2 {
			_, _ = w.WriteString(`\textbf{`)
		} else {
			_, _ = w.WriteString(`\emph{`)
		}
		return ast.WalkContinue, nil
	}
	_ = w.WriteByte('}')
	return ast.WalkContinue, nil
}

func (r *LaTeXRenderer) codeSpan(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	_, _ = w.WriteString(`\texttt{`)
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		var value []byte
		switch t := c.(type) {
		case *ast.Text:
			value = t.Segment.Value(source)
		case *ast.String:
			value = t.Value
		}
		_, _ = w.WriteString(EscapeLaTeX(string(value)))
	}
	_ = w.WriteByte('}')
	return ast.WalkSkipChildren, nil
}

func (r *LaTeXRenderer) codeBlock(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	_, _ = w.WriteString("\\begin{verbatim}\n")
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		_, _ = w.Write(seg.Value(source))
	}
	_, _ = w.WriteString("\\end{verbatim}\n\n")
	return ast.WalkSkipChildren, nil
}

func (r *LaTeXRenderer) blockquote(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString("\\begin{quote}\n")
	} else {
		_, _ = w.WriteString("\\end{quote}\n\n")
	}
	return ast.WalkContinue, nil
}

func (r *LaTeXRenderer) list(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	node := n.(*ast.List)
	env := "itemize"
	if node.IsOrdered() {
		env = "enumerate"
	}
	if entering {
		_, _ = w.WriteString("\\begin{" + env + "}\n")
		if node.IsOrdered() && node.Start > 1 {
			_, _ = w.WriteString("\\setcounter{enumi}{" + strconv.Itoa(node.Start-1) + "}\n")
		}
		return ast.WalkContinue, nil
	}
	_, _ = w.WriteString("\\end{" + env + "}\n\n")
	return ast.WalkContinue, nil
}

func (r *LaTeXRenderer) listItem(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString(`\item `)
	} else {
		_ = w.WriteByte('\n')
	}
	return ast.WalkContinue, nil
}

func (r *LaTeXRenderer) thematicBreak(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString("\\par\\noindent\\rule{\\linewidth}{0.4pt}\\par\n\n")
	}
	return ast.WalkContinue, nil
}

func (r *LaTeXRenderer) link(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	node := n.(*ast.Link)
	if entering {
		_, _ = w.WriteString(`\href{` + urlSpecials.Replace(string(node.Destination)) + `}{`)
	} else {
		_ = w.WriteByte('}')
	}
	return ast.WalkContinue, nil
}

func (r *LaTeXRenderer) autoLink(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	node := n.(*ast.AutoLink)
	url := string(node.URL(source))
	if node.AutoLinkType == ast.AutoLinkEmail && !strings.HasPrefix(strings.ToLower(url), "mailto:") {
		_, _ = w.WriteString(`\href{mailto:` + urlSpecials.Replace(url) + `}{` + EscapeLaTeX(url) + `}`)
		return ast.WalkSkipChildren, nil
	}
	_, _ = w.WriteString(`\url{` + urlSpecials.Replace(url) + `}`)
	return ast.WalkSkipChildren, nil
}

func (r *LaTeXRenderer) image(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	node := n.(*ast.Image)
	_, _ = w.WriteString(`\includegraphics[width=\linewidth]{` + string(node.Destination) + `}`)
	return ast.WalkSkipChildren, nil
}

func (r *LaTeXRenderer) strikethrough(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString(`\sout{`)
	} else {
		_ = w.WriteByte('}')
	}
	return ast.WalkContinue, nil
}

func (r *LaTeXRenderer) taskCheckBox(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	if n.(*east.TaskCheckBox).IsChecked {
		_, _ = w.WriteString(`$\boxtimes$ `)
	} else {
		_, _ = w.WriteString(`$\square$ `)
	}
	return ast.WalkContinue, nil
}

func (r *LaTeXRenderer) table(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	node := n.(*east.Table)
	if !entering {
		_, _ = w.WriteString("\\hline\n\\end{longtable}\n\n")
		return ast.WalkContinue, nil
	}

	var cols strings.Builder
	cols.WriteByte('|')
	for _, a := range node.Alignments {
		switch a {
		case east.AlignCenter:
			cols.WriteByte('c')
		case east.AlignRight:
			cols.WriteByte('r')
		default:
			cols.WriteByte('l')
		}
		cols.WriteByte('|')
	}
	_, _ = w.WriteString("\\begin{longtable}{" + cols.String() + "}\n\\hline\n")
	return ast.WalkContinue, nil
}

func (r *LaTeXRenderer) tableRow(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		return ast.WalkContinue, nil
	}
	if n.Kind() == east.KindTableHeader {
		_, _ = w.WriteString(" \\\\\n\\hline\n\\endhead\n")
	} else {
		_, _ = w.WriteString(" \\\\\n")
	}
	return ast.WalkContinue, nil
}

func (r *LaTeXRenderer) tableCell(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering && n.PreviousSibling() != nil {
		_, _ = w.WriteString(" & ")
	}
	return ast.WalkContinue, nil
}

// displayMath renders MathBlock and DisplayMath nodes. Tagged nodes become
// \[ ... \] with the body copied unchanged; others use equation with split,
// numbered when labelled.
func (r *LaTeXRenderer) displayMath(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}

	var label string
	if dm, ok := n.(*mathast.DisplayMath); ok {
		label = dm.Label
	}
	body := mathast.Body(n, source)

	if mathast.NoWrap(n) {
		if label != "" {
			_, _ = w.WriteString("\\phantomsection\\label{" + label + "}%\n")
		}
		_, _ = w.WriteString("\\[\n")
		_, _ = w.Write(body)
		_, _ = w.WriteString("\n\\]\n\n")
		return ast.WalkSkipChildren, nil
	}

	env := "equation*"
	if label != "" {
		env = "equation"
	}
	_, _ = w.WriteString("\\begin{" + env + "}\n")
	if label != "" {
		_, _ = w.WriteString("\\label{" + label + "}\n")
	}
	_, _ = w.WriteString("\\begin{split}")
	_, _ = w.Write(body)
	_, _ = w.WriteString("\\end{split}\n\\end{" + env + "}\n\n")
	return ast.WalkSkipChildren, nil
}

func (r *LaTeXRenderer) inlineMath(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_ = w.WriteByte('$')
		_, _ = w.Write(n.(*mathast.InlineMath).Value)
		_ = w.WriteByte('$')
	}
	return ast.WalkSkipChildren, nil
}
