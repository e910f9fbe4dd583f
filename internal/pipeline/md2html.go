package pipeline

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"

	"github.com/alnah/go-texprep/internal/mathast"
)

// DefaultHighlightStyle is the chroma style used for code blocks.
const DefaultHighlightStyle = "github"

// htmlTemplate wraps Goldmark's fragment output in a complete HTML5 document.
const htmlTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
%s</head>
<body>
%s
</body>
</html>`

// HTMLWriter renders trees as a standalone HTML5 document.
// Math is emitted with \[ \] and \( \) delimiters for client-side typesetting.
type HTMLWriter struct {
	md    goldmark.Markdown
	title string
	css   string
}

var _ Writer = (*HTMLWriter)(nil)

// NewHTMLWriter creates an HTMLWriter with GFM, syntax highlighting in the
// given chroma style, and math rendering. An empty title defaults to
// "Document"; an empty style selects DefaultHighlightStyle.
func NewHTMLWriter(title, style string) (*HTMLWriter, error) {
	if title == "" {
		title = "Document"
	}
	if style == "" {
		style = DefaultHighlightStyle
	}

	var css bytes.Buffer
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&css, styles.Get(style)); err != nil {
		return nil, fmt.Errorf("%w: highlight stylesheet: %v", ErrRender, err)
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle(style),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true), // CSS classes for smaller HTML and external stylesheet control
				),
			),
		),
		goldmark.WithRendererOptions(
			gmhtml.WithXHTML(),
			renderer.WithNodeRenderers(util.Prioritized(&mathHTMLRenderer{}, 500)),
			// WithUnsafe() intentionally not used: raw HTML in sources is dropped.
		),
	)

	return &HTMLWriter{md: md, title: title, css: css.String()}, nil
}

// Render implements Writer.
func (w *HTMLWriter) Render(doc ast.Node, source []byte) (string, error) {
	var buf bytes.Buffer
	if err := w.md.Renderer().Render(&buf, source, doc); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRender, err)
	}
	return fmt.Sprintf(htmlTemplate, html.EscapeString(w.title), styleBlock(w.css), buf.String()), nil
}

// styleBlock wraps css in a <style> element, escaping sequences that could
// close it early.
func styleBlock(css string) string {
	if css == "" {
		return ""
	}
	return "<style>" + strings.ReplaceAll(css, "</", `<\/`) + "</style>\n"
}

// mathHTMLRenderer renders math nodes for the HTML builder.
type mathHTMLRenderer struct{}

func (r *mathHTMLRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(mathast.KindMathBlock, r.displayMath)
	reg.Register(mathast.KindDisplayMath, r.displayMath)
	reg.Register(mathast.KindInlineMath, r.inlineMath)
}

func (r *mathHTMLRenderer) displayMath(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	_, _ = w.WriteString(`<div class="math"`)
	if dm, ok := n.(*mathast.DisplayMath); ok && dm.Label != "" {
		_, _ = w.WriteString(` id="` + html.EscapeString(dm.Label) + `"`)
	}
	_, _ = w.WriteString(">\\[")
	_, _ = w.WriteString(html.EscapeString(string(mathast.Body(n, source))))
	_, _ = w.WriteString("\\]</div>\n")
	return ast.WalkSkipChildren, nil
}

func (r *mathHTMLRenderer) inlineMath(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString(`<span class="math">\(`)
		_, _ = w.WriteString(html.EscapeString(string(n.(*mathast.InlineMath).Value)))
		_, _ = w.WriteString(`\)</span>`)
	}
	return ast.WalkSkipChildren, nil
}
