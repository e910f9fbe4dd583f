package pipeline

import (
	"fmt"
	"strings"
)

// Supported LaTeX engines for the magic comment.
const (
	EngineXeLaTeX  = "xelatex"
	EngineLuaLaTeX = "lualatex"
	EnginePDFLaTeX = "pdflatex"
)

// DefaultDocumentClass is used when PreambleOptions.DocumentClass is empty.
const DefaultDocumentClass = "article"

// UnicodeFallback maps a character the default fonts lack to TeX input.
type UnicodeFallback struct {
	Char        string
	Replacement string
	Comment     string
}

// UnicodeFallbacks are declared with \newunicodechar in standalone output.
// They complement the source-level replacement table: these survive in the
// text and are only remapped at typesetting time.
var UnicodeFallbacks = []UnicodeFallback{
	{Char: "‒", Replacement: `\textendash`, Comment: "figure dash"},
	{Char: "–", Replacement: `\textendash`, Comment: "en-dash"},
	{Char: "—", Replacement: `\textemdash`, Comment: "em-dash"},
	{Char: "\u2011", Replacement: `-`, Comment: "non-breaking hyphen"},
	{Char: "\u00a0", Replacement: `\nobreakspace`, Comment: "NBSP (U+00A0)"},
	{Char: "\u202f", Replacement: `\,`, Comment: "narrow NBSP (U+202F)"},
	{Char: "•", Replacement: `\textbullet`, Comment: "bullet"},
	{Char: "▸", Replacement: `\textbullet`, Comment: "small triangle bullet"},
	{Char: "→", Replacement: `\textrightarrow`, Comment: "U+2192"},
	{Char: "↔", Replacement: `\textleftrightarrow`, Comment: "U+2194"},
	{Char: "↦", Replacement: `\ensuremath{\mapsto}`, Comment: "U+21A6"},
	{Char: "⟶", Replacement: `\textrightarrow`, Comment: "U+27F6"},
	{Char: "♯", Replacement: `\#`, Comment: "music sharp = hash"},
	{Char: "∗", Replacement: `\ensuremath{\ast}`, Comment: "math star"},
}

// longtableCatcodes keeps #, & and _ literal inside longtable.
const longtableCatcodes = `\usepackage{etoolbox}
\makeatletter
\AtBeginEnvironment{longtable}{%
  \catcode` + "`" + `\#=12 \catcode` + "`" + `\&=12 \catcode` + "`" + `\_=12
}
\AtEndEnvironment{longtable}{%
  \catcode` + "`" + `\#=6  \catcode` + "`" + `\&=4  \catcode` + "`" + `\_=8
}
\makeatother
`

// PreambleOptions configures standalone LaTeX output.
type PreambleOptions struct {
	Engine           string // xelatex (default), lualatex, pdflatex
	DocumentClass    string // article when empty
	UnicodeFallbacks bool   // emit \newunicodechar declarations (xelatex, lualatex only)
	Extra            string // appended verbatim before \begin{document}
}

// DefaultPreambleOptions returns xelatex with Unicode fallbacks.
func DefaultPreambleOptions() PreambleOptions {
	return PreambleOptions{
		Engine:           EngineXeLaTeX,
		DocumentClass:    DefaultDocumentClass,
		UnicodeFallbacks: true,
	}
}

// ValidEngine reports whether engine is a supported engine name.
func ValidEngine(engine string) bool {
	switch engine {
	case EngineXeLaTeX, EngineLuaLaTeX, EnginePDFLaTeX:
		return true
	}
	return false
}

// Preamble builds everything up to, but excluding, \begin{document}.
func Preamble(opts PreambleOptions) string {
	engine := opts.Engine
	if engine == "" {
		engine = EngineXeLaTeX
	}
	class := opts.DocumentClass
	if class == "" {
		class = DefaultDocumentClass
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%% !TEX program = %s\n", engine)
	fmt.Fprintf(&b, "\\documentclass{%s}\n", class)

	if engine == EnginePDFLaTeX {
		b.WriteString("\\usepackage[utf8]{inputenc}\n\\usepackage[T1]{fontenc}\n")
	} else {
		b.WriteString("\\usepackage{fontspec}\n")
	}
	b.WriteString("\\usepackage{amsmath,amssymb}\n")
	b.WriteString("\\usepackage{graphicx}\n")
	b.WriteString("\\usepackage{longtable}\n")
	b.WriteString("\\usepackage[normalem]{ulem}\n")
	b.WriteString("\\usepackage{hyperref}\n")

	// newunicodechar needs a Unicode engine.
	if opts.UnicodeFallbacks && engine != EnginePDFLaTeX {
		b.WriteString("\\usepackage{newunicodechar}\n")
		for _, f := range UnicodeFallbacks {
			fmt.Fprintf(&b, "\\newunicodechar{%s}{%s} %% %s\n", f.Char, f.Replacement, f.Comment)
		}
	}

	b.WriteString(longtableCatcodes)

	if opts.Extra != "" {
		b.WriteString(strings.TrimRight(opts.Extra, "\n"))
		b.WriteByte('\n')
	}
	return b.String()
}
