// Package texprep prepares Markdown documents for a LaTeX build.
//
// # Quick Start
//
// Create an app for the LaTeX builder and build a document:
//
//	app, err := texprep.New(texprep.LaTeXBuilder)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := app.Build(ctx, texprep.Document{
//	    Name:     "intro",
//	    Markdown: "Input ➔ output\n\n$$\nE = mc^2\n$$\n",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("intro.tex", []byte(result.Output), 0644)
//
// # Build Pipeline
//
// Each document goes through these stages:
//
//  1. source-read: handlers may rewrite the raw text
//  2. Parse via Goldmark (GFM, "$$" math blocks, "```math" fences, "$...$")
//  3. Resolution: math fences become numbered DisplayMath nodes
//  4. doctree-resolved: handlers may annotate nodes
//  5. Render with the builder's writer (LaTeX or HTML)
//
// New connects the two built-in handlers. They do nothing unless the
// builder is exactly "latex":
//
//   - Sanitizer removes C0 control characters other than tab, line feed
//     and carriage return, then applies the replacement table ("➔" becomes
//     "$\rightarrow$") in a single left-to-right scan.
//   - Tagger sets the "nowrap" attribute on every display-math node so the
//     LaTeX writer emits \[ ... \] rather than equation with split.
//
// # Custom Handlers
//
// Use NewApp to start without handlers, then connect your own or the
// built-in Extension:
//
//	app, _ := texprep.NewApp(texprep.LaTeXBuilder)
//	ext, _ := texprep.NewExtension(texprep.Replacement{From: "♯", To: `\#`})
//	texprep.Setup(app, ext)
//	app.ConnectSourceRead(func(builder string, src *texprep.Source) {
//	    src.Text = strings.ReplaceAll(src.Text, "TODO", "")
//	})
//
// Replacement tables are validated when built: no value may contain a key
// or a control character, so sanitizing twice is the same as once.
//
// # Standalone Output
//
// WithStandalone(true) wraps LaTeX output in a document whose preamble
// names the engine (xelatex by default), loads amsmath, longtable and
// hyperref, declares \newunicodechar fallbacks for common dashes, spaces,
// bullets and arrows, and keeps #, & and _ literal inside longtable.
package texprep
