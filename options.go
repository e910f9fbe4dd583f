package texprep

// Option configures an App.
type Option func(*App)

// appConfig holds construction-time settings for App.
type appConfig struct {
	replacements     []Replacement
	standalone       bool
	engine           string
	documentClass    string
	unicodeFallbacks bool
	preambleExtra    string
	highlightStyle   string
	htmlTitle        string
}

// WithReplacements extends the default replacement table used by New.
// Entries with an existing key override its value.
func WithReplacements(replacements ...Replacement) Option {
	return func(a *App) {
		a.cfg.replacements = append(a.cfg.replacements, replacements...)
	}
}

// WithStandalone wraps LaTeX output in a complete document with preamble.
func WithStandalone(standalone bool) Option {
	return func(a *App) {
		a.cfg.standalone = standalone
	}
}

// WithEngine selects the engine named in the standalone preamble:
// "xelatex" (default), "lualatex" or "pdflatex".
func WithEngine(engine string) Option {
	return func(a *App) {
		a.cfg.engine = engine
	}
}

// WithDocumentClass sets the standalone document class (default "article").
func WithDocumentClass(class string) Option {
	return func(a *App) {
		a.cfg.documentClass = class
	}
}

// WithUnicodeFallbacks toggles the \newunicodechar declarations in the
// standalone preamble. Enabled by default.
func WithUnicodeFallbacks(enabled bool) Option {
	return func(a *App) {
		a.cfg.unicodeFallbacks = enabled
	}
}

// WithPreambleExtra appends raw LaTeX to the standalone preamble.
func WithPreambleExtra(tex string) Option {
	return func(a *App) {
		a.cfg.preambleExtra = tex
	}
}

// WithHighlightStyle sets the chroma style for HTML code blocks.
func WithHighlightStyle(style string) Option {
	return func(a *App) {
		a.cfg.highlightStyle = style
	}
}

// WithHTMLTitle sets the <title> of HTML output.
func WithHTMLTitle(title string) Option {
	return func(a *App) {
		a.cfg.htmlTitle = title
	}
}
