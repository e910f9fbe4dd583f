package texprep

// Builder names recognized by App.
const (
	LaTeXBuilder = "latex"
	HTMLBuilder  = "html"
)

// IsTypesetting reports whether builder names the LaTeX backend.
// The comparison is exact and case-sensitive.
func IsTypesetting(builder string) bool {
	return builder == LaTeXBuilder
}

// isKnownBuilder reports whether App can render for builder.
func isKnownBuilder(builder string) bool {
	switch builder {
	case LaTeXBuilder, HTMLBuilder:
		return true
	}
	return false
}

// Source holds the raw text of one document while it is being read.
// Source-read handlers replace Text in place.
type Source struct {
	DocName string
	Text    string
}

// Replacement maps a literal substring to its typesetting-safe form.
type Replacement struct {
	From string
	To   string
}

// Document is one unit of input to App.Build.
type Document struct {
	Name     string // Used in error messages and passed to handlers (optional)
	Markdown string // Markdown content (required)
}

// Result holds the rendered output for one document.
type Result struct {
	Name        string
	Builder     string
	Output      string // LaTeX or HTML, depending on Builder
	DisplayMath int    // Display-math nodes in the resolved tree
	Tagged      int    // Display-math nodes carrying nowrap when rendered
}
