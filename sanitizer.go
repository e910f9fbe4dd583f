package texprep

import (
	"fmt"

	"github.com/alnah/go-texprep/internal/sanitize"
)

// Sanitizer strips disallowed control characters and applies the
// replacement table to sources read for the LaTeX builder.
// The zero value uses the default table.
type Sanitizer struct {
	table *sanitize.Table
}

// NewSanitizer creates a Sanitizer using the default table extended with
// replacements. An entry whose From matches an existing key overrides it.
// Returns ErrInvalidReplacement if the resulting table could rescan its
// own output.
func NewSanitizer(replacements ...Replacement) (*Sanitizer, error) {
	table, err := buildTable(replacements)
	if err != nil {
		return nil, err
	}
	return &Sanitizer{table: table}, nil
}

// DefaultReplacements returns the built-in replacement table in order.
func DefaultReplacements() []Replacement {
	entries := sanitize.DefaultTable().Entries()
	out := make([]Replacement, len(entries))
	for i, e := range entries {
		out[i] = Replacement{From: e.From, To: e.To}
	}
	return out
}

func buildTable(replacements []Replacement) (*sanitize.Table, error) {
	if len(replacements) == 0 {
		return sanitize.DefaultTable(), nil
	}
	entries := make([]sanitize.Entry, len(replacements))
	for i, r := range replacements {
		entries[i] = sanitize.Entry{From: r.From, To: r.To}
	}
	table, err := sanitize.DefaultTable().Extend(entries...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidReplacement, err)
	}
	return table, nil
}

// Sanitize returns text sanitized for builder. Non-LaTeX builders get
// text back unchanged.
func (s *Sanitizer) Sanitize(builder, text string) string {
	if !IsTypesetting(builder) {
		return text
	}
	return sanitize.Sanitize(text, s.tableOrDefault())
}

// OnSourceRead rewrites src.Text in place when builder is the LaTeX builder.
func (s *Sanitizer) OnSourceRead(builder string, src *Source) {
	if src == nil || !IsTypesetting(builder) {
		return
	}
	src.Text = sanitize.Sanitize(src.Text, s.tableOrDefault())
}

func (s *Sanitizer) tableOrDefault() *sanitize.Table {
	if s == nil || s.table == nil {
		return sanitize.DefaultTable()
	}
	return s.table
}
