package sanitize

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for replacement table construction.
var (
	ErrEmptyKey             = errors.New("replacement key cannot be empty")
	ErrDuplicateKey         = errors.New("duplicate replacement key")
	ErrKeyReintroduced      = errors.New("replacement value can form a replacement key")
	ErrControlInReplacement = errors.New("replacement value contains a control character")
)

// Arrow is the glyph replaced by the default table.
const Arrow = "➔"

// ArrowReplacement is the math-mode sequence substituted for Arrow.
const ArrowReplacement = `$\rightarrow$`

// Entry maps a literal substring to its typesetting-safe replacement.
type Entry struct {
	From string
	To   string
}

// Table is an immutable, ordered replacement table.
// The zero value replaces nothing.
type Table struct {
	entries  []Entry
	replacer *strings.Replacer
}

// NewTable validates entries and builds a table that applies them in order.
func NewTable(entries ...Entry) (*Table, error) {
	if err := validateEntries(entries); err != nil {
		return nil, err
	}

	owned := make([]Entry, len(entries))
	copy(owned, entries)

	pairs := make([]string, 0, len(owned)*2)
	for _, e := range owned {
		pairs = append(pairs, e.From, e.To)
	}

	return &Table{entries: owned, replacer: strings.NewReplacer(pairs...)}, nil
}

// MustNewTable is like NewTable but panics on an invalid table.
func MustNewTable(entries ...Entry) *Table {
	t, err := NewTable(entries...)
	if err != nil {
		panic("sanitize: " + err.Error())
	}
	return t
}

var defaultTable = MustNewTable(Entry{From: Arrow, To: ArrowReplacement})

// DefaultTable returns the built-in table.
func DefaultTable() *Table {
	return defaultTable
}

// Extend returns a new table with entries merged in.
// An entry whose key already exists overrides the value at its original
// position; new keys are appended in the order given.
func (t *Table) Extend(entries ...Entry) (*Table, error) {
	merged := t.Entries()
	index := make(map[string]int, len(merged))
	for i, e := range merged {
		index[e.From] = i
	}

	for _, e := range entries {
		if i, ok := index[e.From]; ok {
			merged[i].To = e.To
			continue
		}
		index[e.From] = len(merged)
		merged = append(merged, e)
	}

	return NewTable(merged...)
}

// Entries returns a copy of the table's entries in application order.
func (t *Table) Entries() []Entry {
	if t == nil {
		return nil
	}
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len returns the number of entries.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Replace substitutes every non-overlapping key occurrence in one
// left-to-right scan. Replacement values are never rescanned. When two keys
// match at the same position, the one declared first wins.
func (t *Table) Replace(s string) string {
	if t == nil || t.replacer == nil || s == "" {
		return s
	}
	return t.replacer.Replace(s)
}

func validateEntries(entries []Entry) error {
	seen := make(map[string]struct{}, len(entries))
	for i, e := range entries {
		if e.From == "" {
			return fmt.Errorf("%w: entry %d", ErrEmptyKey, i)
		}
		if _, dup := seen[e.From]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateKey, e.From)
		}
		seen[e.From] = struct{}{}
		if strings.IndexFunc(e.To, IsDisallowedControl) >= 0 {
			return fmt.Errorf("%w: value for %q", ErrControlInReplacement, e.From)
		}
	}

	// No value may form a key, alone or together with the text around it,
	// or a second pass would substitute again.
	for _, e := range entries {
		for _, k := range entries {
			if canFormKey(e.To, k.From) {
				return fmt.Errorf("%w: value %q for %q can form %q", ErrKeyReintroduced, e.To, e.From, k.From)
			}
		}
	}

	return nil
}

// canFormKey reports whether writing v into arbitrary text can produce an
// occurrence of k that overlaps v. Comparison is by bytes, since bytes that
// are not valid UTF-8 pass through unchanged.
func canFormKey(v, k string) bool {
	if v == "" {
		// Deleting text joins its neighbours.
		return len(k) > 1
	}
	if strings.Contains(v, k) || strings.Contains(k, v) {
		return true
	}
	for n := 1; n < len(k) && n < len(v); n++ {
		if strings.HasSuffix(v, k[:n]) || strings.HasPrefix(v, k[len(k)-n:]) {
			return true
		}
	}
	return false
}
