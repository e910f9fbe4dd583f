// Package sanitize rewrites raw source text so it is safe to hand to a
// LaTeX engine.
//
// Two steps run in a fixed order:
//   - C0 control characters are removed, except tab, line feed and
//     carriage return, so line and column positions stay meaningful.
//   - The replacement table is applied in a single left-to-right scan.
//
// Tables are validated at construction so that Sanitize is idempotent: no
// value may contain a key, sit inside a key, or share a prefix or suffix
// with one, and a value may be empty only when every key is a single byte.
package sanitize

// Sanitize strips disallowed control characters from s, then applies t.
// A nil table only strips control characters.
func Sanitize(s string, t *Table) string {
	if s == "" {
		return s
	}
	return t.Replace(StripControl(s))
}
