package sanitize

import (
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// ControlSet matches the C0 control range except tab, line feed and
// carriage return.
var ControlSet = runes.Predicate(IsDisallowedControl)

// IsDisallowedControl reports whether r is a C0 control character that
// must be removed before typesetting.
func IsDisallowedControl(r rune) bool {
	if r >= 0x20 || r < 0 {
		return false
	}
	switch r {
	case '\t', '\n', '\r':
		return false
	}
	return true
}

// isDisallowedByte reports whether b is a disallowed C0 byte. C0 bytes never
// occur inside a multi-byte UTF-8 sequence, so filtering bytes removes
// exactly the runes in ControlSet.
func isDisallowedByte(b byte) bool {
	return b < 0x20 && IsDisallowedControl(rune(b))
}

// controlRemover drops disallowed C0 bytes and copies every other byte,
// including invalid UTF-8, unchanged.
type controlRemover struct{ transform.NopResetter }

// Transform implements transform.Transformer.
func (controlRemover) Transform(dst, src []byte, _ bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		b := src[nSrc]
		if isDisallowedByte(b) {
			nSrc++
			continue
		}
		if nDst >= len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		dst[nDst] = b
		nDst++
		nSrc++
	}
	return nDst, nSrc, nil
}

// NewControlRemover returns a Transformer that removes every rune in
// ControlSet and leaves all other bytes as they are.
func NewControlRemover() transform.Transformer {
	return controlRemover{}
}

// StripControl removes every rune in ControlSet from s. Bytes that are not
// valid UTF-8 are passed through unchanged.
func StripControl(s string) string {
	if indexControl(s) < 0 {
		return s
	}

	out, _, err := transform.String(NewControlRemover(), s)
	if err != nil {
		return stripBytes(s)
	}
	return out
}

func indexControl(s string) int {
	for i := 0; i < len(s); i++ {
		if isDisallowedByte(s[i]) {
			return i
		}
	}
	return -1
}

func stripBytes(s string) string {
	b := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if !isDisallowedByte(s[i]) {
			b = append(b, s[i])
		}
	}
	return string(b)
}
