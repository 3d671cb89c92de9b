package sxc

// Token is a half-open view into the source: it never owns storage, and the
// source string it points into must outlive it.
type Token struct {
	data string // the token's byte content, sliced directly from the source
	pos  int    // byte offset of data[0] in the source, for diagnostics
}

// Zero reports whether tok is the terminator token produced past the end of
// the source -- the last token has null data.
func (tok Token) Zero() bool { return tok.data == "" }

// String returns the token's literal source text.
func (tok Token) String() string { return tok.data }

// Equal reports whether two tokens have identical byte contents.
func (tok Token) Equal(other Token) bool { return tok.data == other.data }

// EqualString reports whether tok's byte contents equal s.
func (tok Token) EqualString(s string) bool { return tok.data == s }

// isNumber reports whether tok can only be a numeric literal: its first byte
// is '-' or a decimal digit.
func (tok Token) isNumber() bool {
	if tok.data == "" {
		return false
	}
	ch := tok.data[0]
	return ch == '-' || (ch >= '0' && ch <= '9')
}
