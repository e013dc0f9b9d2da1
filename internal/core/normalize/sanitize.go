package normalize

import (
	"strings"
	"unicode/utf8"
)

// Sanitize drops bytes that never appear in an item text:
// NUL and other ASCII controls except tab and line breaks, DEL, C1 controls U+0080..U+009F,
// and invalid UTF-8 bytes. Returns s unchanged when it is already clean
func Sanitize(s string) string {
	i := cleanPrefix(s)
	if i == len(s) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	b.WriteString(s[:i])
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		if keep(r, size) {
			b.WriteString(s[i : i+size])
		}
		i += size
	}
	return b.String()
}

// cleanPrefix returns the length of the longest prefix that needs no cleaning
func cleanPrefix(s string) int {
	i := 0
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		if !keep(r, size) {
			return i
		}
		i += size
	}
	return i
}

func keep(r rune, size int) bool {
	switch {
	case r == utf8.RuneError && size == 1:
		return false
	case r < 0x20:
		return r == '\n' || r == '\r' || r == '\t'
	case r == 0x7F:
		return false
	case r >= 0x80 && r <= 0x9F:
		return false
	}
	return true
}
