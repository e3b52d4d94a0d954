package ui

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// DisplayText makes s safe to print: every byte that is not part of a
// valid UTF-8 sequence is rendered as a \xNN escape.
func DisplayText(s string) string {
	if utf8.ValidString(s) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 8)
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size <= 1 {
			fmt.Fprintf(&b, `\x%02x`, s[i])
			i++
			continue
		}
		b.WriteString(s[i : i+size])
		i += size
	}
	return b.String()
}
