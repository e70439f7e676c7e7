package ffmetadata

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

var escaper = strings.NewReplacer(
	`\`, `\\`,
	`=`, `\=`,
	`;`, `\;`,
	`#`, `\#`,
	"\n", "\\\n",
)

// Escape normalizes value to NFC and backslash-escapes the characters that
// carry meaning in an ffmetadata document.
func Escape(value string) string {
	value = strings.ReplaceAll(value, "\r", "")
	return escaper.Replace(norm.NFC.String(value))
}

// Unescape reverses Escape's backslash escaping. A trailing lone backslash is
// dropped.
func Unescape(value string) string {
	if !strings.Contains(value, `\`) {
		return value
	}
	var b strings.Builder
	b.Grow(len(value))
	escaped := false
	for _, r := range value {
		if escaped {
			b.WriteRune(r)
			escaped = false
			continue
		}
		if r == '\\' {
			escaped = true
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
