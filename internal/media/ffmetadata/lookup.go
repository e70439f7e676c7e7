package ffmetadata

import "strings"

// Lookup returns the value of the first line that starts with "key=". The
// value is everything after the first '=' with trailing line terminators
// removed. It reports false when no line matches.
func Lookup(key string, lines []string) (string, bool) {
	prefix := key + "="
	for _, line := range lines {
		if !strings.HasPrefix(line, prefix) {
			continue
		}
		return strings.TrimRight(line[len(prefix):], "\r\n"), true
	}
	return "", false
}

// LookupTag is Lookup for tag dumps: the value is unescaped and blank values
// count as absent.
func LookupTag(key string, lines []string) (string, bool) {
	raw, ok := Lookup(key, lines)
	if !ok {
		return "", false
	}
	value := Unescape(raw)
	if strings.TrimSpace(value) == "" {
		return "", false
	}
	return value, true
}

// SplitLines splits tool output into lines, tolerating CRLF endings.
func SplitLines(output string) []string {
	output = strings.ReplaceAll(output, "\r\n", "\n")
	output = strings.TrimRight(output, "\n")
	if output == "" {
		return nil
	}
	return strings.Split(output, "\n")
}
