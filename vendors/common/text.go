package common

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// ansiRegex matches ANSI escape sequences (colors, cursor movement, etc.)
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;?]*[a-zA-Z]`)

// StripANSI removes ANSI escape codes from a string.
// Useful for parsing CLI output that may contain terminal formatting.
func StripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// NormalizeNewlines converts CRLF and lone CR line endings to LF.
// PTY sessions deliver CRLF; the parsers only deal in LF.
func NormalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// IndexFold returns the byte index of the first case-insensitive occurrence
// of substr in s, or -1. The index is valid for slicing s itself.
func IndexFold(s, substr string) int {
	if substr == "" {
		return 0
	}
	n := len(substr)
	for i := 0; i+n <= len(s); {
		if strings.EqualFold(s[i:i+n], substr) {
			return i
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return -1
}

// ContainsFold reports whether substr occurs in s ignoring case.
func ContainsFold(s, substr string) bool {
	return IndexFold(s, substr) >= 0
}

// OutputLabel names a module's output i the way the chassis letters them:
// 0 = "A", 25 = "Z", 26 = "AA".
func OutputLabel(i int) string {
	label := ""
	for i++; i > 0; i = (i - 1) / 26 {
		label = string(rune('A'+(i-1)%26)) + label
	}
	return label
}
