package viewer

import (
	"regexp"
	"strings"
)

var dotRun = regexp.MustCompile(`\.{4,}`)

// Normalize produces the lowercase matching form of raw. It is lossy and only
// used to recognize traversal shapes, never to open files.
func Normalize(raw string) string {
	s := strings.ReplaceAll(Unquote(raw), `\`, "/")
	for strings.Contains(s, "//") {
		s = strings.ReplaceAll(s, "//", "/")
	}
	s = dotRun.ReplaceAllLiteralString(s, "../")
	s = strings.ReplaceAll(s, "/./", "/")
	return strings.ToLower(s)
}

// Unquote percent-decodes s leniently: malformed escapes are kept as-is, '+'
// stays a plus, and the decoded bytes are read as UTF-8 with invalid sequences
// replaced by U+FFFD.
func Unquote(s string) string {
	if !strings.Contains(s, "%") {
		return s
	}
	buf := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) {
			hi, okHi := unhex(s[i+1])
			lo, okLo := unhex(s[i+2])
			if okHi && okLo {
				buf = append(buf, hi<<4|lo)
				i += 2
				continue
			}
		}
		buf = append(buf, s[i])
	}
	return strings.ToValidUTF8(string(buf), "�")
}

func unhex(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
