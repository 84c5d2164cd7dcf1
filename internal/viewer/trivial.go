package viewer

import "strings"

const flagName = "flag.txt"

// stripTrivial reduces a raw filename to the form used for the trivial
// flag.txt checks: trimmed, backslashes removed, leading slashes dropped, lowercased.
func stripTrivial(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, `\`, "")
	s = strings.TrimLeft(s, "/")
	return strings.ToLower(s)
}

// IsTrivialFlagRequest reports whether raw is a direct attempt at flag.txt
// such as "flag.txt", "/flag.txt", "./flag.txt" or "flag.txt?x".
func IsTrivialFlagRequest(raw string) bool {
	s := stripTrivial(raw)
	if s == flagName || strings.HasPrefix(s, flagName+"?") {
		return true
	}
	return strings.HasPrefix(s, "./") && s[2:] == flagName
}

// IsNaiveTraversal is the weak blacklist: a literal "../" is refused unless the
// request mentions app/flag.txt.
func IsNaiveTraversal(raw string) bool {
	return strings.Contains(raw, "../") && !strings.Contains(strings.ToLower(raw), appFlagSuffix)
}
