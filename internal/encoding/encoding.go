package encoding

import "strings"

var angleReplacer = strings.NewReplacer("<", "&lt;", ">", "&gt;")

// EscapeAngles neutralizes tag delimiters only; ampersands and quotes pass through.
func EscapeAngles(s string) string {
	return angleReplacer.Replace(s)
}

// PreBlock wraps file content in a <pre> element after escaping angle brackets.
func PreBlock(content string) string {
	return "<pre>" + EscapeAngles(content) + "</pre>"
}
