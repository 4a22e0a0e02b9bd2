// Package escape turns snapshot strings into markup-safe text.
package escape

import "strings"

var (
	textReplacer = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrReplacer = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;", "'", "&#39;")
)

// Text escapes s for use as HTML text content.
func Text(s string) string {
	if s == "" {
		return ""
	}
	return textReplacer.Replace(s)
}

// Attr escapes s for use inside a quoted HTML attribute.
func Attr(s string) string {
	if s == "" {
		return ""
	}
	return attrReplacer.Replace(s)
}
