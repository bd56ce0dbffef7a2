// Package compile turns a document into its three deliverables: a plain-text
// resume, a styled HTML resume preview, and a standalone portfolio site.
// Every projection is a pure function of the document (and theme), so the
// same input always compiles to the same bytes.
package compile

import "html"

// esc escapes document text for interpolation into markup. Every
// user-controlled value in the HTML projections passes through here.
func esc(s string) (escaped string) {
	escaped = html.EscapeString(s)
	return escaped
}
