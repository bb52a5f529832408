// Package markup turns lesson text into HTML-safe fragments.
package markup

import "html"

// Escape converts text into its HTML-safe form.
//
// It replaces <, >, &, ' and " with their entities and leaves every
// other character as is. It must be applied to any text coming from the
// lesson API, the execution API or the user before it is placed into
// markup.
func Escape(text string) string {
	return html.EscapeString(text)
}
