// Package htmlsanitize cleans user-supplied rich text before it is stored.
//
// Classroom descriptions and recommendation notes may contain HTML from
// the client. Sanitize strips scripts, event handlers, and other unsafe
// markup while keeping common formatting, links, images, and tables.
package htmlsanitize

import "github.com/microcosm-cc/bluemonday"

var policy = buildPolicy()

func buildPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()

	// UGCPolicy covers formatting, links, lists, and images but not the
	// table attributes rich-text editors emit.
	p.AllowAttrs("colspan", "rowspan").OnElements("td", "th")
	p.AllowAttrs("class").Globally()
	p.AllowAttrs("style").OnElements("table", "tr", "td", "th")

	return p
}

// Sanitize returns s with unsafe HTML removed. Plain text passes through
// unchanged.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return policy.Sanitize(s)
}
