package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policy    = bluemonday.StrictPolicy()
	ugcPolicy = bluemonday.UGCPolicy()
)

// Text strips all HTML from user-submitted content. Article bodies, comments
// and chat messages are stored as plain text with newline-delimited
// paragraphs, so nothing richer than text survives the boundary. Entities
// are unescaped afterwards so "&amp;" round-trips as "&".
func Text(input string) string {
	stripped := policy.Sanitize(input)
	return strings.TrimSpace(html.UnescapeString(stripped))
}

// HTML keeps the user-generated-content subset of markup. Article bodies may
// carry formatting, so they go through the UGC policy instead of the strict
// one.
func HTML(input string) string {
	return strings.TrimSpace(ugcPolicy.Sanitize(input))
}
