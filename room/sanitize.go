package room

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Callers are untrusted, so every free-text field is stripped of markup
// before it reaches the stores. StrictPolicy removes all HTML elements and
// attributes, keeping only their text content.
var markup = bluemonday.StrictPolicy()

func sanitize(s string) string {
	return strings.TrimSpace(markup.Sanitize(s))
}
