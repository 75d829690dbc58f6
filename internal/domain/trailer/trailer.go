// Package trailer builds external video-search links for catalog items.
package trailer

import (
	"fmt"
	"strings"
)

// DefaultTemplate is the search URL the query is embedded into.
const DefaultTemplate = "https://www.youtube.com/results?search_query=%s"

// Synthesizer renders trailer search URLs from a fixed template.
type Synthesizer struct {
	template string
}

// New creates a Synthesizer. An empty template selects DefaultTemplate.
func New(template string) Synthesizer {
	if template == "" {
		template = DefaultTemplate
	}
	return Synthesizer{template: template}
}

// URL returns the search link for title and year. The URL is never fetched.
func (s Synthesizer) URL(title, year string) string {
	return fmt.Sprintf(s.template, query(title, year))
}

// query joins the title words with "+" and appends "+<year>+trailer".
func query(title, year string) string {
	return strings.Join(strings.Fields(title), "+") + "+" + year + "+trailer"
}
