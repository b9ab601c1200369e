package markdown

import (
	"regexp"
	"strings"

	"mediastudio/internal/slug"
)

var (
	tocHeading = regexp.MustCompile(`(?m)^#{1,3}\s+(.+)$`)
	tocMarker  = regexp.MustCompile(`^#+\s+`)
)

// Heading is one table-of-contents entry.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
	ID    string `json:"id"`
}

// TableOfContents lists the level 1–3 headings of a Markdown document in
// order. IDs come from slug.Anchor and are independent of the renderer.
func TableOfContents(source string) []Heading {
	matches := tocHeading.FindAllString(source, -1)
	headings := make([]Heading, 0, len(matches))
	for _, m := range matches {
		level := len(m) - len(strings.TrimLeft(m, "#"))
		text := tocMarker.ReplaceAllString(m, "")
		headings = append(headings, Heading{
			Level: level,
			Text:  text,
			ID:    slug.Anchor(text),
		})
	}
	return headings
}
