// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package markdown

import (
	"regexp"
	"strings"
)

var (
	legacyH1       = regexp.MustCompile(`(?m)^# (.+)$`)
	legacyH2       = regexp.MustCompile(`(?m)^## (.+)$`)
	legacyH3       = regexp.MustCompile(`(?m)^### (.+)$`)
	legacyBold     = regexp.MustCompile(`(?m)^\*\*(.+?)\*\*`)
	legacyItalic   = regexp.MustCompile(`(?m)^\*(.+?)\*`)
	legacyBullet   = regexp.MustCompile(`(?m)^- (.+)$`)
	legacyNumbered = regexp.MustCompile(`(?m)^(\d+\. .+)$`)
	legacyList     = regexp.MustCompile(`(?s)(<li.*</li>)`)
)

const paragraphOpen = `<p class="mb-4">`

// Legacy is the line-based transformer existing posts were authored against.
// Its output is a contract, quirks included:
//
//   - "# ", "## ", "### " lines become h1–h3 whose id is the raw heading text.
//   - "**x**" and "*x*" are converted only at the very start of a line.
//   - "- x" lines and "N. x" lines become <li>; numbered items keep their number.
//   - every "\n\n" becomes "</p>" + a new paragraph opener.
//   - every line not starting with "<h", "<l", "<s" or "<|" gets a paragraph
//     opener, including the empty line after a trailing newline.
//   - everything from the first "<li" to the last "</li>" is wrapped in a
//     single <ul>, even across paragraphs.
//
// Input is expected to use "\n" line endings.
type Legacy struct{}

// Render applies the transformation. It never fails.
func (Legacy) Render(source string) (string, error) {
	out := legacyH1.ReplaceAllString(source, `<h1 id="${1}" class="text-3xl font-display font-bold mb-6 mt-8 first:mt-0">${1}</h1>`)
	out = legacyH2.ReplaceAllString(out, `<h2 id="${1}" class="text-2xl font-display font-semibold mb-4 mt-6">${1}</h2>`)
	out = legacyH3.ReplaceAllString(out, `<h3 id="${1}" class="text-xl font-display font-semibold mb-3 mt-5">${1}</h3>`)
	out = legacyBold.ReplaceAllString(out, `<strong class="font-semibold">${1}</strong>`)
	out = legacyItalic.ReplaceAllString(out, `<em class="italic">${1}</em>`)
	out = legacyBullet.ReplaceAllString(out, `<li class="mb-2">${1}</li>`)
	out = legacyNumbered.ReplaceAllString(out, `<li class="mb-2">${1}</li>`)
	out = strings.ReplaceAll(out, "\n\n", "</p>"+paragraphOpen)
	out = openParagraphs(out)
	out = legacyList.ReplaceAllString(out, `<ul class="list-disc list-inside mb-4 space-y-2">${1}</ul>`)
	return out, nil
}

// openParagraphs inserts a paragraph opener at every line start that is not
// already a heading, list item, or strong tag.
func openParagraphs(s string) string {
	var b strings.Builder
	b.Grow(len(s) + len(paragraphOpen)*4)

	start := 0
	for {
		if !startsWithBlockTag(s[start:]) {
			b.WriteString(paragraphOpen)
		}
		i := strings.IndexByte(s[start:], '\n')
		if i < 0 {
			b.WriteString(s[start:])
			return b.String()
		}
		b.WriteString(s[start : start+i+1])
		start += i + 1
	}
}

// startsWithBlockTag matches "<" followed by one of h, l, s, or "|".
func startsWithBlockTag(line string) bool {
	return len(line) >= 2 && line[0] == '<' && strings.IndexByte("hls|", line[1]) >= 0
}
