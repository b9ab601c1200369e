// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation and checking.
package slug

import (
	"regexp"
	"strings"
)

var (
	// nonAlphanumeric matches anything that isn't a letter, digit, or space.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9\s-]`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
	// anchorRun matches a run of characters not allowed in a heading anchor.
	anchorRun = regexp.MustCompile(`[^a-z0-9]+`)
)

// Generate creates a URL-friendly slug from the given string.
// Example: "Hello, World! 2026" → "hello-world-2026"
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = nonAlphanumeric.ReplaceAllString(result, "")
	result = strings.ReplaceAll(result, " ", "-")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	return result
}

// Valid reports whether s is already a canonical slug, i.e. non-empty and
// unchanged by Generate.
func Valid(s string) bool {
	return s != "" && Generate(s) == s
}

// Anchor derives a heading anchor id. Unlike Generate it does not trim, so
// leading or trailing punctuation becomes a hyphen:
// "Why 4K? (Really)" → "why-4k-really-".
func Anchor(text string) string {
	return anchorRun.ReplaceAllString(strings.ToLower(text), "-")
}
