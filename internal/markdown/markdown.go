// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package markdown turns blog post bodies into HTML. Callers depend on the
// Renderer interface only, so the line-based Legacy transformer that existing
// posts were written against can be swapped for the goldmark-backed parser
// without touching them.
package markdown

import (
	"fmt"
	"strings"
)

// Renderer converts Markdown source into an HTML fragment.
type Renderer interface {
	Render(source string) (string, error)
}

// Renderer names accepted by ByName.
const (
	NameLegacy   = "legacy"
	NameGoldmark = "goldmark"
)

// ByName returns the renderer registered under name. An empty name selects
// the legacy transformer, which is the default.
func ByName(name string) (Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", NameLegacy:
		return Legacy{}, nil
	case NameGoldmark:
		return NewGoldmark(), nil
	default:
		return nil, fmt.Errorf("markdown: unknown renderer %q", name)
	}
}
