// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// CategoryAll is the filter sentinel meaning "every category".
const CategoryAll = "all"

// Category groups entities of one collection. Each collection (blog,
// portfolio, services) has its own category set.
type Category struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Slug        string `json:"slug" yaml:"slug"`
	Description string `json:"description" yaml:"description"`
	Color       string `json:"color,omitempty" yaml:"color,omitempty"`
}
