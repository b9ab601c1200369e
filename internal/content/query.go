// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import "mediastudio/internal/models"

// Entity is anything the listing queries can work with: blog posts,
// portfolio projects, and services all embed models.Entry.
type Entity interface {
	Base() models.Entry
}

// BySlug returns the entity whose slug matches exactly. The boolean is false
// when no entity has that slug; callers render a not-found page in that case.
func BySlug[T Entity](items []T, slug string) (T, bool) {
	for _, item := range items {
		if item.Base().Slug == slug {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// FilterByCategory returns the entities in the given category, keeping their
// original relative order. The "all" sentinel returns a copy of the whole
// collection.
func FilterByCategory[T Entity](items []T, categorySlug string) []T {
	if categorySlug == models.CategoryAll {
		out := make([]T, len(items))
		copy(out, items)
		return out
	}

	out := make([]T, 0, len(items))
	for _, item := range items {
		if item.Base().Category == categorySlug {
			out = append(out, item)
		}
	}
	return out
}

// RelatedTo returns up to limit entities from items that share the entity's
// category or at least one of its tags. The entity itself (matched by ID) is
// never included. Matches are taken in collection order; there is no ranking.
func RelatedTo[T Entity](entity T, items []T, limit int) []T {
	if limit <= 0 {
		return []T{}
	}

	base := entity.Base()
	out := make([]T, 0, limit)
	for _, item := range items {
		if len(out) == limit {
			break
		}
		candidate := item.Base()
		if candidate.ID == base.ID {
			continue
		}
		if candidate.Category == base.Category || sharesTag(base, candidate) {
			out = append(out, item)
		}
	}
	return out
}

// sharesTag reports whether a and b have at least one tag in common.
func sharesTag(a, b models.Entry) bool {
	for _, tag := range b.Tags {
		if a.HasTag(tag) {
			return true
		}
	}
	return false
}
