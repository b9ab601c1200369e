// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import (
	"errors"
	"fmt"

	"mediastudio/internal/models"
	"mediastudio/internal/slug"
)

// ErrInvalidContent is wrapped by every error Check returns.
var ErrInvalidContent = errors.New("invalid content")

// Check verifies the collection invariants: slugs are URL-safe and unique
// within each collection, every category reference resolves, no category
// shadows the "all" sentinel, and every service case points to a project.
// All violations are reported, not only the first.
func (s *Store) Check() error {
	var errs []error

	errs = append(errs, checkCategories("blog", s.blogCategories)...)
	errs = append(errs, checkCategories("portfolio", s.portfolioCategories)...)
	errs = append(errs, checkCategories("services", s.serviceCategories)...)
	errs = append(errs, checkCategories("equipment", s.equipmentCategories)...)
	errs = append(errs, checkCategories("team", s.teamCategories)...)

	errs = append(errs, checkEntities("blog", s.posts, s.blogCategories)...)
	errs = append(errs, checkEntities("portfolio", s.projects, s.portfolioCategories)...)
	errs = append(errs, checkEntities("services", s.services, s.serviceCategories)...)
	errs = append(errs, checkEntities("equipment", s.equipment, s.equipmentCategories)...)
	errs = append(errs, checkEntities("team", s.team, s.teamCategories)...)

	for _, svc := range s.services {
		for _, ref := range svc.RelatedCases {
			if _, ok := s.Project(ref); !ok {
				errs = append(errs, fmt.Errorf("services: %q references unknown project %q", svc.Slug, ref))
			}
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidContent, errors.Join(errs...))
}

// checkCategories validates one category set.
func checkCategories(collection string, categories []models.Category) []error {
	var errs []error
	seen := make(map[string]bool, len(categories))
	for _, c := range categories {
		switch {
		case c.Slug == models.CategoryAll:
			errs = append(errs, fmt.Errorf("%s: category slug %q is reserved", collection, c.Slug))
		case !slug.Valid(c.Slug):
			errs = append(errs, fmt.Errorf("%s: category slug %q is not URL-safe", collection, c.Slug))
		case seen[c.Slug]:
			errs = append(errs, fmt.Errorf("%s: duplicate category slug %q", collection, c.Slug))
		}
		seen[c.Slug] = true
	}
	return errs
}

// checkEntities validates the entries of one collection against its categories.
func checkEntities[T Entity](collection string, items []T, categories []models.Category) []error {
	var errs []error
	slugs := make(map[string]bool, len(items))
	ids := make(map[string]bool, len(items))
	for _, item := range items {
		e := item.Base()
		if e.ID == "" {
			errs = append(errs, fmt.Errorf("%s: entry %q has no id", collection, e.Slug))
		} else if ids[e.ID] {
			errs = append(errs, fmt.Errorf("%s: duplicate id %q", collection, e.ID))
		}
		ids[e.ID] = true

		if !slug.Valid(e.Slug) {
			errs = append(errs, fmt.Errorf("%s: slug %q is not URL-safe", collection, e.Slug))
		} else if slugs[e.Slug] {
			errs = append(errs, fmt.Errorf("%s: duplicate slug %q", collection, e.Slug))
		}
		slugs[e.Slug] = true

		if _, ok := categoryBySlug(categories, e.Category); !ok {
			errs = append(errs, fmt.Errorf("%s: %q references unknown category %q", collection, e.Slug, e.Category))
		}
	}
	return errs
}
