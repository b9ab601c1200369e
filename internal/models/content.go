// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// Entry holds the fields every content entity shares. The filtering and
// lookup logic only ever looks at an Entry; everything else on a post,
// project, or service is opaque to it.
type Entry struct {
	ID       string   `json:"id" yaml:"id"`
	Slug     string   `json:"slug" yaml:"slug"`
	Category string   `json:"category" yaml:"category"`
	Tags     []string `json:"tags" yaml:"tags"`
}

// Base returns the entry itself. Types embedding Entry inherit it, which is
// what lets them satisfy content.Entity.
func (e Entry) Base() Entry {
	return e
}

// HasTag reports whether the entry carries the given tag (exact match).
func (e Entry) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// SEO is the per-entity search metadata block. It is stored with the content
// and handed to whatever renders the page head.
type SEO struct {
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Keywords    []string `json:"keywords" yaml:"keywords"`
}

// Author is the byline of a blog post.
type Author struct {
	Name   string `json:"name" yaml:"name"`
	Avatar string `json:"avatar" yaml:"avatar"`
	Bio    string `json:"bio" yaml:"bio"`
}

// BlogPost is an article in the blog collection. Body is Markdown.
type BlogPost struct {
	Entry       `yaml:",inline"`
	Title       string    `json:"title" yaml:"title"`
	Excerpt     string    `json:"excerpt" yaml:"excerpt"`
	Body        string    `json:"body" yaml:"body"`
	CoverImage  string    `json:"cover_image" yaml:"cover_image"`
	Author      Author    `json:"author" yaml:"author"`
	PublishedAt time.Time `json:"published_at" yaml:"published_at"`
	UpdatedAt   time.Time `json:"updated_at" yaml:"updated_at"`
	ReadTime    int       `json:"read_time" yaml:"read_time"` // minutes
	Featured    bool      `json:"featured" yaml:"featured"`
	SEO         SEO       `json:"seo" yaml:"seo"`
}

// Video describes the hero video of a portfolio project.
type Video struct {
	URL      string `json:"url" yaml:"url"`
	Poster   string `json:"poster" yaml:"poster"`
	Duration string `json:"duration" yaml:"duration"`
}

// Testimonial is a client quote attached to a project.
type Testimonial struct {
	Text   string `json:"text" yaml:"text"`
	Author string `json:"author" yaml:"author"`
	Role   string `json:"role" yaml:"role"`
}

// Project is a case study in the portfolio collection.
type Project struct {
	Entry       `yaml:",inline"`
	Title       string       `json:"title" yaml:"title"`
	Description string       `json:"description" yaml:"description"`
	Client      string       `json:"client" yaml:"client"`
	Year        int          `json:"year" yaml:"year"`
	Duration    string       `json:"duration" yaml:"duration"`
	Roles       []string     `json:"roles" yaml:"roles"`
	Challenge   string       `json:"challenge" yaml:"challenge"`
	Solution    string       `json:"solution" yaml:"solution"`
	Results     string       `json:"results" yaml:"results"`
	Video       Video        `json:"video" yaml:"video"`
	Gallery     []string     `json:"gallery" yaml:"gallery"`
	Equipment   []string     `json:"equipment" yaml:"equipment"`
	Team        []string     `json:"team" yaml:"team"`
	Testimonial *Testimonial `json:"testimonial,omitempty" yaml:"testimonial,omitempty"`
	SEO         SEO          `json:"seo" yaml:"seo"`
}

// Package is a priced tier of a service.
type Package struct {
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Price       string   `json:"price" yaml:"price"`
	Duration    string   `json:"duration" yaml:"duration"`
	Includes    []string `json:"includes" yaml:"includes"`
	Popular     bool     `json:"popular,omitempty" yaml:"popular,omitempty"`
}

// FAQ is a question/answer pair shown on a service page.
type FAQ struct {
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`
}

// Service is an offering in the services collection. RelatedCases holds
// slugs of portfolio projects that showcase it.
type Service struct {
	Entry            `yaml:",inline"`
	Title            string    `json:"title" yaml:"title"`
	ShortDescription string    `json:"short_description" yaml:"short_description"`
	Description      string    `json:"description" yaml:"description"`
	Features         []string  `json:"features" yaml:"features"`
	Packages         []Package `json:"packages" yaml:"packages"`
	Gallery          []string  `json:"gallery" yaml:"gallery"`
	FAQ              []FAQ     `json:"faq" yaml:"faq"`
	RelatedCases     []string  `json:"related_cases" yaml:"related_cases"`
	SEO              SEO       `json:"seo" yaml:"seo"`
}
