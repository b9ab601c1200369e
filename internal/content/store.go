// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package content holds the site's static collections (blog posts, portfolio
// projects, services, the about page's equipment and team, and their
// categories) and the read-only queries the
// listing and detail views run against them. Collections are loaded once from
// embedded YAML files and never mutated afterwards, so a *Store is safe to
// share across goroutines without locking.
package content

import (
	"embed"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"log/slog"

	"golang.org/x/crypto/blake2b"
	"gopkg.in/yaml.v3"

	"mediastudio/internal/models"
)

//go:embed data/*.yaml
var embeddedData embed.FS

// Default number of related entries shown on a detail page.
const DefaultRelatedLimit = 3

// blogFile is the on-disk layout of data/blog.yaml.
type blogFile struct {
	Categories []models.Category `yaml:"categories"`
	Posts      []models.BlogPost `yaml:"posts"`
}

// portfolioFile is the on-disk layout of data/portfolio.yaml.
type portfolioFile struct {
	Categories []models.Category `yaml:"categories"`
	Projects   []models.Project  `yaml:"projects"`
}

// servicesFile is the on-disk layout of data/services.yaml.
type servicesFile struct {
	Categories []models.Category `yaml:"categories"`
	Services   []models.Service  `yaml:"services"`
}

// aboutFile is the on-disk layout of data/about.yaml. Equipment and team
// members each have their own category set.
type aboutFile struct {
	EquipmentCategories []models.Category   `yaml:"equipment_categories"`
	Equipment           []models.Equipment  `yaml:"equipment"`
	TeamCategories      []models.Category   `yaml:"team_categories"`
	Team                []models.TeamMember `yaml:"team"`
}

// Store is the loaded, immutable site content.
type Store struct {
	blogCategories      []models.Category
	posts               []models.BlogPost
	portfolioCategories []models.Category
	projects            []models.Project
	serviceCategories   []models.Category
	services            []models.Service
	equipmentCategories []models.Category
	equipment           []models.Equipment
	teamCategories      []models.Category
	team                []models.TeamMember
	version             string
}

// Load reads the collections embedded in the binary.
func Load() (*Store, error) {
	return LoadFS(embeddedData)
}

// LoadFS reads blog.yaml, portfolio.yaml, services.yaml and about.yaml from the data/
// directory of fsys and checks the collection invariants. A store that fails
// Check is not returned.
func LoadFS(fsys fs.FS) (*Store, error) {
	digest, _ := blake2b.New256(nil)

	var blog blogFile
	if err := decodeFile(fsys, "data/blog.yaml", &blog, digest); err != nil {
		return nil, err
	}
	var portfolio portfolioFile
	if err := decodeFile(fsys, "data/portfolio.yaml", &portfolio, digest); err != nil {
		return nil, err
	}
	var services servicesFile
	if err := decodeFile(fsys, "data/services.yaml", &services, digest); err != nil {
		return nil, err
	}
	var about aboutFile
	if err := decodeFile(fsys, "data/about.yaml", &about, digest); err != nil {
		return nil, err
	}

	s := &Store{
		blogCategories:      blog.Categories,
		posts:               blog.Posts,
		portfolioCategories: portfolio.Categories,
		projects:            portfolio.Projects,
		serviceCategories:   services.Categories,
		services:            services.Services,
		equipmentCategories: about.EquipmentCategories,
		equipment:           about.Equipment,
		teamCategories:      about.TeamCategories,
		team:                about.Team,
		version:             hex.EncodeToString(digest.Sum(nil))[:16],
	}

	if err := s.Check(); err != nil {
		return nil, err
	}

	slog.Info("content loaded",
		"posts", len(s.posts),
		"projects", len(s.projects),
		"services", len(s.services),
		"equipment", len(s.equipment),
		"team", len(s.team),
		"version", s.version,
	)
	return s, nil
}

// decodeFile unmarshals a single YAML file from fsys into v and feeds the
// raw bytes to digest.
func decodeFile(fsys fs.FS, name string, v any, digest io.Writer) error {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	digest.Write(raw)
	if err := yaml.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

// Version fingerprints the loaded files. It changes whenever any content
// file does and namespaces cached responses.
func (s *Store) Version() string {
	return s.version
}

// --- Blog ---

// Posts returns every blog post in collection order.
func (s *Store) Posts() []models.BlogPost {
	return FilterByCategory(s.posts, models.CategoryAll)
}

// Post looks up a blog post by slug.
func (s *Store) Post(slug string) (models.BlogPost, bool) {
	return BySlug(s.posts, slug)
}

// PostsByCategory returns the posts of one blog category, or all posts for "all".
func (s *Store) PostsByCategory(categorySlug string) []models.BlogPost {
	return FilterByCategory(s.posts, categorySlug)
}

// FeaturedPosts returns posts flagged as featured, in collection order.
func (s *Store) FeaturedPosts() []models.BlogPost {
	var out []models.BlogPost
	for _, p := range s.posts {
		if p.Featured {
			out = append(out, p)
		}
	}
	return out
}

// RelatedPosts returns up to limit posts related to post.
func (s *Store) RelatedPosts(post models.BlogPost, limit int) []models.BlogPost {
	return RelatedTo(post, s.posts, limit)
}

// BlogCategories returns the blog category set.
func (s *Store) BlogCategories() []models.Category {
	return append([]models.Category(nil), s.blogCategories...)
}

// BlogCategory looks up a blog category by slug.
func (s *Store) BlogCategory(slug string) (models.Category, bool) {
	return categoryBySlug(s.blogCategories, slug)
}

// --- Portfolio ---

// Projects returns every portfolio project in collection order.
func (s *Store) Projects() []models.Project {
	return FilterByCategory(s.projects, models.CategoryAll)
}

// Project looks up a portfolio project by slug.
func (s *Store) Project(slug string) (models.Project, bool) {
	return BySlug(s.projects, slug)
}

// ProjectsByCategory returns the projects of one portfolio category, or all for "all".
func (s *Store) ProjectsByCategory(categorySlug string) []models.Project {
	return FilterByCategory(s.projects, categorySlug)
}

// RelatedProjects returns up to limit projects related to project.
func (s *Store) RelatedProjects(project models.Project, limit int) []models.Project {
	return RelatedTo(project, s.projects, limit)
}

// PortfolioCategories returns the portfolio category set.
func (s *Store) PortfolioCategories() []models.Category {
	return append([]models.Category(nil), s.portfolioCategories...)
}

// PortfolioCategory looks up a portfolio category by slug.
func (s *Store) PortfolioCategory(slug string) (models.Category, bool) {
	return categoryBySlug(s.portfolioCategories, slug)
}

// --- Services ---

// Services returns every service in collection order.
func (s *Store) Services() []models.Service {
	return FilterByCategory(s.services, models.CategoryAll)
}

// Service looks up a service by slug.
func (s *Store) Service(slug string) (models.Service, bool) {
	return BySlug(s.services, slug)
}

// ServiceCategories returns the service category set.
func (s *Store) ServiceCategories() []models.Category {
	return append([]models.Category(nil), s.serviceCategories...)
}

// ServiceCases resolves a service's related case slugs to portfolio
// projects, in the order the service lists them. Unknown slugs are skipped.
func (s *Store) ServiceCases(service models.Service) []models.Project {
	out := make([]models.Project, 0, len(service.RelatedCases))
	for _, slug := range service.RelatedCases {
		if p, ok := s.Project(slug); ok {
			out = append(out, p)
		}
	}
	return out
}

// --- About ---

// Equipment returns every equipment item in collection order.
func (s *Store) Equipment() []models.Equipment {
	return FilterByCategory(s.equipment, models.CategoryAll)
}

// EquipmentByCategory returns the equipment of one category, or all for "all".
func (s *Store) EquipmentByCategory(categorySlug string) []models.Equipment {
	return FilterByCategory(s.equipment, categorySlug)
}

func (s *Store) EquipmentCategories() []models.Category {
	return append([]models.Category(nil), s.equipmentCategories...)
}

func (s *Store) EquipmentCategory(slug string) (models.Category, bool) {
	return categoryBySlug(s.equipmentCategories, slug)
}

// Team returns every team member in collection order.
func (s *Store) Team() []models.TeamMember {
	return FilterByCategory(s.team, models.CategoryAll)
}

// TeamByCategory returns the members of one department, or everyone for "all".
func (s *Store) TeamByCategory(categorySlug string) []models.TeamMember {
	return FilterByCategory(s.team, categorySlug)
}

func (s *Store) TeamCategories() []models.Category {
	return append([]models.Category(nil), s.teamCategories...)
}

func (s *Store) TeamCategory(slug string) (models.Category, bool) {
	return categoryBySlug(s.teamCategories, slug)
}

// categoryBySlug finds a category by slug in a category set.
func categoryBySlug(categories []models.Category, slug string) (models.Category, bool) {
	for _, c := range categories {
		if c.Slug == slug {
			return c, true
		}
	}
	return models.Category{}, false
}
