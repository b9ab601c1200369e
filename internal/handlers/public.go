// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"mediastudio/internal/contact"
	"mediastudio/internal/content"
	"mediastudio/internal/layout"
	"mediastudio/internal/markdown"
	"mediastudio/internal/models"
)

// relatedLimit is how many related posts or projects a detail view shows.
const relatedLimit = content.DefaultRelatedLimit

// Public groups the read-only handlers for the site's content: blog,
// portfolio, services, the about page collections, the contact form's option lists and the layout
// state. Responses are JSON; rendering to HTML is the frontend's job except
// for post bodies, which are turned into HTML here.
type Public struct {
	content  *content.Store
	markdown markdown.Renderer
}

// NewPublic creates the content handler group.
func NewPublic(store *content.Store, md markdown.Renderer) *Public {
	return &Public{content: store, markdown: md}
}

type postDetail struct {
	Post     models.BlogPost    `json:"post"`
	BodyHTML string             `json:"body_html"`
	TOC      []markdown.Heading `json:"toc"`
	Related  []models.BlogPost  `json:"related"`
}

type projectDetail struct {
	Project  models.Project   `json:"project"`
	Category *models.Category `json:"category,omitempty"`
	Related  []models.Project `json:"related"`
}

type serviceDetail struct {
	Service models.Service   `json:"service"`
	Cases   []models.Project `json:"cases"`
}

// categoryParam returns the ?category= filter. An absent or empty value
// means every category.
func categoryParam(r *http.Request) string {
	if c := r.URL.Query().Get("category"); c != "" {
		return c
	}
	return models.CategoryAll
}

// BlogList handles GET /api/blog?category=.
func (p *Public) BlogList(w http.ResponseWriter, r *http.Request) {
	category := categoryParam(r)
	if category != models.CategoryAll {
		if _, ok := p.content.BlogCategory(category); !ok {
			notFound(w, "category")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"category": category,
		"posts":    p.content.PostsByCategory(category),
	})
}

// BlogCategories handles GET /api/blog/categories.
func (p *Public) BlogCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, p.content.BlogCategories())
}

// BlogFeatured handles GET /api/blog/featured.
func (p *Public) BlogFeatured(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, p.content.FeaturedPosts())
}

// BlogPost handles GET /api/blog/{slug}: the post with its rendered body,
// table of contents and related posts.
func (p *Public) BlogPost(w http.ResponseWriter, r *http.Request) {
	post, ok := p.content.Post(chi.URLParam(r, "slug"))
	if !ok {
		notFound(w, "post")
		return
	}

	body, err := p.markdown.Render(post.Body)
	if err != nil {
		slog.Error("render post body failed", "slug", post.Slug, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, postDetail{
		Post:     post,
		BodyHTML: body,
		TOC:      markdown.TableOfContents(post.Body),
		Related:  p.content.RelatedPosts(post, relatedLimit),
	})
}

// PortfolioList handles GET /api/portfolio?category=.
func (p *Public) PortfolioList(w http.ResponseWriter, r *http.Request) {
	category := categoryParam(r)
	if category != models.CategoryAll {
		if _, ok := p.content.PortfolioCategory(category); !ok {
			notFound(w, "category")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"category": category,
		"projects": p.content.ProjectsByCategory(category),
	})
}

// PortfolioCategories handles GET /api/portfolio/categories.
func (p *Public) PortfolioCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, p.content.PortfolioCategories())
}

// PortfolioProject handles GET /api/portfolio/{slug}.
func (p *Public) PortfolioProject(w http.ResponseWriter, r *http.Request) {
	project, ok := p.content.Project(chi.URLParam(r, "slug"))
	if !ok {
		notFound(w, "project")
		return
	}

	resp := projectDetail{
		Project: project,
		Related: p.content.RelatedProjects(project, relatedLimit),
	}
	if cat, ok := p.content.PortfolioCategory(project.Category); ok {
		resp.Category = &cat
	}
	writeJSON(w, http.StatusOK, resp)
}

// Services handles GET /api/services.
func (p *Public) Services(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"categories": p.content.ServiceCategories(),
		"services":   p.content.Services(),
	})
}

// Service handles GET /api/services/{slug}: the service and the portfolio
// projects it lists as case studies.
func (p *Public) Service(w http.ResponseWriter, r *http.Request) {
	svc, ok := p.content.Service(chi.URLParam(r, "slug"))
	if !ok {
		notFound(w, "service")
		return
	}
	writeJSON(w, http.StatusOK, serviceDetail{Service: svc, Cases: p.content.ServiceCases(svc)})
}

// Equipment handles GET /api/about/equipment?category=.
func (p *Public) Equipment(w http.ResponseWriter, r *http.Request) {
	category := categoryParam(r)
	if category != models.CategoryAll {
		if _, ok := p.content.EquipmentCategory(category); !ok {
			notFound(w, "category")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"category":  category,
		"equipment": p.content.EquipmentByCategory(category),
	})
}

// EquipmentCategories handles GET /api/about/equipment/categories.
func (p *Public) EquipmentCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, p.content.EquipmentCategories())
}

// Team handles GET /api/about/team?category=.
func (p *Public) Team(w http.ResponseWriter, r *http.Request) {
	category := categoryParam(r)
	if category != models.CategoryAll {
		if _, ok := p.content.TeamCategory(category); !ok {
			notFound(w, "category")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"category": category,
		"members":  p.content.TeamByCategory(category),
	})
}

// TeamCategories handles GET /api/about/team/categories.
func (p *Public) TeamCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, p.content.TeamCategories())
}

// ContactOptions handles GET /api/contact/options.
func (p *Public) ContactOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"serviceTypes": contact.ServiceTypes(),
		"budgets":      contact.Budgets(),
		"timelines":    contact.Timelines(),
	})
}

// Layout handles GET /api/layout: the layout state derived from the theme
// cookie and ?menu=. With ?toggle=menu the menu state is flipped first.
func (p *Public) Layout(w http.ResponseWriter, r *http.Request) {
	s := layout.FromRequest(r)
	if r.URL.Query().Get("toggle") == "menu" {
		s = s.ToggleMenu()
	}
	writeJSON(w, http.StatusOK, s)
}

// SetTheme handles PUT /api/layout/theme with {"theme": "light"|"dark"} and
// remembers the choice in a cookie.
func (p *Public) SetTheme(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Theme string `json:"theme"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s, err := layout.FromRequest(r).SetTheme(req.Theme)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	layout.WriteCookie(w, s)
	writeJSON(w, http.StatusOK, s)
}
