// Package router sets up the HTTP routes and middleware chains of the
// MediaStudio API. Content reads are cacheable; anything that changes
// state sits behind CSRF protection, and contact submissions are also rate
// limited per client.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"mediastudio/internal/cache"
	"mediastudio/internal/handlers"
	"mediastudio/internal/middleware"
)

// Deps are the handler groups and shared middleware the router wires up.
// Cache may be nil to serve every read uncached; pass an untyped nil, not
// a nil *cache.ResponseCache.
type Deps struct {
	Public        *handlers.Public
	Contact       *handlers.Contact
	Cache         cache.Store
	RateLimiter   *middleware.RateLimiter
	SecureCookies bool
}

// New creates and returns the configured Chi router.
func New(d Deps) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	r.NotFound(jsonStatus(http.StatusNotFound, "not found"))
	r.MethodNotAllowed(jsonStatus(http.StatusMethodNotAllowed, "method not allowed"))

	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		// Site content. Immutable for the life of the process, so cached.
		r.Group(func(r chi.Router) {
			r.Use(cache.Middleware(d.Cache))

			r.Get("/blog", d.Public.BlogList)
			r.Get("/blog/categories", d.Public.BlogCategories)
			r.Get("/blog/featured", d.Public.BlogFeatured)
			r.Get("/blog/{slug}", d.Public.BlogPost)

			r.Get("/portfolio", d.Public.PortfolioList)
			r.Get("/portfolio/categories", d.Public.PortfolioCategories)
			r.Get("/portfolio/{slug}", d.Public.PortfolioProject)

			r.Get("/services", d.Public.Services)
			r.Get("/services/{slug}", d.Public.Service)

			r.Get("/about/equipment", d.Public.Equipment)
			r.Get("/about/equipment/categories", d.Public.EquipmentCategories)
			r.Get("/about/team", d.Public.Team)
			r.Get("/about/team/categories", d.Public.TeamCategories)

			r.Get("/contact/options", d.Public.ContactOptions)
		})

		// Per-visitor state: never cached, writes need the CSRF token.
		r.Group(func(r chi.Router) {
			r.Use(middleware.NewCSRF(d.SecureCookies))

			r.Get("/layout", d.Public.Layout)
			r.Put("/layout/theme", d.Public.SetTheme)

			r.Group(func(r chi.Router) {
				if d.RateLimiter != nil {
					r.Use(d.RateLimiter.Middleware)
				}

				r.Post("/contact", d.Contact.Post)
				r.Post("/contact/forms", d.Contact.Mount)
				r.Get("/contact/forms/{id}", d.Contact.Show)
				r.Patch("/contact/forms/{id}", d.Contact.Change)
				r.Delete("/contact/forms/{id}", d.Contact.Unmount)
				r.Post("/contact/forms/{id}/submit", d.Contact.Submit)
				r.Post("/contact/forms/{id}/reset", d.Contact.Reset)
			})
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func jsonStatus(status int, msg string) http.HandlerFunc {
	body := []byte(`{"error":"` + msg + `"}`)
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(status)
		w.Write(body)
	}
}
