// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for the handler tests.
// Handlers run against the embedded content and an in-memory transport, so
// no external service is needed.
package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"mediastudio/internal/contact"
	"mediastudio/internal/content"
	"mediastudio/internal/markdown"
)

// fakeTransport records deliveries with their origin and returns err. When
// hold is set, each delivery signals started and waits for hold to close.
type fakeTransport struct {
	mu      sync.Mutex
	subs    []*contact.Submission
	origins []contact.Origin
	err     error

	started chan struct{}
	hold    chan struct{}
}

func (f *fakeTransport) Deliver(ctx context.Context, sub *contact.Submission) error {
	if f.hold != nil {
		f.started <- struct{}{}
		<-f.hold
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subs = append(f.subs, sub)
	f.origins = append(f.origins, contact.OriginFrom(ctx))
	return f.err
}

func (f *fakeTransport) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}

// testEnv holds the handler groups and a router wired the same way as the
// production router, minus middleware.
type testEnv struct {
	transport *fakeTransport
	registry  *contact.Registry
	router    chi.Router
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store, err := content.Load()
	require.NoError(t, err)

	tr := &fakeTransport{}
	reg := contact.NewRegistry(tr, time.Minute)
	t.Cleanup(reg.Stop)

	pub := NewPublic(store, markdown.Legacy{})
	con := NewContact(reg, tr, "test-key")

	r := chi.NewRouter()
	r.Get("/api/blog", pub.BlogList)
	r.Get("/api/blog/categories", pub.BlogCategories)
	r.Get("/api/blog/featured", pub.BlogFeatured)
	r.Get("/api/blog/{slug}", pub.BlogPost)
	r.Get("/api/portfolio", pub.PortfolioList)
	r.Get("/api/portfolio/categories", pub.PortfolioCategories)
	r.Get("/api/portfolio/{slug}", pub.PortfolioProject)
	r.Get("/api/services", pub.Services)
	r.Get("/api/services/{slug}", pub.Service)
	r.Get("/api/about/equipment", pub.Equipment)
	r.Get("/api/about/equipment/categories", pub.EquipmentCategories)
	r.Get("/api/about/team", pub.Team)
	r.Get("/api/about/team/categories", pub.TeamCategories)
	r.Get("/api/layout", pub.Layout)
	r.Put("/api/layout/theme", pub.SetTheme)
	r.Get("/api/contact/options", pub.ContactOptions)
	r.Post("/api/contact", con.Post)
	r.Post("/api/contact/forms", con.Mount)
	r.Get("/api/contact/forms/{id}", con.Show)
	r.Patch("/api/contact/forms/{id}", con.Change)
	r.Post("/api/contact/forms/{id}/submit", con.Submit)
	r.Post("/api/contact/forms/{id}/reset", con.Reset)
	r.Delete("/api/contact/forms/{id}", con.Unmount)

	return &testEnv{transport: tr, registry: reg, router: r}
}

// do sends a request with an optional JSON body and returns the recorder.
func (e *testEnv) do(method, path, body string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	req.RemoteAddr = "203.0.113.7:5555"
	req.Header.Set("User-Agent", "handler-test")
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), "body: %s", rr.Body.String())
	return v
}

const validInquiryJSON = `{
	"name": "Jane Doe",
	"email": "jane@example.com",
	"serviceType": "event-coverage",
	"budget": "5k-15k",
	"timeline": "1-month",
	"message": "We need our annual conference filmed.",
	"newsletter": true,
	"privacy": true
}`
