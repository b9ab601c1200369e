package cache

import (
	"bytes"
	"context"
	"net/http"
)

// Store is the cache surface the HTTP middleware needs.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, body []byte)
}

// Header values reported in X-Cache.
const (
	headerCache = "X-Cache"
	cacheHit    = "HIT"
	cacheMiss   = "MISS"
)

// Key returns the cache key for a request: its path and raw query.
func Key(r *http.Request) string {
	if r.URL.RawQuery == "" {
		return r.URL.Path
	}
	return r.URL.Path + "?" + r.URL.RawQuery
}

// Middleware serves GET JSON responses from s and stores successful ones.
// Only 200 responses are cached. A nil store disables caching.
func Middleware(s Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if s == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}

			key := Key(r)
			if body, ok := s.Get(r.Context(), key); ok {
				w.Header().Set("Content-Type", "application/json; charset=utf-8")
				w.Header().Set(headerCache, cacheHit)
				w.Write(body)
				return
			}

			rec := &recorder{ResponseWriter: w, status: http.StatusOK}
			w.Header().Set(headerCache, cacheMiss)
			next.ServeHTTP(rec, r)

			if rec.status == http.StatusOK && rec.buf.Len() > 0 {
				s.Set(r.Context(), key, rec.buf.Bytes())
			}
		})
	}
}

// recorder passes the response through while keeping a copy of the body.
type recorder struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (r *recorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *recorder) Write(b []byte) (int, error) {
	if r.status == http.StatusOK {
		r.buf.Write(b)
	}
	return r.ResponseWriter.Write(b)
}
