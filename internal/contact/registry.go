package contact

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type registryEntry struct {
	form     *Form
	lastSeen time.Time
}

// Registry holds the live forms of all browser mounts, keyed by a random id.
// Forms idle for longer than the TTL are dropped by a background sweep.
type Registry struct {
	transport Transport
	ttl       time.Duration

	mu     sync.Mutex
	forms  map[uuid.UUID]*registryEntry
	stopCh chan struct{}
	once   sync.Once
}

// NewRegistry creates a registry whose forms deliver to t. It starts a
// goroutine that expires idle forms; call Stop to end it.
func NewRegistry(t Transport, ttl time.Duration) *Registry {
	r := &Registry{
		transport: t,
		ttl:       ttl,
		forms:     make(map[uuid.UUID]*registryEntry),
		stopCh:    make(chan struct{}),
	}

	interval := ttl / 2
	if interval <= 0 || interval > 5*time.Minute {
		interval = 5 * time.Minute
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				r.sweep(time.Now())
			case <-r.stopCh:
				return
			}
		}
	}()

	return r
}

// Stop terminates the background sweep. It is safe to call more than once.
func (r *Registry) Stop() {
	r.once.Do(func() { close(r.stopCh) })
}

// Mount creates a fresh form and returns its id.
func (r *Registry) Mount() (uuid.UUID, *Form) {
	id := uuid.New()
	f := NewForm(r.transport)

	r.mu.Lock()
	r.forms[id] = &registryEntry{form: f, lastSeen: time.Now()}
	r.mu.Unlock()

	return id, f
}

// Get returns the form with the given id and marks it as active.
func (r *Registry) Get(id uuid.UUID) (*Form, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.forms[id]
	if !ok {
		return nil, false
	}
	e.lastSeen = time.Now()
	return e.form, true
}

// Unmount discards a form. It reports whether the id was known.
func (r *Registry) Unmount(id uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.forms[id]
	delete(r.forms, id)
	return ok
}

// Len returns the number of live forms.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.forms)
}

// sweep removes forms not touched since now minus the TTL.
func (r *Registry) sweep(now time.Time) {
	cutoff := now.Add(-r.ttl)

	r.mu.Lock()
	defer r.mu.Unlock()

	for id, e := range r.forms {
		if e.lastSeen.Before(cutoff) {
			delete(r.forms, id)
		}
	}
}
