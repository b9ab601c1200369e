// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"

	"mediastudio/internal/contact"
	"mediastudio/internal/middleware"
)

// DefaultSubmitTimeout bounds one delivery through the transport chain.
const DefaultSubmitTimeout = 30 * time.Second

// Contact groups the contact form handlers. Script clients mount a form,
// patch fields as the visitor types and submit it; plain HTML forms post
// everything at once to /api/contact.
type Contact struct {
	registry  *contact.Registry
	transport contact.Transport
	hashKey   []byte
	timeout   time.Duration
}

// NewContact creates the contact handler group. Forms mounted through the
// registry deliver with the registry's transport; one-shot posts use t.
// hashKey keys the hash that pseudonymises client addresses.
func NewContact(registry *contact.Registry, t contact.Transport, hashKey string) *Contact {
	return &Contact{
		registry:  registry,
		transport: t,
		hashKey:   []byte(hashKey),
		timeout:   DefaultSubmitTimeout,
	}
}

type formResponse struct {
	ID        string              `json:"id,omitempty"`
	InquiryID string              `json:"inquiry_id,omitempty"`
	Error     string              `json:"error,omitempty"`
	Errors    contact.FieldErrors `json:"errors,omitempty"`
	State     contact.State       `json:"state"`
}

// Mount handles POST /api/contact/forms.
func (c *Contact) Mount(w http.ResponseWriter, r *http.Request) {
	id, f := c.registry.Mount()
	writeJSON(w, http.StatusCreated, formResponse{ID: id.String(), State: f.State()})
}

// Show handles GET /api/contact/forms/{id}.
func (c *Contact) Show(w http.ResponseWriter, r *http.Request) {
	id, f, ok := c.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, formResponse{ID: id.String(), State: f.State()})
}

// Change handles PATCH /api/contact/forms/{id} with a JSON object of field
// values. Fields are applied in schema order.
func (c *Contact) Change(w http.ResponseWriter, r *http.Request) {
	id, f, ok := c.lookup(w, r)
	if !ok {
		return
	}

	var changes map[string]any
	if err := decodeJSON(w, r, &changes); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	for name := range changes {
		if !contact.IsField(name) {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown field %q", name))
			return
		}
	}

	for _, name := range contact.FieldNames() {
		value, present := changes[name]
		if !present {
			continue
		}
		if err := f.Change(name, value); err != nil {
			writeJSON(w, http.StatusConflict, formResponse{ID: id.String(), Error: err.Error(), State: f.State()})
			return
		}
	}
	writeJSON(w, http.StatusOK, formResponse{ID: id.String(), State: f.State()})
}

// Submit handles POST /api/contact/forms/{id}/submit.
func (c *Contact) Submit(w http.ResponseWriter, r *http.Request) {
	id, f, ok := c.lookup(w, r)
	if !ok {
		return
	}
	c.submit(w, r, id.String(), f)
}

// Reset handles POST /api/contact/forms/{id}/reset, readying a submitted
// form for another inquiry. A form that is still delivering answers 409.
func (c *Contact) Reset(w http.ResponseWriter, r *http.Request) {
	id, f, ok := c.lookup(w, r)
	if !ok {
		return
	}
	if err := f.Reset(); err != nil {
		writeJSON(w, http.StatusConflict, formResponse{ID: id.String(), Error: err.Error(), State: f.State()})
		return
	}
	writeJSON(w, http.StatusOK, formResponse{ID: id.String(), State: f.State()})
}

// Unmount handles DELETE /api/contact/forms/{id}.
func (c *Contact) Unmount(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil || !c.registry.Unmount(id) {
		notFound(w, "form")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Post handles POST /api/contact: mount, fill and submit in one request.
// The body is a JSON object or an HTML form post, where checkboxes arrive
// as "on" and unchecked ones are absent.
func (c *Contact) Post(w http.ResponseWriter, r *http.Request) {
	candidate, err := c.readCandidate(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	f := contact.NewForm(c.transport)
	for _, name := range contact.FieldNames() {
		if value, present := candidate[name]; present {
			// A fresh form is always Editing.
			_ = f.Change(name, value)
		}
	}
	c.submit(w, r, "", f)
}

func (c *Contact) readCandidate(w http.ResponseWriter, r *http.Request) (contact.Candidate, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/json":
		var candidate contact.Candidate
		if err := decodeJSON(w, r, &candidate); err != nil {
			return nil, err
		}
		return candidate, nil
	case "multipart/form-data":
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		if err := r.ParseMultipartForm(maxBodyBytes); err != nil {
			return nil, fmt.Errorf("invalid form: %w", err)
		}
	default:
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("invalid form: %w", err)
		}
	}
	return candidateFromForm(r), nil
}

// candidateFromForm maps posted form values onto a candidate. Empty text
// inputs count as not filled in.
func candidateFromForm(r *http.Request) contact.Candidate {
	candidate := contact.Candidate{}
	for _, name := range contact.FieldNames() {
		value := r.PostFormValue(name)
		switch name {
		case contact.FieldNewsletter, contact.FieldPrivacy:
			candidate[name] = value == "on" || value == "true"
		default:
			if value != "" {
				candidate[name] = value
			}
		}
	}
	return candidate
}

// submit runs f.Submit detached from the client connection, so a visitor
// closing the tab does not abort a half-written inquiry, and maps the
// outcome onto a status code.
func (c *Contact) submit(w http.ResponseWriter, r *http.Request, formID string, f *contact.Form) {
	origin := contact.Origin{
		InquiryID:  uuid.New(),
		ClientHash: clientHash(c.hashKey, middleware.ClientIP(r)),
		UserAgent:  r.UserAgent(),
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), c.timeout)
	defer cancel()

	err := f.Submit(contact.WithOrigin(ctx, origin))
	resp := formResponse{ID: formID, State: f.State()}

	var verr *contact.ValidationError
	switch {
	case err == nil:
		resp.InquiryID = origin.InquiryID.String()
		writeJSON(w, http.StatusCreated, resp)
	case errors.As(err, &verr):
		resp.Errors = verr.Fields
		writeJSON(w, http.StatusUnprocessableEntity, resp)
	case errors.Is(err, contact.ErrSubmitInProgress), errors.Is(err, contact.ErrFormClosed):
		resp.Error = err.Error()
		writeJSON(w, http.StatusConflict, resp)
	case errors.Is(err, contact.ErrRejected):
		resp.Error = contact.MsgRejected
		writeJSON(w, http.StatusUnprocessableEntity, resp)
	default:
		slog.Error("inquiry delivery failed", "inquiry_id", origin.InquiryID, "error", err)
		resp.Error = contact.MsgSubmitFailed
		writeJSON(w, http.StatusBadGateway, resp)
	}
}

func (c *Contact) lookup(w http.ResponseWriter, r *http.Request) (uuid.UUID, *contact.Form, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		notFound(w, "form")
		return uuid.Nil, nil, false
	}
	f, ok := c.registry.Get(id)
	if !ok {
		notFound(w, "form")
		return uuid.Nil, nil, false
	}
	return id, f, true
}

// clientHash pseudonymises a client address with a keyed 128-bit BLAKE2b.
func clientHash(key []byte, ip string) string {
	h, err := blake2b.New(16, key)
	if err != nil {
		// Only an oversized key fails, and config rejects those.
		h, _ = blake2b.New(16, nil)
	}
	h.Write([]byte(ip))
	return hex.EncodeToString(h.Sum(nil))
}
