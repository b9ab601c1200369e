// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package contact

import (
	"context"
	"fmt"
	"maps"
	"sync"
)

// Status is the lifecycle position of a form.
type Status int

const (
	StatusEditing Status = iota
	StatusSubmitting
	StatusSubmitted
)

func (s Status) String() string {
	switch s {
	case StatusEditing:
		return "editing"
	case StatusSubmitting:
		return "submitting"
	case StatusSubmitted:
		return "submitted"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// MarshalText encodes the status by name in JSON responses.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText accepts the names MarshalText produces.
func (s *Status) UnmarshalText(text []byte) error {
	for _, st := range []Status{StatusEditing, StatusSubmitting, StatusSubmitted} {
		if string(text) == st.String() {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("contact: unknown status %q", text)
}

// State is a snapshot of a form. It shares nothing with the form.
type State struct {
	Fields      Candidate   `json:"fields"`
	Errors      FieldErrors `json:"errors"`
	Status      Status      `json:"status"`
	SubmitError string      `json:"submitError,omitempty"`
}

// Form owns the state of one mounted contact form and moves it through
// Editing → Submitting → Submitted. Validation failures and transport
// failures return it to Editing with the entered values intact. Nothing
// leads back out of Submitted except Reset, which is refused while a
// submission is in flight.
//
// A Form is safe for concurrent use. The transport is called without the
// lock held, and at most one call is in flight per form.
type Form struct {
	transport Transport

	mu        sync.Mutex
	fields    Candidate
	errors    FieldErrors
	status    Status
	submitErr string
}

// NewForm creates a form in its initial state that hands validated
// submissions to t.
func NewForm(t Transport) *Form {
	f := &Form{transport: t}
	f.reset()
	return f
}

func initialFields() Candidate {
	return Candidate{FieldNewsletter: false, FieldPrivacy: false}
}

func (f *Form) reset() {
	f.fields = initialFields()
	f.errors = FieldErrors{}
	f.status = StatusEditing
	f.submitErr = ""
}

// Change sets one field. An error recorded for that field by the last
// submit attempt is cleared; other fields are not revalidated.
func (f *Form) Change(name string, value any) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch f.status {
	case StatusSubmitted:
		return ErrFormClosed
	case StatusSubmitting:
		return ErrSubmitInProgress
	}

	f.fields[name] = value
	delete(f.errors, name)
	return nil
}

// Submit validates the current fields and, when they pass, delivers the
// submission. It returns ErrSubmitInProgress without side effects while
// another Submit is in flight, *ValidationError when the fields are
// invalid, and *SubmissionError when the transport fails.
func (f *Form) Submit(ctx context.Context) error {
	f.mu.Lock()
	switch f.status {
	case StatusSubmitting:
		f.mu.Unlock()
		return ErrSubmitInProgress
	case StatusSubmitted:
		f.mu.Unlock()
		return ErrFormClosed
	}

	f.status = StatusSubmitting
	f.errors = FieldErrors{}
	f.submitErr = ""

	sub, errs := Validate(f.fields)
	if errs != nil {
		f.errors = errs
		f.status = StatusEditing
		f.mu.Unlock()
		return &ValidationError{Fields: maps.Clone(errs)}
	}
	f.mu.Unlock()

	err := f.deliver(ctx, sub)

	f.mu.Lock()
	defer f.mu.Unlock()

	if err != nil {
		f.status = StatusEditing
		f.submitErr = submitMessage(err)
		return &SubmissionError{Err: err}
	}
	f.status = StatusSubmitted
	return nil
}

// deliver calls the transport, turning a panic into an error so the form
// never stays in Submitting.
func (f *Form) deliver(ctx context.Context, sub *Submission) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("transport panic: %v", r)
		}
	}()
	if f.transport == nil {
		return fmt.Errorf("no transport configured")
	}
	return f.transport.Deliver(ctx, sub)
}

// Reset returns the form to its initial state, ready for a new inquiry.
// It returns ErrSubmitInProgress while a submission is being delivered.
func (f *Form) Reset() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.status == StatusSubmitting {
		return ErrSubmitInProgress
	}
	f.reset()
	return nil
}

// State returns a snapshot of the form.
func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()

	return State{
		Fields:      maps.Clone(f.fields),
		Errors:      maps.Clone(f.errors),
		Status:      f.status,
		SubmitError: f.submitErr,
	}
}
