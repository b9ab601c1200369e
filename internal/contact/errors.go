package contact

import (
	"errors"
	"fmt"
)

var (
	// ErrFormClosed is returned for any input once the form was submitted.
	// A new mount is required to file another inquiry.
	ErrFormClosed = errors.New("contact: form already submitted")

	// ErrSubmitInProgress is returned while a submission is in flight.
	ErrSubmitInProgress = errors.New("contact: submission in progress")

	// ErrRejected marks a transport refusal that retrying will not fix
	// without editing the message, such as a moderation flag.
	ErrRejected = errors.New("contact: submission rejected")
)

// Submission-level messages shown as a banner rather than next to a field.
const (
	MsgSubmitFailed = "We could not send your message. Please try again in a moment."
	MsgRejected     = "Your message could not be accepted. Please revise it and try again."
)

// ValidationError reports a submit attempt rejected by the validator.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("contact: %d invalid field(s)", len(e.Fields))
}

// SubmissionError wraps a transport failure.
type SubmissionError struct {
	Err error
}

func (e *SubmissionError) Error() string {
	return "contact: deliver submission: " + e.Err.Error()
}

func (e *SubmissionError) Unwrap() error { return e.Err }

// submitMessage picks the banner text for a transport failure.
func submitMessage(err error) string {
	if errors.Is(err, ErrRejected) {
		return MsgRejected
	}
	return MsgSubmitFailed
}
