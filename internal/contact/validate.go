// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package contact

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Validation messages shown next to the offending field.
const (
	msgNameTooShort    = "Name must be at least 2 characters"
	msgNameTooLong     = "Name must be less than 50 characters"
	msgEmailInvalid    = "Please enter a valid email address"
	msgServiceType     = "Please select a service type"
	msgBudget          = "Please select a budget range"
	msgTimeline        = "Please select a timeline"
	msgMessageTooShort = "Message must be at least 10 characters"
	msgMessageTooLong  = "Message must be less than 1000 characters"
	msgPrivacy         = "You must accept the privacy policy"
	msgExpectedText    = "Expected text"
	msgExpectedBool    = "Expected true or false"
)

// emailPattern is the address grammar: a local part of letters, digits and
// _'+-. whose last character is not "." or "'", then dot-separated domain
// labels ending in an alphabetic TLD of two or more letters. The leading-dot
// and double-dot rules are checked separately.
var emailPattern = regexp.MustCompile(`^[A-Za-z0-9_'+\-.]*[A-Za-z0-9_+\-]@([A-Za-z0-9][A-Za-z0-9\-]*\.)+[A-Za-z]{2,}$`)

// Candidate is a partial record of raw field values keyed by field name.
// Values are strings or booleans; missing keys and nil values are absent.
type Candidate map[string]any

// FieldErrors maps a field name to the first constraint it violated.
type FieldErrors map[string]string

// Submission is a candidate that satisfied every schema constraint.
type Submission struct {
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Phone       *string `json:"phone,omitempty"`
	Company     *string `json:"company,omitempty"`
	ServiceType string  `json:"serviceType"`
	Budget      string  `json:"budget"`
	Timeline    string  `json:"timeline"`
	Message     string  `json:"message"`
	Newsletter  bool    `json:"newsletter"`
	Privacy     bool    `json:"privacy"`
}

// ValidEmail reports whether s matches the accepted address grammar.
func ValidEmail(s string) bool {
	if strings.HasPrefix(s, ".") || strings.Contains(s, "..") {
		return false
	}
	return emailPattern.MatchString(s)
}

// Validate checks c against the contact schema. It returns the typed
// submission when every constraint holds, otherwise the first violation of
// every failing field. Validate has no side effects.
func Validate(c Candidate) (*Submission, FieldErrors) {
	v := validator{c: c, errs: FieldErrors{}}
	var sub Submission

	if name, ok := v.text(FieldName); ok {
		switch n := utf8.RuneCountInString(name); {
		case n < minNameLen:
			v.fail(FieldName, msgNameTooShort)
		case n > maxNameLen:
			v.fail(FieldName, msgNameTooLong)
		default:
			sub.Name = name
		}
	}

	if email, ok := v.text(FieldEmail); ok {
		if ValidEmail(email) {
			sub.Email = email
		} else {
			v.fail(FieldEmail, msgEmailInvalid)
		}
	}

	sub.Phone = v.optionalText(FieldPhone)
	sub.Company = v.optionalText(FieldCompany)

	sub.ServiceType = v.choice(FieldServiceType, serviceTypes, msgServiceType)
	sub.Budget = v.choice(FieldBudget, budgets, msgBudget)
	sub.Timeline = v.choice(FieldTimeline, timelines, msgTimeline)

	if msg, ok := v.text(FieldMessage); ok {
		switch n := utf8.RuneCountInString(msg); {
		case n < minMessageLen:
			v.fail(FieldMessage, msgMessageTooShort)
		case n > maxMessageLen:
			v.fail(FieldMessage, msgMessageTooLong)
		default:
			sub.Message = msg
		}
	}

	if raw, present := v.value(FieldNewsletter); present {
		if b, ok := raw.(bool); ok {
			sub.Newsletter = b
		} else {
			v.fail(FieldNewsletter, msgExpectedBool)
		}
	}

	if raw, present := v.value(FieldPrivacy); !present {
		v.fail(FieldPrivacy, msgPrivacy)
	} else if b, ok := raw.(bool); !ok {
		v.fail(FieldPrivacy, msgExpectedBool)
	} else if !b {
		v.fail(FieldPrivacy, msgPrivacy)
	} else {
		sub.Privacy = true
	}

	if len(v.errs) > 0 {
		return nil, v.errs
	}
	return &sub, nil
}

type validator struct {
	c    Candidate
	errs FieldErrors
}

func (v *validator) fail(field, msg string) {
	if _, exists := v.errs[field]; !exists {
		v.errs[field] = msg
	}
}

func (v *validator) value(field string) (any, bool) {
	raw, ok := v.c[field]
	if !ok || raw == nil {
		return nil, false
	}
	return raw, true
}

// text returns a required string field. A missing field is checked as the
// empty string so it reports the field's own length or format message.
func (v *validator) text(field string) (string, bool) {
	raw, present := v.value(field)
	if !present {
		return "", true
	}
	s, ok := raw.(string)
	if !ok {
		v.fail(field, msgExpectedText)
		return "", false
	}
	return s, true
}

func (v *validator) optionalText(field string) *string {
	raw, present := v.value(field)
	if !present {
		return nil
	}
	s, ok := raw.(string)
	if !ok {
		v.fail(field, msgExpectedText)
		return nil
	}
	return &s
}

func (v *validator) choice(field string, opts []Option, msg string) string {
	raw, present := v.value(field)
	if !present {
		v.fail(field, msg)
		return ""
	}
	s, ok := raw.(string)
	if !ok || !isOption(opts, s) {
		v.fail(field, msg)
		return ""
	}
	return s
}
