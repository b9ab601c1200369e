// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Inquiry is a persisted contact-form submission. The form fields mirror a
// validated submission; ClientHash and UserAgent are captured by the HTTP
// layer for abuse tracking.
type Inquiry struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       *string   `json:"phone,omitempty"`
	Company     *string   `json:"company,omitempty"`
	ServiceType string    `json:"service_type"`
	Budget      string    `json:"budget"`
	Timeline    string    `json:"timeline"`
	Message     string    `json:"message"`
	Newsletter  bool      `json:"newsletter"`
	ClientHash  string    `json:"client_hash,omitempty"`
	UserAgent   string    `json:"user_agent,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
