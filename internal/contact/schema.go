// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package contact implements the project-inquiry form: the field schema and
// its validator, the per-mount form state machine, and the transports a
// validated submission is handed to.
package contact

import "slices"

// Field names as they appear in candidates, form state, and FieldErrors.
const (
	FieldName        = "name"
	FieldEmail       = "email"
	FieldPhone       = "phone"
	FieldCompany     = "company"
	FieldServiceType = "serviceType"
	FieldBudget      = "budget"
	FieldTimeline    = "timeline"
	FieldMessage     = "message"
	FieldNewsletter  = "newsletter"
	FieldPrivacy     = "privacy"
)

var fieldNames = []string{
	FieldName, FieldEmail, FieldPhone, FieldCompany, FieldServiceType,
	FieldBudget, FieldTimeline, FieldMessage, FieldNewsletter, FieldPrivacy,
}

// FieldNames lists the form's fields in display order.
func FieldNames() []string { return slices.Clone(fieldNames) }

// IsField reports whether name is one of the form's fields.
func IsField(name string) bool { return slices.Contains(fieldNames, name) }

// Length limits, counted in runes.
const (
	minNameLen    = 2
	maxNameLen    = 50
	minMessageLen = 10
	maxMessageLen = 1000
)

// Option is one selectable enum value with its display label.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

var serviceTypes = []Option{
	{Value: "video-production", Label: "Video Production"},
	{Value: "event-coverage", Label: "Event Coverage"},
	{Value: "commercial-ads", Label: "Commercial Ads"},
	{Value: "post-production", Label: "Post Production"},
	{Value: "other", Label: "Other / Custom"},
}

var budgets = []Option{
	{Value: "under-5k", Label: "Under $5,000"},
	{Value: "5k-15k", Label: "$5,000 - $15,000"},
	{Value: "15k-50k", Label: "$15,000 - $50,000"},
	{Value: "50k-plus", Label: "$50,000+"},
	{Value: "not-sure", Label: "Not sure yet"},
}

var timelines = []Option{
	{Value: "asap", Label: "ASAP"},
	{Value: "1-month", Label: "Within 1 month"},
	{Value: "2-3-months", Label: "2-3 months"},
	{Value: "3-6-months", Label: "3-6 months"},
	{Value: "flexible", Label: "Flexible timeline"},
}

// ServiceTypes returns the selectable service types in display order.
func ServiceTypes() []Option { return slices.Clone(serviceTypes) }

// Budgets returns the budget buckets in display order.
func Budgets() []Option { return slices.Clone(budgets) }

// Timelines returns the timeline choices in display order.
func Timelines() []Option { return slices.Clone(timelines) }

func isOption(opts []Option, value string) bool {
	return slices.ContainsFunc(opts, func(o Option) bool { return o.Value == value })
}
