// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package moderation screens inquiry text with a hosted moderation API
// before it is stored. OpenAI's endpoint is free for all key holders;
// Mistral's is the paid alternative.
package moderation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"
	"time"
)

// Result contains the outcome of a safety check.
type Result struct {
	Safe       bool     // true if the text passes moderation
	Categories []string // flagged category names, sorted (empty when safe)
}

// Moderator checks text for policy violations.
type Moderator interface {
	CheckSafety(ctx context.Context, text string) (*Result, error)
}

// New returns the moderator for a provider name ("openai" or "mistral").
func New(provider, apiKey, baseURL string) (Moderator, error) {
	switch provider {
	case "openai":
		return NewOpenAI(apiKey, baseURL), nil
	case "mistral":
		return NewMistral(apiKey, baseURL), nil
	default:
		return nil, fmt.Errorf("moderation: unknown provider %q", provider)
	}
}

// --- OpenAI Moderation (free endpoint) ---

// OpenAI uses the OpenAI Moderation API (POST /v1/moderations).
type OpenAI struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewOpenAI creates a moderator that uses OpenAI's free moderation API.
func NewOpenAI(apiKey, baseURL string) *OpenAI {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	return &OpenAI{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (m *OpenAI) CheckSafety(ctx context.Context, text string) (*Result, error) {
	var result openAIModResponse
	err := postJSON(ctx, m.client, m.baseURL+"/moderations", m.apiKey, modRequest{
		Model: "omni-moderation-latest",
		Input: text,
	}, &result)
	if err != nil {
		return nil, fmt.Errorf("openai moderation: %w", err)
	}

	if len(result.Results) == 0 || !result.Results[0].Flagged {
		return &Result{Safe: true}, nil
	}

	// "hate/threatening" reads as "hate (threatening)".
	var flagged []string
	for cat, isFlagged := range result.Results[0].Categories {
		if !isFlagged {
			continue
		}
		display := cat
		if i := strings.IndexByte(cat, '/'); i >= 0 {
			display = cat[:i] + " (" + cat[i+1:] + ")"
		}
		flagged = append(flagged, strings.ReplaceAll(display, "_", " "))
	}
	slices.Sort(flagged)

	return &Result{Safe: false, Categories: flagged}, nil
}

// --- Mistral Moderation (paid) ---

// Mistral uses the Mistral Moderation API (POST /v1/moderations).
type Mistral struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewMistral creates a moderator using Mistral's classification endpoint.
func NewMistral(apiKey, baseURL string) *Mistral {
	if baseURL == "" {
		baseURL = "https://api.mistral.ai"
	}
	return &Mistral{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (m *Mistral) CheckSafety(ctx context.Context, text string) (*Result, error) {
	var result mistralModResponse
	err := postJSON(ctx, m.client, m.baseURL+"/v1/moderations", m.apiKey, modRequest{
		Model: "mistral-moderation-latest",
		Input: text,
	}, &result)
	if err != nil {
		return nil, fmt.Errorf("mistral moderation: %w", err)
	}

	if len(result.Results) == 0 {
		return &Result{Safe: true}, nil
	}

	// Mistral has no top-level "flagged"; any true category counts.
	var flagged []string
	for cat, isFlagged := range result.Results[0].Categories {
		if isFlagged {
			flagged = append(flagged, strings.ReplaceAll(cat, "_", " "))
		}
	}
	slices.Sort(flagged)

	return &Result{Safe: len(flagged) == 0, Categories: flagged}, nil
}

func postJSON(ctx context.Context, client *http.Client, url, apiKey string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("http: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	return nil
}

// --- Request/Response types ---

type modRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type openAIModResponse struct {
	Results []openAIModResult `json:"results"`
}

type openAIModResult struct {
	Flagged    bool            `json:"flagged"`
	Categories map[string]bool `json:"categories"`
}

type mistralModResponse struct {
	Results []mistralModResult `json:"results"`
}

type mistralModResult struct {
	Categories map[string]bool `json:"categories"`
}
