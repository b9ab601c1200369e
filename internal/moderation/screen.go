package moderation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"mediastudio/internal/contact"
)

// Screen is the first transport in the submission chain. It rejects
// inquiries whose text is flagged. When the moderation API itself fails the
// inquiry is let through, since losing a lead costs more than reviewing spam.
type Screen struct {
	m Moderator
}

// NewScreen wraps a moderator as a contact.Transport.
func NewScreen(m Moderator) *Screen {
	return &Screen{m: m}
}

// Deliver checks the free-text fields of sub.
func (s *Screen) Deliver(ctx context.Context, sub *contact.Submission) error {
	res, err := s.m.CheckSafety(ctx, screenText(sub))
	if err != nil {
		slog.Warn("moderation unavailable, accepting inquiry", "error", err)
		return nil
	}
	if !res.Safe {
		slog.Info("inquiry rejected by moderation", "categories", res.Categories)
		return fmt.Errorf("%w: flagged for %s", contact.ErrRejected, strings.Join(res.Categories, ", "))
	}
	return nil
}

func screenText(sub *contact.Submission) string {
	parts := []string{sub.Name}
	if sub.Company != nil && *sub.Company != "" {
		parts = append(parts, *sub.Company)
	}
	parts = append(parts, sub.Message)
	return strings.Join(parts, "\n")
}
