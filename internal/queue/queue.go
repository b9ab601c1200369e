// Package queue publishes stored inquiries to a Valkey stream so the studio's
// notification workers (mail, chat) can pick them up without polling
// PostgreSQL.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"mediastudio/internal/contact"
	"mediastudio/internal/models"
)

const (
	// DefaultStream is the stream inquiries are appended to.
	DefaultStream = "inquiries"

	// maxStreamLen caps the stream; older entries are trimmed approximately.
	maxStreamLen = 10_000

	payloadField = "inquiry"
)

// Notifier appends inquiries to a Valkey stream.
type Notifier struct {
	client *redis.Client
	stream string
	now    func() time.Time
}

// NewNotifier creates a notifier writing to stream (DefaultStream if empty).
func NewNotifier(client *redis.Client, stream string) *Notifier {
	if stream == "" {
		stream = DefaultStream
	}
	return &Notifier{client: client, stream: stream, now: time.Now}
}

// Deliver publishes the submission. It implements contact.Transport.
func (n *Notifier) Deliver(ctx context.Context, sub *contact.Submission) error {
	inq := contact.NewInquiry(sub, contact.OriginFrom(ctx), n.now())
	_, err := n.Publish(ctx, inq)
	return err
}

// Publish appends one inquiry and returns the stream entry id.
func (n *Notifier) Publish(ctx context.Context, inq models.Inquiry) (string, error) {
	payload, err := json.Marshal(inq)
	if err != nil {
		return "", fmt.Errorf("queue marshal: %w", err)
	}

	id, err := n.client.XAdd(ctx, &redis.XAddArgs{
		Stream: n.stream,
		MaxLen: maxStreamLen,
		Approx: true,
		Values: map[string]any{payloadField: payload},
	}).Result()
	if err != nil {
		return "", fmt.Errorf("queue xadd %s: %w", n.stream, err)
	}

	slog.Debug("inquiry queued", "stream", n.stream, "entry", id, "inquiry", inq.ID)
	return id, nil
}

// Recent returns up to count of the newest queued inquiries, newest first.
func (n *Notifier) Recent(ctx context.Context, count int64) ([]models.Inquiry, error) {
	msgs, err := n.client.XRevRangeN(ctx, n.stream, "+", "-", count).Result()
	if err != nil {
		return nil, fmt.Errorf("queue xrevrange %s: %w", n.stream, err)
	}

	out := make([]models.Inquiry, 0, len(msgs))
	for _, m := range msgs {
		raw, ok := m.Values[payloadField].(string)
		if !ok {
			slog.Warn("queue entry without payload", "stream", n.stream, "entry", m.ID)
			continue
		}
		var inq models.Inquiry
		if err := json.Unmarshal([]byte(raw), &inq); err != nil {
			return nil, fmt.Errorf("queue decode entry %s: %w", m.ID, err)
		}
		out = append(out, inq)
	}
	return out, nil
}
