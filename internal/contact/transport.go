package contact

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// Transport receives validated submissions. Deliver may block; the form
// holds no lock while it runs.
type Transport interface {
	Deliver(ctx context.Context, sub *Submission) error
}

// TransportFunc adapts a function to Transport.
type TransportFunc func(ctx context.Context, sub *Submission) error

func (fn TransportFunc) Deliver(ctx context.Context, sub *Submission) error {
	return fn(ctx, sub)
}

// Chain delivers to each transport in order and stops at the first failure.
// Nil transports are skipped.
func Chain(transports ...Transport) Transport {
	ts := compact(transports)
	return TransportFunc(func(ctx context.Context, sub *Submission) error {
		for _, t := range ts {
			if err := t.Deliver(ctx, sub); err != nil {
				return err
			}
		}
		return nil
	})
}

// BestEffort delivers to every transport and only logs failures. It never
// returns an error. Nil transports are skipped.
func BestEffort(transports ...Transport) Transport {
	ts := compact(transports)
	return TransportFunc(func(ctx context.Context, sub *Submission) error {
		for _, t := range ts {
			if err := t.Deliver(ctx, sub); err != nil {
				slog.Warn("optional inquiry transport failed",
					"transport", fmt.Sprintf("%T", t),
					"error", err,
				)
			}
		}
		return nil
	})
}

func compact(transports []Transport) []Transport {
	out := make([]Transport, 0, len(transports))
	for _, t := range transports {
		if t != nil {
			out = append(out, t)
		}
	}
	return out
}

// Origin describes one submit attempt: the inquiry id every transport files
// it under and where it came from. The client address is only ever carried
// hashed.
type Origin struct {
	InquiryID  uuid.UUID
	ClientHash string
	UserAgent  string
}

type originKey struct{}

// WithOrigin attaches o to ctx for transports that record it.
func WithOrigin(ctx context.Context, o Origin) context.Context {
	return context.WithValue(ctx, originKey{}, o)
}

// OriginFrom returns the origin attached to ctx, or the zero Origin.
func OriginFrom(ctx context.Context) Origin {
	o, _ := ctx.Value(originKey{}).(Origin)
	return o
}
