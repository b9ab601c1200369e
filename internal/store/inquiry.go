// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store provides database access for contact inquiries. The store
// wraps a *sql.DB and exposes typed query methods; it also acts as the
// required transport in the submission chain.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"mediastudio/internal/contact"
	"mediastudio/internal/models"
)

const inquiryColumns = `id, name, email, phone, company, service_type, budget, timeline,
		message, newsletter, client_hash, user_agent, created_at`

// InquiryStore handles all inquiry-related database operations.
type InquiryStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewInquiryStore creates a new InquiryStore with the given database connection.
func NewInquiryStore(db *sql.DB) *InquiryStore {
	return &InquiryStore{db: db, now: time.Now}
}

// Deliver persists a validated submission. It implements contact.Transport.
func (s *InquiryStore) Deliver(ctx context.Context, sub *contact.Submission) error {
	inq := contact.NewInquiry(sub, contact.OriginFrom(ctx), s.now())
	if err := s.Create(ctx, &inq); err != nil {
		return err
	}
	slog.Info("inquiry stored", "id", inq.ID, "service_type", inq.ServiceType)
	return nil
}

// Create inserts an inquiry. A nil ID is replaced with a fresh one and
// CreatedAt is set from the database.
func (s *InquiryStore) Create(ctx context.Context, inq *models.Inquiry) error {
	if inq.ID == uuid.Nil {
		inq.ID = uuid.New()
	}
	createdAt := inq.CreatedAt
	if createdAt.IsZero() {
		createdAt = s.now().UTC()
	}

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO inquiries (id, name, email, phone, company, service_type, budget, timeline,
			message, newsletter, client_hash, user_agent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at
	`, inq.ID, inq.Name, inq.Email, inq.Phone, inq.Company, inq.ServiceType, inq.Budget,
		inq.Timeline, inq.Message, inq.Newsletter, inq.ClientHash, inq.UserAgent, createdAt,
	).Scan(&inq.CreatedAt)
	if err != nil {
		return fmt.Errorf("create inquiry: %w", err)
	}
	return nil
}

// FindByID retrieves an inquiry by its UUID. Returns nil if not found.
func (s *InquiryStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Inquiry, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+inquiryColumns+` FROM inquiries WHERE id = $1`, id)
	inq, err := scanInquiry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find inquiry by id: %w", err)
	}
	return inq, nil
}

// ListRecent returns the newest inquiries first, at most limit of them.
func (s *InquiryStore) ListRecent(ctx context.Context, limit int) ([]models.Inquiry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+inquiryColumns+`
		FROM inquiries
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list inquiries: %w", err)
	}
	defer rows.Close()

	var out []models.Inquiry
	for rows.Next() {
		inq, err := scanInquiry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inquiry: %w", err)
		}
		out = append(out, *inq)
	}
	return out, rows.Err()
}

// Count returns the number of stored inquiries.
func (s *InquiryStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM inquiries`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count inquiries: %w", err)
	}
	return n, nil
}

// DeleteOlderThan removes inquiries created before cutoff and returns how
// many were deleted.
func (s *InquiryStore) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM inquiries WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge inquiries: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purge inquiries rows affected: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInquiry(row rowScanner) (*models.Inquiry, error) {
	inq := &models.Inquiry{}
	err := row.Scan(
		&inq.ID, &inq.Name, &inq.Email, &inq.Phone, &inq.Company, &inq.ServiceType,
		&inq.Budget, &inq.Timeline, &inq.Message, &inq.Newsletter, &inq.ClientHash,
		&inq.UserAgent, &inq.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return inq, nil
}
