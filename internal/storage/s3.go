// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package storage archives inquiries as JSON objects in an S3-compatible
// bucket. It wraps the AWS SDK v2 and is configured for path-style access
// (required by CEPH/Hetzner).
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"mediastudio/internal/contact"
	"mediastudio/internal/models"
)

const keyPrefix = "inquiries/"

// Archive writes inquiries to a private bucket.
type Archive struct {
	s3        *s3.Client
	presigner *s3.PresignClient
	bucket    string
	now       func() time.Time
}

// New creates an archive client with path-style addressing. Returns
// (nil, nil) if endpoint or credentials are empty, allowing the app to start
// without an archive.
func New(endpoint, region, accessKey, secretKey, bucket string) (*Archive, error) {
	if endpoint == "" || accessKey == "" || secretKey == "" {
		return nil, nil
	}
	if bucket == "" {
		return nil, fmt.Errorf("s3 archive: bucket name is required")
	}

	endpoint = strings.TrimRight(endpoint, "/")

	s3Client := s3.New(s3.Options{
		Region:       region,
		BaseEndpoint: aws.String(endpoint),
		Credentials:  credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		UsePathStyle: true,
		// CEPH gateways reject the streaming checksum trailers newer SDKs
		// send by default.
		RequestChecksumCalculation: aws.RequestChecksumCalculationWhenRequired,
		ResponseChecksumValidation: aws.ResponseChecksumValidationWhenRequired,
	})

	return &Archive{
		s3:        s3Client,
		presigner: s3.NewPresignClient(s3Client),
		bucket:    bucket,
		now:       time.Now,
	}, nil
}

// Key returns the object key for an inquiry, partitioned by UTC day.
func Key(inq models.Inquiry) string {
	return keyPrefix + inq.CreatedAt.UTC().Format("2006/01/02") + "/" + inq.ID.String() + ".json"
}

// Deliver archives the submission. It implements contact.Transport.
func (a *Archive) Deliver(ctx context.Context, sub *contact.Submission) error {
	inq := contact.NewInquiry(sub, contact.OriginFrom(ctx), a.now())
	_, err := a.Put(ctx, inq)
	return err
}

// Put stores one inquiry and returns its object key.
func (a *Archive) Put(ctx context.Context, inq models.Inquiry) (string, error) {
	body, err := json.MarshalIndent(inq, "", "  ")
	if err != nil {
		return "", fmt.Errorf("archive marshal: %w", err)
	}

	key := Key(inq)
	_, err = a.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(a.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentLength: aws.Int64(int64(len(body))),
		ContentType:   aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("s3 upload %s/%s: %w", a.bucket, key, err)
	}

	slog.Debug("inquiry archived", "bucket", a.bucket, "key", key)
	return key, nil
}

// Get reads an archived inquiry back.
func (a *Archive) Get(ctx context.Context, key string) (*models.Inquiry, error) {
	output, err := a.s3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("s3 download %s/%s: %w", a.bucket, key, err)
	}
	defer output.Body.Close()

	data, err := io.ReadAll(output.Body)
	if err != nil {
		return nil, fmt.Errorf("s3 read body %s/%s: %w", a.bucket, key, err)
	}

	var inq models.Inquiry
	if err := json.Unmarshal(data, &inq); err != nil {
		return nil, fmt.Errorf("archive decode %s: %w", key, err)
	}
	return &inq, nil
}

// PresignedURL generates a pre-signed GET URL for an archived inquiry.
// The URL is valid for the specified duration (at most 7 days).
func (a *Archive) PresignedURL(ctx context.Context, key string, expires time.Duration) (string, error) {
	req, err := a.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expires))
	if err != nil {
		return "", fmt.Errorf("s3 presign %s/%s: %w", a.bucket, key, err)
	}
	return req.URL, nil
}

// Bucket returns the archive bucket name.
func (a *Archive) Bucket() string {
	return a.bucket
}
