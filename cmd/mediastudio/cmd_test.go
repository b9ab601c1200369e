package main

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediastudio/internal/config"
	"mediastudio/internal/content"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		dev  bool
		want slog.Level
	}{
		{"debug", false, slog.LevelDebug},
		{"INFO", true, slog.LevelInfo},
		{"warning", false, slog.LevelWarn},
		{"warn", false, slog.LevelWarn},
		{"error", false, slog.LevelError},
		{"", true, slog.LevelDebug},
		{"", false, slog.LevelInfo},
		{"verbose", false, slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLevel(tt.in, tt.dev), "parseLevel(%q, %v)", tt.in, tt.dev)
	}
}

func TestNewLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, &config.Config{Env: "production"}).Info("hello", "k", "v")
	assert.True(t, json.Valid(bytes.TrimSpace(buf.Bytes())), "production logs are JSON: %s", buf.String())

	buf.Reset()
	newLogger(&buf, &config.Config{Env: "development"}).Debug("hello")
	assert.Contains(t, buf.String(), "level=DEBUG")
}

// run executes the root command with args and returns its stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("APP_ENV", "testing")
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestContentCheck(t *testing.T) {
	site, err := content.Load()
	require.NoError(t, err)

	out, err := run(t, "content", "check")
	require.NoError(t, err)
	assert.Contains(t, out, "content "+site.Version()+" ok: 3 posts, 6 projects, 4 services, 8 equipment, 6 team members")
}

func TestContentCheckUnknownRenderer(t *testing.T) {
	t.Setenv("MARKDOWN_RENDERER", "textile")
	_, err := run(t, "content", "check")
	require.Error(t, err)
}

func TestContentExportStdout(t *testing.T) {
	out, err := run(t, "content", "export")
	require.NoError(t, err)

	var snap content.Snapshot
	require.NoError(t, json.Unmarshal([]byte(out), &snap))
	assert.Len(t, snap.Blog.Posts, 3)
	assert.NotEmpty(t, snap.Version)
}

func TestContentExportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.json")

	_, err := run(t, "content", "export", "--out", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var snap content.Snapshot
	require.NoError(t, json.Unmarshal(data, &snap))
	assert.Len(t, snap.Portfolio.Projects, 6)
	assert.Len(t, snap.About.Team, 6)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestInvalidConfigFails(t *testing.T) {
	t.Setenv("CONTACT_RATE_LIMIT", "0")
	_, err := run(t, "content", "check")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CONTACT_RATE_LIMIT")
}

func TestInquiriesPurgeRejectsNonPositive(t *testing.T) {
	_, err := run(t, "inquiries", "purge", "--older-than", "0s")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--older-than")
}

func TestInquiriesShowRejectsBadID(t *testing.T) {
	_, err := run(t, "inquiries", "show", "not-a-uuid")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid inquiry id")
}
