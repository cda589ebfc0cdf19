package main

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/SscSPs/invoice_ai_app/internal/platform/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func TestRun_ReturnsStartupErrors(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "slots")
	cfg := &config.Config{
		Port:             "0",
		StorageBackend:   config.StorageFile,
		StorageKey:       "ai-invoices",
		StorageFileDir:   dir,
		InsightRateLimit: "not-a-rate",
	}

	err := run(context.Background(), cfg, discardLogger(), prometheus.NewRegistry())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "insight rate limiter")
	_, statErr := os.Stat(dir)
	assert.NoError(t, statErr, "storage is opened before the limiter fails")
}

func TestSetupStorage(t *testing.T) {
	ctx := context.Background()

	repos, redisClient, cleanup, err := setupStorage(ctx, &config.Config{StorageBackend: config.StorageMemory}, discardLogger())
	require.NoError(t, err)
	assert.NotNil(t, repos.SlotRepo)
	assert.Nil(t, redisClient)
	cleanup()

	repos, _, cleanup, err = setupStorage(ctx, &config.Config{StorageBackend: config.StorageFile, StorageFileDir: t.TempDir()}, discardLogger())
	require.NoError(t, err)
	assert.NotNil(t, repos.SlotRepo)
	cleanup()

	_, _, cleanup, err = setupStorage(ctx, &config.Config{StorageBackend: "s3"}, discardLogger())
	assert.Error(t, err)
	assert.NotNil(t, cleanup, "callers may always defer cleanup")
}

func TestNewInsightLimiter(t *testing.T) {
	l, err := newInsightLimiter("5-M", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(5), l.Rate.Limit)

	_, err = newInsightLimiter("five per minute", nil)
	assert.Error(t, err)
}
