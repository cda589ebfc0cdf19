package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/SscSPs/invoice_ai_app/internal/adapters/database/file"
	"github.com/SscSPs/invoice_ai_app/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotRepository_ReadMissing(t *testing.T) {
	repo, err := file.NewSlotRepository(t.TempDir())
	require.NoError(t, err)

	_, err = repo.ReadSlot(context.Background(), "ai-invoices")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSlotRepository_WriteReplacesWholeValue(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "nested", "data")
	repo, err := file.NewSlotRepository(dir)
	require.NoError(t, err)

	require.NoError(t, repo.WriteSlot(ctx, "ai-invoices", []byte(`[{"id":"INV-1"},{"id":"INV-2"}]`)))
	require.NoError(t, repo.WriteSlot(ctx, "ai-invoices", []byte(`[]`)))

	got, err := repo.ReadSlot(ctx, "ai-invoices")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary files must not be left behind")
	assert.Equal(t, "ai-invoices.json", entries[0].Name())
}

func TestSlotRepository_RejectsPathKeys(t *testing.T) {
	repo, err := file.NewSlotRepository(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", "..", "../escape", `a\b`} {
		err := repo.WriteSlot(context.Background(), key, []byte("[]"))
		assert.ErrorIs(t, err, apperrors.ErrValidation, key)
	}
}

func TestNewSlotRepository_EmptyDir(t *testing.T) {
	_, err := file.NewSlotRepository("")
	assert.Error(t, err)
}
