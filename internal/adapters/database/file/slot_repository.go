package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/SscSPs/invoice_ai_app/internal/apperrors"
	portsrepo "github.com/SscSPs/invoice_ai_app/internal/core/ports/repositories"
)

// SlotRepository stores each slot as <dir>/<key>.json. Writes go to a
// temporary file that is renamed over the old one, so readers never see a
// partially written slot.
type SlotRepository struct {
	dir string
	mu  sync.Mutex
}

// NewSlotRepository creates the directory if needed.
func NewSlotRepository(dir string) (*SlotRepository, error) {
	if dir == "" {
		return nil, fmt.Errorf("slot directory cannot be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create slot directory %s: %w", dir, err)
	}
	return &SlotRepository{dir: dir}, nil
}

var _ portsrepo.SlotRepositoryFacade = (*SlotRepository)(nil)

func (r *SlotRepository) path(key string) (string, error) {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) {
		return "", fmt.Errorf("invalid slot key %q: %w", key, apperrors.ErrValidation)
	}
	return filepath.Join(r.dir, key+".json"), nil
}

func (r *SlotRepository) ReadSlot(ctx context.Context, key string) ([]byte, error) {
	path, err := r.path(key)
	if err != nil {
		return nil, err
	}

	value, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("slot %q: %w", key, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read slot %s: %w", key, err)
	}
	return value, nil
}

func (r *SlotRepository) WriteSlot(ctx context.Context, key string, value []byte) error {
	path, err := r.path(key)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	tmp, err := os.CreateTemp(r.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for slot %s: %w", key, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write slot %s: %w", key, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync slot %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close slot %s: %w", key, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace slot %s: %w", key, err)
	}
	return nil
}
