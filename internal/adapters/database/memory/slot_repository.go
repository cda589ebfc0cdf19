package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/SscSPs/invoice_ai_app/internal/apperrors"
	portsrepo "github.com/SscSPs/invoice_ai_app/internal/core/ports/repositories"
)

// SlotRepository keeps slots in process memory. Contents are lost on exit.
type SlotRepository struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

// NewSlotRepository creates an empty in-memory slot repository.
func NewSlotRepository() *SlotRepository {
	return &SlotRepository{slots: make(map[string][]byte)}
}

var _ portsrepo.SlotRepositoryFacade = (*SlotRepository)(nil)

func (r *SlotRepository) ReadSlot(ctx context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	value, ok := r.slots[key]
	if !ok {
		return nil, fmt.Errorf("slot %q: %w", key, apperrors.ErrNotFound)
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (r *SlotRepository) WriteSlot(ctx context.Context, key string, value []byte) error {
	stored := make([]byte, len(value))
	copy(stored, value)

	r.mu.Lock()
	r.slots[key] = stored
	r.mu.Unlock()
	return nil
}
