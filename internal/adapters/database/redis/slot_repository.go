package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/invoice_ai_app/internal/apperrors"
	portsrepo "github.com/SscSPs/invoice_ai_app/internal/core/ports/repositories"
	goredis "github.com/redis/go-redis/v9"
)

// SlotRepository keeps each slot as a plain Redis string without expiry.
type SlotRepository struct {
	client goredis.UniversalClient
	prefix string
}

// NewSlotRepository creates a slot repository. prefix is prepended to every key.
func NewSlotRepository(client goredis.UniversalClient, prefix string) *SlotRepository {
	return &SlotRepository{client: client, prefix: prefix}
}

var _ portsrepo.SlotRepositoryFacade = (*SlotRepository)(nil)

func (r *SlotRepository) ReadSlot(ctx context.Context, key string) ([]byte, error) {
	value, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, fmt.Errorf("slot %q: %w", key, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read slot %s: %w", key, err)
	}
	return value, nil
}

func (r *SlotRepository) WriteSlot(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, r.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to write slot %s: %w", key, err)
	}
	return nil
}
