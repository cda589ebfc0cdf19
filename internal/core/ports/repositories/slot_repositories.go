package repositories

import (
	"context"
)

// SlotReader defines read access to a single named key-value slot.
type SlotReader interface {
	// ReadSlot returns the raw bytes stored under key.
	// It returns apperrors.ErrNotFound when nothing has been stored yet.
	ReadSlot(ctx context.Context, key string) ([]byte, error)
}

// SlotWriter defines write access to a single named key-value slot.
type SlotWriter interface {
	// WriteSlot replaces the value stored under key.
	WriteSlot(ctx context.Context, key string, value []byte) error
}

// SlotRepositoryFacade combines slot read and write access.
type SlotRepositoryFacade interface {
	SlotReader
	SlotWriter
}
