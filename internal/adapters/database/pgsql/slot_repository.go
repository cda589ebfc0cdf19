package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/invoice_ai_app/internal/apperrors"
	portsrepo "github.com/SscSPs/invoice_ai_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxSlotRepository stores slots as rows of the kv_slots table.
type PgxSlotRepository struct {
	pool *pgxpool.Pool
}

// NewPgxSlotRepository creates a new repository for slot data.
func NewPgxSlotRepository(pool *pgxpool.Pool) *PgxSlotRepository {
	return &PgxSlotRepository{pool: pool}
}

var _ portsrepo.SlotRepositoryFacade = (*PgxSlotRepository)(nil)

// ReadSlot returns the stored value or apperrors.ErrNotFound.
func (r *PgxSlotRepository) ReadSlot(ctx context.Context, key string) ([]byte, error) {
	query := `SELECT value FROM kv_slots WHERE slot_key = $1;`

	var value []byte
	err := r.pool.QueryRow(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("slot %q: %w", key, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read slot %s: %w", key, err)
	}
	return value, nil
}

// WriteSlot replaces the whole value of the slot.
func (r *PgxSlotRepository) WriteSlot(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO kv_slots (slot_key, value, last_updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (slot_key) DO UPDATE SET
			value = EXCLUDED.value,
			last_updated_at = EXCLUDED.last_updated_at;
	`

	_, err := r.pool.Exec(ctx, query, key, value, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to write slot %s: %w", key, err)
	}
	return nil
}
