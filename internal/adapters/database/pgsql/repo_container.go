package pgsql

import (
	portsrepo "github.com/SscSPs/invoice_ai_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		SlotRepo: NewPgxSlotRepository(dbPool),
	}
}
