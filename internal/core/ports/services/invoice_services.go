package services

import (
	"context"

	"github.com/SscSPs/invoice_ai_app/internal/core/domain"
)

// InvoiceReaderSvc defines read operations over the invoice collection
type InvoiceReaderSvc interface {
	// ListInvoices returns a copy of the collection in insertion order.
	ListInvoices(ctx context.Context) []domain.Invoice

	// GetInvoice returns the invoice with the given id or apperrors.ErrNotFound.
	GetInvoice(ctx context.Context, id string) (*domain.Invoice, error)
}

// InvoiceWriterSvc defines the mutating operations of the invoice store.
// Operations naming an id that is not present are silent no-ops.
type InvoiceWriterSvc interface {
	// Load replaces the in-memory collection with the persisted slot contents.
	Load(ctx context.Context)

	// AddInvoice appends an invoice; ids are not deduplicated.
	AddInvoice(ctx context.Context, invoice domain.Invoice)

	// UpdateInvoice replaces the entry with the matching id; it never inserts.
	UpdateInvoice(ctx context.Context, id string, invoice domain.Invoice)

	// UpdateInvoiceStatus replaces only the status of the matching entry.
	UpdateInvoiceStatus(ctx context.Context, id string, status domain.InvoiceStatus)

	// DeleteInvoice removes the matching entry.
	DeleteInvoice(ctx context.Context, id string)

	// SaveInvoice replaces the entry with the same id or appends it when absent.
	SaveInvoice(ctx context.Context, invoice domain.Invoice)
}

// InvoiceSvcFacade combines all invoice store operations
type InvoiceSvcFacade interface {
	InvoiceReaderSvc
	InvoiceWriterSvc
}
