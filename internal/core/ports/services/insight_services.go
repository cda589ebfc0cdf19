package services

import (
	"context"

	"github.com/SscSPs/invoice_ai_app/internal/core/domain"
)

// InsightSvcFacade produces natural-language text for invoices. Collaborator
// failures never escape: every method returns deterministic fallback text
// with Fallback set instead of an error.
type InsightSvcFacade interface {
	// GenerateItemDescription writes a one-line description for an item label.
	GenerateItemDescription(ctx context.Context, itemName string) domain.InsightResult

	// GenerateEmailBody writes the body of an email that sends the invoice.
	GenerateEmailBody(ctx context.Context, invoice domain.Invoice) domain.InsightResult

	// GenerateDashboardInsights writes a short bullet analysis of the collection.
	GenerateDashboardInsights(ctx context.Context, invoices []domain.Invoice) domain.InsightResult
}

// DocumentSvcFacade builds the shareable artifacts of an invoice.
type DocumentSvcFacade interface {
	// RenderPDF renders the invoice preview and returns the file name and bytes.
	RenderPDF(ctx context.Context, invoice domain.Invoice) (string, []byte, error)

	// ComposeEmailDraft builds a mailto draft whose body comes from the insight service.
	ComposeEmailDraft(ctx context.Context, invoice domain.Invoice) (domain.EmailDraft, bool)
}
