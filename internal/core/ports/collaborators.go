package ports

import (
	"context"

	"github.com/SscSPs/invoice_ai_app/internal/core/domain"
)

// TextGenerator is the external generative-language collaborator. It is a
// black box: one prompt in, one text response or an error out.
type TextGenerator interface {
	GenerateText(ctx context.Context, model string, prompt string) (string, error)
}

// PreviewRenderer turns an invoice preview into a downloadable PDF document.
type PreviewRenderer interface {
	RenderPDF(ctx context.Context, invoice domain.Invoice) ([]byte, error)
}
