package pdf_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/SscSPs/invoice_ai_app/internal/adapters/render/pdf"
	"github.com/SscSPs/invoice_ai_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderPDF(t *testing.T) {
	inv := domain.Invoice{
		ID:            "INV-1",
		InvoiceNumber: "#2024",
		ClientName:    "Müller GmbH",
		ClientAddress: "Hauptstraße 1\n10115 Berlin",
		SenderName:    "Jo",
		IssueDate:     "2024-03-01",
		DueDate:       "2024-03-31",
		Items: []domain.InvoiceItem{
			{ID: "ITEM-1", Description: "Consulting", Quantity: 3, Rate: 120},
			{ID: "ITEM-2", Description: "Discount", Quantity: 1, Rate: -20},
		},
		Notes:    "Thanks!",
		Status:   domain.StatusSent,
		Currency: "EUR",
	}

	out, err := pdf.NewRenderer().RenderPDF(context.Background(), inv)

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestRenderPDF_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := pdf.NewRenderer().RenderPDF(ctx, domain.Invoice{ID: "INV-1"})
	assert.ErrorIs(t, err, context.Canceled)
}
