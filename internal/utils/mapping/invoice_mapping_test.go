package mapping

import (
	"strings"
	"testing"

	"github.com/SscSPs/invoice_ai_app/internal/core/domain"
	"github.com/SscSPs/invoice_ai_app/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainInvoice_FillsDefaults(t *testing.T) {
	inv := ToDomainInvoice(dto.InvoiceRequest{
		ClientName: "Acme",
		Items:      []dto.InvoiceItemRequest{{Description: "Design", Quantity: 2, Rate: 50}},
	})

	assert.True(t, strings.HasPrefix(inv.ID, "INV-"))
	assert.Equal(t, domain.StatusDraft, inv.Status)
	assert.Equal(t, "USD", inv.Currency)
	require.Len(t, inv.Items, 1)
	assert.True(t, strings.HasPrefix(inv.Items[0].ID, "ITEM-"))
}

func TestToDomainInvoice_KeepsProvidedValues(t *testing.T) {
	inv := ToDomainInvoice(dto.InvoiceRequest{
		ID:       "INV-7",
		Status:   domain.StatusOverdue,
		Currency: "EUR",
		Items:    []dto.InvoiceItemRequest{{ID: "ITEM-7", Quantity: 1, Rate: -5}},
	})

	assert.Equal(t, "INV-7", inv.ID)
	assert.Equal(t, domain.StatusOverdue, inv.Status)
	assert.Equal(t, "EUR", inv.Currency)
	assert.Equal(t, "ITEM-7", inv.Items[0].ID)
	assert.Equal(t, float64(-5), inv.Items[0].Rate)
}

func TestToInvoiceResponse_Totals(t *testing.T) {
	resp := ToInvoiceResponse(domain.Invoice{
		ID:       "INV-1",
		Currency: "USD",
		Items: []domain.InvoiceItem{
			{ID: "a", Quantity: 2, Rate: 50},
			{ID: "b", Quantity: 1, Rate: 30},
		},
	})

	assert.Equal(t, "130", resp.Subtotal.String())
	assert.Equal(t, "13", resp.Tax.String())
	assert.Equal(t, "143", resp.Total.String())
	assert.Equal(t, "$143.00", resp.FormattedTotal)
	assert.Equal(t, "100", resp.Items[0].Amount.String())
	assert.NotNil(t, resp.Items)
}
