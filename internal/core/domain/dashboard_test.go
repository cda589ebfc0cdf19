package domain_test

import (
	"testing"

	"github.com/SscSPs/invoice_ai_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func invoiceWith(status domain.InvoiceStatus, currency string, rate float64) domain.Invoice {
	return domain.Invoice{
		ID:       domain.NewInvoiceID(),
		Status:   status,
		Currency: currency,
		Items:    []domain.InvoiceItem{{ID: "i", Quantity: 1, Rate: rate}},
	}
}

func TestStatusCounts(t *testing.T) {
	t.Run("empty collection has no keys", func(t *testing.T) {
		counts := domain.StatusCounts(nil)
		assert.Empty(t, counts)
	})

	t.Run("zero statuses are omitted", func(t *testing.T) {
		invoices := []domain.Invoice{
			invoiceWith(domain.StatusDraft, "USD", 1),
			invoiceWith(domain.StatusPaid, "USD", 1),
			invoiceWith(domain.StatusPaid, "USD", 1),
		}
		counts := domain.StatusCounts(invoices)

		assert.Equal(t, map[domain.InvoiceStatus]int{domain.StatusDraft: 1, domain.StatusPaid: 2}, counts)
		_, hasSent := counts[domain.StatusSent]
		_, hasOverdue := counts[domain.StatusOverdue]
		assert.False(t, hasSent)
		assert.False(t, hasOverdue)
	})
}

func TestStatusBreakdown(t *testing.T) {
	invoices := []domain.Invoice{
		invoiceWith(domain.StatusOverdue, "USD", 1),
		invoiceWith(domain.StatusDraft, "USD", 1),
		invoiceWith(domain.StatusOverdue, "USD", 1),
	}

	got := domain.StatusBreakdown(invoices)

	assert.Equal(t, []domain.StatusSlice{
		{Status: domain.StatusDraft, Count: 1, Color: "#94a3b8"},
		{Status: domain.StatusOverdue, Count: 2, Color: "#ef4444"},
	}, got)
	assert.Empty(t, domain.StatusBreakdown(nil))
}

func TestDominantCurrency(t *testing.T) {
	_, ok := domain.DominantCurrency(nil)
	assert.False(t, ok)

	code, ok := domain.DominantCurrency([]domain.Invoice{
		invoiceWith(domain.StatusDraft, "EUR", 1),
		invoiceWith(domain.StatusDraft, "USD", 1),
		invoiceWith(domain.StatusDraft, "EUR", 1),
	})
	require.True(t, ok)
	assert.Equal(t, "EUR", code)

	code, _ = domain.DominantCurrency([]domain.Invoice{
		invoiceWith(domain.StatusDraft, "EUR", 1),
		invoiceWith(domain.StatusDraft, "USD", 1),
	})
	assert.Equal(t, "USD", code, "ties go to the currency seen later")
}

func TestSummarizeForDashboard(t *testing.T) {
	_, ok := domain.SummarizeForDashboard(nil)
	assert.False(t, ok)

	invoices := []domain.Invoice{
		invoiceWith(domain.StatusPaid, "USD", 100),
		invoiceWith(domain.StatusSent, "USD", 50),
		invoiceWith(domain.StatusOverdue, "USD", 10),
		invoiceWith(domain.StatusDraft, "USD", 999),
		invoiceWith(domain.StatusPaid, "EUR", 1000),
	}

	summary, ok := domain.SummarizeForDashboard(invoices)
	require.True(t, ok)

	assert.Equal(t, "USD", summary.Currency)
	assert.Equal(t, 4, summary.InvoiceCount)
	assert.Equal(t, map[domain.InvoiceStatus]int{
		domain.StatusPaid:    1,
		domain.StatusSent:    1,
		domain.StatusOverdue: 1,
		domain.StatusDraft:   1,
	}, summary.StatusCounts)
	assert.Equal(t, "110", summary.PaidTotal.String())
	assert.Equal(t, "66", summary.UnpaidTotal.String())
}
