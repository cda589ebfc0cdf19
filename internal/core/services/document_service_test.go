package services_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/SscSPs/invoice_ai_app/internal/apperrors"
	"github.com/SscSPs/invoice_ai_app/internal/core/domain"
	"github.com/SscSPs/invoice_ai_app/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPreviewRenderer is a mock type for the PreviewRenderer interface
type MockPreviewRenderer struct {
	mock.Mock
}

func (m *MockPreviewRenderer) RenderPDF(ctx context.Context, invoice domain.Invoice) ([]byte, error) {
	args := m.Called(ctx, invoice)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func TestDocumentService_RenderPDF(t *testing.T) {
	inv := sampleInvoice("INV-1", domain.StatusDraft)
	renderer := new(MockPreviewRenderer)
	renderer.On("RenderPDF", mock.Anything, inv).Return([]byte("%PDF-1.3"), nil).Once()

	svc := services.NewDocumentService(renderer, services.NewInsightService(nil))
	name, content, err := svc.RenderPDF(context.Background(), inv)

	require.NoError(t, err)
	assert.Equal(t, "invoice-#1001.pdf", name)
	assert.Equal(t, []byte("%PDF-1.3"), content)
	renderer.AssertExpectations(t)
}

func TestDocumentService_RenderPDFError(t *testing.T) {
	inv := sampleInvoice("INV-1", domain.StatusDraft)
	renderer := new(MockPreviewRenderer)
	renderer.On("RenderPDF", mock.Anything, inv).Return(nil, errors.New("font missing")).Once()

	svc := services.NewDocumentService(renderer, services.NewInsightService(nil))
	_, _, err := svc.RenderPDF(context.Background(), inv)

	assert.ErrorContains(t, err, "font missing")
}

func TestDocumentService_RenderPDFWithoutRenderer(t *testing.T) {
	svc := services.NewDocumentService(nil, services.NewInsightService(nil))
	_, _, err := svc.RenderPDF(context.Background(), sampleInvoice("INV-1", domain.StatusDraft))

	assert.ErrorIs(t, err, apperrors.ErrConfiguration)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusServiceUnavailable, appErr.Code)
	assert.Equal(t, "PDF rendering is not available", appErr.Message)
}

func TestDocumentService_ComposeEmailDraft(t *testing.T) {
	inv := sampleInvoice("INV-1", domain.StatusSent)
	generator := new(MockTextGenerator)
	generator.On("GenerateText", mock.Anything, services.DefaultFastModel, mock.Anything).
		Return("Hi Acme,\nThanks & regards", nil).Once()

	svc := services.NewDocumentService(nil, services.NewInsightService(generator))
	draft, fallback := svc.ComposeEmailDraft(context.Background(), inv)

	assert.False(t, fallback)
	assert.Equal(t, "billing@acme.test", draft.To)
	assert.Equal(t, "Invoice #1001 from Jo", draft.Subject)
	assert.Equal(t, "Hi Acme,\nThanks & regards", draft.Body)
	assert.Equal(t,
		"mailto:billing@acme.test?subject=Invoice%20%231001%20from%20Jo&body=Hi%20Acme%2C%0AThanks%20%26%20regards",
		draft.MailtoURL)
	generator.AssertExpectations(t)
}

func TestDocumentService_ComposeEmailDraftFallback(t *testing.T) {
	inv := sampleInvoice("INV-1", domain.StatusSent)

	svc := services.NewDocumentService(nil, services.NewInsightService(nil))
	draft, fallback := svc.ComposeEmailDraft(context.Background(), inv)

	assert.True(t, fallback)
	assert.Equal(t, services.EmailFallback(inv, "$143.00"), draft.Body)
	assert.Contains(t, draft.MailtoURL, "body=Subject%3A%20Invoice%20%231001")
}
