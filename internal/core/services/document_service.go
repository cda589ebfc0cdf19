package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/SscSPs/invoice_ai_app/internal/apperrors"
	"github.com/SscSPs/invoice_ai_app/internal/core/domain"
	"github.com/SscSPs/invoice_ai_app/internal/core/ports"
	portssvc "github.com/SscSPs/invoice_ai_app/internal/core/ports/services"
)

type documentService struct {
	BaseService
	renderer ports.PreviewRenderer
	insights portssvc.InsightSvcFacade
}

// NewDocumentService creates the service that builds PDF previews and email drafts.
func NewDocumentService(renderer ports.PreviewRenderer, insights portssvc.InsightSvcFacade) portssvc.DocumentSvcFacade {
	return &documentService{
		renderer: renderer,
		insights: insights,
	}
}

var _ portssvc.DocumentSvcFacade = (*documentService)(nil)

func (s *documentService) RenderPDF(ctx context.Context, invoice domain.Invoice) (string, []byte, error) {
	if s.renderer == nil {
		return "", nil, apperrors.NewAppError(http.StatusServiceUnavailable, "PDF rendering is not available", apperrors.ErrConfiguration)
	}

	content, err := s.renderer.RenderPDF(ctx, invoice)
	if err != nil {
		s.LogError(ctx, err, "Failed to render invoice preview", slog.String("invoice_id", invoice.ID))
		return "", nil, fmt.Errorf("render invoice %s: %w", invoice.ID, err)
	}

	return domain.PDFFileName(invoice), content, nil
}

// ComposeEmailDraft reports whether the body is the local fallback template.
func (s *documentService) ComposeEmailDraft(ctx context.Context, invoice domain.Invoice) (domain.EmailDraft, bool) {
	body := s.insights.GenerateEmailBody(ctx, invoice)
	subject := EmailSubject(invoice)

	draft := domain.EmailDraft{
		To:        invoice.ClientEmail,
		Subject:   subject,
		Body:      body.Text,
		MailtoURL: MailtoURL(invoice.ClientEmail, subject, body.Text),
	}
	s.LogDebug(ctx, "Composed email draft", slog.String("invoice_id", invoice.ID), slog.Bool("fallback", body.Fallback))
	return draft, body.Fallback
}

// EmailSubject is the subject line of the invoice email.
func EmailSubject(invoice domain.Invoice) string {
	return fmt.Sprintf("Invoice %s from %s", invoice.InvoiceNumber, invoice.SenderName)
}

// MailtoURL builds a mailto link. The recipient is kept verbatim; subject and
// body are percent-encoded with %20 for spaces.
func MailtoURL(to, subject, body string) string {
	return "mailto:" + to + "?subject=" + encodeComponent(subject) + "&body=" + encodeComponent(body)
}

func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
