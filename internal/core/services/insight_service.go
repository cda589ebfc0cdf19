package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/invoice_ai_app/internal/apperrors"
	"github.com/SscSPs/invoice_ai_app/internal/core/domain"
	"github.com/SscSPs/invoice_ai_app/internal/core/ports"
	portssvc "github.com/SscSPs/invoice_ai_app/internal/core/ports/services"
	"github.com/SscSPs/invoice_ai_app/internal/platform/metrics"
	"github.com/SscSPs/invoice_ai_app/internal/utils"
)

const (
	DefaultFastModel    = "gemini-2.5-flash"
	DefaultInsightModel = "gemini-2.5-pro"

	ItemDescriptionFallback = "Failed to generate description."
	DashboardFallback       = "Could not generate AI insights at this time."
	DashboardEmptyMessage   = "No invoice data to analyze. Start by creating an invoice!"
)

const (
	outcomeGenerated = "generated"
	outcomeFallback  = "fallback"
	outcomeSkipped   = "skipped"
)

type insightService struct {
	BaseService
	generator    ports.TextGenerator
	fastModel    string
	insightModel string
	timeout      time.Duration
}

// InsightServiceOption is a functional option for configuring the insight service
type InsightServiceOption func(*insightService)

// WithFastModel sets the model used for item descriptions and email bodies
func WithFastModel(model string) InsightServiceOption {
	return func(s *insightService) {
		if model != "" {
			s.fastModel = model
		}
	}
}

// WithInsightModel sets the model used for dashboard analysis
func WithInsightModel(model string) InsightServiceOption {
	return func(s *insightService) {
		if model != "" {
			s.insightModel = model
		}
	}
}

// WithInsightTimeout bounds each collaborator call. Zero means no bound.
func WithInsightTimeout(d time.Duration) InsightServiceOption {
	return func(s *insightService) {
		s.timeout = d
	}
}

// WithInsightMetrics adds the metrics dependency
func WithInsightMetrics(m *metrics.Metrics) InsightServiceOption {
	return func(s *insightService) {
		s.Metrics = m
	}
}

// NewInsightService creates an insight service that asks generator for text.
func NewInsightService(generator ports.TextGenerator, options ...InsightServiceOption) portssvc.InsightSvcFacade {
	svc := &insightService{
		generator:    generator,
		fastModel:    DefaultFastModel,
		insightModel: DefaultInsightModel,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

var _ portssvc.InsightSvcFacade = (*insightService)(nil)

func (s *insightService) GenerateItemDescription(ctx context.Context, itemName string) domain.InsightResult {
	prompt := fmt.Sprintf("Generate a concise, professional one-line description for an invoice item named: \"%s\". Just provide the description, no preamble.", itemName)

	text, err := s.generate(ctx, domain.InsightItemDescription, s.fastModel, prompt)
	if err != nil {
		return domain.InsightResult{Text: ItemDescriptionFallback, Fallback: true}
	}
	return domain.InsightResult{Text: strings.TrimSpace(text)}
}

func (s *insightService) GenerateEmailBody(ctx context.Context, invoice domain.Invoice) domain.InsightResult {
	formattedTotal := utils.FormatCurrency(invoice.Total(), invoice.Currency)

	var b strings.Builder
	b.WriteString("Generate a professional and friendly email body to send an invoice.\n\n")
	fmt.Fprintf(&b, "My Name: %s\n", invoice.SenderName)
	fmt.Fprintf(&b, "Client Name: %s\n", invoice.ClientName)
	fmt.Fprintf(&b, "Invoice Number: %s\n", invoice.InvoiceNumber)
	fmt.Fprintf(&b, "Due Date: %s\n", invoice.DueDate)
	fmt.Fprintf(&b, "Total Amount: %s\n\n", formattedTotal)
	fmt.Fprintf(&b, "The email should be ready to send. Don't include a subject line. Start with \"Hi %s,\" and end with a sign-off from me.", invoice.ClientName)

	text, err := s.generate(ctx, domain.InsightEmailBody, s.fastModel, b.String())
	if err != nil {
		return domain.InsightResult{Text: EmailFallback(invoice, formattedTotal), Fallback: true}
	}
	return domain.InsightResult{Text: text}
}

// EmailFallback is the email body used when the collaborator cannot be reached.
func EmailFallback(invoice domain.Invoice, formattedTotal string) string {
	return fmt.Sprintf(
		"Subject: Invoice %s from %s\n\nHi %s,\n\nPlease find attached invoice #%s for %s, due on %s.\n\nThank you for your business.\n\nBest regards,\n%s",
		invoice.InvoiceNumber, invoice.SenderName,
		invoice.ClientName,
		invoice.InvoiceNumber, formattedTotal, invoice.DueDate,
		invoice.SenderName,
	)
}

func (s *insightService) GenerateDashboardInsights(ctx context.Context, invoices []domain.Invoice) domain.InsightResult {
	summary, ok := domain.SummarizeForDashboard(invoices)
	if !ok {
		s.Metrics.InsightRequest(string(domain.InsightDashboard), outcomeSkipped)
		return domain.InsightResult{Text: DashboardEmptyMessage}
	}

	text, err := s.generate(ctx, domain.InsightDashboard, s.insightModel, dashboardPrompt(summary))
	if err != nil {
		return domain.InsightResult{Text: DashboardFallback, Fallback: true}
	}
	return domain.InsightResult{Text: text}
}

func dashboardPrompt(summary domain.DashboardSummary) string {
	counts := make(map[string]int, len(summary.StatusCounts))
	for status, n := range summary.StatusCounts {
		counts[string(status)] = n
	}
	// map keys marshal in sorted order, so the prompt is stable
	countsJSON, _ := json.Marshal(counts)

	var b strings.Builder
	b.WriteString("Analyze the following invoice data and provide very short, crisp, actionable insights in 2-3 bullet points. Use markdown for the bullet points.\n\n")
	fmt.Fprintf(&b, "Data for %s invoices:\n", summary.Currency)
	fmt.Fprintf(&b, "- Total Invoices (%s): %d\n", summary.Currency, summary.InvoiceCount)
	fmt.Fprintf(&b, "- Invoices by Status: %s\n", countsJSON)
	fmt.Fprintf(&b, "- Total Paid Amount: %s\n", utils.FormatCurrency(summary.PaidTotal, summary.Currency))
	fmt.Fprintf(&b, "- Total Unpaid (Sent or Overdue) Amount: %s\n\n", utils.FormatCurrency(summary.UnpaidTotal, summary.Currency))
	b.WriteString("Example format:\n")
	b.WriteString("* You have X overdue invoices. Follow up on them today.\n")
	b.WriteString("* Your paid vs. unpaid ratio is looking healthy. Keep it up!")
	return b.String()
}

// generate calls the collaborator once. Errors are logged and counted here;
// callers only decide on the fallback text.
func (s *insightService) generate(ctx context.Context, kind domain.InsightKind, model, prompt string) (string, error) {
	if s.generator == nil {
		err := fmt.Errorf("no text generator configured: %w", apperrors.ErrConfiguration)
		s.Metrics.InsightRequest(string(kind), outcomeFallback)
		s.LogError(ctx, err, "Insight request failed", slog.String("kind", string(kind)))
		return "", err
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := s.generator.GenerateText(ctx, model, prompt)
	if err == nil && strings.TrimSpace(text) == "" {
		err = fmt.Errorf("empty response from model %s: %w", model, apperrors.ErrCollaborator)
	}
	if err != nil {
		s.Metrics.InsightRequest(string(kind), outcomeFallback)
		s.LogError(ctx, err, "Insight request failed",
			slog.String("kind", string(kind)),
			slog.String("model", model),
			slog.Duration("elapsed", time.Since(start)),
		)
		return "", err
	}

	s.Metrics.InsightRequest(string(kind), outcomeGenerated)
	s.LogDebug(ctx, "Insight generated",
		slog.String("kind", string(kind)),
		slog.String("model", model),
		slog.Duration("elapsed", time.Since(start)),
	)
	return text, nil
}
