package services

import (
	"github.com/SscSPs/invoice_ai_app/internal/core/ports"
	portsrepo "github.com/SscSPs/invoice_ai_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/invoice_ai_app/internal/core/ports/services"
	"github.com/SscSPs/invoice_ai_app/internal/platform/config"
	"github.com/SscSPs/invoice_ai_app/internal/platform/metrics"
)

// Collaborators groups the external services the core calls out to.
type Collaborators struct {
	TextGenerator ports.TextGenerator
	Renderer      ports.PreviewRenderer
	Tracker       EventTracker
	Metrics       *metrics.Metrics
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, collab Collaborators) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	invoiceOpts := []InvoiceServiceOption{
		WithSlotKey(cfg.StorageKey),
		WithInvoiceMetrics(collab.Metrics),
	}
	if collab.Tracker != nil {
		invoiceOpts = append(invoiceOpts, WithEventTracker(collab.Tracker))
	}
	container.Invoice = NewInvoiceService(repos.SlotRepo, invoiceOpts...)

	container.Insight = NewInsightService(
		collab.TextGenerator,
		WithFastModel(cfg.GeminiFastModel),
		WithInsightModel(cfg.GeminiInsightModel),
		WithInsightTimeout(cfg.InsightTimeout),
		WithInsightMetrics(collab.Metrics),
	)

	// The document service depends on the insight service for email bodies
	container.Document = NewDocumentService(collab.Renderer, container.Insight)

	return container
}
