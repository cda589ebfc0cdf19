package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/SscSPs/invoice_ai_app/internal/apperrors"
	"github.com/SscSPs/invoice_ai_app/internal/core/domain"
	portsrepo "github.com/SscSPs/invoice_ai_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/invoice_ai_app/internal/core/ports/services"
	"github.com/SscSPs/invoice_ai_app/internal/platform/metrics"
)

// DefaultSlotKey is the fixed key under which the collection is persisted.
const DefaultSlotKey = "ai-invoices"

// EventTracker receives product analytics events. Implementations must not block.
type EventTracker interface {
	Track(event string, properties map[string]any)
}

// invoiceService is the invoice store: it owns the canonical collection in
// memory and mirrors it, best effort, to one persistent slot.
type invoiceService struct {
	BaseService
	slotRepo portsrepo.SlotRepositoryFacade
	slotKey  string
	tracker  EventTracker

	mu       sync.RWMutex
	invoices []domain.Invoice
}

// InvoiceServiceOption is a functional option for configuring the invoice service
type InvoiceServiceOption func(*invoiceService)

// WithSlotKey overrides the persisted slot key
func WithSlotKey(key string) InvoiceServiceOption {
	return func(s *invoiceService) {
		if key != "" {
			s.slotKey = key
		}
	}
}

// WithInvoiceMetrics adds the metrics dependency
func WithInvoiceMetrics(m *metrics.Metrics) InvoiceServiceOption {
	return func(s *invoiceService) {
		s.Metrics = m
	}
}

// WithEventTracker adds an analytics sink for invoice lifecycle events
func WithEventTracker(tracker EventTracker) InvoiceServiceOption {
	return func(s *invoiceService) {
		s.tracker = tracker
	}
}

// NewInvoiceService creates an invoice store backed by repo. The collection
// starts empty; call Load to read the persisted slot.
func NewInvoiceService(repo portsrepo.SlotRepositoryFacade, options ...InvoiceServiceOption) portssvc.InvoiceSvcFacade {
	svc := &invoiceService{
		slotRepo: repo,
		slotKey:  DefaultSlotKey,
		invoices: []domain.Invoice{},
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure invoiceService implements the InvoiceSvcFacade interface
var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

func (s *invoiceService) Load(ctx context.Context) {
	invoices := s.readSlot(ctx)

	s.mu.Lock()
	s.invoices = invoices
	s.mu.Unlock()

	s.Metrics.StoreSize(len(invoices))
	s.LogInfo(ctx, "Invoice store loaded", slog.String("slot_key", s.slotKey), slog.Int("count", len(invoices)))
}

// readSlot never fails: missing, unreadable and unparsable data all yield an empty collection.
func (s *invoiceService) readSlot(ctx context.Context) []domain.Invoice {
	raw, err := s.slotRepo.ReadSlot(ctx, s.slotKey)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogInfo(ctx, "No persisted invoices found, starting empty", slog.String("slot_key", s.slotKey))
			return []domain.Invoice{}
		}
		s.Metrics.PersistFailure("read")
		s.LogError(ctx, err, "Error reading invoice slot, starting empty", slog.String("slot_key", s.slotKey))
		return []domain.Invoice{}
	}

	var invoices []domain.Invoice
	if err := json.Unmarshal(raw, &invoices); err != nil {
		s.Metrics.PersistFailure("decode")
		s.LogError(ctx, err, "Error parsing invoice slot, starting empty", slog.String("slot_key", s.slotKey))
		return []domain.Invoice{}
	}
	if invoices == nil {
		invoices = []domain.Invoice{}
	}
	return invoices
}

func (s *invoiceService) ListInvoices(ctx context.Context) []domain.Invoice {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Invoice, len(s.invoices))
	for i, inv := range s.invoices {
		out[i] = inv.Clone()
	}
	return out
}

func (s *invoiceService) GetInvoice(ctx context.Context, id string) (*domain.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, inv := range s.invoices {
		if inv.ID == id {
			found := inv.Clone()
			return &found, nil
		}
	}
	return nil, fmt.Errorf("invoice %s: %w", id, apperrors.ErrNotFound)
}

func (s *invoiceService) AddInvoice(ctx context.Context, invoice domain.Invoice) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.invoices = append(s.invoices, invoice.Clone())
	s.persistLocked(ctx)
	s.track("invoice_added", invoice.ID, invoice.Status)
}

func (s *invoiceService) UpdateInvoice(ctx context.Context, id string, invoice domain.Invoice) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := s.replaceLocked(id, invoice)
	s.persistLocked(ctx)
	if matched {
		s.track("invoice_updated", id, invoice.Status)
	}
}

func (s *invoiceService) UpdateInvoiceStatus(ctx context.Context, id string, status domain.InvoiceStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := false
	for i := range s.invoices {
		if s.invoices[i].ID == id {
			s.invoices[i].Status = status
			matched = true
		}
	}
	s.persistLocked(ctx)
	if matched {
		s.track("invoice_status_changed", id, status)
	}
}

func (s *invoiceService) DeleteInvoice(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]domain.Invoice, 0, len(s.invoices))
	for _, inv := range s.invoices {
		if inv.ID != id {
			kept = append(kept, inv)
		}
	}
	matched := len(kept) != len(s.invoices)
	s.invoices = kept
	s.persistLocked(ctx)
	if matched {
		s.track("invoice_deleted", id, "")
	}
}

func (s *invoiceService) SaveInvoice(ctx context.Context, invoice domain.Invoice) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.replaceLocked(invoice.ID, invoice) {
		s.persistLocked(ctx)
		s.track("invoice_updated", invoice.ID, invoice.Status)
		return
	}
	s.invoices = append(s.invoices, invoice.Clone())
	s.persistLocked(ctx)
	s.track("invoice_added", invoice.ID, invoice.Status)
}

// replaceLocked swaps every entry whose id matches and reports whether any did.
func (s *invoiceService) replaceLocked(id string, invoice domain.Invoice) bool {
	matched := false
	for i := range s.invoices {
		if s.invoices[i].ID == id {
			s.invoices[i] = invoice.Clone()
			matched = true
		}
	}
	return matched
}

// persistLocked writes the whole collection to the slot. Failures are logged
// and counted; the in-memory state is kept either way. Caller holds s.mu.
func (s *invoiceService) persistLocked(ctx context.Context) {
	s.Metrics.StoreSize(len(s.invoices))

	raw, err := json.Marshal(s.invoices)
	if err != nil {
		s.Metrics.PersistFailure("encode")
		s.LogError(ctx, err, "Error encoding invoices for storage", slog.String("slot_key", s.slotKey))
		return
	}

	// Persist even if the request context has been cancelled.
	if err := s.slotRepo.WriteSlot(context.WithoutCancel(ctx), s.slotKey, raw); err != nil {
		s.Metrics.PersistFailure("write")
		s.LogError(ctx, err, "Error writing invoice slot", slog.String("slot_key", s.slotKey), slog.Int("count", len(s.invoices)))
	}
}

func (s *invoiceService) track(event, invoiceID string, status domain.InvoiceStatus) {
	if s.tracker == nil {
		return
	}
	props := map[string]any{"invoice_id": invoiceID}
	if status != "" {
		props["status"] = string(status)
	}
	s.tracker.Track(event, props)
}
