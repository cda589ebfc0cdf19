package domain

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceStatus is the lifecycle label of an invoice.
// Any status may change to any other status; no transitions are enforced.
type InvoiceStatus string

const (
	StatusDraft   InvoiceStatus = "Draft"
	StatusSent    InvoiceStatus = "Sent"
	StatusPaid    InvoiceStatus = "Paid"
	StatusOverdue InvoiceStatus = "Overdue"
)

// AllStatuses lists every status in canonical display order.
var AllStatuses = []InvoiceStatus{StatusDraft, StatusSent, StatusPaid, StatusOverdue}

// IsValid reports whether s is one of the known statuses.
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusSent, StatusPaid, StatusOverdue:
		return true
	}
	return false
}

// ParseInvoiceStatus converts a string label into an InvoiceStatus.
func ParseInvoiceStatus(value string) (InvoiceStatus, error) {
	s := InvoiceStatus(value)
	if !s.IsValid() {
		return "", fmt.Errorf("unknown invoice status %q", value)
	}
	return s, nil
}

// TaxRate is the flat tax applied on top of an invoice subtotal.
var TaxRate = decimal.NewFromFloat(0.10)

// DateLayout is the ISO calendar date format used for issue and due dates.
const DateLayout = "2006-01-02"

// DefaultCurrency is the currency assigned to freshly created invoices.
const DefaultCurrency = "USD"

// InvoiceItem is one billable line within an invoice.
// Rate may be negative to express a discount.
type InvoiceItem struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Rate        float64 `json:"rate"`
}

// LineAmount returns quantity × rate.
func (i InvoiceItem) LineAmount() decimal.Decimal {
	return decimal.NewFromFloat(i.Quantity).Mul(decimal.NewFromFloat(i.Rate))
}

// Invoice is a billing document. ID is the identity; InvoiceNumber is only a
// display label and is not guaranteed unique.
type Invoice struct {
	ID            string        `json:"id"`
	InvoiceNumber string        `json:"invoiceNumber"`
	ClientName    string        `json:"clientName"`
	ClientEmail   string        `json:"clientEmail"`
	ClientAddress string        `json:"clientAddress"`
	SenderName    string        `json:"senderName"`
	SenderEmail   string        `json:"senderEmail"`
	SenderAddress string        `json:"senderAddress"`
	IssueDate     string        `json:"issueDate"` // YYYY-MM-DD
	DueDate       string        `json:"dueDate"`   // YYYY-MM-DD
	Items         []InvoiceItem `json:"items"`     // print order
	Notes         string        `json:"notes"`
	Status        InvoiceStatus `json:"status"`
	Currency      string        `json:"currency"`
}

// Subtotal sums the line amounts in item order.
func (inv Invoice) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range inv.Items {
		sum = sum.Add(item.LineAmount())
	}
	return sum
}

// Tax is Subtotal × TaxRate.
func (inv Invoice) Tax() decimal.Decimal {
	return inv.Subtotal().Mul(TaxRate)
}

// Total is Subtotal + Tax.
func (inv Invoice) Total() decimal.Decimal {
	subtotal := inv.Subtotal()
	return subtotal.Add(subtotal.Mul(TaxRate))
}

// Clone returns a deep copy so callers cannot alias the item slice.
func (inv Invoice) Clone() Invoice {
	out := inv
	if inv.Items != nil {
		out.Items = make([]InvoiceItem, len(inv.Items))
		copy(out.Items, inv.Items)
	}
	return out
}

// PDFFileName is the download name of the rendered preview.
func PDFFileName(inv Invoice) string {
	return fmt.Sprintf("invoice-%s.pdf", inv.InvoiceNumber)
}

// NewInvoiceID generates an opaque invoice identifier.
func NewInvoiceID() string {
	return "INV-" + uuid.NewString()
}

// NewInvoiceItem returns a blank line item with quantity 1 and rate 0.
func NewInvoiceItem() InvoiceItem {
	return InvoiceItem{
		ID:       "ITEM-" + uuid.NewString(),
		Quantity: 1,
		Rate:     0,
	}
}

// NewInvoice builds an empty Draft invoice dated today with a single blank item.
func NewInvoice(now time.Time) Invoice {
	today := now.Format(DateLayout)
	return Invoice{
		ID:            NewInvoiceID(),
		InvoiceNumber: fmt.Sprintf("#%d", rand.IntN(9000)+1000),
		IssueDate:     today,
		DueDate:       today,
		Items:         []InvoiceItem{NewInvoiceItem()},
		Status:        StatusDraft,
		Currency:      DefaultCurrency,
	}
}
