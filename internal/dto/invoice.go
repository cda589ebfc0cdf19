package dto

import (
	"github.com/SscSPs/invoice_ai_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// InvoiceItemRequest is one line of an invoice in a create or save request.
type InvoiceItemRequest struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Rate        float64 `json:"rate"` // negative for discounts
}

// InvoiceRequest carries a full invoice. Missing id, status and currency are
// filled with the defaults of a new invoice.
type InvoiceRequest struct {
	ID            string               `json:"id"`
	InvoiceNumber string               `json:"invoiceNumber"`
	ClientName    string               `json:"clientName"`
	ClientEmail   string               `json:"clientEmail"`
	ClientAddress string               `json:"clientAddress"`
	SenderName    string               `json:"senderName"`
	SenderEmail   string               `json:"senderEmail"`
	SenderAddress string               `json:"senderAddress"`
	IssueDate     string               `json:"issueDate" binding:"omitempty,datetime=2006-01-02" example:"2024-01-31"`
	DueDate       string               `json:"dueDate" binding:"omitempty,datetime=2006-01-02" example:"2024-02-29"`
	Items         []InvoiceItemRequest `json:"items" binding:"dive"`
	Notes         string               `json:"notes"`
	Status        domain.InvoiceStatus `json:"status" binding:"omitempty,invoicestatus" example:"Draft"`
	Currency      string               `json:"currency" binding:"omitempty,len=3" example:"USD"`
}

// UpdateInvoiceStatusRequest changes only the status of an invoice.
type UpdateInvoiceStatusRequest struct {
	Status domain.InvoiceStatus `json:"status" binding:"required,invoicestatus" example:"Paid"`
}

// InvoiceItemResponse is an invoice line with its computed amount.
type InvoiceItemResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    float64         `json:"quantity"`
	Rate        float64         `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
}

// InvoiceResponse is an invoice plus its derived totals, raw and formatted.
type InvoiceResponse struct {
	ID                string                `json:"id"`
	InvoiceNumber     string                `json:"invoiceNumber"`
	ClientName        string                `json:"clientName"`
	ClientEmail       string                `json:"clientEmail"`
	ClientAddress     string                `json:"clientAddress"`
	SenderName        string                `json:"senderName"`
	SenderEmail       string                `json:"senderEmail"`
	SenderAddress     string                `json:"senderAddress"`
	IssueDate         string                `json:"issueDate"`
	DueDate           string                `json:"dueDate"`
	Items             []InvoiceItemResponse `json:"items"`
	Notes             string                `json:"notes"`
	Status            domain.InvoiceStatus  `json:"status"`
	Currency          string                `json:"currency"`
	Subtotal          decimal.Decimal       `json:"subtotal"`
	Tax               decimal.Decimal       `json:"tax"`
	Total             decimal.Decimal       `json:"total"`
	FormattedSubtotal string                `json:"formattedSubtotal"`
	FormattedTax      string                `json:"formattedTax"`
	FormattedTotal    string                `json:"formattedTotal"`
}

// StatusCountResponse is one segment of the dashboard status chart.
type StatusCountResponse struct {
	Status domain.InvoiceStatus `json:"status"`
	Count  int                  `json:"count"`
	Color  string               `json:"color"`
}
