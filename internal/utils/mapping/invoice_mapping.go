package mapping

import (
	"github.com/SscSPs/invoice_ai_app/internal/core/domain"
	"github.com/SscSPs/invoice_ai_app/internal/dto"
	"github.com/SscSPs/invoice_ai_app/internal/utils"
)

// ToDomainInvoice converts a request into a domain Invoice. Blank ids, status
// and currency take the values a freshly created invoice would have.
func ToDomainInvoice(req dto.InvoiceRequest) domain.Invoice {
	inv := domain.Invoice{
		ID:            req.ID,
		InvoiceNumber: req.InvoiceNumber,
		ClientName:    req.ClientName,
		ClientEmail:   req.ClientEmail,
		ClientAddress: req.ClientAddress,
		SenderName:    req.SenderName,
		SenderEmail:   req.SenderEmail,
		SenderAddress: req.SenderAddress,
		IssueDate:     req.IssueDate,
		DueDate:       req.DueDate,
		Items:         make([]domain.InvoiceItem, len(req.Items)),
		Notes:         req.Notes,
		Status:        req.Status,
		Currency:      req.Currency,
	}
	if inv.ID == "" {
		inv.ID = domain.NewInvoiceID()
	}
	if inv.Status == "" {
		inv.Status = domain.StatusDraft
	}
	if inv.Currency == "" {
		inv.Currency = domain.DefaultCurrency
	}
	for i, item := range req.Items {
		inv.Items[i] = ToDomainInvoiceItem(item)
	}
	return inv
}

// ToDomainInvoiceItem converts a request line, generating an id when absent.
func ToDomainInvoiceItem(req dto.InvoiceItemRequest) domain.InvoiceItem {
	item := domain.InvoiceItem{
		ID:          req.ID,
		Description: req.Description,
		Quantity:    req.Quantity,
		Rate:        req.Rate,
	}
	if item.ID == "" {
		item.ID = domain.NewInvoiceItem().ID
	}
	return item
}

// ToInvoiceResponse converts a domain Invoice to its response DTO with derived totals.
func ToInvoiceResponse(inv domain.Invoice) dto.InvoiceResponse {
	items := make([]dto.InvoiceItemResponse, len(inv.Items))
	for i, item := range inv.Items {
		items[i] = dto.InvoiceItemResponse{
			ID:          item.ID,
			Description: item.Description,
			Quantity:    item.Quantity,
			Rate:        item.Rate,
			Amount:      item.LineAmount(),
		}
	}

	subtotal, tax, total := inv.Subtotal(), inv.Tax(), inv.Total()
	return dto.InvoiceResponse{
		ID:                inv.ID,
		InvoiceNumber:     inv.InvoiceNumber,
		ClientName:        inv.ClientName,
		ClientEmail:       inv.ClientEmail,
		ClientAddress:     inv.ClientAddress,
		SenderName:        inv.SenderName,
		SenderEmail:       inv.SenderEmail,
		SenderAddress:     inv.SenderAddress,
		IssueDate:         inv.IssueDate,
		DueDate:           inv.DueDate,
		Items:             items,
		Notes:             inv.Notes,
		Status:            inv.Status,
		Currency:          inv.Currency,
		Subtotal:          subtotal,
		Tax:               tax,
		Total:             total,
		FormattedSubtotal: utils.FormatCurrency(subtotal, inv.Currency),
		FormattedTax:      utils.FormatCurrency(tax, inv.Currency),
		FormattedTotal:    utils.FormatCurrency(total, inv.Currency),
	}
}

// ToInvoiceResponseSlice converts a slice of domain Invoices to response DTOs
func ToInvoiceResponseSlice(invoices []domain.Invoice) []dto.InvoiceResponse {
	res := make([]dto.InvoiceResponse, len(invoices))
	for i, inv := range invoices {
		res[i] = ToInvoiceResponse(inv)
	}
	return res
}

// ToStatusCountResponses converts chart segments to response DTOs
func ToStatusCountResponses(slices []domain.StatusSlice) []dto.StatusCountResponse {
	res := make([]dto.StatusCountResponse, len(slices))
	for i, s := range slices {
		res[i] = dto.StatusCountResponse{Status: s.Status, Count: s.Count, Color: s.Color}
	}
	return res
}

// ToCurrencyResponse converts a domain Currency to its response DTO
func ToCurrencyResponse(c domain.Currency) dto.CurrencyResponse {
	return dto.CurrencyResponse{
		CurrencyCode: c.CurrencyCode,
		Symbol:       c.Symbol,
		Name:         c.Name,
		Precision:    c.Precision,
		Locale:       c.Locale,
	}
}

// ToEmailDraftResponse converts a composed draft to its response DTO
func ToEmailDraftResponse(d domain.EmailDraft, fallback bool) dto.EmailDraftResponse {
	return dto.EmailDraftResponse{
		To:        d.To,
		Subject:   d.Subject,
		Body:      d.Body,
		MailtoURL: d.MailtoURL,
		Fallback:  fallback,
	}
}

// ToInsightResponse converts generated text to its response DTO
func ToInsightResponse(r domain.InsightResult) dto.InsightResponse {
	return dto.InsightResponse{Text: r.Text, Fallback: r.Fallback}
}
