package pdf

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/SscSPs/invoice_ai_app/internal/core/domain"
	"github.com/SscSPs/invoice_ai_app/internal/core/ports"
	"github.com/SscSPs/invoice_ai_app/internal/utils"
	"github.com/jung-kurt/gofpdf/v2"
)

const (
	descriptionWidth = 90.0
	itemRowHeight    = 7.0
	itemLineHeight   = 5.0
)

// Renderer draws the invoice preview as an A4 document.
type Renderer struct {
	uncompressed bool
}

// NewRenderer creates a PDF preview renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

var _ ports.PreviewRenderer = (*Renderer)(nil)

// RenderPDF lays out the same content as the on-screen preview.
func (r *Renderer) RenderPDF(ctx context.Context, invoice domain.Invoice) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetCompression(!r.uncompressed)
	pdf.SetTitle(fmt.Sprintf("Invoice %s", invoice.InvoiceNumber), true)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	// Header
	pdf.SetFont("Arial", "B", 22)
	pdf.CellFormat(120, 12, "INVOICE", "", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(60, 12, tr(invoice.InvoiceNumber), "", 1, "R", false, 0, "")
	pdf.SetFont("Arial", "B", 10)
	pdf.SetTextColor(100, 116, 139)
	pdf.CellFormat(180, 6, strings.ToUpper(string(invoice.Status)), "", 1, "R", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	// From / Bill To
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(90, 7, "From", "", 0, "L", false, 0, "")
	pdf.CellFormat(90, 7, "Bill To", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	left := partyLines(invoice.SenderName, invoice.SenderEmail, invoice.SenderAddress)
	right := partyLines(invoice.ClientName, invoice.ClientEmail, invoice.ClientAddress)
	for i := 0; i < max(len(left), len(right)); i++ {
		pdf.CellFormat(90, 5, tr(lineAt(left, i)), "", 0, "L", false, 0, "")
		pdf.CellFormat(90, 5, tr(lineAt(right, i)), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.CellFormat(90, 6, "Issue Date: "+invoice.IssueDate, "", 0, "L", false, 0, "")
	pdf.CellFormat(90, 6, "Due Date: "+invoice.DueDate, "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// Items table
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(241, 245, 249)
	pdf.CellFormat(90, 8, "Description", "B", 0, "L", true, 0, "")
	pdf.CellFormat(20, 8, "Qty", "B", 0, "R", true, 0, "")
	pdf.CellFormat(35, 8, "Rate", "B", 0, "R", true, 0, "")
	pdf.CellFormat(35, 8, "Amount", "B", 1, "R", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, item := range invoice.Items {
		drawItemRow(pdf, tr, item, invoice.Currency)
	}
	pdf.Ln(3)

	// Totals
	totals := []struct {
		label string
		value string
	}{
		{"Subtotal", utils.FormatCurrency(invoice.Subtotal(), invoice.Currency)},
		{fmt.Sprintf("Tax (%s%%)", domain.TaxRate.Shift(2).String()), utils.FormatCurrency(invoice.Tax(), invoice.Currency)},
		{"Total", utils.FormatCurrency(invoice.Total(), invoice.Currency)},
	}
	for i, t := range totals {
		if i == len(totals)-1 {
			pdf.SetFont("Arial", "B", 12)
		}
		pdf.CellFormat(145, 7, t.label, "", 0, "R", false, 0, "")
		pdf.CellFormat(35, 7, tr(t.value), "", 1, "R", false, 0, "")
	}

	if invoice.Notes != "" {
		pdf.Ln(6)
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(180, 6, "Notes", "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(180, 5, tr(invoice.Notes), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render invoice %s: %w", invoice.ID, err)
	}
	return buf.Bytes(), nil
}

// drawItemRow writes one table row. Long descriptions wrap inside their
// column and the other cells grow to the same height.
func drawItemRow(pdf *gofpdf.Fpdf, tr func(string) string, item domain.InvoiceItem, currency string) {
	description := tr(item.Description)
	lines := len(pdf.SplitLines([]byte(description), descriptionWidth))
	if lines < 1 {
		lines = 1
	}
	rowHeight := math.Max(itemRowHeight, float64(lines)*itemLineHeight)

	_, pageHeight := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()
	if pdf.GetY()+rowHeight > pageHeight-bottom {
		pdf.AddPage()
	}

	x, y := pdf.GetXY()
	pdf.MultiCell(descriptionWidth, rowHeight/float64(lines), description, "B", "L", false)
	pdf.SetXY(x+descriptionWidth, y)
	pdf.CellFormat(20, rowHeight, fmt.Sprintf("%g", item.Quantity), "B", 0, "R", false, 0, "")
	pdf.CellFormat(35, rowHeight, tr(utils.FormatCurrencyFloat(item.Rate, currency)), "B", 0, "R", false, 0, "")
	pdf.CellFormat(35, rowHeight, tr(utils.FormatCurrency(item.LineAmount(), currency)), "B", 1, "R", false, 0, "")
}

func partyLines(name, email, address string) []string {
	lines := []string{name, email}
	for _, l := range strings.Split(address, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

func lineAt(lines []string, i int) string {
	if i < len(lines) {
		return lines[i]
	}
	return ""
}
