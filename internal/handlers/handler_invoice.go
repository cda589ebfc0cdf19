package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/invoice_ai_app/internal/apperrors"
	"github.com/SscSPs/invoice_ai_app/internal/core/domain"
	portssvc "github.com/SscSPs/invoice_ai_app/internal/core/ports/services"
	"github.com/SscSPs/invoice_ai_app/internal/dto"
	"github.com/SscSPs/invoice_ai_app/internal/middleware"
	"github.com/SscSPs/invoice_ai_app/internal/utils/mapping"
	"github.com/gin-gonic/gin"
)

// invoiceHandler handles HTTP requests related to invoices.
type invoiceHandler struct {
	invoiceService  portssvc.InvoiceSvcFacade
	documentService portssvc.DocumentSvcFacade
	now             func() time.Time
}

// newInvoiceHandler creates a new invoiceHandler.
func newInvoiceHandler(is portssvc.InvoiceSvcFacade, ds portssvc.DocumentSvcFacade) *invoiceHandler {
	return &invoiceHandler{
		invoiceService:  is,
		documentService: ds,
		now:             time.Now,
	}
}

// registerInvoiceRoutes registers routes related to invoices. insightMiddleware
// guards the endpoints that call the text generator.
func registerInvoiceRoutes(rg *gin.RouterGroup, is portssvc.InvoiceSvcFacade, ds portssvc.DocumentSvcFacade, insightMiddleware ...gin.HandlerFunc) {
	h := newInvoiceHandler(is, ds)

	rg.GET("/invoice-template", h.getInvoiceTemplate)

	invoices := rg.Group("/invoices")
	{
		invoices.GET("", h.listInvoices)
		invoices.POST("", h.createInvoice)
		invoices.GET("/:id", h.getInvoice)
		invoices.PUT("/:id", h.saveInvoice)
		invoices.DELETE("/:id", h.deleteInvoice)
		invoices.PATCH("/:id/status", h.updateInvoiceStatus)
		invoices.GET("/:id/pdf", h.downloadInvoicePDF)
		invoices.POST("/:id/email-draft", withMiddleware(insightMiddleware, h.composeEmailDraft)...)
	}
}

// listInvoices godoc
// @Summary List invoices
// @Description Returns every invoice in insertion order with computed totals
// @Tags invoices
// @Produce  json
// @Success 200 {array} dto.InvoiceResponse
// @Router /invoices [get]
func (h *invoiceHandler) listInvoices(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	invoices := h.invoiceService.ListInvoices(c.Request.Context())

	logger.Info("Invoices listed successfully", slog.Int("count", len(invoices)))
	c.JSON(http.StatusOK, mapping.ToInvoiceResponseSlice(invoices))
}

// getInvoice godoc
// @Summary Get an invoice
// @Description Retrieves a single invoice by its id
// @Tags invoices
// @Produce  json
// @Param   id path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 404 {object} map[string]string "Invoice not found"
// @Router /invoices/{id} [get]
func (h *invoiceHandler) getInvoice(c *gin.Context) {
	inv, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, mapping.ToInvoiceResponse(*inv))
}

// createInvoice godoc
// @Summary Create an invoice
// @Description Appends an invoice to the collection. A blank id is generated.
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   invoice body dto.InvoiceRequest true "Invoice"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Router /invoices [post]
func (h *invoiceHandler) createInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateInvoice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	inv := mapping.ToDomainInvoice(req)
	h.invoiceService.AddInvoice(c.Request.Context(), inv)

	logger.Info("Invoice created", slog.String("invoice_id", inv.ID))
	c.JSON(http.StatusCreated, mapping.ToInvoiceResponse(inv))
}

// saveInvoice godoc
// @Summary Save an invoice
// @Description Replaces the invoice with this id, or appends it when no such invoice exists
// @Tags invoices
// @Accept  json
// @Produce  json
// @Param   id path string true "Invoice ID"
// @Param   invoice body dto.InvoiceRequest true "Invoice"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Router /invoices/{id} [put]
func (h *invoiceHandler) saveInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	id := c.Param("id")
	var req dto.InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SaveInvoice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	// The path id is authoritative
	req.ID = id
	inv := mapping.ToDomainInvoice(req)
	h.invoiceService.SaveInvoice(c.Request.Context(), inv)

	logger.Info("Invoice saved", slog.String("invoice_id", id))
	c.JSON(http.StatusOK, mapping.ToInvoiceResponse(inv))
}

// updateInvoiceStatus godoc
// @Summary Change invoice status
// @Description Sets the status of an invoice. Unknown ids are ignored.
// @Tags invoices
// @Accept  json
// @Param   id path string true "Invoice ID"
// @Param   status body dto.UpdateInvoiceStatusRequest true "New status"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid status"
// @Router /invoices/{id}/status [patch]
func (h *invoiceHandler) updateInvoiceStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	id := c.Param("id")
	var req dto.UpdateInvoiceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateInvoiceStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	h.invoiceService.UpdateInvoiceStatus(c.Request.Context(), id, req.Status)

	logger.Info("Invoice status updated", slog.String("invoice_id", id), slog.String("status", string(req.Status)))
	c.Status(http.StatusNoContent)
}

// deleteInvoice godoc
// @Summary Delete an invoice
// @Description Removes an invoice. Deleting an unknown id succeeds.
// @Tags invoices
// @Param   id path string true "Invoice ID"
// @Success 204 "No Content"
// @Router /invoices/{id} [delete]
func (h *invoiceHandler) deleteInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	id := c.Param("id")

	h.invoiceService.DeleteInvoice(c.Request.Context(), id)

	logger.Info("Invoice deleted", slog.String("invoice_id", id))
	c.Status(http.StatusNoContent)
}

// downloadInvoicePDF godoc
// @Summary Download invoice PDF
// @Description Renders the invoice preview as a PDF attachment named invoice-<number>.pdf
// @Tags invoices
// @Produce  application/pdf
// @Param   id path string true "Invoice ID"
// @Success 200 {file} file
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 500 {object} map[string]string "Failed to render PDF"
// @Failure 503 {object} map[string]string "PDF rendering is not available"
// @Router /invoices/{id}/pdf [get]
func (h *invoiceHandler) downloadInvoicePDF(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	inv, ok := h.lookup(c)
	if !ok {
		return
	}

	name, content, err := h.documentService.RenderPDF(c.Request.Context(), *inv)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			logger.Error("PDF rendering is not available", slog.String("error", err.Error()))
			c.JSON(appErr.Code, gin.H{"error": appErr.Message})
			return
		}
		logger.Error("Failed to render invoice PDF", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render PDF"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, "application/pdf", content)
}

// composeEmailDraft godoc
// @Summary Compose invoice email
// @Description Generates an email body for the invoice and returns a mailto draft. Nothing is sent.
// @Tags invoices
// @Produce  json
// @Param   id path string true "Invoice ID"
// @Success 200 {object} dto.EmailDraftResponse
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 429 {object} map[string]string "Too many requests"
// @Router /invoices/{id}/email-draft [post]
func (h *invoiceHandler) composeEmailDraft(c *gin.Context) {
	inv, ok := h.lookup(c)
	if !ok {
		return
	}

	draft, fallback := h.documentService.ComposeEmailDraft(c.Request.Context(), *inv)
	c.JSON(http.StatusOK, mapping.ToEmailDraftResponse(draft, fallback))
}

// getInvoiceTemplate godoc
// @Summary New invoice template
// @Description Returns a blank Draft invoice dated today with one empty item. It is not stored.
// @Tags invoices
// @Produce  json
// @Success 200 {object} dto.InvoiceResponse
// @Router /invoice-template [get]
func (h *invoiceHandler) getInvoiceTemplate(c *gin.Context) {
	c.JSON(http.StatusOK, mapping.ToInvoiceResponse(domain.NewInvoice(h.now())))
}

// lookup loads the invoice named by the :id parameter and writes a 404 when absent.
func (h *invoiceHandler) lookup(c *gin.Context) (*domain.Invoice, bool) {
	logger := middleware.GetLoggerFromContext(c)
	id := c.Param("id")

	inv, err := h.invoiceService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Invoice not found", slog.String("invoice_id", id))
			c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		} else {
			logger.Error("Failed to get invoice from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve invoice"})
		}
		return nil, false
	}
	return inv, true
}
