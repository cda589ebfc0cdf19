package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/invoice_ai_app/internal/core/domain"
	portssvc "github.com/SscSPs/invoice_ai_app/internal/core/ports/services"
	"github.com/SscSPs/invoice_ai_app/internal/dto"
	"github.com/SscSPs/invoice_ai_app/internal/middleware"
	"github.com/SscSPs/invoice_ai_app/internal/utils/mapping"
	"github.com/gin-gonic/gin"
)

// insightHandler serves the dashboard and the AI text endpoints.
type insightHandler struct {
	invoiceService portssvc.InvoiceReaderSvc
	insightService portssvc.InsightSvcFacade
}

func newInsightHandler(is portssvc.InvoiceReaderSvc, ins portssvc.InsightSvcFacade) *insightHandler {
	return &insightHandler{
		invoiceService: is,
		insightService: ins,
	}
}

// registerInsightRoutes registers the dashboard and insight routes.
// insightMiddleware guards only the endpoints that call the text generator.
func registerInsightRoutes(rg *gin.RouterGroup, is portssvc.InvoiceReaderSvc, ins portssvc.InsightSvcFacade, insightMiddleware ...gin.HandlerFunc) {
	h := newInsightHandler(is, ins)

	dashboard := rg.Group("/dashboard")
	{
		dashboard.GET("/status-counts", h.getStatusCounts)
		dashboard.POST("/insights", withMiddleware(insightMiddleware, h.generateDashboardInsights)...)
	}

	insights := rg.Group("/insights")
	{
		insights.POST("/item-description", withMiddleware(insightMiddleware, h.generateItemDescription)...)
	}
}

// getStatusCounts godoc
// @Summary Invoice status breakdown
// @Description Counts invoices per status for the dashboard chart. Statuses with no invoices are omitted.
// @Tags dashboard
// @Produce  json
// @Success 200 {array} dto.StatusCountResponse
// @Router /dashboard/status-counts [get]
func (h *insightHandler) getStatusCounts(c *gin.Context) {
	invoices := h.invoiceService.ListInvoices(c.Request.Context())
	c.JSON(http.StatusOK, mapping.ToStatusCountResponses(domain.StatusBreakdown(invoices)))
}

// generateDashboardInsights godoc
// @Summary AI dashboard insights
// @Description Produces a short bullet analysis of the stored invoices. Falls back to fixed text when the generator fails.
// @Tags dashboard
// @Produce  json
// @Success 200 {object} dto.InsightResponse
// @Failure 429 {object} map[string]string "Too many requests"
// @Router /dashboard/insights [post]
func (h *insightHandler) generateDashboardInsights(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	invoices := h.invoiceService.ListInvoices(c.Request.Context())

	result := h.insightService.GenerateDashboardInsights(c.Request.Context(), invoices)

	logger.Info("Dashboard insights served", slog.Int("invoice_count", len(invoices)), slog.Bool("fallback", result.Fallback))
	c.JSON(http.StatusOK, mapping.ToInsightResponse(result))
}

// generateItemDescription godoc
// @Summary AI item description
// @Description Writes a one-line description for an invoice item name
// @Tags insights
// @Accept  json
// @Produce  json
// @Param   request body dto.ItemDescriptionRequest true "Item name"
// @Success 200 {object} dto.InsightResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 429 {object} map[string]string "Too many requests"
// @Router /insights/item-description [post]
func (h *insightHandler) generateItemDescription(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.ItemDescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for GenerateItemDescription", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	result := h.insightService.GenerateItemDescription(c.Request.Context(), req.ItemName)
	c.JSON(http.StatusOK, mapping.ToInsightResponse(result))
}
