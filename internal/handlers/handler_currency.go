package handlers

import (
	"net/http"

	"github.com/SscSPs/invoice_ai_app/internal/core/domain"
	"github.com/SscSPs/invoice_ai_app/internal/dto"
	"github.com/SscSPs/invoice_ai_app/internal/utils/mapping"
	"github.com/gin-gonic/gin"
)

// registerCurrencyRoutes registers routes related to currencies.
func registerCurrencyRoutes(rg *gin.RouterGroup) {
	rg.GET("/currencies", listCurrencies)
}

// listCurrencies godoc
// @Summary List currencies
// @Description Returns the fixed list of supported currencies in display order
// @Tags currencies
// @Produce  json
// @Success 200 {array} dto.CurrencyResponse
// @Router /currencies [get]
func listCurrencies(c *gin.Context) {
	currencyResponses := make([]dto.CurrencyResponse, len(domain.Currencies))
	for i, curr := range domain.Currencies {
		currencyResponses[i] = mapping.ToCurrencyResponse(curr)
	}
	c.JSON(http.StatusOK, currencyResponses)
}
