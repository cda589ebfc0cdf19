package handlers_test

import (
	"encoding/json"
	"net/http"

	"github.com/SscSPs/invoice_ai_app/internal/core/domain"
	"github.com/SscSPs/invoice_ai_app/internal/core/services"
	"github.com/SscSPs/invoice_ai_app/internal/dto"
	"github.com/stretchr/testify/mock"
)

func (suite *HandlerTestSuite) TestStatusCounts() {
	suite.createSample("INV-1", domain.StatusPaid)
	suite.createSample("INV-2", domain.StatusOverdue)
	suite.createSample("INV-3", domain.StatusPaid)

	w := suite.do(http.MethodGet, "/api/v1/dashboard/status-counts", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`[
		{"status":"Paid","count":2,"color":"#22c55e"},
		{"status":"Overdue","count":1,"color":"#ef4444"}
	]`, w.Body.String())
}

func (suite *HandlerTestSuite) TestDashboardInsights_EmptyStoreSkipsGenerator() {
	w := suite.do(http.MethodPost, "/api/v1/dashboard/insights", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.InsightResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(services.DashboardEmptyMessage, resp.Text)
	suite.False(resp.Fallback)
	suite.generator.AssertNotCalled(suite.T(), "GenerateText", mock.Anything, mock.Anything, mock.Anything)
	suite.Equal(1, suite.gateHits)
}

func (suite *HandlerTestSuite) TestDashboardInsights_Generated() {
	suite.createSample("INV-1", domain.StatusOverdue)
	suite.generator.On("GenerateText", mock.Anything, services.DefaultInsightModel, mock.Anything).
		Return("* Follow up on 1 overdue invoice.", nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/dashboard/insights", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"text":"* Follow up on 1 overdue invoice.","fallback":false}`, w.Body.String())
}

func (suite *HandlerTestSuite) TestItemDescription() {
	suite.generator.On("GenerateText", mock.Anything, services.DefaultFastModel, mock.Anything).
		Return(" Brand identity design. ", nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/insights/item-description", dto.ItemDescriptionRequest{ItemName: "Logo"})

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"text":"Brand identity design.","fallback":false}`, w.Body.String())
}

func (suite *HandlerTestSuite) TestItemDescription_RequiresName() {
	w := suite.do(http.MethodPost, "/api/v1/insights/item-description", map[string]string{})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestStatusCountsBypassInsightGate() {
	suite.do(http.MethodGet, "/api/v1/dashboard/status-counts", nil)
	suite.do(http.MethodGet, "/api/v1/invoices", nil)
	suite.Equal(0, suite.gateHits)
}

func (suite *HandlerTestSuite) TestListCurrencies() {
	w := suite.do(http.MethodGet, "/api/v1/currencies", nil)
	suite.Equal(http.StatusOK, w.Code)

	var resp []dto.CurrencyResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp, len(domain.Currencies))
	suite.Equal("USD", resp[0].CurrencyCode)
}

func (suite *HandlerTestSuite) TestHealth() {
	w := suite.do(http.MethodGet, "/health", nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())
}
