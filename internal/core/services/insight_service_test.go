package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/invoice_ai_app/internal/core/domain"
	portssvc "github.com/SscSPs/invoice_ai_app/internal/core/ports/services"
	"github.com/SscSPs/invoice_ai_app/internal/core/services"
	"github.com/SscSPs/invoice_ai_app/internal/platform/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockTextGenerator is a mock type for the TextGenerator interface
type MockTextGenerator struct {
	mock.Mock
}

func (m *MockTextGenerator) GenerateText(ctx context.Context, model string, prompt string) (string, error) {
	args := m.Called(ctx, model, prompt)
	return args.String(0), args.Error(1)
}

// promptContaining matches prompts that contain every fragment.
func promptContaining(fragments ...string) any {
	return mock.MatchedBy(func(prompt string) bool {
		for _, f := range fragments {
			if !strings.Contains(prompt, f) {
				return false
			}
		}
		return true
	})
}

// --- Test Suite Setup ---

type InsightServiceTestSuite struct {
	suite.Suite
	ctx       context.Context
	generator *MockTextGenerator
	registry  *prometheus.Registry
	service   portssvc.InsightSvcFacade
}

func (suite *InsightServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.generator = new(MockTextGenerator)
	suite.registry = prometheus.NewRegistry()
	suite.service = services.NewInsightService(
		suite.generator,
		services.WithInsightMetrics(metrics.New(suite.registry)),
	)
}

func (suite *InsightServiceTestSuite) TearDownTest() {
	suite.generator.AssertExpectations(suite.T())
}

func (suite *InsightServiceTestSuite) TestItemDescription_TrimsResponse() {
	suite.generator.On("GenerateText", mock.Anything, services.DefaultFastModel,
		promptContaining(`invoice item named: "Logo design".`)).
		Return("  Custom vector logo in three variations.\n", nil).Once()

	result := suite.service.GenerateItemDescription(suite.ctx, "Logo design")

	assert.Equal(suite.T(), "Custom vector logo in three variations.", result.Text)
	assert.False(suite.T(), result.Fallback)
	assert.Equal(suite.T(), float64(1), counterValue(suite.T(), suite.registry, "invoice_insight_requests_total", "generated"))
}

func (suite *InsightServiceTestSuite) TestItemDescription_Fallback() {
	suite.generator.On("GenerateText", mock.Anything, services.DefaultFastModel, mock.Anything).
		Return("", errors.New("503 unavailable")).Once()

	result := suite.service.GenerateItemDescription(suite.ctx, "Logo design")

	assert.Equal(suite.T(), services.ItemDescriptionFallback, result.Text)
	assert.True(suite.T(), result.Fallback)
	assert.Equal(suite.T(), float64(1), counterValue(suite.T(), suite.registry, "invoice_insight_requests_total", "fallback"))
}

func (suite *InsightServiceTestSuite) TestItemDescription_BlankResponseFallsBack() {
	suite.generator.On("GenerateText", mock.Anything, mock.Anything, mock.Anything).Return("   ", nil).Once()

	result := suite.service.GenerateItemDescription(suite.ctx, "Hosting")

	assert.Equal(suite.T(), services.ItemDescriptionFallback, result.Text)
	assert.True(suite.T(), result.Fallback)
}

func (suite *InsightServiceTestSuite) TestEmailBody_PromptCarriesInvoiceFields() {
	inv := sampleInvoice("INV-1", domain.StatusSent)
	suite.generator.On("GenerateText", mock.Anything, services.DefaultFastModel,
		promptContaining("My Name: Jo", "Client Name: Acme", "Invoice Number: #1001", "Due Date: 2024-01-31", "Total Amount: $143.00", `Start with "Hi Acme,"`)).
		Return("Hi Acme,\n\nPlease find attached...", nil).Once()

	result := suite.service.GenerateEmailBody(suite.ctx, inv)

	assert.Equal(suite.T(), "Hi Acme,\n\nPlease find attached...", result.Text)
	assert.False(suite.T(), result.Fallback)
}

func (suite *InsightServiceTestSuite) TestEmailBody_FallbackTemplate() {
	inv := sampleInvoice("INV-1", domain.StatusSent)
	suite.generator.On("GenerateText", mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("network unreachable")).Once()

	result := suite.service.GenerateEmailBody(suite.ctx, inv)

	expected := "Subject: Invoice #1001 from Jo\n\nHi Acme,\n\nPlease find attached invoice ##1001 for $143.00, due on 2024-01-31.\n\nThank you for your business.\n\nBest regards,\nJo"
	assert.Equal(suite.T(), expected, result.Text)
	assert.True(suite.T(), result.Fallback)
}

func (suite *InsightServiceTestSuite) TestDashboard_EmptyCollectionSkipsCollaborator() {
	result := suite.service.GenerateDashboardInsights(suite.ctx, nil)

	assert.Equal(suite.T(), services.DashboardEmptyMessage, result.Text)
	assert.False(suite.T(), result.Fallback)
	suite.generator.AssertNotCalled(suite.T(), "GenerateText", mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(suite.T(), float64(1), counterValue(suite.T(), suite.registry, "invoice_insight_requests_total", "skipped"))
}

func (suite *InsightServiceTestSuite) TestDashboard_PromptUsesDominantCurrencySummary() {
	eur := sampleInvoice("INV-9", domain.StatusPaid)
	eur.Currency = "EUR"
	invoices := []domain.Invoice{
		sampleInvoice("INV-1", domain.StatusPaid),
		sampleInvoice("INV-2", domain.StatusSent),
		sampleInvoice("INV-3", domain.StatusOverdue),
		sampleInvoice("INV-4", domain.StatusDraft),
		eur,
	}
	suite.generator.On("GenerateText", mock.Anything, services.DefaultInsightModel,
		promptContaining(
			"Data for USD invoices:",
			"- Total Invoices (USD): 4",
			`- Invoices by Status: {"Draft":1,"Overdue":1,"Paid":1,"Sent":1}`,
			"- Total Paid Amount: $143.00",
			"- Total Unpaid (Sent or Overdue) Amount: $286.00",
		)).
		Return("* You have 1 overdue invoice.", nil).Once()

	result := suite.service.GenerateDashboardInsights(suite.ctx, invoices)

	assert.Equal(suite.T(), "* You have 1 overdue invoice.", result.Text)
	assert.False(suite.T(), result.Fallback)
}

func (suite *InsightServiceTestSuite) TestDashboard_Fallback() {
	suite.generator.On("GenerateText", mock.Anything, services.DefaultInsightModel, mock.Anything).
		Return("", context.DeadlineExceeded).Once()

	result := suite.service.GenerateDashboardInsights(suite.ctx, []domain.Invoice{sampleInvoice("INV-1", domain.StatusPaid)})

	assert.Equal(suite.T(), services.DashboardFallback, result.Text)
	assert.True(suite.T(), result.Fallback)
}

func TestInsightServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InsightServiceTestSuite))
}

func TestInsightService_CustomModelsAndTimeout(t *testing.T) {
	generator := new(MockTextGenerator)
	generator.On("GenerateText", mock.MatchedBy(func(ctx context.Context) bool {
		_, hasDeadline := ctx.Deadline()
		return hasDeadline
	}), "fast-model", mock.Anything).Return("ok", nil).Once()
	generator.On("GenerateText", mock.Anything, "deep-model", mock.Anything).Return("insight", nil).Once()

	svc := services.NewInsightService(generator,
		services.WithFastModel("fast-model"),
		services.WithInsightModel("deep-model"),
		services.WithInsightTimeout(time.Minute),
	)

	assert.Equal(t, "ok", svc.GenerateItemDescription(context.Background(), "x").Text)
	assert.Equal(t, "insight", svc.GenerateDashboardInsights(context.Background(), []domain.Invoice{sampleInvoice("INV-1", domain.StatusDraft)}).Text)
	generator.AssertExpectations(t)
}

func TestInsightService_MissingGeneratorIsConfigurationFallback(t *testing.T) {
	svc := services.NewInsightService(nil)

	result := svc.GenerateItemDescription(context.Background(), "Consulting")

	assert.True(t, result.Fallback)
	assert.Equal(t, services.ItemDescriptionFallback, result.Text)
}
