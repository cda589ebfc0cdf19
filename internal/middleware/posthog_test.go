package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SscSPs/invoice_ai_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockEventTracker struct {
	mock.Mock
}

func (m *MockEventTracker) Track(event string, properties map[string]any) {
	m.Called(event, properties)
}

func TestPosthogMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tracker := new(MockEventTracker)
	tracker.On("Track", "api_v1_invoices_:id", mock.MatchedBy(func(props map[string]any) bool {
		params, ok := props["params"].(map[string]string)
		return ok && params["id"] == "INV-1" && props["method"] == http.MethodGet && props["status_code"] == http.StatusOK
	})).Once()

	r := gin.New()
	r.Use(middleware.PosthogMiddleware(tracker))
	r.GET("/api/v1/invoices/:id", func(c *gin.Context) {
		if c.Param("id") == "INV-404" {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusOK)
	})
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/api/v1/invoices/INV-1", "/api/v1/invoices/INV-404", "/health", "/unknown"} {
		req, _ := http.NewRequest(http.MethodGet, path, nil)
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	tracker.AssertExpectations(t)
	assert.Len(t, tracker.Calls, 1)
}
