package gemini_test

import (
	"context"
	"testing"

	"github.com/SscSPs/invoice_ai_app/internal/adapters/llm/gemini"
	"github.com/SscSPs/invoice_ai_app/internal/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestGenerateText_MissingKeyIsConfigurationError(t *testing.T) {
	client := gemini.NewClient("")

	text, err := client.GenerateText(context.Background(), "gemini-2.5-flash", "hello")

	assert.Empty(t, text)
	assert.ErrorIs(t, err, apperrors.ErrConfiguration)
}
