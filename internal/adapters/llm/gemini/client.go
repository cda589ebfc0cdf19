package gemini

import (
	"context"
	"fmt"
	"sync"

	"github.com/SscSPs/invoice_ai_app/internal/apperrors"
	"github.com/SscSPs/invoice_ai_app/internal/core/ports"
	"google.golang.org/genai"
)

// Client generates text with the Gemini API. The underlying SDK client is
// created on first use so a missing API key only matters once a feature
// actually needs the model.
type Client struct {
	apiKey string

	mu  sync.Mutex
	sdk *genai.Client
}

// NewClient returns a lazily connected Gemini client.
func NewClient(apiKey string) *Client {
	return &Client{apiKey: apiKey}
}

var _ ports.TextGenerator = (*Client)(nil)

func (c *Client) client(ctx context.Context) (*genai.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sdk != nil {
		return c.sdk, nil
	}
	if c.apiKey == "" {
		return nil, fmt.Errorf("gemini API key is not set: %w", apperrors.ErrConfiguration)
	}

	sdk, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  c.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %v: %w", err, apperrors.ErrConfiguration)
	}
	c.sdk = sdk
	return sdk, nil
}

// GenerateText sends a single-turn prompt and returns the concatenated text parts.
func (c *Client) GenerateText(ctx context.Context, model string, prompt string) (string, error) {
	sdk, err := c.client(ctx)
	if err != nil {
		return "", err
	}

	resp, err := sdk.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini %s: %v: %w", model, err, apperrors.ErrCollaborator)
	}
	return resp.Text(), nil
}
