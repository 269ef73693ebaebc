package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiClient owns one Gemini SDK client shared by all model variants.
type GeminiClient struct {
	client  *genai.Client
	timeout time.Duration
}

// NewGeminiClient initializes a Gemini client.
// apiKey should be provided from configuration.
func NewGeminiClient(ctx context.Context, apiKey string, timeout time.Duration) (*GeminiClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("gemini: missing api key")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiClient{client: client, timeout: timeout}, nil
}

// Close cleans up the Gemini client resources.
func (c *GeminiClient) Close() {
	c.client.Close()
}

// Variant returns a Provider bound to one model name, e.g. "gemini-2.0-flash".
func (c *GeminiClient) Variant(modelName string) *GeminiProvider {
	model := c.client.GenerativeModel(modelName)

	// Itineraries are long; keep the output creative but structured.
	model.SetTemperature(0.7)
	model.ResponseMIMEType = "application/json"

	return &GeminiProvider{
		name:    "gemini/" + modelName,
		model:   model,
		timeout: c.timeout,
	}
}

// GeminiProvider implements Provider for a single Gemini model variant.
type GeminiProvider struct {
	name    string
	model   *genai.GenerativeModel
	timeout time.Duration
}

func (p *GeminiProvider) Name() string { return p.name }

// Complete sends prompt as a single text part and joins the text parts of the first candidate.
func (p *GeminiProvider) Complete(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("%s: empty prompt", p.name)
	}
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	resp, err := p.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("%s: generate content: %w", p.name, err)
	}
	text, err := responseText(resp)
	if err != nil {
		return "", fmt.Errorf("%s: %w", p.name, err)
	}
	return text, nil
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no response candidates: %w", ErrEmptyResponse)
	}

	var textParts []string
	for _, part := range resp.Candidates[0].Content.Parts {
		txt, ok := part.(genai.Text)
		if !ok || strings.TrimSpace(string(txt)) == "" {
			continue
		}
		textParts = append(textParts, string(txt))
	}
	if len(textParts) == 0 {
		return "", fmt.Errorf("no text parts: %w", ErrEmptyResponse)
	}
	return strings.Join(textParts, "\n"), nil
}
