package gemini

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// DefaultModel модель по умолчанию
const DefaultModel = "gemini-2.5-flash"

// Provider extracts intents with the Gemini API.
type Provider struct {
	client *genai.Client
	model  string
}

// New creates a Gemini provider. baseURL overrides the API endpoint when non-empty.
func New(ctx context.Context, apiKey, model, baseURL string) (*Provider, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &Provider{client: client, model: model}, nil
}

// ResolveIntent sends the schema description as the system instruction and asks for JSON.
func (p *Provider) ResolveIntent(ctx context.Context, question, schemaDescription string) (string, error) {
	resp, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(question), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(schemaDescription, genai.RoleUser),
		ResponseMIMEType:  "application/json",
		Temperature:       genai.Ptr[float32](0),
		CandidateCount:    1,
	})
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	return resp.Text(), nil
}
