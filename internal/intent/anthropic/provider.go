package anthropic

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// DefaultModel модель по умолчанию
const DefaultModel = "claude-3-5-haiku-latest"

// maxTokens ответ - один небольшой JSON объект
const maxTokens = 512

// Provider extracts intents with the Anthropic Messages API.
type Provider struct {
	client anthropic.Client
	model  string
}

// New creates an Anthropic provider. baseURL overrides the API endpoint when non-empty.
func New(apiKey, model, baseURL string) (*Provider, error) {
	if apiKey == "" {
		return nil, errors.New("anthropic api key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey), option.WithMaxRetries(0)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &Provider{
		client: anthropic.NewClient(opts...),
		model:  model,
	}, nil
}

// ResolveIntent sends the schema description as the system prompt and returns the text blocks of the reply.
func (p *Provider) ResolveIntent(ctx context.Context, question, schemaDescription string) (string, error) {
	msg, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(p.model),
		MaxTokens:   maxTokens,
		Temperature: anthropic.Float(0),
		System:      []anthropic.TextBlockParam{{Text: schemaDescription}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(question)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic messages: %w", err)
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	return b.String(), nil
}
