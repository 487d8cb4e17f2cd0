package completion

import (
	"context"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/Ramsu24/D-Solar-sub001/internal/domain"
	"github.com/Ramsu24/D-Solar-sub001/internal/observability"
)

// DefaultOpenAIModel is used when no model is configured.
const DefaultOpenAIModel = "gpt-4o-mini"

// OpenAIProvider talks to any OpenAI-compatible chat completions endpoint.
type OpenAIProvider struct {
	client *openai.Client
	model  string
	retry  RetryConfig
	log    *observability.Logger
}

// NewOpenAIProvider creates a provider. baseURL may be empty for the public API.
func NewOpenAIProvider(apiKey, baseURL, model string, retry RetryConfig, log *observability.Logger) (*OpenAIProvider, error) {
	if apiKey == "" {
		return nil, domain.ConfigError("openai api key is required", nil)
	}
	if model == "" {
		model = DefaultOpenAIModel
	}
	if log == nil {
		log = observability.NopLogger()
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		retry:  retry,
		log:    log.WithOperation("openai"),
	}, nil
}

// Complete implements domain.CompletionProvider.
func (p *OpenAIProvider) Complete(ctx context.Context, messages []domain.ChatTurn, opts domain.CompletionOptions) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       p.model,
		Messages:    toOpenAIMessages(messages),
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	}
	if opts.ResponseFormat == domain.ResponseFormatJSON {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	var content string
	err := withRetry(ctx, p.retry, p.log, func() error {
		resp, err := p.client.CreateChatCompletion(ctx, req)
		if err != nil {
			return err
		}
		if len(resp.Choices) == 0 {
			return domain.MalformedOutputError("no completion choices returned", nil)
		}
		content = resp.Choices[0].Message.Content
		return nil
	})
	if err != nil {
		return "", domain.ProviderError("openai completion", err)
	}
	return content, nil
}

func toOpenAIMessages(turns []domain.ChatTurn) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(turns))
	for _, t := range turns {
		role := openai.ChatMessageRoleUser
		switch t.Role {
		case domain.RoleSystem:
			role = openai.ChatMessageRoleSystem
		case domain.RoleAssistant:
			role = openai.ChatMessageRoleAssistant
		}
		out = append(out, openai.ChatCompletionMessage{Role: role, Content: t.Content})
	}
	return out
}
