package completion

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	ollama "github.com/ollama/ollama/api"

	"github.com/Ramsu24/D-Solar-sub001/internal/domain"
	"github.com/Ramsu24/D-Solar-sub001/internal/observability"
)

// OllamaProvider runs completions against a local Ollama server.
type OllamaProvider struct {
	client *ollama.Client
	model  string
	retry  RetryConfig
	log    *observability.Logger
}

// NewOllamaProvider creates a provider. An empty baseURL falls back to OLLAMA_HOST.
func NewOllamaProvider(baseURL, model string, retry RetryConfig, log *observability.Logger) (*OllamaProvider, error) {
	if model == "" {
		return nil, domain.ConfigError("ollama model is required", nil)
	}
	if log == nil {
		log = observability.NopLogger()
	}

	var client *ollama.Client
	if baseURL != "" {
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, domain.ConfigError("invalid ollama base url", err)
		}
		client = ollama.NewClient(u, http.DefaultClient)
	} else {
		c, err := ollama.ClientFromEnvironment()
		if err != nil {
			return nil, domain.ConfigError("could not create ollama client", err)
		}
		client = c
	}

	return &OllamaProvider{
		client: client,
		model:  model,
		retry:  retry,
		log:    log.WithOperation("ollama"),
	}, nil
}

// Complete implements domain.CompletionProvider.
func (p *OllamaProvider) Complete(ctx context.Context, messages []domain.ChatTurn, opts domain.CompletionOptions) (string, error) {
	msgs := make([]ollama.Message, len(messages))
	for i, m := range messages {
		msgs[i] = ollama.Message{Role: string(m.Role), Content: m.Content}
	}

	stream := false
	req := &ollama.ChatRequest{
		Model:    p.model,
		Messages: msgs,
		Stream:   &stream,
		Options: map[string]interface{}{
			"temperature": opts.Temperature,
		},
	}
	if opts.MaxTokens > 0 {
		req.Options["num_predict"] = opts.MaxTokens
	}
	if opts.ResponseFormat == domain.ResponseFormatJSON {
		req.Format = json.RawMessage(`"json"`)
	}

	var content string
	err := withRetry(ctx, p.retry, p.log, func() error {
		var sb strings.Builder
		err := p.client.Chat(ctx, req, func(res ollama.ChatResponse) error {
			sb.WriteString(res.Message.Content)
			return nil
		})
		if err != nil {
			return err
		}
		content = sb.String()
		return nil
	})
	if err != nil {
		return "", domain.ProviderError("ollama completion", err)
	}
	return content, nil
}
