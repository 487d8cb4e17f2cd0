// Package completion adapts language model APIs to domain.CompletionProvider.
package completion

import (
	"context"
	"fmt"

	"github.com/Ramsu24/D-Solar-sub001/internal/config"
	"github.com/Ramsu24/D-Solar-sub001/internal/domain"
	"github.com/Ramsu24/D-Solar-sub001/internal/observability"
)

// NewProvider builds the provider selected by cfg.Driver.
func NewProvider(cfg config.CompletionConfig, log *observability.Logger) (domain.CompletionProvider, error) {
	retry := DefaultRetryConfig(cfg.MaxRetries)

	switch cfg.Driver {
	case "openai":
		return NewOpenAIProvider(cfg.APIKey, cfg.BaseURL, cfg.Model, retry, log)
	case "ollama":
		baseURL := cfg.BaseURL
		if baseURL == config.DefaultConfig().Completion.BaseURL {
			baseURL = ""
		}
		return NewOllamaProvider(baseURL, cfg.Model, retry, log)
	case "none", "":
		return Unavailable{}, nil
	default:
		return nil, domain.ConfigError(fmt.Sprintf("unknown completion driver %q", cfg.Driver), nil)
	}
}

// Unavailable is a provider that always fails. Routing degrades to local
// answers and apologies when it is configured.
type Unavailable struct{}

// Complete implements domain.CompletionProvider.
func (Unavailable) Complete(ctx context.Context, messages []domain.ChatTurn, opts domain.CompletionOptions) (string, error) {
	return "", domain.ProviderError("no completion provider configured", nil)
}
