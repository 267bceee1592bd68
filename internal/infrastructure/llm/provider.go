package llm

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"learnassist/internal/domain/repository"
)

type Options struct {
	Provider string
	APIKey   string
	BaseURL  string
	Model    string
	Timeout  time.Duration
}

// New returns the gateway for opts.Provider. An empty provider means openai.
func New(ctx context.Context, opts Options, logger *slog.Logger) (repository.CompletionGateway, error) {
	switch opts.Provider {
	case "", ProviderOpenAI:
		return NewOpenAIGateway(opts.APIKey, opts.BaseURL, opts.Model, opts.Timeout, logger), nil
	case ProviderGemini:
		return NewGeminiGateway(ctx, opts.APIKey, opts.Model)
	case ProviderMock:
		return NewMock(), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", opts.Provider)
	}
}
