package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"learnassist/internal/domain/entity"
	"learnassist/internal/domain/repository"
	"learnassist/internal/infrastructure/metrics"
)

const (
	ProviderGemini     = "gemini"
	DefaultGeminiModel = "gemini-1.5-flash"
)

// GeminiGateway calls Google Gemini through the generative-ai-go SDK.
type GeminiGateway struct {
	client *genai.Client
	model  string
	call   func(ctx context.Context, c entity.Completion) (*genai.GenerateContentResponse, error)
}

var _ repository.CompletionGateway = (*GeminiGateway)(nil)

func NewGeminiGateway(ctx context.Context, apiKey, model string) (*GeminiGateway, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is empty")
	}
	if model == "" {
		model = DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	g := &GeminiGateway{client: client, model: model}
	g.call = g.generateContent
	return g, nil
}

func (g *GeminiGateway) Model() string { return g.model }

func (g *GeminiGateway) Close() error {
	return g.client.Close()
}

func (g *GeminiGateway) Generate(ctx context.Context, c entity.Completion) (string, error) {
	metrics.IncLLMRequest(ProviderGemini, g.model)
	start := time.Now()
	defer func() { metrics.ObserveLLMDuration(ProviderGemini, time.Since(start)) }()

	resp, err := g.call(ctx, c)
	if err != nil {
		metrics.IncError("llm", "gemini_generate")
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	// a reply without text parts passes through as "", same as the openai gateway
	return candidateText(resp), nil
}

func (g *GeminiGateway) generateContent(ctx context.Context, c entity.Completion) (*genai.GenerateContentResponse, error) {
	model := g.client.GenerativeModel(g.model)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(c.System)},
	}
	model.SetMaxOutputTokens(int32(c.MaxTokens))

	return model.GenerateContent(ctx, genai.Text(c.User))
}

func candidateText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	cand := resp.Candidates[0]
	if cand.Content == nil {
		return ""
	}

	var b strings.Builder
	for _, part := range cand.Content.Parts {
		if t, ok := part.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	return b.String()
}
