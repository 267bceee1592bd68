package llm

import (
	"context"
	"fmt"
	"strings"

	"learnassist/internal/domain/entity"
	"learnassist/internal/domain/repository"
	"learnassist/internal/infrastructure/metrics"
)

const (
	ProviderMock = "mock"
	mockModel    = "mock-echo"
)

// MockGateway answers offline. Replies are deterministic so the pages and the
// recommendation shaper can be exercised without a provider key.
type MockGateway struct{}

var _ repository.CompletionGateway = (*MockGateway)(nil)

func NewMock() *MockGateway { return &MockGateway{} }

func (m *MockGateway) Model() string { return mockModel }

func (m *MockGateway) Generate(ctx context.Context, c entity.Completion) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	metrics.IncLLMRequest(ProviderMock, mockModel)

	// the recommendations template asks for JSON, so give it JSON
	if strings.Contains(c.User, "Format as JSON") {
		return `{"youtube":["(mock) channel"],"ebooks":["(mock) ebook"],"resources":["(mock) resource"],"strategies":["(mock) strategy"]}`, nil
	}

	first, _, _ := strings.Cut(c.User, "\n")
	return fmt.Sprintf("[mock reply, %d token ceiling] %s", c.MaxTokens, first), nil
}
