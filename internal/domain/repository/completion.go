package repository

import (
	"context"

	"learnassist/internal/domain/entity"
)

// CompletionGateway sends one prompt to the hosted text-generation provider.
type CompletionGateway interface {
	// Generate performs a single request with no retry and no streaming.
	Generate(ctx context.Context, c entity.Completion) (string, error)
	// Model reports the model identifier every call uses.
	Model() string
}
