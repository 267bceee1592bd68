package repository

import (
	"context"

	"learnassist/internal/domain/entity"
)

// RecordRepository stores generation journal entries.
type RecordRepository interface {
	Create(ctx context.Context, rec *entity.GenerationRecord) error
	// GetByID returns nil, nil when no record has the id.
	GetByID(ctx context.Context, id string) (*entity.GenerationRecord, error)
	// ListRecent returns at most limit records, newest first.
	ListRecent(ctx context.Context, limit int) ([]*entity.GenerationRecord, error)
	CountByEndpoint(ctx context.Context, endpoint entity.Endpoint) (int, error)
}
