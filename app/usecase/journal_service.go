package usecase

import (
	"context"
	"errors"
	"fmt"

	"learnassist/internal/domain/entity"
	"learnassist/internal/domain/repository"
)

const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)

var ErrRecordNotFound = errors.New("generation record not found")

// History is the read side of the generation journal.
type History struct {
	Records []*entity.GenerationRecord `json:"records"`
	Counts  map[entity.Endpoint]int    `json:"counts"`
}

type JournalUsecase interface {
	History(ctx context.Context, limit int) (History, error)
	GetRecord(ctx context.Context, id string) (*entity.GenerationRecord, error)
}

var _ JournalUsecase = (*JournalService)(nil)

type JournalService struct {
	repo repository.RecordRepository // nil when the journal is disabled
}

func NewJournalService(repo repository.RecordRepository) *JournalService {
	return &JournalService{repo: repo}
}

func (s *JournalService) History(ctx context.Context, limit int) (History, error) {
	h := History{
		Records: []*entity.GenerationRecord{},
		Counts:  make(map[entity.Endpoint]int, len(entity.Endpoints)),
	}
	if s.repo == nil {
		return h, nil
	}

	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}

	recs, err := s.repo.ListRecent(ctx, limit)
	if err != nil {
		return History{}, fmt.Errorf("list records: %w", err)
	}
	if recs != nil {
		h.Records = recs
	}

	for _, ep := range entity.Endpoints {
		n, err := s.repo.CountByEndpoint(ctx, ep)
		if err != nil {
			return History{}, fmt.Errorf("count %s records: %w", ep, err)
		}
		h.Counts[ep] = n
	}

	return h, nil
}

func (s *JournalService) GetRecord(ctx context.Context, id string) (*entity.GenerationRecord, error) {
	if id == "" {
		return nil, fmt.Errorf("record id is required")
	}
	if s.repo == nil {
		return nil, ErrRecordNotFound
	}

	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get record %s: %w", id, err)
	}
	if rec == nil {
		return nil, ErrRecordNotFound
	}
	return rec, nil
}
