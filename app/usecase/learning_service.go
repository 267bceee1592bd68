package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"learnassist/internal/domain/entity"
	"learnassist/internal/domain/repository"
	"learnassist/internal/infrastructure/metrics"
	"learnassist/internal/prompt"
)

// Output ceilings per endpoint. Callers cannot change them.
const (
	AnalysisMaxTokens        = 2000
	GenerationMaxTokens      = 2000
	RecommendationsMaxTokens = 1500
	ScheduleMaxTokens        = 1500
)

const journalWriteTimeout = 5 * time.Second

// RequestValidator rejects requests before they reach the provider. A nil
// validator keeps the lenient behavior: blanks are interpolated as-is.
type RequestValidator interface {
	Validate(req entity.Request) error
}

type LearningUsecase interface {
	AnalyzeContent(ctx context.Context, req entity.AnalyzeContentRequest) (entity.AnalysisResult, error)
	GenerateContent(ctx context.Context, req entity.GenerateContentRequest) (entity.ContentResult, error)
	Recommend(ctx context.Context, req entity.RecommendationRequest) (entity.RecommendationsResult, error)
	Schedule(ctx context.Context, req entity.ScheduleRequest) (entity.ScheduleResult, error)
}

var _ LearningUsecase = (*LearningService)(nil)

type LearningService struct {
	llm       repository.CompletionGateway
	journal   repository.RecordRepository // optional
	validator RequestValidator            // optional
	logger    *slog.Logger
}

func NewLearningService(
	llm repository.CompletionGateway,
	journal repository.RecordRepository,
	validator RequestValidator,
	logger *slog.Logger,
) *LearningService {
	if logger == nil {
		logger = slog.Default()
	}
	return &LearningService{
		llm:       llm,
		journal:   journal,
		validator: validator,
		logger:    logger,
	}
}

func (s *LearningService) AnalyzeContent(ctx context.Context, req entity.AnalyzeContentRequest) (entity.AnalysisResult, error) {
	text, done, err := s.complete(ctx, req, AnalysisMaxTokens)
	if err != nil {
		return entity.AnalysisResult{}, err
	}
	done("text")
	return entity.AnalysisResult{Analysis: text}, nil
}

func (s *LearningService) GenerateContent(ctx context.Context, req entity.GenerateContentRequest) (entity.ContentResult, error) {
	text, done, err := s.complete(ctx, req, GenerationMaxTokens)
	if err != nil {
		return entity.ContentResult{}, err
	}
	done("text")
	return entity.ContentResult{Content: text}, nil
}

func (s *LearningService) Recommend(ctx context.Context, req entity.RecommendationRequest) (entity.RecommendationsResult, error) {
	text, done, err := s.complete(ctx, req, RecommendationsMaxTokens)
	if err != nil {
		return entity.RecommendationsResult{}, err
	}

	rec := entity.ShapeRecommendations(text)
	metrics.IncRecommendationShape(string(rec.Shape()))
	if rec.Shape() == entity.RecommendationRaw {
		s.logger.Debug("recommendations reply is not json; returning raw content", "len", len(text))
	}

	done(string(rec.Shape()))
	return entity.RecommendationsResult{Recommendations: rec}, nil
}

func (s *LearningService) Schedule(ctx context.Context, req entity.ScheduleRequest) (entity.ScheduleResult, error) {
	text, done, err := s.complete(ctx, req, ScheduleMaxTokens)
	if err != nil {
		return entity.ScheduleResult{}, err
	}
	done("text")
	return entity.ScheduleResult{Schedule: text}, nil
}

// complete runs validate, build and one provider call. On success the caller
// shapes the text and reports the shape through done, which closes the journal
// record.
func (s *LearningService) complete(ctx context.Context, req entity.Request, maxTokens int) (string, func(shape string), error) {
	start := time.Now()
	endpoint := req.Endpoint()

	if s.validator != nil {
		if err := s.validator.Validate(req); err != nil {
			metrics.IncGeneration(string(endpoint), "rejected")
			return "", nil, fmt.Errorf("validate request: %w", err)
		}
	}

	p, err := prompt.Build(req)
	if err != nil {
		metrics.IncError("usecase", "build_prompt")
		return "", nil, fmt.Errorf("build prompt: %w", err)
	}

	rec := entity.NewGenerationRecord(endpoint, req.Mode())
	rec.Model = s.llm.Model()

	text, err := s.llm.Generate(ctx, entity.Completion{Prompt: p, MaxTokens: maxTokens})
	if err != nil {
		elapsed := time.Since(start)
		metrics.IncGeneration(string(endpoint), "failure")
		metrics.ObserveGenerationDuration(string(endpoint), elapsed)
		rec.Fail(elapsed)
		s.record(ctx, rec)
		return "", nil, fmt.Errorf("llm generate: %w", err)
	}

	done := func(shape string) {
		elapsed := time.Since(start)
		metrics.IncGeneration(string(endpoint), "success")
		metrics.ObserveGenerationDuration(string(endpoint), elapsed)
		rec.Succeed(shape, elapsed)
		s.record(ctx, rec)
		s.logger.Debug("generation completed",
			"endpoint", endpoint, "mode", rec.Mode, "shape", shape, "duration", elapsed)
	}
	return text, done, nil
}

// record writes to the journal. Failures are logged and never reach the caller.
func (s *LearningService) record(ctx context.Context, rec *entity.GenerationRecord) {
	if s.journal == nil {
		return
	}

	wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), journalWriteTimeout)
	defer cancel()

	if err := s.journal.Create(wctx, rec); err != nil {
		metrics.IncError("usecase", "journal_write")
		s.logger.Warn("journal write failed", "record_id", rec.ID, "endpoint", rec.Endpoint, "err", err)
	}
}
