package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnassist/internal/domain/entity"
)

type fakeGateway struct {
	reply string
	err   error
	calls []entity.Completion
}

func (g *fakeGateway) Generate(_ context.Context, c entity.Completion) (string, error) {
	g.calls = append(g.calls, c)
	return g.reply, g.err
}

func (g *fakeGateway) Model() string { return "fake-model" }

type memJournal struct {
	mu      sync.Mutex
	records []*entity.GenerationRecord
	err     error
}

func (j *memJournal) Create(_ context.Context, rec *entity.GenerationRecord) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.err != nil {
		return j.err
	}
	j.records = append(j.records, rec)
	return nil
}

func (j *memJournal) GetByID(_ context.Context, id string) (*entity.GenerationRecord, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	for _, r := range j.records {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}

func (j *memJournal) ListRecent(_ context.Context, limit int) ([]*entity.GenerationRecord, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := append([]*entity.GenerationRecord(nil), j.records...)
	sort.SliceStable(out, func(a, b int) bool { return out[a].CreatedAt.After(out[b].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (j *memJournal) CountByEndpoint(_ context.Context, ep entity.Endpoint) (int, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	n := 0
	for _, r := range j.records {
		if r.Endpoint == ep {
			n++
		}
	}
	return n, nil
}

type rejectAll struct{}

func (rejectAll) Validate(entity.Request) error { return errors.New("missing required fields: topic") }

func TestLearningService_TokenCeilings(t *testing.T) {
	gw := &fakeGateway{reply: "ok"}
	s := NewLearningService(gw, nil, nil, nil)
	ctx := context.Background()

	_, err := s.AnalyzeContent(ctx, entity.AnalyzeContentRequest{AnalysisType: "quiz"})
	require.NoError(t, err)
	_, err = s.GenerateContent(ctx, entity.GenerateContentRequest{ContentType: "lesson"})
	require.NoError(t, err)
	_, err = s.Recommend(ctx, entity.RecommendationRequest{})
	require.NoError(t, err)
	_, err = s.Schedule(ctx, entity.ScheduleRequest{})
	require.NoError(t, err)

	require.Len(t, gw.calls, 4)
	assert.Equal(t, 2000, gw.calls[0].MaxTokens)
	assert.Equal(t, 2000, gw.calls[1].MaxTokens)
	assert.Equal(t, 1500, gw.calls[2].MaxTokens)
	assert.Equal(t, 1500, gw.calls[3].MaxTokens)
}

func TestLearningService_TextEndpointsAreIdentity(t *testing.T) {
	reply := "  # Lesson\n\nnot validated in any way "
	s := NewLearningService(&fakeGateway{reply: reply}, nil, nil, nil)
	ctx := context.Background()

	a, err := s.AnalyzeContent(ctx, entity.AnalyzeContentRequest{})
	require.NoError(t, err)
	assert.Equal(t, reply, a.Analysis)

	c, err := s.GenerateContent(ctx, entity.GenerateContentRequest{})
	require.NoError(t, err)
	assert.Equal(t, reply, c.Content)

	sc, err := s.Schedule(ctx, entity.ScheduleRequest{})
	require.NoError(t, err)
	assert.Equal(t, reply, sc.Schedule)
}

func TestLearningService_ScheduleWithoutDeadline(t *testing.T) {
	gw := &fakeGateway{reply: "Week 1: basics"}
	s := NewLearningService(gw, nil, nil, nil)

	res, err := s.Schedule(context.Background(), entity.ScheduleRequest{
		Topic: "Go", TimeCommitment: "30-60", CurrentLevel: "beginner", Goals: "build a CLI", LearningStyle: "visual",
	})
	require.NoError(t, err)
	assert.Equal(t, "Week 1: basics", res.Schedule)
	require.Len(t, gw.calls, 1)
	assert.Contains(t, gw.calls[0].User, "No specific deadline")
}

func TestLearningService_RecommendShapes(t *testing.T) {
	t.Run("structured", func(t *testing.T) {
		s := NewLearningService(&fakeGateway{reply: `{"youtube":["a"],"strategies":["b"]}`}, nil, nil, nil)
		res, err := s.Recommend(context.Background(), entity.RecommendationRequest{Topic: "Go"})
		require.NoError(t, err)
		assert.Equal(t, entity.RecommendationStructured, res.Recommendations.Shape())

		out, err := json.Marshal(res)
		require.NoError(t, err)
		assert.JSONEq(t, `{"recommendations":{"youtube":["a"],"strategies":["b"]}}`, string(out))
	})

	t.Run("raw", func(t *testing.T) {
		s := NewLearningService(&fakeGateway{reply: "not json"}, nil, nil, nil)
		res, err := s.Recommend(context.Background(), entity.RecommendationRequest{Topic: "Go"})
		require.NoError(t, err)

		out, err := json.Marshal(res)
		require.NoError(t, err)
		assert.JSONEq(t, `{"recommendations":{"content":"not json"}}`, string(out))
	})
}

func TestLearningService_MissingFieldsStillReachGateway(t *testing.T) {
	gw := &fakeGateway{reply: "ok"}
	s := NewLearningService(gw, nil, nil, nil)

	_, err := s.Recommend(context.Background(), entity.RecommendationRequest{})
	require.NoError(t, err)
	assert.Len(t, gw.calls, 1)
}

func TestLearningService_ValidatorRejectsBeforeGateway(t *testing.T) {
	gw := &fakeGateway{reply: "ok"}
	j := &memJournal{}
	s := NewLearningService(gw, j, rejectAll{}, nil)

	_, err := s.GenerateContent(context.Background(), entity.GenerateContentRequest{})
	require.Error(t, err)
	assert.Empty(t, gw.calls)
	assert.Empty(t, j.records)
}

func TestLearningService_GatewayErrorPropagates(t *testing.T) {
	boom := errors.New("provider unavailable")
	j := &memJournal{}
	s := NewLearningService(&fakeGateway{err: boom}, j, nil, nil)

	_, err := s.AnalyzeContent(context.Background(), entity.AnalyzeContentRequest{AnalysisType: "summary"})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	require.Len(t, j.records, 1)
	assert.Equal(t, entity.RecordStatusFailed, j.records[0].Status)
	assert.Equal(t, "summary", j.records[0].Mode)
	assert.Equal(t, "fake-model", j.records[0].Model)
}

func TestLearningService_JournalsMetadataOnly(t *testing.T) {
	j := &memJournal{}
	s := NewLearningService(&fakeGateway{reply: "not json"}, j, nil, nil)

	_, err := s.Recommend(context.Background(), entity.RecommendationRequest{Topic: "secret topic"})
	require.NoError(t, err)

	require.Len(t, j.records, 1)
	rec := j.records[0]
	assert.Equal(t, entity.EndpointRecommendations, rec.Endpoint)
	assert.Equal(t, entity.RecordStatusSucceeded, rec.Status)
	assert.Equal(t, string(entity.RecommendationRaw), rec.Shape)
	assert.NotEmpty(t, rec.ID)

	out, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "secret topic")
	assert.NotContains(t, string(out), "not json")
}

func TestLearningService_JournalFailureDoesNotFailRequest(t *testing.T) {
	j := &memJournal{err: errors.New("disk full")}
	s := NewLearningService(&fakeGateway{reply: "ok"}, j, nil, nil)

	res, err := s.Schedule(context.Background(), entity.ScheduleRequest{})
	require.NoError(t, err)
	assert.Equal(t, "ok", res.Schedule)
}
