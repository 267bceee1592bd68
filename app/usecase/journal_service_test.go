package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnassist/internal/domain/entity"
)

func TestJournalService_DisabledJournal(t *testing.T) {
	s := NewJournalService(nil)

	h, err := s.History(context.Background(), 10)
	require.NoError(t, err)
	assert.NotNil(t, h.Records)
	assert.Empty(t, h.Records)

	_, err = s.GetRecord(context.Background(), "x")
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestJournalService_History(t *testing.T) {
	j := &memJournal{}
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 150; i++ {
		ep := entity.Endpoints[i%len(entity.Endpoints)]
		rec := entity.NewGenerationRecord(ep, "")
		rec.ID = fmt.Sprintf("r%03d", i)
		rec.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		j.records = append(j.records, rec)
	}
	s := NewJournalService(j)

	h, err := s.History(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, h.Records, DefaultHistoryLimit)
	assert.Equal(t, "r149", h.Records[0].ID)

	h, err = s.History(context.Background(), 1000)
	require.NoError(t, err)
	assert.Len(t, h.Records, MaxHistoryLimit)

	total := 0
	for _, ep := range entity.Endpoints {
		total += h.Counts[ep]
	}
	assert.Equal(t, 150, total)
	assert.Equal(t, 38, h.Counts[entity.EndpointAnalyzeContent])
}

func TestJournalService_GetRecord(t *testing.T) {
	j := &memJournal{}
	rec := entity.NewGenerationRecord(entity.EndpointSchedule, "")
	require.NoError(t, j.Create(context.Background(), rec))
	s := NewJournalService(j)

	got, err := s.GetRecord(context.Background(), rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)

	_, err = s.GetRecord(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrRecordNotFound)

	_, err = s.GetRecord(context.Background(), "")
	assert.Error(t, err)
}
