package validator

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnassist/internal/domain/entity"
)

func TestValidate_AllRequiredPresent(t *testing.T) {
	v := NewRequestValidator()

	assert.NoError(t, v.Validate(entity.AnalyzeContentRequest{
		Content: "text", ContentType: "article", UserLevel: "beginner", AnalysisType: "quiz",
	}))
	assert.NoError(t, v.Validate(entity.GenerateContentRequest{
		Topic: "Go", Level: "beginner", ContentType: "lesson",
	}), "learningStyle and specificAreas are optional")
	assert.NoError(t, v.Validate(entity.ScheduleRequest{
		Topic: "Go", TimeCommitment: "1-2", CurrentLevel: "beginner", Goals: "x", LearningStyle: "visual",
	}), "deadline is optional")
}

func TestValidate_ListsMissingFieldsInOrder(t *testing.T) {
	err := NewRequestValidator().Validate(entity.RecommendationRequest{Topic: "Go", Goals: "   "})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingFields)
	assert.Equal(t, "missing required fields: level, goals, progress", err.Error())
}

func TestInspect_UnknownMode(t *testing.T) {
	v := NewRequestValidator()

	rep := v.Inspect(entity.AnalyzeContentRequest{AnalysisType: "mindmap"})
	assert.True(t, rep.UnknownMode)
	assert.False(t, rep.OK())

	rep = v.Inspect(entity.GenerateContentRequest{Topic: "Go", Level: "x", ContentType: "quiz"})
	assert.False(t, rep.UnknownMode)
	assert.True(t, rep.OK())

	rep = v.Inspect(entity.ScheduleRequest{})
	assert.False(t, rep.UnknownMode, "schedule has no modes")
}

func TestValidate_NumericProgressCounts(t *testing.T) {
	var req entity.RecommendationRequest
	require.NoError(t, json.Unmarshal([]byte(`{"topic":"Go","level":"beginner","goals":"x","progress":0}`), &req))
	assert.NoError(t, NewRequestValidator().Validate(req))
}
