// Package prompt composes the system and user instructions for each generation
// endpoint. Builders are pure: the same request always yields the same prompt.
//
// Request text is interpolated as-is. Nothing is escaped, trimmed or capped; the
// provider is the trust boundary.
package prompt

import (
	"fmt"
	"strings"

	"learnassist/internal/domain/entity"
)

const (
	analystPersona   = "You are an expert educational analyst. Analyze the provided content and create educational materials based on it."
	creatorPersona   = "You are an expert educational content creator. Create comprehensive, engaging learning content that adapts to the user's level and learning style."
	advisorPersona   = "You are an expert educational advisor. Provide personalized learning recommendations including YouTube videos, free ebooks, and study resources."
	plannerPersona   = "You are an expert learning schedule planner. Create personalized daily and weekly learning schedules that are realistic and effective."
	noDeadlineMarker = "No specific deadline"
)

// AnalyzeContent builds the prompt for POST /api/analyze-content.
func AnalyzeContent(req entity.AnalyzeContentRequest) entity.Prompt {
	var b strings.Builder
	fmt.Fprintf(&b, "Analyze this %s content and create %s based on it:\n\n%s\n\n",
		req.ContentType, req.AnalysisType, req.Content)
	b.WriteString(analysisFragment(req.AnalysisType.String())(req.UserLevel.String()))

	return entity.Prompt{System: analystPersona, User: b.String()}
}

// GenerateContent builds the prompt for POST /api/generate-content.
func GenerateContent(req entity.GenerateContentRequest) entity.Prompt {
	var b strings.Builder
	fmt.Fprintf(&b, "Create %s content for learning \"%s\" at %s level.",
		req.ContentType, req.Topic, req.Level)

	if !req.LearningStyle.Empty() {
		fmt.Fprintf(&b, " The learner prefers %s learning style.", req.LearningStyle)
	}
	if !req.SpecificAreas.Empty() {
		fmt.Fprintf(&b, " Focus on these specific areas: %s.", req.SpecificAreas)
	}
	b.WriteString(generationFragment(req.ContentType.String())(req.Level.String()))

	return entity.Prompt{System: creatorPersona, User: b.String()}
}

// Recommendations builds the prompt for POST /api/recommendations. The reply is
// requested as JSON so the shaper can try a structured parse.
func Recommendations(req entity.RecommendationRequest) entity.Prompt {
	user := fmt.Sprintf(`Provide learning recommendations for:
Topic: %s
Level: %s
Goals: %s
Current Progress: %s%%

Please recommend:
1. 3-5 YouTube videos/channels (provide realistic channel names and video titles)
2. 2-3 free ebooks from platforms like OpenLibrary, Project Gutenberg, or similar
3. Additional learning resources
4. Study strategies specific to this topic and level

Format as JSON with categories: youtube, ebooks, resources, strategies`,
		req.Topic, req.Level, req.Goals, req.Progress)

	return entity.Prompt{System: advisorPersona, User: user}
}

// Schedule builds the prompt for POST /api/schedule.
func Schedule(req entity.ScheduleRequest) entity.Prompt {
	deadline := req.Deadline.String()
	if req.Deadline.Empty() {
		deadline = noDeadlineMarker
	}

	user := fmt.Sprintf(`Create a detailed learning schedule for:
Topic: %s
Daily Time Available: %s
Target Completion: %s
Current Level: %s
Goals: %s
Learning Style: %s

Create:
1. Daily schedule breakdown
2. Weekly milestones
3. Monthly goals
4. Specific tasks and activities
5. Progress checkpoints

Make it realistic and achievable while being comprehensive.`,
		req.Topic, req.TimeCommitment, deadline, req.CurrentLevel, req.Goals, req.LearningStyle)

	return entity.Prompt{System: plannerPersona, User: user}
}

// Build dispatches on the concrete request type.
func Build(req entity.Request) (entity.Prompt, error) {
	switch r := req.(type) {
	case entity.AnalyzeContentRequest:
		return AnalyzeContent(r), nil
	case entity.GenerateContentRequest:
		return GenerateContent(r), nil
	case entity.RecommendationRequest:
		return Recommendations(r), nil
	case entity.ScheduleRequest:
		return Schedule(r), nil
	default:
		return entity.Prompt{}, fmt.Errorf("no prompt template for %T", req)
	}
}
