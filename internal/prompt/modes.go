package prompt

import (
	"fmt"

	"learnassist/internal/domain/entity"
)

// fragment renders the mode-specific elaboration for a learner level.
type fragment func(level string) string

// noFragment is selected for any mode outside an endpoint's enumerated set.
var noFragment fragment = func(string) string { return "" }

var analysisFragments = map[string]fragment{
	"summary": func(level string) string {
		return fmt.Sprintf("Create a comprehensive summary suitable for %s level learners. Include key points, main concepts, and important takeaways.", level)
	},
	"explanation": func(level string) string {
		return fmt.Sprintf("Provide a detailed explanation of the content, breaking down complex concepts for %s level understanding.", level)
	},
	"quiz": func(level string) string {
		return fmt.Sprintf("Create a quiz with 5-8 questions based on this content, appropriate for %s level learners.", level)
	},
	"podcast": func(string) string {
		return "Create a podcast script that explains this content in an engaging, conversational way suitable for audio learning."
	},
	"visual": func(string) string {
		return "Describe how to create visual representations (diagrams, charts, infographics) of this content."
	},
}

var generationFragments = map[string]fragment{
	"lesson": func(string) string {
		return ` Create a structured lesson with:
1. Learning objectives
2. Key concepts explanation
3. Examples and analogies
4. Practice exercises
5. Summary and next steps`
	},
	"summary": func(string) string {
		return " Create a concise summary with bullet points covering the main concepts."
	},
	"quiz": func(string) string {
		return " Create 5-10 multiple choice questions with explanations for each answer."
	},
	"explanation": func(string) string {
		return " Provide a detailed explanation with real-world examples and analogies."
	},
}

func analysisFragment(mode string) fragment {
	if f, ok := analysisFragments[mode]; ok {
		return f
	}
	return noFragment
}

func generationFragment(mode string) fragment {
	if f, ok := generationFragments[mode]; ok {
		return f
	}
	return noFragment
}

var (
	analysisModes   = []string{"summary", "explanation", "quiz", "podcast", "visual"}
	generationModes = []string{"lesson", "summary", "quiz", "explanation"}
)

// Modes lists the recognized mode enumerators of an endpoint. Endpoints with a
// single fixed template return nil.
func Modes(endpoint entity.Endpoint) []string {
	switch endpoint {
	case entity.EndpointAnalyzeContent:
		return append([]string(nil), analysisModes...)
	case entity.EndpointGenerateContent:
		return append([]string(nil), generationModes...)
	default:
		return nil
	}
}

// ModeFragment renders the fragment an endpoint appends for mode at the given
// level. ok is false when the mode is unrecognized and nothing is appended.
func ModeFragment(endpoint entity.Endpoint, mode, level string) (string, bool) {
	var table map[string]fragment
	switch endpoint {
	case entity.EndpointAnalyzeContent:
		table = analysisFragments
	case entity.EndpointGenerateContent:
		table = generationFragments
	default:
		return "", false
	}
	f, ok := table[mode]
	if !ok {
		return noFragment(level), false
	}
	return f(level), true
}
