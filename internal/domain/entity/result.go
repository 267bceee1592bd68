package entity

import (
	"bytes"
	"encoding/json"
)

type AnalysisResult struct {
	Analysis string `json:"analysis"`
}

type ContentResult struct {
	Content string `json:"content"`
}

type ScheduleResult struct {
	Schedule string `json:"schedule"`
}

type RecommendationsResult struct {
	Recommendations RecommendationResult `json:"recommendations"`
}

// RecommendationShape tags which side of the parse boundary a result landed on.
type RecommendationShape string

const (
	RecommendationStructured RecommendationShape = "structured"
	RecommendationRaw        RecommendationShape = "raw"
)

// RecommendationResult is either the provider's JSON passed through verbatim or the
// raw text wrapped as {"content": text}. The variant is fixed by ShapeRecommendations.
// The structured payload is not checked against the youtube/ebooks/resources/strategies
// layout the prompt asks for; callers must branch on the keys they find.
type RecommendationResult struct {
	shape      RecommendationShape
	structured json.RawMessage
	raw        string
}

// ShapeRecommendations parses text strictly. Any valid JSON value becomes a
// structured result; anything else, including fenced or partially valid JSON,
// becomes a raw result holding text unchanged.
func ShapeRecommendations(text string) RecommendationResult {
	if json.Valid([]byte(text)) {
		return RecommendationResult{
			shape:      RecommendationStructured,
			structured: json.RawMessage(bytes.TrimSpace([]byte(text))),
		}
	}
	return RecommendationResult{shape: RecommendationRaw, raw: text}
}

func StructuredRecommendations(raw json.RawMessage) RecommendationResult {
	return RecommendationResult{shape: RecommendationStructured, structured: raw}
}

func RawRecommendations(text string) RecommendationResult {
	return RecommendationResult{shape: RecommendationRaw, raw: text}
}

func (r RecommendationResult) Shape() RecommendationShape { return r.shape }

// Structured returns the parsed JSON and true for the structured variant.
func (r RecommendationResult) Structured() (json.RawMessage, bool) {
	return r.structured, r.shape == RecommendationStructured
}

// Raw returns the unparsed text and true for the raw variant.
func (r RecommendationResult) Raw() (string, bool) {
	return r.raw, r.shape == RecommendationRaw
}

func (r RecommendationResult) MarshalJSON() ([]byte, error) {
	if r.shape == RecommendationStructured {
		return r.structured, nil
	}
	return json.Marshal(struct {
		Content string `json:"content"`
	}{Content: r.raw})
}
