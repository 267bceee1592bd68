package entity

// Prompt is the instruction pair sent to the completion provider.
type Prompt struct {
	System string `json:"system"`
	User   string `json:"user"`
}

// Completion is a single provider call: a prompt plus a hard output ceiling.
type Completion struct {
	Prompt
	MaxTokens int
}
