package ai

import (
	"context"

	"dealflow-backend/pkg/gemini"
)

// GeminiConsolidator implements ConsolidatorService on top of the Gemini API
type GeminiConsolidator struct {
	client *gemini.GeminiService
}

// NewGeminiConsolidator creates a Gemini-backed consolidator
func NewGeminiConsolidator(apiKey string) *GeminiConsolidator {
	return &GeminiConsolidator{client: gemini.NewGeminiService(apiKey)}
}

// ConsolidateInsights implements ConsolidatorService
func (g *GeminiConsolidator) ConsolidateInsights(ctx context.Context, briefs []MeetingBrief) (*InsightConsolidation, error) {
	prompt, err := buildConsolidationPrompt(briefs)
	if err != nil {
		return nil, err
	}

	text, err := g.client.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	return parseConsolidation(text)
}
