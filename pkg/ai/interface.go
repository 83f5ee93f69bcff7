package ai

import (
	"context"
	"time"
)

// MeetingBrief is the per-meeting input handed to the AI provider (shared type)
type MeetingBrief struct {
	Source         string    `json:"source"`
	MeetingTime    time.Time `json:"meeting_time"`
	PainPoints     []string  `json:"pain_points"`
	Goals          []string  `json:"goals"`
	RiskAssessment string    `json:"risk_assessment"`
}

// InsightConsolidation is the merged view the AI produces across meetings
type InsightConsolidation struct {
	PainPoints     []string `json:"pain_points"`
	Goals          []string `json:"goals"`
	RiskAssessment string   `json:"risk_assessment"`
	Summary        string   `json:"summary"`
}

// ConsolidatorService is the interface for AI insight consolidation
// Implement this interface to add new AI providers (Gemini, Ollama, OpenAI, etc.)
type ConsolidatorService interface {
	ConsolidateInsights(ctx context.Context, briefs []MeetingBrief) (*InsightConsolidation, error)
}

// ProviderType represents the AI provider type
type ProviderType string

const (
	ProviderGemini ProviderType = "gemini"
	ProviderOllama ProviderType = "ollama"
	ProviderAuto   ProviderType = "auto"
)
