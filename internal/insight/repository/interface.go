package repository

import insightdomain "dealflow-backend/internal/insight/domain"

// InsightRepository defines the interface for parsed meeting insights
type InsightRepository interface {
	Create(insight *insightdomain.ParsedMeetingInsight) error
	FindByOpportunityAndSource(opportunityID string, source insightdomain.TranscriptSource) ([]*insightdomain.ParsedMeetingInsight, error)
	FindByOpportunity(opportunityID string) ([]*insightdomain.ParsedMeetingInsight, error)
}

// ConsolidatedRepository defines the interface for the per-opportunity
// consolidated snapshot
type ConsolidatedRepository interface {
	// Replace overwrites the opportunity's snapshot in full
	Replace(snapshot *insightdomain.ConsolidatedInsight) error
	FindByOpportunity(opportunityID string) (*insightdomain.ConsolidatedInsight, error)
}
