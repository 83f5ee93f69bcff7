package usecase

import (
	insightdomain "dealflow-backend/internal/insight/domain"
	"dealflow-backend/internal/insight/dto"
)

// IngestUsecase defines business logic for transcript ingestion and the
// opportunity insight view
type IngestUsecase interface {
	// IngestTranscript stores a parsed meeting record and queues a
	// consolidation run for its opportunity
	IngestTranscript(source insightdomain.TranscriptSource, req *dto.IngestTranscriptRequest) (*dto.IngestTranscriptResponse, error)

	// GetOpportunityInsights returns the consolidated snapshot plus the raw
	// per-meeting records for an opportunity owned by ownerID
	GetOpportunityInsights(ownerID, opportunityID string) (*dto.OpportunityInsightsResponse, error)

	// TriggerConsolidation queues a fresh consolidation run, used to retry
	// after a failed run
	TriggerConsolidation(ownerID, opportunityID string) error
}
