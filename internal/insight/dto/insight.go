package dto

import (
	"time"

	insightdomain "dealflow-backend/internal/insight/domain"
)

// IngestTranscriptRequest is the payload posted by transcript webhooks.
// The source is fixed by the route, not the body.
type IngestTranscriptRequest struct {
	OpportunityID   string    `json:"opportunity_id" binding:"required"`
	SourceRef       string    `json:"source_ref"`
	MeetingTime     time.Time `json:"meeting_time" binding:"required"`
	CalendarEventID string    `json:"calendar_event_id"`
	PainPoints      []string  `json:"pain_points"`
	Goals           []string  `json:"goals"`
	RiskAssessment  string    `json:"risk_assessment"`
}

// IngestTranscriptResponse reports the stored record and whether a
// consolidation run was queued
type IngestTranscriptResponse struct {
	Insight *insightdomain.ParsedMeetingInsight `json:"insight"`
	Queued  bool                                `json:"consolidation_queued"`
}

// OpportunityInsightsResponse is the combined insight view for one opportunity
type OpportunityInsightsResponse struct {
	ConsolidationStatus string                                `json:"consolidation_status"`
	Consolidated        *insightdomain.ConsolidatedInsight    `json:"consolidated,omitempty"`
	Meetings            []*insightdomain.ParsedMeetingInsight `json:"meetings"`
}
