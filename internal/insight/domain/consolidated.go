package domain

import (
	"time"

	"gorm.io/datatypes"
)

// ConsolidatedInsight is the current aggregate of all deduplicated meeting
// insights for an opportunity. Each successful consolidation run fully
// replaces the previous snapshot; there is no merge with history.
type ConsolidatedInsight struct {
	ID            string `json:"id" gorm:"primaryKey"`
	OpportunityID string `json:"opportunity_id" gorm:"uniqueIndex;not null"`

	PainPoints     datatypes.JSONSlice[string] `json:"pain_points"`
	Goals          datatypes.JSONSlice[string] `json:"goals"`
	RiskAssessment string                      `json:"risk_assessment"`
	Summary        string                      `json:"summary" gorm:"type:text"`

	// MeetingCount is how many unique meetings fed this snapshot
	MeetingCount   int       `json:"meeting_count"`
	ConsolidatedAt time.Time `json:"consolidated_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
