package domain

import (
	"time"

	"gorm.io/datatypes"
)

// TranscriptSource identifies which provider produced a parsed meeting record
type TranscriptSource string

const (
	SourceGong    TranscriptSource = "gong"
	SourceGranola TranscriptSource = "granola"
)

// ParsedMeetingInsight is one transcript provider's view of a single real
// meeting. Two records from different sources can describe the same meeting;
// deduplication collapses them before consolidation.
type ParsedMeetingInsight struct {
	ID            string           `json:"id" gorm:"primaryKey"`
	OpportunityID string           `json:"opportunity_id" gorm:"index;not null"`
	Source        TranscriptSource `json:"source" gorm:"index;not null"`

	// SourceRef is the provider's own id for the call/note
	SourceRef string `json:"source_ref"`

	MeetingTime time.Time `json:"meeting_time" gorm:"not null"`

	// CalendarEventID links to the synced calendar event when the provider
	// resolved one. Empty when the meeting could not be linked.
	CalendarEventID string `json:"calendar_event_id,omitempty" gorm:"index"`

	PainPoints     datatypes.JSONSlice[string] `json:"pain_points"`
	Goals          datatypes.JSONSlice[string] `json:"goals"`
	RiskAssessment string                      `json:"risk_assessment"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
