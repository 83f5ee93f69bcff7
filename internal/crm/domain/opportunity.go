package domain

import "time"

// Stage represents the pipeline stage of an opportunity
type Stage string

const (
	StageProspecting Stage = "prospecting"
	StageDiscovery   Stage = "discovery"
	StageProposal    Stage = "proposal"
	StageNegotiation Stage = "negotiation"
	StageClosedWon   Stage = "closed_won"
	StageClosedLost  Stage = "closed_lost"
)

// ConsolidationStatus is the UI-facing indicator for the insight
// consolidation pipeline of an opportunity
type ConsolidationStatus string

const (
	ConsolidationIdle       ConsolidationStatus = "idle"
	ConsolidationProcessing ConsolidationStatus = "processing"
	ConsolidationCompleted  ConsolidationStatus = "completed"
	ConsolidationFailed     ConsolidationStatus = "failed"
)

// Opportunity represents a deal being tracked in the pipeline
type Opportunity struct {
	ID        string     `json:"id" gorm:"primaryKey"`
	OwnerID   string     `json:"owner_id" gorm:"index;not null"`
	AccountID string     `json:"account_id" gorm:"index;not null"`
	Name      string     `json:"name" gorm:"not null"`
	Stage     Stage      `json:"stage" gorm:"default:prospecting"`
	Amount    float64    `json:"amount"`
	CloseDate *time.Time `json:"close_date,omitempty"`

	ConsolidationStatus ConsolidationStatus `json:"consolidation_status" gorm:"default:idle"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
