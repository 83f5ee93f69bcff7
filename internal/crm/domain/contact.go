package domain

import "time"

// Contact represents a person at an account. A contact email match is the
// strongest signal when linking a calendar event to CRM records.
type Contact struct {
	ID            string    `json:"id" gorm:"primaryKey"`
	OwnerID       string    `json:"owner_id" gorm:"uniqueIndex:idx_owner_contact_email;not null"`
	Email         string    `json:"email" gorm:"uniqueIndex:idx_owner_contact_email;not null"`
	Name          string    `json:"name"`
	Title         string    `json:"title,omitempty"`
	AccountID     string    `json:"account_id" gorm:"index"`
	OpportunityID string    `json:"opportunity_id,omitempty" gorm:"index"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
