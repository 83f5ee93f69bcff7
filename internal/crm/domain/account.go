package domain

import "time"

// Account represents a company the sales team works with
type Account struct {
	ID      string `json:"id" gorm:"primaryKey"`
	OwnerID string `json:"owner_id" gorm:"index;not null"`
	Name    string `json:"name" gorm:"not null"`

	// WebsiteDomain is matched against attendee email domains when linking
	// calendar events to accounts (e.g. "partner.com")
	WebsiteDomain string `json:"website_domain" gorm:"index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
