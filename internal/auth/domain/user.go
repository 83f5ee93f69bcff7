package domain

import "time"

type User struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Password  string    `json:"-"` // Never return password in JSON
	Name      string    `json:"name"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	Provider  string    `json:"provider"` // "email" or "google"

	// OrgDomain is the organization's email domain used to classify
	// calendar events as internal or external (e.g. "acme.com")
	OrgDomain string `json:"org_domain"`

	// Google Calendar OAuth tokens. The refresh token is required for the
	// background sync batch to include this user.
	GoogleAccessToken  string `json:"-"`
	GoogleRefreshToken string `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RefreshToken struct {
	Token     string    `json:"token" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"index"`
	ExpiresAt time.Time `json:"expires_at"`
}
