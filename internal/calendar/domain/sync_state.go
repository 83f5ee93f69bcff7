package domain

import "time"

// SyncStatus is the outcome of the most recent sync attempt for a user
type SyncStatus string

const (
	SyncStatusSuccess SyncStatus = "success"
	SyncStatusFailed  SyncStatus = "failed"
)

// CalendarSyncState tracks the incremental sync cursor for one user and
// provider. The cursor starts empty (full sync over the date window); the
// provider hands back a fresh cursor at the end of every completed pass.
type CalendarSyncState struct {
	ID       string `json:"id" gorm:"primaryKey"`
	UserID   string `json:"user_id" gorm:"uniqueIndex:idx_user_provider;not null"`
	Provider string `json:"provider" gorm:"uniqueIndex:idx_user_provider;not null"`

	// SyncToken is the opaque cursor. Empty means the next run is a full
	// sync over [TimeMin, TimeMax].
	SyncToken string    `json:"-"`
	TimeMin   time.Time `json:"time_min"`
	TimeMax   time.Time `json:"time_max"`

	LastSyncAt     *time.Time `json:"last_sync_at,omitempty"`
	LastSyncStatus SyncStatus `json:"last_sync_status,omitempty"`
	LastSyncError  string     `json:"last_sync_error,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
