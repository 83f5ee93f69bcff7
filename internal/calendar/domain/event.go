package domain

import (
	"context"
	"errors"
	"time"

	"golang.org/x/oauth2"
	"gorm.io/datatypes"
)

// TokenUpdateFunc is a callback that persists a refreshed OAuth token
type TokenUpdateFunc func(token *oauth2.Token) error

// ErrSyncTokenExpired signals that the provider rejected the stored sync
// cursor. It is a recovery condition, not a fatal error: the engine clears
// the cursor and reruns the pass as a full sync.
var ErrSyncTokenExpired = errors.New("calendar sync token expired")

// ProviderEvent is an event as returned by the upstream calendar API,
// before classification and matching
type ProviderEvent struct {
	ID          string
	Title       string
	Description string
	Location    string
	StartTime   time.Time
	EndTime     time.Time
	Attendees   []string
	Organizer   string
	MeetingURL  string
	Cancelled   bool
}

// EventQuery selects either a full date-range fetch (TimeMin/TimeMax) or an
// incremental fetch (SyncToken). The provider ignores the window while a
// sync token is set.
type EventQuery struct {
	SyncToken string
	TimeMin   time.Time
	TimeMax   time.Time
	PageToken string
}

// EventPage is one page of provider results. NextSyncToken is only set on
// the final page of a pass.
type EventPage struct {
	Events        []*ProviderEvent
	NextPageToken string
	NextSyncToken string
}

// CalendarProvider is the upstream calendar API surface the sync engine
// depends on. pkg/gcal implements it for Google Calendar.
type CalendarProvider interface {
	ListEvents(ctx context.Context, accessToken, refreshToken string, query EventQuery, onTokenRefresh TokenUpdateFunc) (*EventPage, error)
}

// CalendarEvent mirrors an upstream event in the local store. Only external
// events are kept. Unique per (user, provider event id).
type CalendarEvent struct {
	ID              string `json:"id" gorm:"primaryKey"`
	UserID          string `json:"user_id" gorm:"uniqueIndex:idx_user_provider_event;not null"`
	ProviderEventID string `json:"provider_event_id" gorm:"uniqueIndex:idx_user_provider_event;not null"`

	Title       string                       `json:"title"`
	Description string                       `json:"description,omitempty"`
	Location    string                       `json:"location,omitempty"`
	StartTime   time.Time                    `json:"start_time"`
	EndTime     time.Time                    `json:"end_time"`
	Attendees   datatypes.JSONSlice[string]  `json:"attendees"`
	Organizer   string                       `json:"organizer"`
	MeetingURL  string                       `json:"meeting_url,omitempty"`
	IsExternal  bool                         `json:"is_external"`

	// Optional CRM linkage resolved by the matcher
	OpportunityID string `json:"opportunity_id,omitempty" gorm:"index"`
	AccountID     string `json:"account_id,omitempty" gorm:"index"`
	MatchStrategy string `json:"match_strategy,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
