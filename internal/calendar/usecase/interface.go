package usecase

import (
	"context"

	caldomain "dealflow-backend/internal/calendar/domain"
)

// SyncUsecase defines the calendar synchronization operations
type SyncUsecase interface {
	// SyncAllUsers runs one batch pass over all sync-eligible users,
	// sequentially. Per-user failures are recorded in that user's sync
	// state and do not abort the batch; the returned error is reserved
	// for infrastructure-level failures.
	SyncAllUsers(ctx context.Context) error
	// SyncUser runs a sync pass for a single user (manual trigger)
	SyncUser(ctx context.Context, userID string) error
	GetSyncStatus(userID string) (*caldomain.CalendarSyncState, error)
	GetEvents(userID string, limit, offset int) ([]*caldomain.CalendarEvent, int64, error)
}
