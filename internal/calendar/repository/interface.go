package repository

import (
	caldomain "dealflow-backend/internal/calendar/domain"
)

// SyncStateRepository defines the interface for calendar sync state persistence
type SyncStateRepository interface {
	// GetOrCreate returns the sync state for (user, provider), creating it
	// with the given date window when absent
	GetOrCreate(userID, provider string, state *caldomain.CalendarSyncState) (*caldomain.CalendarSyncState, error)
	Get(userID, provider string) (*caldomain.CalendarSyncState, error)
	Update(state *caldomain.CalendarSyncState) error
}

// EventRepository defines the interface for stored calendar events
type EventRepository interface {
	// Upsert creates or updates by (user, provider event id)
	Upsert(event *caldomain.CalendarEvent) error
	FindByProviderEventID(userID, providerEventID string) (*caldomain.CalendarEvent, error)
	FindByUser(userID string, limit, offset int) ([]*caldomain.CalendarEvent, int64, error)
	DeleteByProviderEventID(userID, providerEventID string) error
}
