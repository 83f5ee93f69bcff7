package repository

import (
	"errors"
	"time"

	caldomain "dealflow-backend/internal/calendar/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// eventRepository implements EventRepository interface
type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new instance of eventRepository
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{
		db: db,
	}
}

// Upsert relies on the (user_id, provider_event_id) unique index so a
// re-synced event never creates a duplicate row
func (r *eventRepository) Upsert(event *caldomain.CalendarEvent) error {
	now := time.Now()
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	event.CreatedAt = now
	event.UpdatedAt = now

	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "provider_event_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"title", "description", "location", "start_time", "end_time",
			"attendees", "organizer", "meeting_url", "is_external",
			"opportunity_id", "account_id", "match_strategy", "updated_at",
		}),
	}).Create(event).Error
}

func (r *eventRepository) FindByProviderEventID(userID, providerEventID string) (*caldomain.CalendarEvent, error) {
	var event caldomain.CalendarEvent
	err := r.db.Where("user_id = ? AND provider_event_id = ?", userID, providerEventID).First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) FindByUser(userID string, limit, offset int) ([]*caldomain.CalendarEvent, int64, error) {
	var events []*caldomain.CalendarEvent
	var total int64

	query := r.db.Model(&caldomain.CalendarEvent{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("start_time DESC").Limit(limit).Offset(offset).Find(&events).Error
	if err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

func (r *eventRepository) DeleteByProviderEventID(userID, providerEventID string) error {
	return r.db.Where("user_id = ? AND provider_event_id = ?", userID, providerEventID).Delete(&caldomain.CalendarEvent{}).Error
}
