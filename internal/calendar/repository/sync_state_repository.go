package repository

import (
	"errors"
	"time"

	caldomain "dealflow-backend/internal/calendar/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// syncStateRepository implements SyncStateRepository interface
type syncStateRepository struct {
	db *gorm.DB
}

// NewSyncStateRepository creates a new instance of syncStateRepository
func NewSyncStateRepository(db *gorm.DB) SyncStateRepository {
	return &syncStateRepository{
		db: db,
	}
}

func (r *syncStateRepository) GetOrCreate(userID, provider string, state *caldomain.CalendarSyncState) (*caldomain.CalendarSyncState, error) {
	existing, err := r.Get(userID, provider)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	now := time.Now()
	state.ID = uuid.New().String()
	state.UserID = userID
	state.Provider = provider
	state.CreatedAt = now
	state.UpdatedAt = now
	if err := r.db.Create(state).Error; err != nil {
		return nil, err
	}
	return state, nil
}

func (r *syncStateRepository) Get(userID, provider string) (*caldomain.CalendarSyncState, error) {
	var state caldomain.CalendarSyncState
	err := r.db.Where("user_id = ? AND provider = ?", userID, provider).First(&state).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &state, nil
}

func (r *syncStateRepository) Update(state *caldomain.CalendarSyncState) error {
	state.UpdatedAt = time.Now()
	return r.db.Save(state).Error
}
