package repository

import (
	"errors"

	insightdomain "dealflow-backend/internal/insight/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type insightRepository struct {
	db *gorm.DB
}

func NewInsightRepository(db *gorm.DB) InsightRepository {
	return &insightRepository{db: db}
}

func (r *insightRepository) Create(insight *insightdomain.ParsedMeetingInsight) error {
	if insight.ID == "" {
		insight.ID = uuid.New().String()
	}
	return r.db.Create(insight).Error
}

func (r *insightRepository) FindByOpportunityAndSource(opportunityID string, source insightdomain.TranscriptSource) ([]*insightdomain.ParsedMeetingInsight, error) {
	var insights []*insightdomain.ParsedMeetingInsight
	err := r.db.Where("opportunity_id = ? AND source = ?", opportunityID, source).
		Order("meeting_time ASC").
		Find(&insights).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return insights, nil
}

func (r *insightRepository) FindByOpportunity(opportunityID string) ([]*insightdomain.ParsedMeetingInsight, error) {
	var insights []*insightdomain.ParsedMeetingInsight
	err := r.db.Where("opportunity_id = ?", opportunityID).
		Order("meeting_time ASC").
		Find(&insights).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return insights, nil
}
