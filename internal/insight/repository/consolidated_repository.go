package repository

import (
	"errors"

	insightdomain "dealflow-backend/internal/insight/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type consolidatedRepository struct {
	db *gorm.DB
}

func NewConsolidatedRepository(db *gorm.DB) ConsolidatedRepository {
	return &consolidatedRepository{db: db}
}

// Replace upserts the snapshot keyed by opportunity, overwriting every
// consolidated column. Stale fields from a previous run never survive.
func (r *consolidatedRepository) Replace(snapshot *insightdomain.ConsolidatedInsight) error {
	if snapshot.ID == "" {
		snapshot.ID = uuid.New().String()
	}
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "opportunity_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"pain_points", "goals", "risk_assessment", "summary",
			"meeting_count", "consolidated_at", "updated_at",
		}),
	}).Create(snapshot).Error
}

func (r *consolidatedRepository) FindByOpportunity(opportunityID string) (*insightdomain.ConsolidatedInsight, error) {
	var snapshot insightdomain.ConsolidatedInsight
	err := r.db.Where("opportunity_id = ?", opportunityID).First(&snapshot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &snapshot, nil
}
