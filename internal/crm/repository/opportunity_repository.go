package repository

import (
	"errors"
	"time"

	crmdomain "dealflow-backend/internal/crm/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// opportunityRepository implements OpportunityRepository interface
type opportunityRepository struct {
	db *gorm.DB
}

// NewOpportunityRepository creates a new instance of opportunityRepository
func NewOpportunityRepository(db *gorm.DB) OpportunityRepository {
	return &opportunityRepository{
		db: db,
	}
}

func (r *opportunityRepository) Create(opp *crmdomain.Opportunity) error {
	if opp.ID == "" {
		opp.ID = uuid.New().String()
	}
	if opp.Stage == "" {
		opp.Stage = crmdomain.StageProspecting
	}
	if opp.ConsolidationStatus == "" {
		opp.ConsolidationStatus = crmdomain.ConsolidationIdle
	}
	opp.CreatedAt = time.Now()
	opp.UpdatedAt = time.Now()
	return r.db.Create(opp).Error
}

func (r *opportunityRepository) FindByID(ownerID, id string) (*crmdomain.Opportunity, error) {
	var opp crmdomain.Opportunity
	query := r.db.Where("id = ?", id)
	if ownerID != "" {
		query = query.Where("owner_id = ?", ownerID)
	}
	err := query.First(&opp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &opp, nil
}

func (r *opportunityRepository) FindByOwner(ownerID string) ([]*crmdomain.Opportunity, error) {
	var opps []*crmdomain.Opportunity
	err := r.db.Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&opps).Error
	if err != nil {
		return nil, err
	}
	return opps, nil
}

func (r *opportunityRepository) FindByAccount(accountID string) ([]*crmdomain.Opportunity, error) {
	var opps []*crmdomain.Opportunity
	err := r.db.Where("account_id = ?", accountID).Find(&opps).Error
	if err != nil {
		return nil, err
	}
	return opps, nil
}

func (r *opportunityRepository) Update(opp *crmdomain.Opportunity) error {
	opp.UpdatedAt = time.Now()
	return r.db.Save(opp).Error
}

// UpdateConsolidationStatus only touches the status column, and only when it
// actually changed, to avoid redundant writes from concurrent jobs
func (r *opportunityRepository) UpdateConsolidationStatus(id string, status crmdomain.ConsolidationStatus) error {
	return r.db.Model(&crmdomain.Opportunity{}).
		Where("id = ? AND consolidation_status <> ?", id, status).
		Updates(map[string]interface{}{
			"consolidation_status": status,
			"updated_at":           time.Now(),
		}).Error
}

func (r *opportunityRepository) Delete(ownerID, id string) error {
	return r.db.Where("owner_id = ? AND id = ?", ownerID, id).Delete(&crmdomain.Opportunity{}).Error
}
