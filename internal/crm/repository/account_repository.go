package repository

import (
	"errors"
	"time"

	crmdomain "dealflow-backend/internal/crm/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// accountRepository implements AccountRepository interface
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new instance of accountRepository
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{
		db: db,
	}
}

func (r *accountRepository) Create(account *crmdomain.Account) error {
	if account.ID == "" {
		account.ID = uuid.New().String()
	}
	account.CreatedAt = time.Now()
	account.UpdatedAt = time.Now()
	return r.db.Create(account).Error
}

func (r *accountRepository) FindByID(ownerID, id string) (*crmdomain.Account, error) {
	var account crmdomain.Account
	err := r.db.Where("owner_id = ? AND id = ?", ownerID, id).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) FindByOwner(ownerID string) ([]*crmdomain.Account, error) {
	var accounts []*crmdomain.Account
	err := r.db.Where("owner_id = ?", ownerID).Order("name ASC").Find(&accounts).Error
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r *accountRepository) Update(account *crmdomain.Account) error {
	account.UpdatedAt = time.Now()
	return r.db.Save(account).Error
}

func (r *accountRepository) Delete(ownerID, id string) error {
	return r.db.Where("owner_id = ? AND id = ?", ownerID, id).Delete(&crmdomain.Account{}).Error
}
