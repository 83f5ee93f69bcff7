package repository

import (
	"errors"
	"strings"
	"time"

	crmdomain "dealflow-backend/internal/crm/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// contactRepository implements ContactRepository interface
type contactRepository struct {
	db *gorm.DB
}

// NewContactRepository creates a new instance of contactRepository
func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{
		db: db,
	}
}

func (r *contactRepository) Create(contact *crmdomain.Contact) error {
	if contact.ID == "" {
		contact.ID = uuid.New().String()
	}
	contact.Email = strings.ToLower(strings.TrimSpace(contact.Email))
	contact.CreatedAt = time.Now()
	contact.UpdatedAt = time.Now()
	return r.db.Create(contact).Error
}

func (r *contactRepository) FindByID(ownerID, id string) (*crmdomain.Contact, error) {
	var contact crmdomain.Contact
	err := r.db.Where("owner_id = ? AND id = ?", ownerID, id).First(&contact).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &contact, nil
}

func (r *contactRepository) FindByOwner(ownerID string) ([]*crmdomain.Contact, error) {
	var contacts []*crmdomain.Contact
	err := r.db.Where("owner_id = ?", ownerID).Find(&contacts).Error
	if err != nil {
		return nil, err
	}
	return contacts, nil
}

func (r *contactRepository) Update(contact *crmdomain.Contact) error {
	contact.Email = strings.ToLower(strings.TrimSpace(contact.Email))
	contact.UpdatedAt = time.Now()
	return r.db.Save(contact).Error
}

func (r *contactRepository) Delete(ownerID, id string) error {
	return r.db.Where("owner_id = ? AND id = ?", ownerID, id).Delete(&crmdomain.Contact{}).Error
}
