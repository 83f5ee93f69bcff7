package repository

import crmdomain "dealflow-backend/internal/crm/domain"

// AccountRepository defines the interface for account persistence
type AccountRepository interface {
	Create(account *crmdomain.Account) error
	FindByID(ownerID, id string) (*crmdomain.Account, error)
	FindByOwner(ownerID string) ([]*crmdomain.Account, error)
	Update(account *crmdomain.Account) error
	Delete(ownerID, id string) error
}

// ContactRepository defines the interface for contact persistence
type ContactRepository interface {
	Create(contact *crmdomain.Contact) error
	FindByID(ownerID, id string) (*crmdomain.Contact, error)
	FindByOwner(ownerID string) ([]*crmdomain.Contact, error)
	Update(contact *crmdomain.Contact) error
	Delete(ownerID, id string) error
}

// OpportunityRepository defines the interface for opportunity persistence
type OpportunityRepository interface {
	Create(opp *crmdomain.Opportunity) error
	FindByID(ownerID, id string) (*crmdomain.Opportunity, error)
	FindByOwner(ownerID string) ([]*crmdomain.Opportunity, error)
	FindByAccount(accountID string) ([]*crmdomain.Opportunity, error)
	Update(opp *crmdomain.Opportunity) error
	// UpdateConsolidationStatus writes only the status column if it changed
	UpdateConsolidationStatus(id string, status crmdomain.ConsolidationStatus) error
	Delete(ownerID, id string) error
}
