package usecase

import (
	crmdomain "dealflow-backend/internal/crm/domain"
	crmdto "dealflow-backend/internal/crm/dto"
)

// CRMUsecase defines the operations on accounts, contacts and opportunities
type CRMUsecase interface {
	CreateAccount(ownerID string, req *crmdto.CreateAccountRequest) (*crmdomain.Account, error)
	GetAccounts(ownerID string) ([]*crmdomain.Account, error)
	GetAccountByID(ownerID, id string) (*crmdomain.Account, error)
	UpdateAccount(ownerID, id string, req *crmdto.UpdateAccountRequest) (*crmdomain.Account, error)
	DeleteAccount(ownerID, id string) error

	CreateContact(ownerID string, req *crmdto.CreateContactRequest) (*crmdomain.Contact, error)
	GetContacts(ownerID string) ([]*crmdomain.Contact, error)
	GetContactByID(ownerID, id string) (*crmdomain.Contact, error)
	UpdateContact(ownerID, id string, req *crmdto.UpdateContactRequest) (*crmdomain.Contact, error)
	DeleteContact(ownerID, id string) error

	CreateOpportunity(ownerID string, req *crmdto.CreateOpportunityRequest) (*crmdomain.Opportunity, error)
	GetOpportunities(ownerID string) ([]*crmdomain.Opportunity, error)
	GetOpportunityByID(ownerID, id string) (*crmdomain.Opportunity, error)
	UpdateOpportunity(ownerID, id string, req *crmdto.UpdateOpportunityRequest) (*crmdomain.Opportunity, error)
	DeleteOpportunity(ownerID, id string) error
}
