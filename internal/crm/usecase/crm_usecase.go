package usecase

import (
	"errors"
	"strings"

	crmdomain "dealflow-backend/internal/crm/domain"
	crmdto "dealflow-backend/internal/crm/dto"
	"dealflow-backend/internal/crm/repository"
)

// crmUsecase implements CRMUsecase interface
type crmUsecase struct {
	accountRepo     repository.AccountRepository
	contactRepo     repository.ContactRepository
	opportunityRepo repository.OpportunityRepository
}

// NewCRMUsecase creates a new instance of crmUsecase
func NewCRMUsecase(accountRepo repository.AccountRepository, contactRepo repository.ContactRepository, opportunityRepo repository.OpportunityRepository) CRMUsecase {
	return &crmUsecase{
		accountRepo:     accountRepo,
		contactRepo:     contactRepo,
		opportunityRepo: opportunityRepo,
	}
}

func (u *crmUsecase) CreateAccount(ownerID string, req *crmdto.CreateAccountRequest) (*crmdomain.Account, error) {
	account := &crmdomain.Account{
		OwnerID:       ownerID,
		Name:          req.Name,
		WebsiteDomain: normalizeDomain(req.WebsiteDomain),
	}
	if err := u.accountRepo.Create(account); err != nil {
		return nil, err
	}
	return account, nil
}

func (u *crmUsecase) GetAccounts(ownerID string) ([]*crmdomain.Account, error) {
	return u.accountRepo.FindByOwner(ownerID)
}

func (u *crmUsecase) GetAccountByID(ownerID, id string) (*crmdomain.Account, error) {
	return u.accountRepo.FindByID(ownerID, id)
}

func (u *crmUsecase) UpdateAccount(ownerID, id string, req *crmdto.UpdateAccountRequest) (*crmdomain.Account, error) {
	account, err := u.accountRepo.FindByID(ownerID, id)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, errors.New("account not found")
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.WebsiteDomain != nil {
		account.WebsiteDomain = normalizeDomain(*req.WebsiteDomain)
	}

	if err := u.accountRepo.Update(account); err != nil {
		return nil, err
	}
	return account, nil
}

func (u *crmUsecase) DeleteAccount(ownerID, id string) error {
	return u.accountRepo.Delete(ownerID, id)
}

func (u *crmUsecase) CreateContact(ownerID string, req *crmdto.CreateContactRequest) (*crmdomain.Contact, error) {
	account, err := u.accountRepo.FindByID(ownerID, req.AccountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, errors.New("account not found")
	}

	contact := &crmdomain.Contact{
		OwnerID:       ownerID,
		Email:         req.Email,
		Name:          req.Name,
		Title:         req.Title,
		AccountID:     req.AccountID,
		OpportunityID: req.OpportunityID,
	}
	if err := u.contactRepo.Create(contact); err != nil {
		return nil, err
	}
	return contact, nil
}

func (u *crmUsecase) GetContacts(ownerID string) ([]*crmdomain.Contact, error) {
	return u.contactRepo.FindByOwner(ownerID)
}

func (u *crmUsecase) GetContactByID(ownerID, id string) (*crmdomain.Contact, error) {
	return u.contactRepo.FindByID(ownerID, id)
}

func (u *crmUsecase) UpdateContact(ownerID, id string, req *crmdto.UpdateContactRequest) (*crmdomain.Contact, error) {
	contact, err := u.contactRepo.FindByID(ownerID, id)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, errors.New("contact not found")
	}

	if req.Email != nil {
		contact.Email = *req.Email
	}
	if req.Name != nil {
		contact.Name = *req.Name
	}
	if req.Title != nil {
		contact.Title = *req.Title
	}
	if req.AccountID != nil {
		contact.AccountID = *req.AccountID
	}
	if req.OpportunityID != nil {
		contact.OpportunityID = *req.OpportunityID
	}

	if err := u.contactRepo.Update(contact); err != nil {
		return nil, err
	}
	return contact, nil
}

func (u *crmUsecase) DeleteContact(ownerID, id string) error {
	return u.contactRepo.Delete(ownerID, id)
}

func (u *crmUsecase) CreateOpportunity(ownerID string, req *crmdto.CreateOpportunityRequest) (*crmdomain.Opportunity, error) {
	account, err := u.accountRepo.FindByID(ownerID, req.AccountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, errors.New("account not found")
	}

	opp := &crmdomain.Opportunity{
		OwnerID:   ownerID,
		AccountID: req.AccountID,
		Name:      req.Name,
		Stage:     crmdomain.Stage(req.Stage),
		Amount:    req.Amount,
		CloseDate: req.CloseDate,
	}
	if err := u.opportunityRepo.Create(opp); err != nil {
		return nil, err
	}
	return opp, nil
}

func (u *crmUsecase) GetOpportunities(ownerID string) ([]*crmdomain.Opportunity, error) {
	return u.opportunityRepo.FindByOwner(ownerID)
}

func (u *crmUsecase) GetOpportunityByID(ownerID, id string) (*crmdomain.Opportunity, error) {
	return u.opportunityRepo.FindByID(ownerID, id)
}

func (u *crmUsecase) UpdateOpportunity(ownerID, id string, req *crmdto.UpdateOpportunityRequest) (*crmdomain.Opportunity, error) {
	opp, err := u.opportunityRepo.FindByID(ownerID, id)
	if err != nil {
		return nil, err
	}
	if opp == nil {
		return nil, errors.New("opportunity not found")
	}

	if req.Name != nil {
		opp.Name = *req.Name
	}
	if req.Stage != nil {
		opp.Stage = crmdomain.Stage(*req.Stage)
	}
	if req.Amount != nil {
		opp.Amount = *req.Amount
	}
	if req.CloseDate != nil {
		opp.CloseDate = req.CloseDate
	}

	if err := u.opportunityRepo.Update(opp); err != nil {
		return nil, err
	}
	return opp, nil
}

func (u *crmUsecase) DeleteOpportunity(ownerID, id string) error {
	return u.opportunityRepo.Delete(ownerID, id)
}

// normalizeDomain lowercases and strips a leading "www." so stored account
// domains compare directly against attendee email domains
func normalizeDomain(domain string) string {
	domain = strings.ToLower(strings.TrimSpace(domain))
	return strings.TrimPrefix(domain, "www.")
}
