package dto

import (
	"time"

	crmdomain "dealflow-backend/internal/crm/domain"
)

type CreateAccountRequest struct {
	Name          string `json:"name" binding:"required"`
	WebsiteDomain string `json:"website_domain"`
}

type UpdateAccountRequest struct {
	Name          *string `json:"name"`
	WebsiteDomain *string `json:"website_domain"`
}

type CreateContactRequest struct {
	Email         string `json:"email" binding:"required,email"`
	Name          string `json:"name"`
	Title         string `json:"title"`
	AccountID     string `json:"account_id" binding:"required"`
	OpportunityID string `json:"opportunity_id"`
}

type UpdateContactRequest struct {
	Email         *string `json:"email"`
	Name          *string `json:"name"`
	Title         *string `json:"title"`
	AccountID     *string `json:"account_id"`
	OpportunityID *string `json:"opportunity_id"`
}

type CreateOpportunityRequest struct {
	Name      string     `json:"name" binding:"required"`
	AccountID string     `json:"account_id" binding:"required"`
	Stage     string     `json:"stage"`
	Amount    float64    `json:"amount"`
	CloseDate *time.Time `json:"close_date"`
}

type UpdateOpportunityRequest struct {
	Name      *string    `json:"name"`
	Stage     *string    `json:"stage"`
	Amount    *float64   `json:"amount"`
	CloseDate *time.Time `json:"close_date"`
}

type AccountsResponse struct {
	Accounts []*crmdomain.Account `json:"accounts"`
}

type ContactsResponse struct {
	Contacts []*crmdomain.Contact `json:"contacts"`
}

type OpportunitiesResponse struct {
	Opportunities []*crmdomain.Opportunity `json:"opportunities"`
}
