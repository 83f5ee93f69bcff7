package delivery

import (
	"net/http"

	crmdto "dealflow-backend/internal/crm/dto"
	"dealflow-backend/internal/crm/usecase"

	"github.com/gin-gonic/gin"
)

type CRMHandler struct {
	crmUsecase usecase.CRMUsecase
}

func NewCRMHandler(crmUsecase usecase.CRMUsecase) *CRMHandler {
	return &CRMHandler{
		crmUsecase: crmUsecase,
	}
}

// Accounts

func (h *CRMHandler) CreateAccount(c *gin.Context) {
	var req crmdto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account, err := h.crmUsecase.CreateAccount(c.GetString("userID"), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, account)
}

func (h *CRMHandler) GetAccounts(c *gin.Context) {
	accounts, err := h.crmUsecase.GetAccounts(c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, crmdto.AccountsResponse{Accounts: accounts})
}

func (h *CRMHandler) GetAccountByID(c *gin.Context) {
	account, err := h.crmUsecase.GetAccountByID(c.GetString("userID"), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if account == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "account not found"})
		return
	}

	c.JSON(http.StatusOK, account)
}

func (h *CRMHandler) UpdateAccount(c *gin.Context) {
	var req crmdto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account, err := h.crmUsecase.UpdateAccount(c.GetString("userID"), c.Param("id"), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, account)
}

func (h *CRMHandler) DeleteAccount(c *gin.Context) {
	if err := h.crmUsecase.DeleteAccount(c.GetString("userID"), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "account deleted"})
}

// Contacts

func (h *CRMHandler) CreateContact(c *gin.Context) {
	var req crmdto.CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contact, err := h.crmUsecase.CreateContact(c.GetString("userID"), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, contact)
}

func (h *CRMHandler) GetContacts(c *gin.Context) {
	contacts, err := h.crmUsecase.GetContacts(c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, crmdto.ContactsResponse{Contacts: contacts})
}

func (h *CRMHandler) GetContactByID(c *gin.Context) {
	contact, err := h.crmUsecase.GetContactByID(c.GetString("userID"), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if contact == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "contact not found"})
		return
	}

	c.JSON(http.StatusOK, contact)
}

func (h *CRMHandler) UpdateContact(c *gin.Context) {
	var req crmdto.UpdateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contact, err := h.crmUsecase.UpdateContact(c.GetString("userID"), c.Param("id"), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, contact)
}

func (h *CRMHandler) DeleteContact(c *gin.Context) {
	if err := h.crmUsecase.DeleteContact(c.GetString("userID"), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "contact deleted"})
}

// Opportunities

func (h *CRMHandler) CreateOpportunity(c *gin.Context) {
	var req crmdto.CreateOpportunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	opp, err := h.crmUsecase.CreateOpportunity(c.GetString("userID"), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, opp)
}

func (h *CRMHandler) GetOpportunities(c *gin.Context) {
	opps, err := h.crmUsecase.GetOpportunities(c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, crmdto.OpportunitiesResponse{Opportunities: opps})
}

func (h *CRMHandler) GetOpportunityByID(c *gin.Context) {
	opp, err := h.crmUsecase.GetOpportunityByID(c.GetString("userID"), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if opp == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "opportunity not found"})
		return
	}

	c.JSON(http.StatusOK, opp)
}

func (h *CRMHandler) UpdateOpportunity(c *gin.Context) {
	var req crmdto.UpdateOpportunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	opp, err := h.crmUsecase.UpdateOpportunity(c.GetString("userID"), c.Param("id"), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, opp)
}

func (h *CRMHandler) DeleteOpportunity(c *gin.Context) {
	if err := h.crmUsecase.DeleteOpportunity(c.GetString("userID"), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "opportunity deleted"})
}
