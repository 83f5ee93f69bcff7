package usecase

import (
	"strings"

	crmdomain "dealflow-backend/internal/crm/domain"
)

// Match strategy names persisted on matched events
const (
	MatchStrategyContact = "contact_email"
	MatchStrategyDomain  = "account_domain"
)

// MatchMaps are the in-memory lookup tables built once per sync pass from
// the owner's CRM records
type MatchMaps struct {
	emailToContact       map[string]*crmdomain.Contact
	domainToAccounts     map[string][]*crmdomain.Account
	accountOpportunities map[string][]*crmdomain.Opportunity
}

// MatchResult carries the optional CRM linkage for one event. Empty ids mean
// no match; the event is still stored when external, just unlinked.
type MatchResult struct {
	OpportunityID string
	AccountID     string
	Strategy      string
}

// BuildMatchMaps indexes contacts by email, accounts by website domain and
// opportunities by account
func BuildMatchMaps(contacts []*crmdomain.Contact, accounts []*crmdomain.Account, opportunities []*crmdomain.Opportunity) *MatchMaps {
	m := &MatchMaps{
		emailToContact:       make(map[string]*crmdomain.Contact, len(contacts)),
		domainToAccounts:     make(map[string][]*crmdomain.Account),
		accountOpportunities: make(map[string][]*crmdomain.Opportunity),
	}

	for _, contact := range contacts {
		email := strings.ToLower(strings.TrimSpace(contact.Email))
		if email != "" {
			m.emailToContact[email] = contact
		}
	}

	for _, account := range accounts {
		domain := normalizeDomain(account.WebsiteDomain)
		if domain != "" {
			m.domainToAccounts[domain] = append(m.domainToAccounts[domain], account)
		}
	}

	for _, opp := range opportunities {
		m.accountOpportunities[opp.AccountID] = append(m.accountOpportunities[opp.AccountID], opp)
	}

	return m
}

// MatchEvent resolves an event's CRM linkage. Strategies are tried in
// priority order and the first hit wins: a contact-email match is
// unambiguous, a domain match may need the event title to disambiguate
// between several opportunities on the same account.
func (m *MatchMaps) MatchEvent(attendees []string, title string) MatchResult {
	if result, ok := m.matchByContactEmail(attendees); ok {
		return result
	}
	if result, ok := m.matchByAccountDomain(attendees, title); ok {
		return result
	}
	return MatchResult{}
}

func (m *MatchMaps) matchByContactEmail(attendees []string) (MatchResult, bool) {
	for _, attendee := range attendees {
		email := strings.ToLower(strings.TrimSpace(attendee))
		contact, ok := m.emailToContact[email]
		if !ok {
			continue
		}
		return MatchResult{
			OpportunityID: contact.OpportunityID,
			AccountID:     contact.AccountID,
			Strategy:      MatchStrategyContact,
		}, true
	}
	return MatchResult{}, false
}

func (m *MatchMaps) matchByAccountDomain(attendees []string, title string) (MatchResult, bool) {
	for _, attendee := range attendees {
		domain := emailDomain(strings.ToLower(strings.TrimSpace(attendee)))
		if domain == "" {
			continue
		}
		accounts, ok := m.domainToAccounts[domain]
		if !ok || len(accounts) == 0 {
			continue
		}

		account := accounts[0]
		result := MatchResult{
			AccountID: account.ID,
			Strategy:  MatchStrategyDomain,
		}

		opportunities := m.accountOpportunities[account.ID]
		switch len(opportunities) {
		case 0:
			// Account linked, opportunity left unset
		case 1:
			result.OpportunityID = opportunities[0].ID
		default:
			// Several opportunities: disambiguate by title overlap with the
			// opportunity name, otherwise leave the opportunity unlinked
			if opp := disambiguateByTitle(opportunities, title); opp != nil {
				result.OpportunityID = opp.ID
			}
		}

		return result, true
	}
	return MatchResult{}, false
}

func disambiguateByTitle(opportunities []*crmdomain.Opportunity, title string) *crmdomain.Opportunity {
	title = strings.ToLower(strings.TrimSpace(title))
	if title == "" {
		return nil
	}
	for _, opp := range opportunities {
		name := strings.ToLower(strings.TrimSpace(opp.Name))
		if name == "" {
			continue
		}
		if strings.Contains(title, name) || strings.Contains(name, title) {
			return opp
		}
	}
	return nil
}
