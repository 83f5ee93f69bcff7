package usecase

import (
	"testing"

	crmdomain "dealflow-backend/internal/crm/domain"

	"github.com/stretchr/testify/assert"
)

func testMatchMaps() *MatchMaps {
	contacts := []*crmdomain.Contact{
		{ID: "c1", Email: "alice@globex.com", AccountID: "acc-globex", OpportunityID: "opp-globex-1"},
	}
	accounts := []*crmdomain.Account{
		{ID: "acc-globex", Name: "Globex", WebsiteDomain: "globex.com"},
		{ID: "acc-initech", Name: "Initech", WebsiteDomain: "www.initech.com"},
		{ID: "acc-hooli", Name: "Hooli", WebsiteDomain: "hooli.com"},
	}
	opportunities := []*crmdomain.Opportunity{
		{ID: "opp-globex-1", AccountID: "acc-globex", Name: "Globex Expansion"},
		{ID: "opp-initech-1", AccountID: "acc-initech", Name: "Initech Renewal"},
		{ID: "opp-hooli-1", AccountID: "acc-hooli", Name: "Hooli Platform Deal"},
		{ID: "opp-hooli-2", AccountID: "acc-hooli", Name: "Hooli Support Contract"},
	}
	return BuildMatchMaps(contacts, accounts, opportunities)
}

func TestMatchEvent(t *testing.T) {
	maps := testMatchMaps()

	t.Run("contact email match wins over domain match", func(t *testing.T) {
		result := maps.MatchEvent([]string{"alice@globex.com"}, "Weekly sync")

		assert.Equal(t, MatchStrategyContact, result.Strategy)
		assert.Equal(t, "opp-globex-1", result.OpportunityID)
		assert.Equal(t, "acc-globex", result.AccountID)
	})

	t.Run("contact email match is case insensitive", func(t *testing.T) {
		result := maps.MatchEvent([]string{"Alice@Globex.com"}, "")

		assert.Equal(t, MatchStrategyContact, result.Strategy)
	})

	t.Run("falls back to account domain for unknown attendees", func(t *testing.T) {
		result := maps.MatchEvent([]string{"newperson@initech.com"}, "Kickoff")

		assert.Equal(t, MatchStrategyDomain, result.Strategy)
		assert.Equal(t, "acc-initech", result.AccountID)
		assert.Equal(t, "opp-initech-1", result.OpportunityID)
	})

	t.Run("account website www prefix does not block the match", func(t *testing.T) {
		result := maps.MatchEvent([]string{"someone@initech.com"}, "")

		assert.Equal(t, "acc-initech", result.AccountID)
	})

	t.Run("title disambiguates between several opportunities", func(t *testing.T) {
		result := maps.MatchEvent([]string{"cto@hooli.com"}, "Hooli Platform Deal - technical review")

		assert.Equal(t, "acc-hooli", result.AccountID)
		assert.Equal(t, "opp-hooli-1", result.OpportunityID)
	})

	t.Run("ambiguous title leaves the opportunity unlinked", func(t *testing.T) {
		result := maps.MatchEvent([]string{"cto@hooli.com"}, "Quarterly catch-up")

		assert.Equal(t, MatchStrategyDomain, result.Strategy)
		assert.Equal(t, "acc-hooli", result.AccountID)
		assert.Empty(t, result.OpportunityID)
	})

	t.Run("no match for unrelated attendees", func(t *testing.T) {
		result := maps.MatchEvent([]string{"stranger@example.org"}, "Intro call")

		assert.Empty(t, result.Strategy)
		assert.Empty(t, result.AccountID)
		assert.Empty(t, result.OpportunityID)
	})
}
