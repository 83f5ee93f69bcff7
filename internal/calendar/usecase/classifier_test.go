package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsExternalEvent(t *testing.T) {
	const orgDomain = "acme.com"
	const self = "rep@acme.com"

	t.Run("flags external when any attendee is outside the org", func(t *testing.T) {
		attendees := []string{"rep@acme.com", "colleague@acme.com", "buyer@globex.com"}
		assert.True(t, IsExternalEvent(attendees, orgDomain, self, "rep@acme.com"))
	})

	t.Run("internal when all attendees share the org domain", func(t *testing.T) {
		attendees := []string{"rep@acme.com", "colleague@acme.com"}
		assert.False(t, IsExternalEvent(attendees, orgDomain, self, "rep@acme.com"))
	})

	t.Run("internal when no attendees", func(t *testing.T) {
		assert.False(t, IsExternalEvent(nil, orgDomain, self, "rep@acme.com"))
	})

	t.Run("internal when org domain is not configured", func(t *testing.T) {
		attendees := []string{"buyer@globex.com"}
		assert.False(t, IsExternalEvent(attendees, "", self, ""))
	})

	t.Run("ignores the acting user regardless of domain", func(t *testing.T) {
		// Solo calendar blocks only list the user themselves
		attendees := []string{"rep@acme.com"}
		assert.False(t, IsExternalEvent(attendees, orgDomain, self, ""))
	})

	t.Run("an event with only the organizer present is internal", func(t *testing.T) {
		// An outside organizer alone is not evidence of an external meeting
		attendees := []string{"carol@partner.com"}
		assert.False(t, IsExternalEvent(attendees, orgDomain, self, "carol@partner.com"))
	})

	t.Run("outside organizer plus another outside attendee is external", func(t *testing.T) {
		attendees := []string{"carol@partner.com", "dave@partner.com"}
		assert.True(t, IsExternalEvent(attendees, orgDomain, self, "carol@partner.com"))
	})

	t.Run("organizer comparison is case insensitive", func(t *testing.T) {
		attendees := []string{"Carol@Partner.com"}
		assert.False(t, IsExternalEvent(attendees, orgDomain, self, "carol@partner.com"))
	})

	t.Run("subdomain attendees are internal", func(t *testing.T) {
		attendees := []string{"rep@acme.com", "eng@eu.acme.com"}
		assert.False(t, IsExternalEvent(attendees, orgDomain, self, "rep@acme.com"))
	})

	t.Run("suffix overlap without a dot boundary is external", func(t *testing.T) {
		attendees := []string{"someone@notacme.com"}
		assert.True(t, IsExternalEvent(attendees, orgDomain, self, self))
	})

	t.Run("org domain comparison is case insensitive", func(t *testing.T) {
		attendees := []string{"Colleague@ACME.com"}
		assert.False(t, IsExternalEvent(attendees, "Acme.COM", self, ""))
	})

	t.Run("www prefix on the org domain is stripped", func(t *testing.T) {
		attendees := []string{"colleague@acme.com"}
		assert.False(t, IsExternalEvent(attendees, "www.acme.com", self, ""))

		attendees = []string{"buyer@globex.com"}
		assert.True(t, IsExternalEvent(attendees, "www.acme.com", self, ""))
	})

	t.Run("attendees without a parseable domain are skipped", func(t *testing.T) {
		attendees := []string{"not-an-email", "colleague@acme.com"}
		assert.False(t, IsExternalEvent(attendees, orgDomain, self, ""))
	})
}
