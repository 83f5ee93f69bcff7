package usecase

import "strings"

// IsExternalEvent reports whether an event has at least one attendee outside
// the organization's email domain. The acting user and the event organizer
// are never counted; an event whose only attendee is the organizer is always
// internal. With no organization domain configured, or no attendees left
// after the exclusions, the event is internal: never flag external without
// evidence.
func IsExternalEvent(attendees []string, orgDomain, selfEmail, organizerEmail string) bool {
	orgDomain = normalizeDomain(orgDomain)
	if orgDomain == "" {
		return false
	}

	self := strings.ToLower(strings.TrimSpace(selfEmail))
	organizer := strings.ToLower(strings.TrimSpace(organizerEmail))

	for _, attendee := range attendees {
		email := strings.ToLower(strings.TrimSpace(attendee))
		if email == "" || email == self || email == organizer {
			continue
		}

		domain := emailDomain(email)
		if domain == "" {
			continue
		}

		if !matchesOrgDomain(domain, orgDomain) {
			return true
		}
	}

	return false
}

// matchesOrgDomain treats subdomains of the organization as internal:
// x.org.com matches org.com, but org.company.com does not.
func matchesOrgDomain(domain, orgDomain string) bool {
	if domain == orgDomain {
		return true
	}
	return strings.HasSuffix(domain, "."+orgDomain)
}

func emailDomain(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return ""
	}
	return normalizeDomain(email[at+1:])
}

func normalizeDomain(domain string) string {
	domain = strings.ToLower(strings.TrimSpace(domain))
	return strings.TrimPrefix(domain, "www.")
}
