package usecase

import (
	"time"

	insightdomain "dealflow-backend/internal/insight/domain"
)

const (
	// MeetingDedupWindow is the maximum start-time gap for two records
	// without calendar event ids to be treated as the same meeting.
	MeetingDedupWindow = time.Hour

	// MinMeetingsToConsolidate is the number of unique meetings an
	// opportunity needs before consolidation produces a snapshot.
	MinMeetingsToConsolidate = 2
)

// DedupResult carries the surviving meeting set after cross-source
// deduplication.
type DedupResult struct {
	Meetings          []*insightdomain.ParsedMeetingInsight
	DuplicatesRemoved int
}

// DeduplicateMeetings merges Gong and Granola insight records for one
// opportunity into a unique meeting set. Two records are the same meeting
// when they share a calendar event id, or when neither carries an event id
// and their start times fall within MeetingDedupWindow of each other.
// When both sources captured a meeting, the Gong record wins.
func DeduplicateMeetings(gong, granola []*insightdomain.ParsedMeetingInsight) DedupResult {
	result := DedupResult{Meetings: make([]*insightdomain.ParsedMeetingInsight, 0, len(gong)+len(granola))}
	result.Meetings = append(result.Meetings, gong...)

	for _, candidate := range granola {
		if matchesAny(candidate, gong) {
			result.DuplicatesRemoved++
			continue
		}
		result.Meetings = append(result.Meetings, candidate)
	}
	return result
}

func matchesAny(candidate *insightdomain.ParsedMeetingInsight, kept []*insightdomain.ParsedMeetingInsight) bool {
	for _, other := range kept {
		if sameMeeting(candidate, other) {
			return true
		}
	}
	return false
}

func sameMeeting(a, b *insightdomain.ParsedMeetingInsight) bool {
	if a.CalendarEventID != "" && b.CalendarEventID != "" {
		return a.CalendarEventID == b.CalendarEventID
	}
	// Time proximity only applies when neither record is anchored to a
	// calendar event. A mixed pair is never collapsed.
	if a.CalendarEventID != "" || b.CalendarEventID != "" {
		return false
	}
	gap := a.MeetingTime.Sub(b.MeetingTime)
	if gap < 0 {
		gap = -gap
	}
	return gap <= MeetingDedupWindow
}
