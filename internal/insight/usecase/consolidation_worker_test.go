package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	crmdomain "dealflow-backend/internal/crm/domain"
	insightdomain "dealflow-backend/internal/insight/domain"
	"dealflow-backend/pkg/ai"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- in-memory fakes ---

type stubOpportunityRepo struct {
	statuses []crmdomain.ConsolidationStatus
}

func (r *stubOpportunityRepo) Create(o *crmdomain.Opportunity) error { return nil }
func (r *stubOpportunityRepo) FindByID(ownerID, id string) (*crmdomain.Opportunity, error) {
	return &crmdomain.Opportunity{ID: id, OwnerID: "owner-1"}, nil
}
func (r *stubOpportunityRepo) FindByOwner(ownerID string) ([]*crmdomain.Opportunity, error) {
	return nil, nil
}
func (r *stubOpportunityRepo) FindByAccount(accountID string) ([]*crmdomain.Opportunity, error) {
	return nil, nil
}
func (r *stubOpportunityRepo) Update(o *crmdomain.Opportunity) error { return nil }
func (r *stubOpportunityRepo) UpdateConsolidationStatus(id string, status crmdomain.ConsolidationStatus) error {
	r.statuses = append(r.statuses, status)
	return nil
}
func (r *stubOpportunityRepo) Delete(ownerID, id string) error { return nil }

func (r *stubOpportunityRepo) lastStatus() crmdomain.ConsolidationStatus {
	if len(r.statuses) == 0 {
		return ""
	}
	return r.statuses[len(r.statuses)-1]
}

type stubInsightRepo struct {
	records []*insightdomain.ParsedMeetingInsight
}

func (r *stubInsightRepo) Create(i *insightdomain.ParsedMeetingInsight) error {
	r.records = append(r.records, i)
	return nil
}
func (r *stubInsightRepo) FindByOpportunityAndSource(opportunityID string, source insightdomain.TranscriptSource) ([]*insightdomain.ParsedMeetingInsight, error) {
	var out []*insightdomain.ParsedMeetingInsight
	for _, rec := range r.records {
		if rec.OpportunityID == opportunityID && rec.Source == source {
			out = append(out, rec)
		}
	}
	return out, nil
}
func (r *stubInsightRepo) FindByOpportunity(opportunityID string) ([]*insightdomain.ParsedMeetingInsight, error) {
	var out []*insightdomain.ParsedMeetingInsight
	for _, rec := range r.records {
		if rec.OpportunityID == opportunityID {
			out = append(out, rec)
		}
	}
	return out, nil
}

type stubConsolidatedRepo struct {
	snapshots map[string]*insightdomain.ConsolidatedInsight
}

func newStubConsolidatedRepo() *stubConsolidatedRepo {
	return &stubConsolidatedRepo{snapshots: make(map[string]*insightdomain.ConsolidatedInsight)}
}

func (r *stubConsolidatedRepo) Replace(snapshot *insightdomain.ConsolidatedInsight) error {
	r.snapshots[snapshot.OpportunityID] = snapshot
	return nil
}
func (r *stubConsolidatedRepo) FindByOpportunity(opportunityID string) (*insightdomain.ConsolidatedInsight, error) {
	return r.snapshots[opportunityID], nil
}

type stubConsolidator struct {
	result *ai.InsightConsolidation
	err    error
	calls  int
}

func (c *stubConsolidator) ConsolidateInsights(ctx context.Context, briefs []ai.MeetingBrief) (*ai.InsightConsolidation, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return c.result, nil
}

// --- fixtures ---

type workerFixture struct {
	worker       *ConsolidationWorkerService
	oppRepo      *stubOpportunityRepo
	insightRepo  *stubInsightRepo
	consolidated *stubConsolidatedRepo
	consolidator *stubConsolidator
}

func newWorkerFixture(consolidator *stubConsolidator) *workerFixture {
	oppRepo := &stubOpportunityRepo{}
	insightRepo := &stubInsightRepo{}
	consolidated := newStubConsolidatedRepo()
	worker := NewConsolidationWorkerService(oppRepo, insightRepo, consolidated, consolidator, 1)
	return &workerFixture{
		worker:       worker,
		oppRepo:      oppRepo,
		insightRepo:  insightRepo,
		consolidated: consolidated,
		consolidator: consolidator,
	}
}

func storedMeeting(opportunityID string, source insightdomain.TranscriptSource, eventID string, start time.Time) *insightdomain.ParsedMeetingInsight {
	return &insightdomain.ParsedMeetingInsight{
		OpportunityID:   opportunityID,
		Source:          source,
		CalendarEventID: eventID,
		MeetingTime:     start,
	}
}

// --- tests ---

func TestConsolidationWorker_ProcessJob(t *testing.T) {
	base := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	t.Run("consolidates when enough unique meetings exist", func(t *testing.T) {
		f := newWorkerFixture(&stubConsolidator{result: &ai.InsightConsolidation{
			PainPoints:     []string{"manual reporting"},
			Goals:          []string{"cut close time"},
			RiskAssessment: "medium",
			Summary:        "Deal is progressing.",
		}})
		require.NoError(t, f.insightRepo.Create(storedMeeting("opp-1", insightdomain.SourceGong, "", base)))
		require.NoError(t, f.insightRepo.Create(storedMeeting("opp-1", insightdomain.SourceGranola, "", base.AddDate(0, 0, 7))))

		f.worker.processJob(ConsolidationJob{OpportunityID: "opp-1", OwnerID: "owner-1"})

		snapshot, _ := f.consolidated.FindByOpportunity("opp-1")
		require.NotNil(t, snapshot)
		assert.Equal(t, 2, snapshot.MeetingCount)
		assert.Equal(t, "Deal is progressing.", snapshot.Summary)
		assert.Equal(t, crmdomain.ConsolidationCompleted, f.oppRepo.lastStatus())
		assert.Equal(t, []crmdomain.ConsolidationStatus{
			crmdomain.ConsolidationProcessing,
			crmdomain.ConsolidationCompleted,
		}, f.oppRepo.statuses)
	})

	t.Run("too few unique meetings goes back to idle without a snapshot", func(t *testing.T) {
		f := newWorkerFixture(&stubConsolidator{})
		require.NoError(t, f.insightRepo.Create(storedMeeting("opp-1", insightdomain.SourceGong, "", base)))

		f.worker.processJob(ConsolidationJob{OpportunityID: "opp-1", OwnerID: "owner-1"})

		snapshot, _ := f.consolidated.FindByOpportunity("opp-1")
		assert.Nil(t, snapshot)
		assert.Equal(t, crmdomain.ConsolidationIdle, f.oppRepo.lastStatus())
		assert.Zero(t, f.consolidator.calls)
	})

	t.Run("duplicates across sources do not count twice", func(t *testing.T) {
		f := newWorkerFixture(&stubConsolidator{})
		// Same real meeting captured by both providers
		require.NoError(t, f.insightRepo.Create(storedMeeting("opp-1", insightdomain.SourceGong, "ev-1", base)))
		require.NoError(t, f.insightRepo.Create(storedMeeting("opp-1", insightdomain.SourceGranola, "ev-1", base)))

		f.worker.processJob(ConsolidationJob{OpportunityID: "opp-1", OwnerID: "owner-1"})

		assert.Equal(t, crmdomain.ConsolidationIdle, f.oppRepo.lastStatus())
		assert.Zero(t, f.consolidator.calls)
	})

	t.Run("AI failure marks the run failed and keeps the old snapshot", func(t *testing.T) {
		f := newWorkerFixture(&stubConsolidator{err: errors.New("model unavailable")})
		previous := &insightdomain.ConsolidatedInsight{OpportunityID: "opp-1", Summary: "old summary", MeetingCount: 2}
		require.NoError(t, f.consolidated.Replace(previous))
		require.NoError(t, f.insightRepo.Create(storedMeeting("opp-1", insightdomain.SourceGong, "", base)))
		require.NoError(t, f.insightRepo.Create(storedMeeting("opp-1", insightdomain.SourceGranola, "", base.AddDate(0, 0, 7))))

		f.worker.processJob(ConsolidationJob{OpportunityID: "opp-1", OwnerID: "owner-1"})

		assert.Equal(t, crmdomain.ConsolidationFailed, f.oppRepo.lastStatus())

		snapshot, _ := f.consolidated.FindByOpportunity("opp-1")
		require.NotNil(t, snapshot)
		assert.Equal(t, "old summary", snapshot.Summary)
	})

	t.Run("a new run fully replaces the previous snapshot", func(t *testing.T) {
		f := newWorkerFixture(&stubConsolidator{result: &ai.InsightConsolidation{Summary: "fresh view"}})
		require.NoError(t, f.consolidated.Replace(&insightdomain.ConsolidatedInsight{
			OpportunityID:  "opp-1",
			Summary:        "stale view",
			RiskAssessment: "stale risk",
			MeetingCount:   5,
		}))
		require.NoError(t, f.insightRepo.Create(storedMeeting("opp-1", insightdomain.SourceGong, "", base)))
		require.NoError(t, f.insightRepo.Create(storedMeeting("opp-1", insightdomain.SourceGong, "", base.AddDate(0, 0, 7))))

		f.worker.processJob(ConsolidationJob{OpportunityID: "opp-1", OwnerID: "owner-1"})

		snapshot, _ := f.consolidated.FindByOpportunity("opp-1")
		require.NotNil(t, snapshot)
		assert.Equal(t, "fresh view", snapshot.Summary)
		assert.Empty(t, snapshot.RiskAssessment)
		assert.Equal(t, 2, snapshot.MeetingCount)
	})
}
