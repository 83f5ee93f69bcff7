package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	crmdomain "dealflow-backend/internal/crm/domain"
	crmrepository "dealflow-backend/internal/crm/repository"
	insightdomain "dealflow-backend/internal/insight/domain"
	"dealflow-backend/internal/insight/repository"
	"dealflow-backend/pkg/ai"

	log "github.com/sirupsen/logrus"
)

// ConsolidationJob represents a request to rebuild one opportunity's
// consolidated insight snapshot
type ConsolidationJob struct {
	OpportunityID string
	OwnerID       string
}

// Notifier receives consolidation outcomes for delivery to the deal owner
type Notifier interface {
	NotifyConsolidationComplete(opportunityID, ownerID string, meetingCount int)
}

// ConsolidationWorkerService handles background AI insight consolidation
type ConsolidationWorkerService struct {
	opportunityRepo  crmrepository.OpportunityRepository
	insightRepo      repository.InsightRepository
	consolidatedRepo repository.ConsolidatedRepository
	consolidator     ai.ConsolidatorService
	notifier         Notifier
	jobQueue         chan ConsolidationJob
	workerWg         sync.WaitGroup
	workerCount      int
	started          bool
	mu               sync.Mutex
}

// NewConsolidationWorkerService creates a new consolidation worker service
func NewConsolidationWorkerService(
	opportunityRepo crmrepository.OpportunityRepository,
	insightRepo repository.InsightRepository,
	consolidatedRepo repository.ConsolidatedRepository,
	consolidator ai.ConsolidatorService,
	workerCount int,
) *ConsolidationWorkerService {
	if workerCount <= 0 {
		workerCount = 3 // Default to 3 workers
	}

	return &ConsolidationWorkerService{
		opportunityRepo:  opportunityRepo,
		insightRepo:      insightRepo,
		consolidatedRepo: consolidatedRepo,
		consolidator:     consolidator,
		jobQueue:         make(chan ConsolidationJob, 500), // Buffered channel
		workerCount:      workerCount,
	}
}

// SetNotifier sets the outcome notifier (optional)
func (s *ConsolidationWorkerService) SetNotifier(n Notifier) {
	s.notifier = n
}

// Start starts the consolidation workers
func (s *ConsolidationWorkerService) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return
	}

	for i := 0; i < s.workerCount; i++ {
		s.workerWg.Add(1)
		go s.worker(i)
	}
	s.started = true
	log.Printf("[ConsolidationWorker] Started %d workers", s.workerCount)
}

// Stop stops all workers gracefully
func (s *ConsolidationWorkerService) Stop() {
	close(s.jobQueue)
	s.workerWg.Wait()
	log.Println("[ConsolidationWorker] All workers stopped")
}

// QueueJob adds a job to the queue (non-blocking)
func (s *ConsolidationWorkerService) QueueJob(job ConsolidationJob) bool {
	select {
	case s.jobQueue <- job:
		return true
	default:
		return false // Queue full
	}
}

// worker processes consolidation jobs from the queue
func (s *ConsolidationWorkerService) worker(id int) {
	defer s.workerWg.Done()

	for job := range s.jobQueue {
		s.processJob(job)
	}

	log.Printf("[ConsolidationWorker] Worker %d stopped", id)
}

// processJob rebuilds the snapshot for one opportunity
func (s *ConsolidationWorkerService) processJob(job ConsolidationJob) {
	if err := s.opportunityRepo.UpdateConsolidationStatus(job.OpportunityID, crmdomain.ConsolidationProcessing); err != nil {
		log.Printf("[ConsolidationWorker] Status update error for %s: %v", job.OpportunityID, err)
		return
	}

	gong, err := s.insightRepo.FindByOpportunityAndSource(job.OpportunityID, insightdomain.SourceGong)
	if err != nil {
		s.fail(job.OpportunityID, err)
		return
	}
	granola, err := s.insightRepo.FindByOpportunityAndSource(job.OpportunityID, insightdomain.SourceGranola)
	if err != nil {
		s.fail(job.OpportunityID, err)
		return
	}

	result := DeduplicateMeetings(gong, granola)
	if result.DuplicatesRemoved > 0 {
		log.Printf("[ConsolidationWorker] Removed %d duplicate meetings for %s", result.DuplicatesRemoved, job.OpportunityID)
	}

	// Not enough distinct meetings yet: no snapshot, back to idle
	if len(result.Meetings) < MinMeetingsToConsolidate {
		if err := s.opportunityRepo.UpdateConsolidationStatus(job.OpportunityID, crmdomain.ConsolidationIdle); err != nil {
			log.Printf("[ConsolidationWorker] Status update error for %s: %v", job.OpportunityID, err)
		}
		return
	}

	sort.Slice(result.Meetings, func(i, j int) bool {
		return result.Meetings[i].MeetingTime.Before(result.Meetings[j].MeetingTime)
	})

	briefs := make([]ai.MeetingBrief, 0, len(result.Meetings))
	for _, m := range result.Meetings {
		briefs = append(briefs, ai.MeetingBrief{
			Source:         string(m.Source),
			MeetingTime:    m.MeetingTime,
			PainPoints:     m.PainPoints,
			Goals:          m.Goals,
			RiskAssessment: m.RiskAssessment,
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	consolidation, err := s.consolidator.ConsolidateInsights(ctx, briefs)
	if err != nil {
		log.Printf("[ConsolidationWorker] AI error for %s: %v", job.OpportunityID, err)
		s.fail(job.OpportunityID, err)
		return
	}

	snapshot := &insightdomain.ConsolidatedInsight{
		OpportunityID:  job.OpportunityID,
		PainPoints:     consolidation.PainPoints,
		Goals:          consolidation.Goals,
		RiskAssessment: consolidation.RiskAssessment,
		Summary:        consolidation.Summary,
		MeetingCount:   len(result.Meetings),
		ConsolidatedAt: time.Now(),
	}
	if err := s.consolidatedRepo.Replace(snapshot); err != nil {
		s.fail(job.OpportunityID, err)
		return
	}

	if err := s.opportunityRepo.UpdateConsolidationStatus(job.OpportunityID, crmdomain.ConsolidationCompleted); err != nil {
		log.Printf("[ConsolidationWorker] Status update error for %s: %v", job.OpportunityID, err)
	}

	if s.notifier != nil {
		s.notifier.NotifyConsolidationComplete(job.OpportunityID, job.OwnerID, len(result.Meetings))
	}

	log.Printf("[ConsolidationWorker] Consolidated %d meetings for %s", len(result.Meetings), job.OpportunityID)
}

// fail marks the run failed. The previous snapshot, if any, is kept as-is;
// a fresh trigger is required to retry.
func (s *ConsolidationWorkerService) fail(opportunityID string, cause error) {
	log.Printf("[ConsolidationWorker] Consolidation failed for %s: %v", opportunityID, cause)
	if err := s.opportunityRepo.UpdateConsolidationStatus(opportunityID, crmdomain.ConsolidationFailed); err != nil {
		log.Printf("[ConsolidationWorker] Status update error for %s: %v", opportunityID, err)
	}
}
