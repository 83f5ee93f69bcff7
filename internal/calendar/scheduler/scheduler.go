package scheduler

import (
	"context"
	"time"

	"dealflow-backend/internal/calendar/usecase"

	log "github.com/sirupsen/logrus"
)

// maxBatchRetries bounds how often an infrastructure-level batch failure is
// retried within one tick. Per-user failures never count against this.
const maxBatchRetries = 2

// CalendarSyncScheduler runs the calendar sync batch on a fixed interval
type CalendarSyncScheduler struct {
	syncUsecase usecase.SyncUsecase
	interval    time.Duration
	stopChan    chan struct{}
}

// NewCalendarSyncScheduler creates a new scheduler
func NewCalendarSyncScheduler(syncUsecase usecase.SyncUsecase, interval time.Duration) *CalendarSyncScheduler {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	return &CalendarSyncScheduler{
		syncUsecase: syncUsecase,
		interval:    interval,
		stopChan:    make(chan struct{}),
	}
}

// Start begins the scheduler loop
func (s *CalendarSyncScheduler) Start() {
	log.Printf("[SyncScheduler] Starting calendar sync scheduler (interval: %s)", s.interval)

	go func() {
		// Run immediately on start
		s.runBatch()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.runBatch()
			case <-s.stopChan:
				log.Println("[SyncScheduler] Scheduler stopped")
				return
			}
		}
	}()
}

// Stop gracefully stops the scheduler
func (s *CalendarSyncScheduler) Stop() {
	close(s.stopChan)
}

func (s *CalendarSyncScheduler) runBatch() {
	ctx := context.Background()

	var err error
	for attempt := 0; attempt <= maxBatchRetries; attempt++ {
		if attempt > 0 {
			log.Printf("[SyncScheduler] Retrying batch sync (attempt %d/%d)", attempt, maxBatchRetries)
		}
		err = s.syncUsecase.SyncAllUsers(ctx)
		if err == nil {
			return
		}
		log.Printf("[SyncScheduler] Batch sync failed: %v", err)
	}

	log.Printf("[SyncScheduler] Batch sync gave up after %d retries: %v", maxBatchRetries, err)
}
