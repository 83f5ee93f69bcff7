package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	caldomain "dealflow-backend/internal/calendar/domain"

	"github.com/stretchr/testify/assert"
)

// scriptedSyncUsecase returns one scripted error per SyncAllUsers call and
// keeps returning the last entry once the script is exhausted
type scriptedSyncUsecase struct {
	script []error
	calls  int
}

func (s *scriptedSyncUsecase) SyncAllUsers(ctx context.Context) error {
	idx := s.calls
	s.calls++
	if idx >= len(s.script) {
		idx = len(s.script) - 1
	}
	return s.script[idx]
}

func (s *scriptedSyncUsecase) SyncUser(ctx context.Context, userID string) error { return nil }
func (s *scriptedSyncUsecase) GetSyncStatus(userID string) (*caldomain.CalendarSyncState, error) {
	return nil, nil
}
func (s *scriptedSyncUsecase) GetEvents(userID string, limit, offset int) ([]*caldomain.CalendarEvent, int64, error) {
	return nil, 0, nil
}

func TestRunBatch(t *testing.T) {
	t.Run("persistent infrastructure failure gives up after the retry budget", func(t *testing.T) {
		uc := &scriptedSyncUsecase{script: []error{errors.New("database unreachable")}}
		s := NewCalendarSyncScheduler(uc, time.Minute)

		s.runBatch()

		// Initial attempt plus maxBatchRetries retries
		assert.Equal(t, 1+maxBatchRetries, uc.calls)
	})

	t.Run("success on the first attempt does not retry", func(t *testing.T) {
		uc := &scriptedSyncUsecase{script: []error{nil}}
		s := NewCalendarSyncScheduler(uc, time.Minute)

		s.runBatch()

		assert.Equal(t, 1, uc.calls)
	})

	t.Run("retry stops as soon as an attempt succeeds", func(t *testing.T) {
		uc := &scriptedSyncUsecase{script: []error{errors.New("database unreachable"), nil}}
		s := NewCalendarSyncScheduler(uc, time.Minute)

		s.runBatch()

		assert.Equal(t, 2, uc.calls)
	})
}
