package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	authdomain "dealflow-backend/internal/auth/domain"
	authrepo "dealflow-backend/internal/auth/repository"
	caldomain "dealflow-backend/internal/calendar/domain"
	calrepo "dealflow-backend/internal/calendar/repository"
	crmrepo "dealflow-backend/internal/crm/repository"

	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"gorm.io/datatypes"
)

const (
	// ProviderGoogle is the provider key under which sync state is stored
	ProviderGoogle = "google"

	// SyncWindowDays bounds the initial full sync to now ± 90 days. The
	// window is fixed when the sync state is created and reused whenever
	// the cursor is invalidated.
	SyncWindowDays = 90
)

// syncUsecase implements SyncUsecase interface
type syncUsecase struct {
	userRepo        authrepo.UserRepository
	contactRepo     crmrepo.ContactRepository
	accountRepo     crmrepo.AccountRepository
	opportunityRepo crmrepo.OpportunityRepository
	syncStateRepo   calrepo.SyncStateRepository
	eventRepo       calrepo.EventRepository
	provider        caldomain.CalendarProvider
}

// NewSyncUsecase creates a new instance of syncUsecase
func NewSyncUsecase(
	userRepo authrepo.UserRepository,
	contactRepo crmrepo.ContactRepository,
	accountRepo crmrepo.AccountRepository,
	opportunityRepo crmrepo.OpportunityRepository,
	syncStateRepo calrepo.SyncStateRepository,
	eventRepo calrepo.EventRepository,
	provider caldomain.CalendarProvider,
) SyncUsecase {
	return &syncUsecase{
		userRepo:        userRepo,
		contactRepo:     contactRepo,
		accountRepo:     accountRepo,
		opportunityRepo: opportunityRepo,
		syncStateRepo:   syncStateRepo,
		eventRepo:       eventRepo,
		provider:        provider,
	}
}

func (u *syncUsecase) SyncAllUsers(ctx context.Context) error {
	users, err := u.userRepo.FindSyncEligible()
	if err != nil {
		return fmt.Errorf("failed to list sync-eligible users: %w", err)
	}

	log.Printf("[CalendarSync] Starting batch sync for %d users", len(users))

	for _, user := range users {
		// A single user's failure never aborts the batch; the error is
		// already recorded in their sync state by syncUser.
		if err := u.syncUser(ctx, user); err != nil {
			log.Printf("[CalendarSync] User %s sync failed: %v", user.ID, err)
		}
	}

	return nil
}

func (u *syncUsecase) SyncUser(ctx context.Context, userID string) error {
	user, err := u.userRepo.FindByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return errors.New("user not found")
	}
	if user.GoogleRefreshToken == "" {
		return errors.New("user has no calendar connection")
	}
	return u.syncUser(ctx, user)
}

func (u *syncUsecase) GetSyncStatus(userID string) (*caldomain.CalendarSyncState, error) {
	return u.syncStateRepo.Get(userID, ProviderGoogle)
}

func (u *syncUsecase) GetEvents(userID string, limit, offset int) ([]*caldomain.CalendarEvent, int64, error) {
	return u.eventRepo.FindByUser(userID, limit, offset)
}

func (u *syncUsecase) syncUser(ctx context.Context, user *authdomain.User) error {
	now := time.Now()
	state, err := u.syncStateRepo.GetOrCreate(user.ID, ProviderGoogle, &caldomain.CalendarSyncState{
		TimeMin: now.AddDate(0, 0, -SyncWindowDays),
		TimeMax: now.AddDate(0, 0, SyncWindowDays),
	})
	if err != nil {
		return err
	}

	maps, err := u.buildMatchMaps(user.ID)
	if err != nil {
		return u.recordFailure(state, err)
	}

	newToken, err := u.runSyncPass(ctx, user, state, maps)
	if errors.Is(err, caldomain.ErrSyncTokenExpired) {
		// Cursor invalidation is not a fatal error: clear the cursor,
		// record the reason, and rerun as a full sync right away.
		log.Printf("[CalendarSync] Sync token expired for user %s, falling back to full sync", user.ID)
		state.SyncToken = ""
		state.LastSyncError = "sync token invalidated by provider; full sync re-run"
		if updateErr := u.syncStateRepo.Update(state); updateErr != nil {
			return updateErr
		}
		newToken, err = u.runSyncPass(ctx, user, state, maps)
	}
	if err != nil {
		return u.recordFailure(state, err)
	}

	syncedAt := time.Now()
	state.SyncToken = newToken
	state.LastSyncAt = &syncedAt
	state.LastSyncStatus = caldomain.SyncStatusSuccess
	state.LastSyncError = ""
	return u.syncStateRepo.Update(state)
}

// recordFailure persists the error on the sync state. The cursor is left
// untouched so the next run retries the same mode.
func (u *syncUsecase) recordFailure(state *caldomain.CalendarSyncState, cause error) error {
	state.LastSyncStatus = caldomain.SyncStatusFailed
	state.LastSyncError = cause.Error()
	if err := u.syncStateRepo.Update(state); err != nil {
		log.Printf("[CalendarSync] Failed to record sync error: %v", err)
	}
	return cause
}

// runSyncPass pages through the provider and reconciles every returned
// event. Returns the fresh sync token handed back on the final page.
func (u *syncUsecase) runSyncPass(ctx context.Context, user *authdomain.User, state *caldomain.CalendarSyncState, maps *MatchMaps) (string, error) {
	query := caldomain.EventQuery{}
	if state.SyncToken != "" {
		query.SyncToken = state.SyncToken
	} else {
		query.TimeMin = state.TimeMin
		query.TimeMax = state.TimeMax
	}

	onRefresh := u.makeTokenUpdateCallback(user.ID)

	for {
		page, err := u.provider.ListEvents(ctx, user.GoogleAccessToken, user.GoogleRefreshToken, query, onRefresh)
		if err != nil {
			return "", err
		}

		for _, event := range page.Events {
			// Per-event failures are logged and skipped; the pass keeps
			// going and is still reported successful overall.
			if err := u.reconcileEvent(user, event, maps); err != nil {
				log.Printf("[CalendarSync] User %s event %s: %v", user.ID, event.ID, err)
			}
		}

		if page.NextPageToken == "" {
			return page.NextSyncToken, nil
		}
		query.PageToken = page.NextPageToken
	}
}

func (u *syncUsecase) reconcileEvent(user *authdomain.User, event *caldomain.ProviderEvent, maps *MatchMaps) error {
	if event.Cancelled {
		// No-op if we never stored it
		return u.eventRepo.DeleteByProviderEventID(user.ID, event.ID)
	}

	if !IsExternalEvent(event.Attendees, user.OrgDomain, user.Email, event.Organizer) {
		existing, err := u.eventRepo.FindByProviderEventID(user.ID, event.ID)
		if err != nil {
			return err
		}
		if existing == nil {
			// Only external events are stored
			return nil
		}
		// The event was external before and no longer is
		return u.eventRepo.DeleteByProviderEventID(user.ID, event.ID)
	}

	match := maps.MatchEvent(event.Attendees, event.Title)

	return u.eventRepo.Upsert(&caldomain.CalendarEvent{
		UserID:          user.ID,
		ProviderEventID: event.ID,
		Title:           event.Title,
		Description:     event.Description,
		Location:        event.Location,
		StartTime:       event.StartTime,
		EndTime:         event.EndTime,
		Attendees:       datatypes.NewJSONSlice(event.Attendees),
		Organizer:       event.Organizer,
		MeetingURL:      event.MeetingURL,
		IsExternal:      true,
		OpportunityID:   match.OpportunityID,
		AccountID:       match.AccountID,
		MatchStrategy:   match.Strategy,
	})
}

func (u *syncUsecase) buildMatchMaps(userID string) (*MatchMaps, error) {
	contacts, err := u.contactRepo.FindByOwner(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load contacts: %w", err)
	}
	accounts, err := u.accountRepo.FindByOwner(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}
	opportunities, err := u.opportunityRepo.FindByOwner(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load opportunities: %w", err)
	}
	return BuildMatchMaps(contacts, accounts, opportunities), nil
}

func (u *syncUsecase) makeTokenUpdateCallback(userID string) caldomain.TokenUpdateFunc {
	return func(token *oauth2.Token) error {
		return u.userRepo.UpdateGoogleTokens(userID, token.AccessToken, token.RefreshToken)
	}
}
