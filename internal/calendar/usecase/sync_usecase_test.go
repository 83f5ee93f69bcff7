package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	authdomain "dealflow-backend/internal/auth/domain"
	caldomain "dealflow-backend/internal/calendar/domain"
	crmdomain "dealflow-backend/internal/crm/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- in-memory fakes ---

type fakeUserRepo struct {
	users []*authdomain.User
}

func (r *fakeUserRepo) Create(user *authdomain.User) error { return nil }
func (r *fakeUserRepo) FindByEmail(email string) (*authdomain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}
func (r *fakeUserRepo) FindByID(id string) (*authdomain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}
func (r *fakeUserRepo) Update(user *authdomain.User) error { return nil }
func (r *fakeUserRepo) UpdateGoogleTokens(userID, accessToken, refreshToken string) error {
	for _, u := range r.users {
		if u.ID == userID {
			u.GoogleAccessToken = accessToken
			if refreshToken != "" {
				u.GoogleRefreshToken = refreshToken
			}
		}
	}
	return nil
}
func (r *fakeUserRepo) FindSyncEligible() ([]*authdomain.User, error) {
	var eligible []*authdomain.User
	for _, u := range r.users {
		if u.GoogleRefreshToken != "" {
			eligible = append(eligible, u)
		}
	}
	return eligible, nil
}
func (r *fakeUserRepo) SaveRefreshToken(token *authdomain.RefreshToken) error { return nil }
func (r *fakeUserRepo) FindRefreshToken(token string) (*authdomain.RefreshToken, error) {
	return nil, nil
}
func (r *fakeUserRepo) DeleteRefreshToken(token string) error          { return nil }
func (r *fakeUserRepo) DeleteRefreshTokensByUser(userID string) error  { return nil }

type fakeContactRepo struct{ contacts []*crmdomain.Contact }

func (r *fakeContactRepo) Create(c *crmdomain.Contact) error { return nil }
func (r *fakeContactRepo) FindByID(ownerID, id string) (*crmdomain.Contact, error) {
	return nil, nil
}
func (r *fakeContactRepo) FindByOwner(ownerID string) ([]*crmdomain.Contact, error) {
	return r.contacts, nil
}
func (r *fakeContactRepo) Update(c *crmdomain.Contact) error  { return nil }
func (r *fakeContactRepo) Delete(ownerID, id string) error    { return nil }

type fakeAccountRepo struct{ accounts []*crmdomain.Account }

func (r *fakeAccountRepo) Create(a *crmdomain.Account) error { return nil }
func (r *fakeAccountRepo) FindByID(ownerID, id string) (*crmdomain.Account, error) {
	return nil, nil
}
func (r *fakeAccountRepo) FindByOwner(ownerID string) ([]*crmdomain.Account, error) {
	return r.accounts, nil
}
func (r *fakeAccountRepo) Update(a *crmdomain.Account) error { return nil }
func (r *fakeAccountRepo) Delete(ownerID, id string) error   { return nil }

type fakeOpportunityRepo struct{ opportunities []*crmdomain.Opportunity }

func (r *fakeOpportunityRepo) Create(o *crmdomain.Opportunity) error { return nil }
func (r *fakeOpportunityRepo) FindByID(ownerID, id string) (*crmdomain.Opportunity, error) {
	for _, o := range r.opportunities {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, nil
}
func (r *fakeOpportunityRepo) FindByOwner(ownerID string) ([]*crmdomain.Opportunity, error) {
	return r.opportunities, nil
}
func (r *fakeOpportunityRepo) FindByAccount(accountID string) ([]*crmdomain.Opportunity, error) {
	return nil, nil
}
func (r *fakeOpportunityRepo) Update(o *crmdomain.Opportunity) error { return nil }
func (r *fakeOpportunityRepo) UpdateConsolidationStatus(id string, status crmdomain.ConsolidationStatus) error {
	return nil
}
func (r *fakeOpportunityRepo) Delete(ownerID, id string) error { return nil }

type fakeSyncStateRepo struct {
	states  map[string]*caldomain.CalendarSyncState
	updates []caldomain.CalendarSyncState
}

func newFakeSyncStateRepo() *fakeSyncStateRepo {
	return &fakeSyncStateRepo{states: make(map[string]*caldomain.CalendarSyncState)}
}

func (r *fakeSyncStateRepo) key(userID, provider string) string { return userID + "/" + provider }

func (r *fakeSyncStateRepo) GetOrCreate(userID, provider string, state *caldomain.CalendarSyncState) (*caldomain.CalendarSyncState, error) {
	if existing, ok := r.states[r.key(userID, provider)]; ok {
		return existing, nil
	}
	created := *state
	created.UserID = userID
	created.Provider = provider
	r.states[r.key(userID, provider)] = &created
	return &created, nil
}

func (r *fakeSyncStateRepo) Get(userID, provider string) (*caldomain.CalendarSyncState, error) {
	return r.states[r.key(userID, provider)], nil
}

func (r *fakeSyncStateRepo) Update(state *caldomain.CalendarSyncState) error {
	r.states[r.key(state.UserID, state.Provider)] = state
	r.updates = append(r.updates, *state)
	return nil
}

type fakeEventRepo struct {
	events      map[string]*caldomain.CalendarEvent
	failUpserts map[string]error
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		events:      make(map[string]*caldomain.CalendarEvent),
		failUpserts: make(map[string]error),
	}
}

func (r *fakeEventRepo) key(userID, eventID string) string { return userID + "/" + eventID }

func (r *fakeEventRepo) Upsert(event *caldomain.CalendarEvent) error {
	if err, ok := r.failUpserts[event.ProviderEventID]; ok {
		return err
	}
	r.events[r.key(event.UserID, event.ProviderEventID)] = event
	return nil
}

func (r *fakeEventRepo) FindByProviderEventID(userID, providerEventID string) (*caldomain.CalendarEvent, error) {
	return r.events[r.key(userID, providerEventID)], nil
}

func (r *fakeEventRepo) FindByUser(userID string, limit, offset int) ([]*caldomain.CalendarEvent, int64, error) {
	var out []*caldomain.CalendarEvent
	for _, e := range r.events {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeEventRepo) DeleteByProviderEventID(userID, providerEventID string) error {
	delete(r.events, r.key(userID, providerEventID))
	return nil
}

// fakeProvider serves a scripted response per ListEvents call and records
// every query it saw
type fakeProvider struct {
	responses []func(caldomain.EventQuery) (*caldomain.EventPage, error)
	queries   []caldomain.EventQuery
}

func (p *fakeProvider) ListEvents(ctx context.Context, accessToken, refreshToken string, query caldomain.EventQuery, onTokenRefresh caldomain.TokenUpdateFunc) (*caldomain.EventPage, error) {
	p.queries = append(p.queries, query)
	if len(p.responses) == 0 {
		return nil, fmt.Errorf("unexpected ListEvents call")
	}
	next := p.responses[0]
	p.responses = p.responses[1:]
	return next(query)
}

func pageOf(syncToken string, events ...*caldomain.ProviderEvent) func(caldomain.EventQuery) (*caldomain.EventPage, error) {
	return func(caldomain.EventQuery) (*caldomain.EventPage, error) {
		return &caldomain.EventPage{Events: events, NextSyncToken: syncToken}, nil
	}
}

// --- fixtures ---

func testUser() *authdomain.User {
	return &authdomain.User{
		ID:                 "user-1",
		Email:              "rep@acme.com",
		OrgDomain:          "acme.com",
		GoogleAccessToken:  "at",
		GoogleRefreshToken: "rt",
	}
}

func externalEvent(id string) *caldomain.ProviderEvent {
	return &caldomain.ProviderEvent{
		ID:        id,
		Title:     "Discovery call",
		StartTime: time.Now(),
		EndTime:   time.Now().Add(time.Hour),
		Attendees: []string{"rep@acme.com", "buyer@globex.com"},
	}
}

func internalEvent(id string) *caldomain.ProviderEvent {
	return &caldomain.ProviderEvent{
		ID:        id,
		Title:     "Standup",
		Attendees: []string{"rep@acme.com", "colleague@acme.com"},
	}
}

type syncFixture struct {
	usecase   SyncUsecase
	userRepo  *fakeUserRepo
	stateRepo *fakeSyncStateRepo
	eventRepo *fakeEventRepo
	provider  *fakeProvider
}

func newSyncFixture(provider *fakeProvider) *syncFixture {
	userRepo := &fakeUserRepo{users: []*authdomain.User{testUser()}}
	stateRepo := newFakeSyncStateRepo()
	eventRepo := newFakeEventRepo()
	uc := NewSyncUsecase(userRepo, &fakeContactRepo{}, &fakeAccountRepo{}, &fakeOpportunityRepo{}, stateRepo, eventRepo, provider)
	return &syncFixture{usecase: uc, userRepo: userRepo, stateRepo: stateRepo, eventRepo: eventRepo, provider: provider}
}

// --- tests ---

func TestSyncUser_FullSync(t *testing.T) {
	provider := &fakeProvider{responses: []func(caldomain.EventQuery) (*caldomain.EventPage, error){
		pageOf("token-1", externalEvent("ev-ext"), internalEvent("ev-int")),
	}}
	f := newSyncFixture(provider)

	require.NoError(t, f.usecase.SyncUser(context.Background(), "user-1"))

	t.Run("first pass queries the date window, not a cursor", func(t *testing.T) {
		require.Len(t, provider.queries, 1)
		assert.Empty(t, provider.queries[0].SyncToken)
		assert.False(t, provider.queries[0].TimeMin.IsZero())
		assert.False(t, provider.queries[0].TimeMax.IsZero())
	})

	t.Run("only external events are stored", func(t *testing.T) {
		stored, _ := f.eventRepo.FindByProviderEventID("user-1", "ev-ext")
		require.NotNil(t, stored)
		assert.True(t, stored.IsExternal)

		internal, _ := f.eventRepo.FindByProviderEventID("user-1", "ev-int")
		assert.Nil(t, internal)
	})

	t.Run("state records cursor and success", func(t *testing.T) {
		state, _ := f.stateRepo.Get("user-1", ProviderGoogle)
		require.NotNil(t, state)
		assert.Equal(t, "token-1", state.SyncToken)
		assert.Equal(t, caldomain.SyncStatusSuccess, state.LastSyncStatus)
		assert.Empty(t, state.LastSyncError)
		assert.NotNil(t, state.LastSyncAt)
	})

	t.Run("window spans about 180 days", func(t *testing.T) {
		state, _ := f.stateRepo.Get("user-1", ProviderGoogle)
		span := state.TimeMax.Sub(state.TimeMin)
		assert.InDelta(t, float64(2*SyncWindowDays*24), span.Hours(), 25)
	})
}

func TestSyncUser_IncrementalUsesCursor(t *testing.T) {
	provider := &fakeProvider{responses: []func(caldomain.EventQuery) (*caldomain.EventPage, error){
		pageOf("token-1", externalEvent("ev-1")),
		pageOf("token-2", externalEvent("ev-2")),
	}}
	f := newSyncFixture(provider)

	require.NoError(t, f.usecase.SyncUser(context.Background(), "user-1"))
	require.NoError(t, f.usecase.SyncUser(context.Background(), "user-1"))

	require.Len(t, provider.queries, 2)
	assert.Equal(t, "token-1", provider.queries[1].SyncToken)

	state, _ := f.stateRepo.Get("user-1", ProviderGoogle)
	assert.Equal(t, "token-2", state.SyncToken)
}

func TestSyncUser_ExpiredCursorRecovery(t *testing.T) {
	provider := &fakeProvider{responses: []func(caldomain.EventQuery) (*caldomain.EventPage, error){
		pageOf("token-1"),
		func(caldomain.EventQuery) (*caldomain.EventPage, error) {
			return nil, caldomain.ErrSyncTokenExpired
		},
		pageOf("token-2", externalEvent("ev-after-recovery")),
	}}
	f := newSyncFixture(provider)

	// Establish a cursor, then have the provider reject it
	require.NoError(t, f.usecase.SyncUser(context.Background(), "user-1"))
	require.NoError(t, f.usecase.SyncUser(context.Background(), "user-1"))

	t.Run("full sync reruns in the same invocation", func(t *testing.T) {
		require.Len(t, provider.queries, 3)
		assert.Equal(t, "token-1", provider.queries[1].SyncToken)
		assert.Empty(t, provider.queries[2].SyncToken)
		assert.False(t, provider.queries[2].TimeMin.IsZero())
	})

	t.Run("invalidation reason is recorded before the rerun", func(t *testing.T) {
		var recorded bool
		for _, update := range f.stateRepo.updates {
			if update.SyncToken == "" && update.LastSyncError != "" {
				recorded = true
			}
		}
		assert.True(t, recorded)
	})

	t.Run("recovery ends in a clean success", func(t *testing.T) {
		state, _ := f.stateRepo.Get("user-1", ProviderGoogle)
		assert.Equal(t, "token-2", state.SyncToken)
		assert.Equal(t, caldomain.SyncStatusSuccess, state.LastSyncStatus)
		assert.Empty(t, state.LastSyncError)

		stored, _ := f.eventRepo.FindByProviderEventID("user-1", "ev-after-recovery")
		assert.NotNil(t, stored)
	})
}

func TestSyncUser_Reconciliation(t *testing.T) {
	t.Run("cancelled event is deleted when present", func(t *testing.T) {
		cancelled := externalEvent("ev-1")
		cancelled.Cancelled = true

		provider := &fakeProvider{responses: []func(caldomain.EventQuery) (*caldomain.EventPage, error){
			pageOf("t1", externalEvent("ev-1")),
			pageOf("t2", cancelled),
		}}
		f := newSyncFixture(provider)

		require.NoError(t, f.usecase.SyncUser(context.Background(), "user-1"))
		require.NoError(t, f.usecase.SyncUser(context.Background(), "user-1"))

		stored, _ := f.eventRepo.FindByProviderEventID("user-1", "ev-1")
		assert.Nil(t, stored)
	})

	t.Run("event turning internal is deleted", func(t *testing.T) {
		turnedInternal := internalEvent("ev-1")

		provider := &fakeProvider{responses: []func(caldomain.EventQuery) (*caldomain.EventPage, error){
			pageOf("t1", externalEvent("ev-1")),
			pageOf("t2", turnedInternal),
		}}
		f := newSyncFixture(provider)

		require.NoError(t, f.usecase.SyncUser(context.Background(), "user-1"))
		require.NoError(t, f.usecase.SyncUser(context.Background(), "user-1"))

		stored, _ := f.eventRepo.FindByProviderEventID("user-1", "ev-1")
		assert.Nil(t, stored)
	})

	t.Run("organizer-only event is not stored", func(t *testing.T) {
		invite := &caldomain.ProviderEvent{
			ID:        "ev-1",
			Title:     "Partner webinar",
			Organizer: "carol@partner.com",
			Attendees: []string{"carol@partner.com"},
		}

		provider := &fakeProvider{responses: []func(caldomain.EventQuery) (*caldomain.EventPage, error){
			pageOf("t1", invite),
		}}
		f := newSyncFixture(provider)

		require.NoError(t, f.usecase.SyncUser(context.Background(), "user-1"))

		stored, _ := f.eventRepo.FindByProviderEventID("user-1", "ev-1")
		assert.Nil(t, stored)
	})

	t.Run("rerunning the same pass is idempotent", func(t *testing.T) {
		provider := &fakeProvider{responses: []func(caldomain.EventQuery) (*caldomain.EventPage, error){
			pageOf("t1", externalEvent("ev-1")),
			pageOf("t2", externalEvent("ev-1")),
		}}
		f := newSyncFixture(provider)

		require.NoError(t, f.usecase.SyncUser(context.Background(), "user-1"))
		require.NoError(t, f.usecase.SyncUser(context.Background(), "user-1"))

		events, total, _ := f.eventRepo.FindByUser("user-1", 100, 0)
		assert.Len(t, events, 1)
		assert.EqualValues(t, 1, total)
	})
}

func TestSyncUser_PerEventFailureDoesNotAbortPass(t *testing.T) {
	provider := &fakeProvider{responses: []func(caldomain.EventQuery) (*caldomain.EventPage, error){
		pageOf("t1", externalEvent("ev-bad"), externalEvent("ev-good")),
	}}
	f := newSyncFixture(provider)
	f.eventRepo.failUpserts["ev-bad"] = errors.New("constraint violation")

	require.NoError(t, f.usecase.SyncUser(context.Background(), "user-1"))

	stored, _ := f.eventRepo.FindByProviderEventID("user-1", "ev-good")
	assert.NotNil(t, stored)

	state, _ := f.stateRepo.Get("user-1", ProviderGoogle)
	assert.Equal(t, caldomain.SyncStatusSuccess, state.LastSyncStatus)
	assert.Equal(t, "t1", state.SyncToken)
}

func TestSyncAllUsers_UserFailureDoesNotAbortBatch(t *testing.T) {
	provider := &fakeProvider{responses: []func(caldomain.EventQuery) (*caldomain.EventPage, error){
		func(caldomain.EventQuery) (*caldomain.EventPage, error) {
			return nil, errors.New("invalid_grant: token revoked")
		},
		pageOf("t1", externalEvent("ev-1")),
	}}
	f := newSyncFixture(provider)
	f.userRepo.users = append(f.userRepo.users, &authdomain.User{
		ID:                 "user-2",
		Email:              "other@acme.com",
		OrgDomain:          "acme.com",
		GoogleAccessToken:  "at2",
		GoogleRefreshToken: "rt2",
	})

	assert.NoError(t, f.usecase.SyncAllUsers(context.Background()))

	t.Run("failed user keeps the error in their state", func(t *testing.T) {
		state, _ := f.stateRepo.Get("user-1", ProviderGoogle)
		require.NotNil(t, state)
		assert.Equal(t, caldomain.SyncStatusFailed, state.LastSyncStatus)
		assert.Contains(t, state.LastSyncError, "invalid_grant")
	})

	t.Run("remaining users still sync", func(t *testing.T) {
		stored, _ := f.eventRepo.FindByProviderEventID("user-2", "ev-1")
		assert.NotNil(t, stored)
	})
}
