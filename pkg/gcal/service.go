package gcal

import (
	"context"
	"errors"
	"fmt"
	"time"

	caldomain "dealflow-backend/internal/calendar/domain"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// TokenUpdateFunc is a callback function that handles token updates
type TokenUpdateFunc = caldomain.TokenUpdateFunc

type Service struct {
	clientID     string
	clientSecret string
}

type notifyTokenSource struct {
	src      oauth2.TokenSource
	current  *oauth2.Token
	callback TokenUpdateFunc
}

func (s *notifyTokenSource) Token() (*oauth2.Token, error) {
	t, err := s.src.Token()
	if err != nil {
		return nil, err
	}
	if s.callback != nil && s.current.AccessToken != t.AccessToken {
		s.current = t
		if err := s.callback(t); err != nil {
			fmt.Printf("Failed to update token: %v\n", err)
		}
	}
	return t, nil
}

func NewService(clientID, clientSecret string) *Service {
	return &Service{
		clientID:     clientID,
		clientSecret: clientSecret,
	}
}

// getCalendarService creates a Calendar service with the user's access token
func (s *Service) getCalendarService(ctx context.Context, accessToken, refreshToken string, onTokenRefresh TokenUpdateFunc) (*calendar.Service, error) {
	token := &oauth2.Token{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
	}

	// Only force refresh if we have a refresh token
	if refreshToken != "" {
		token.Expiry = time.Now()
	}

	config := &oauth2.Config{
		ClientID:     s.clientID,
		ClientSecret: s.clientSecret,
		Endpoint:     google.Endpoint,
	}

	tokenSource := config.TokenSource(ctx, token)

	// Wrap token source to detect refreshes
	wrappedSource := &notifyTokenSource{
		src:      tokenSource,
		current:  token,
		callback: onTokenRefresh,
	}

	client := oauth2.NewClient(ctx, wrappedSource)

	srv, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create Calendar service: %v", err)
	}

	return srv, nil
}

// ListEvents fetches one page of primary-calendar events. With a sync token
// it performs an incremental fetch; otherwise a windowed full fetch. A 410
// from the API surfaces as caldomain.ErrSyncTokenExpired.
func (s *Service) ListEvents(ctx context.Context, accessToken, refreshToken string, query caldomain.EventQuery, onTokenRefresh TokenUpdateFunc) (*caldomain.EventPage, error) {
	srv, err := s.getCalendarService(ctx, accessToken, refreshToken, onTokenRefresh)
	if err != nil {
		return nil, err
	}

	call := srv.Events.List("primary").
		SingleEvents(true).
		MaxResults(250).
		Context(ctx)

	if query.SyncToken != "" {
		call = call.SyncToken(query.SyncToken)
	} else {
		call = call.
			TimeMin(query.TimeMin.Format(time.RFC3339)).
			TimeMax(query.TimeMax.Format(time.RFC3339))
	}
	if query.PageToken != "" {
		call = call.PageToken(query.PageToken)
	}

	resp, err := call.Do()
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && apiErr.Code == 410 {
			return nil, caldomain.ErrSyncTokenExpired
		}
		return nil, fmt.Errorf("unable to list events: %v", err)
	}

	page := &caldomain.EventPage{
		Events:        make([]*caldomain.ProviderEvent, 0, len(resp.Items)),
		NextPageToken: resp.NextPageToken,
		NextSyncToken: resp.NextSyncToken,
	}
	for _, item := range resp.Items {
		page.Events = append(page.Events, convertEvent(item))
	}

	return page, nil
}

// convertEvent maps a Calendar API event to the provider-neutral shape
func convertEvent(item *calendar.Event) *caldomain.ProviderEvent {
	event := &caldomain.ProviderEvent{
		ID:          item.Id,
		Title:       item.Summary,
		Description: item.Description,
		Location:    item.Location,
		MeetingURL:  item.HangoutLink,
		Cancelled:   item.Status == "cancelled",
	}

	if item.Organizer != nil {
		event.Organizer = item.Organizer.Email
	}

	for _, attendee := range item.Attendees {
		// Rooms and resources are not people
		if attendee.Resource || attendee.Email == "" {
			continue
		}
		event.Attendees = append(event.Attendees, attendee.Email)
	}

	event.StartTime = parseEventTime(item.Start)
	event.EndTime = parseEventTime(item.End)

	return event
}

// parseEventTime handles both timed and all-day events
func parseEventTime(t *calendar.EventDateTime) time.Time {
	if t == nil {
		return time.Time{}
	}
	if t.DateTime != "" {
		if parsed, err := time.Parse(time.RFC3339, t.DateTime); err == nil {
			return parsed
		}
	}
	if t.Date != "" {
		if parsed, err := time.Parse("2006-01-02", t.Date); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
