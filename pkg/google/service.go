package google

import (
	"context"
	"fmt"

	"github.com/klokku/occasions/pkg/event"
	log "github.com/sirupsen/logrus"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

type CalendarItem struct {
	ID      string
	Summary string
}

// EventReader looks up a single event of the collection.
type EventReader interface {
	GetEvent(ctx context.Context, id string) (event.Event, error)
}

type Service interface {
	ListCalendars(ctx context.Context) ([]CalendarItem, error)
	// ExportEvent inserts every instance of the event into the calendar and returns how many were inserted.
	ExportEvent(ctx context.Context, calendarId string, eventId string) (int, error)
}

type ServiceImpl struct {
	auth    *GoogleAuth
	events  EventReader
	options []option.ClientOption
}

// NewService creates the Google Calendar service. Extra client options are appended to the
// authenticated HTTP client option, e.g. to point at another endpoint.
func NewService(auth *GoogleAuth, events EventReader, options ...option.ClientOption) *ServiceImpl {
	return &ServiceImpl{
		auth:    auth,
		events:  events,
		options: options,
	}
}

func (s *ServiceImpl) ListCalendars(ctx context.Context) ([]CalendarItem, error) {
	googleService, err := s.prepareGoogleService(ctx)
	if err != nil {
		return nil, err
	}
	calendars, err := googleService.CalendarList.List().Context(ctx).Do()
	if err != nil {
		err := fmt.Errorf("unable to retrieve calendars from Google Calendar: %v", err)
		log.Error(err)
		return nil, err
	}
	googleCalendars := make([]CalendarItem, 0, len(calendars.Items))
	for _, cal := range calendars.Items {
		googleCalendars = append(googleCalendars, CalendarItem{
			ID:      cal.Id,
			Summary: cal.Summary,
		})
	}
	return googleCalendars, nil
}

func (s *ServiceImpl) ExportEvent(ctx context.Context, calendarId string, eventId string) (int, error) {
	e, err := s.events.GetEvent(ctx, eventId)
	if err != nil {
		return 0, err
	}
	googleService, err := s.prepareGoogleService(ctx)
	if err != nil {
		return 0, err
	}

	exported := 0
	for _, googleEvent := range toGoogleEvents(e) {
		_, err := googleService.Events.Insert(calendarId, googleEvent).Context(ctx).Do()
		if err != nil {
			err := fmt.Errorf("unable to insert event in Google Calendar: %w", err)
			log.Error(err)
			return exported, err
		}
		exported++
	}
	log.Debugf("Exported %d instances of event %s to calendar %s", exported, eventId, calendarId)
	return exported, nil
}

func (s *ServiceImpl) prepareGoogleService(ctx context.Context) (*calendar.Service, error) {
	client, err := s.auth.getClient(ctx)
	if err != nil {
		err := fmt.Errorf("unable to retrieve Google auth client: %v", err)
		log.Error(err)
		return nil, err
	}
	if client == nil {
		log.Debug("google account is not connected, authentication is required")
		return nil, ErrUnauthenticated
	}
	options := append([]option.ClientOption{option.WithHTTPClient(client)}, s.options...)
	service, err := calendar.NewService(ctx, options...)
	if err != nil {
		err := fmt.Errorf("unable to retrieve Calendar client: %v", err)
		log.Error(err)
		return nil, err
	}

	return service, nil
}
