package event

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/klokku/occasions/internal/event_bus"
	"github.com/klokku/occasions/pkg/date"
	log "github.com/sirupsen/logrus"
)

var ErrEventNotFound = errors.New("event not found")

type Service interface {
	GetEvents(ctx context.Context) ([]Event, error)
	GetEvent(ctx context.Context, id string) (Event, error)
	SaveAll(ctx context.Context, events []Event) error
	AddEvent(ctx context.Context, event Event) ([]Event, error)
	RemoveEvent(ctx context.Context, id string) ([]Event, error)
	UpdateEvent(ctx context.Context, id string, newName string, newInstance Instance) ([]Event, error)
	DeleteInstance(ctx context.Context, id string, d date.Date) ([]Event, error)
	UpdateInstanceNote(ctx context.Context, id string, d date.Date, note string) ([]Event, error)
	Reorder(ctx context.Context, ids []string) ([]Event, error)
	ExportAll(ctx context.Context) (string, error)
	ImportAll(ctx context.Context, text string) (bool, error)
}

// ServiceImpl serializes all operations so that every read-modify-write of the collection
// is atomic with respect to the others.
type ServiceImpl struct {
	mu       sync.Mutex
	repo     Repository
	eventBus *event_bus.EventBus
}

func NewEventService(repo Repository, eventBus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{repo: repo, eventBus: eventBus}
}

func (s *ServiceImpl) GetEvents(ctx context.Context) ([]Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.LoadAll(ctx)
}

func (s *ServiceImpl) GetEvent(ctx context.Context, id string) (Event, error) {
	events, err := s.GetEvents(ctx)
	if err != nil {
		return Event{}, err
	}
	idx := indexOf(events, id)
	if idx == -1 {
		return Event{}, ErrEventNotFound
	}
	return events[idx], nil
}

func (s *ServiceImpl) SaveAll(ctx context.Context, events []Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.SaveAll(ctx, events)
}

func (s *ServiceImpl) AddEvent(ctx context.Context, event Event) ([]Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	events, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	if event.Id == "" || indexOf(events, event.Id) != -1 {
		event.Id = uuid.NewString()
	}

	events = Sort(append(events, event.normalized()), SortByDateDescending)
	if len(events) > MaxEvents {
		log.Debugf("collection exceeds %d events, dropping %d", MaxEvents, len(events)-MaxEvents)
		events = events[:MaxEvents]
	}
	return s.save(ctx, events)
}

func (s *ServiceImpl) RemoveEvent(ctx context.Context, id string) ([]Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	events, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	if indexOf(events, id) == -1 {
		log.Debugf("no event %s to remove", id)
		return events, nil
	}

	events = slices.DeleteFunc(events, func(e Event) bool { return e.Id == id })
	events, err = s.save(ctx, events)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, event_bus.EventRemovedType, event_bus.EventRemoved{Id: id})
	return events, nil
}

func (s *ServiceImpl) UpdateEvent(ctx context.Context, id string, newName string, newInstance Instance) ([]Event, error) {
	return s.modify(ctx, id, func(e Event) Event {
		e = e.WithInstance(newInstance)
		e.Name = strings.TrimSpace(newName)
		return e
	})
}

func (s *ServiceImpl) DeleteInstance(ctx context.Context, id string, d date.Date) ([]Event, error) {
	return s.modify(ctx, id, func(e Event) Event {
		return e.WithoutInstance(d)
	})
}

func (s *ServiceImpl) UpdateInstanceNote(ctx context.Context, id string, d date.Date, note string) ([]Event, error) {
	return s.modify(ctx, id, func(e Event) Event {
		return e.WithNote(d, note)
	})
}

// Reorder stores the collection in a manually chosen order. Events listed in ids come first in the
// given order, the rest follow in their previous order.
func (s *ServiceImpl) Reorder(ctx context.Context, ids []string) ([]Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	events, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	events, err = s.save(ctx, reorder(events, ids))
	if err != nil {
		return nil, err
	}
	s.publish(ctx, event_bus.EventsReorderedType, event_bus.EventsReordered{Ids: eventIds(events)})
	return events, nil
}

func (s *ServiceImpl) ExportAll(ctx context.Context) (string, error) {
	events, err := s.GetEvents(ctx)
	if err != nil {
		return "", err
	}
	return Encode(events)
}

// ImportAll replaces the stored collection with the decoded text. It returns false, leaving the
// stored collection untouched, when the text cannot be decoded.
func (s *ServiceImpl) ImportAll(ctx context.Context, text string) (bool, error) {
	events, err := Decode(text)
	if err != nil {
		log.Infof("import rejected: %v", err)
		return false, nil
	}
	if len(events) > MaxEvents {
		events = events[:MaxEvents]
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.repo.SaveAll(ctx, events); err != nil {
		return false, err
	}
	s.publish(ctx, event_bus.EventsImportedType, event_bus.EventsImported{Count: len(events), Ids: eventIds(events)})
	return true, nil
}

// modify applies fn to the event with the given id and stores the collection.
// Unknown ids leave the collection unchanged.
func (s *ServiceImpl) modify(ctx context.Context, id string, fn func(Event) Event) ([]Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	events, err := s.repo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	idx := indexOf(events, id)
	if idx == -1 {
		log.Debugf("no event %s to modify", id)
		return events, nil
	}
	events[idx] = fn(events[idx])
	return s.save(ctx, events)
}

func (s *ServiceImpl) save(ctx context.Context, events []Event) ([]Event, error) {
	if err := s.repo.SaveAll(ctx, events); err != nil {
		return nil, err
	}
	return events, nil
}

// publish notifies subscribers after the collection is stored. Subscriber failures are logged only,
// the change itself is already persisted.
func (s *ServiceImpl) publish(ctx context.Context, eventType event_bus.EventType, data any) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.Publish(event_bus.NewEvent(ctx, eventType, data)); err != nil {
		log.Errorf("failed to publish %s: %v", eventType, err)
	}
}

func indexOf(events []Event, id string) int {
	return slices.IndexFunc(events, func(e Event) bool { return e.Id == id })
}

func eventIds(events []Event) []string {
	result := make([]string, 0, len(events))
	for _, e := range events {
		result = append(result, e.Id)
	}
	return result
}
