package widget

import (
	"context"
	"errors"
	"slices"
	"strconv"

	"github.com/klokku/occasions/internal/event_bus"
	"github.com/klokku/occasions/internal/utils"
	"github.com/klokku/occasions/pkg/event"
	"github.com/klokku/occasions/pkg/relative_date"
	log "github.com/sirupsen/logrus"
)

var ErrInvalidWidgetId = errors.New("invalid widget id")

// EventReader gives read access to the event collection. Reads go through the event service so
// that they never interleave with its read-modify-write cycles.
type EventReader interface {
	GetEvents(ctx context.Context) ([]event.Event, error)
}

type Service interface {
	GetConfiguration(ctx context.Context, widgetId string) (Configuration, error)
	Configure(ctx context.Context, config Configuration) error
	RemoveConfiguration(ctx context.Context, widgetId string) error
	Render(ctx context.Context, widgetId string) (View, error)
}

type ServiceImpl struct {
	repo   Repository
	events EventReader
	clock  utils.Clock
}

// NewService creates the widget service. Widgets lose their selected event when it is removed
// or when an import replaces the collection without it.
func NewService(repo Repository, events EventReader, clock utils.Clock, eventBus *event_bus.EventBus) *ServiceImpl {
	service := &ServiceImpl{repo: repo, events: events, clock: clock}
	event_bus.SubscribeTyped(
		eventBus,
		event_bus.EventRemovedType,
		func(e event_bus.EventT[event_bus.EventRemoved]) error {
			log.Debugf("received event removed event: %v", e.Data)
			return service.clearSelections(e.Context(), func(eventId string) bool {
				return eventId == e.Data.Id
			})
		},
	)
	event_bus.SubscribeTyped(
		eventBus,
		event_bus.EventsImportedType,
		func(e event_bus.EventT[event_bus.EventsImported]) error {
			log.Debugf("received events imported event, %d events", e.Data.Count)
			return service.clearSelections(e.Context(), func(eventId string) bool {
				return !slices.Contains(e.Data.Ids, eventId)
			})
		},
	)
	return service
}

func (s *ServiceImpl) GetConfiguration(ctx context.Context, widgetId string) (Configuration, error) {
	if !IsValidWidgetId(widgetId) {
		return Configuration{}, ErrInvalidWidgetId
	}
	return s.repo.Get(ctx, widgetId)
}

func (s *ServiceImpl) Configure(ctx context.Context, config Configuration) error {
	if !IsValidWidgetId(config.WidgetId) {
		return ErrInvalidWidgetId
	}
	return s.repo.Store(ctx, config)
}

func (s *ServiceImpl) RemoveConfiguration(ctx context.Context, widgetId string) error {
	if !IsValidWidgetId(widgetId) {
		return ErrInvalidWidgetId
	}
	return s.repo.Remove(ctx, widgetId)
}

// Render computes what the widget shows today. A widget without a selected event, or whose
// event no longer exists, renders as not configured.
func (s *ServiceImpl) Render(ctx context.Context, widgetId string) (View, error) {
	config, err := s.GetConfiguration(ctx, widgetId)
	if err != nil {
		return View{}, err
	}
	view := View{WidgetId: widgetId}
	if config.EventId == "" {
		return view, nil
	}

	events, err := s.events.GetEvents(ctx)
	if err != nil {
		return View{}, err
	}
	idx := slices.IndexFunc(events, func(e event.Event) bool { return e.Id == config.EventId })
	if idx == -1 {
		log.Debugf("widget %s shows unknown event %s", widgetId, config.EventId)
		return view, nil
	}
	e := events[idx]

	view.Configured = true
	view.EventId = e.Id
	view.DisplayName = relative_date.TitleCase(e.Name)
	if len(e.Instances) == 0 {
		return view, nil
	}

	today := utils.Today(s.clock)
	view.LatestDate = e.LatestDate()
	view.DaysCount, view.IsToday = relative_date.DaysCount(view.LatestDate, today)
	switch {
	case config.DaysOnly && view.IsToday:
		view.Label = relative_date.Today
	case config.DaysOnly:
		view.Label = strconv.Itoa(view.DaysCount)
	default:
		view.Label = relative_date.PeriodLabel(view.LatestDate, today)
	}
	return view, nil
}

func (s *ServiceImpl) clearSelections(ctx context.Context, shouldClear func(eventId string) bool) error {
	configs, err := s.repo.GetAll(ctx)
	if err != nil {
		log.Errorf("failed to read widget configurations: %v", err)
		return err
	}
	for _, config := range configs {
		if config.EventId == "" || !shouldClear(config.EventId) {
			continue
		}
		log.Debugf("clearing event %s from widget %s", config.EventId, config.WidgetId)
		config.EventId = ""
		if err := s.repo.Store(ctx, config); err != nil {
			log.Errorf("failed to clear widget %s: %v", config.WidgetId, err)
			return err
		}
	}
	return nil
}
