package widget

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/klokku/occasions/pkg/preferences"
)

const widgetIdsKey = "widget.ids"

type Repository interface {
	Get(ctx context.Context, widgetId string) (Configuration, error)
	Store(ctx context.Context, config Configuration) error
	Remove(ctx context.Context, widgetId string) error
	GetAll(ctx context.Context) ([]Configuration, error)
}

// RepositoryImpl keeps every widget setting as its own preference. The ids of configured
// widgets are listed under widget.ids so that all configurations can be visited.
// mu guards the read-modify-write of that list.
type RepositoryImpl struct {
	mu    sync.Mutex
	prefs preferences.Store
}

func NewRepository(prefs preferences.Store) *RepositoryImpl {
	return &RepositoryImpl{prefs: prefs}
}

func eventIdKey(widgetId string) string {
	return fmt.Sprintf("widget.%s.event_id", widgetId)
}

func daysOnlyKey(widgetId string) string {
	return fmt.Sprintf("widget.%s.days_only", widgetId)
}

func (r *RepositoryImpl) Get(ctx context.Context, widgetId string) (Configuration, error) {
	eventId, err := r.prefs.GetString(ctx, eventIdKey(widgetId), "")
	if err != nil {
		return Configuration{}, err
	}
	daysOnly, err := r.prefs.GetBool(ctx, daysOnlyKey(widgetId), false)
	if err != nil {
		return Configuration{}, err
	}
	return Configuration{WidgetId: widgetId, EventId: eventId, DaysOnly: daysOnly}, nil
}

func (r *RepositoryImpl) Store(ctx context.Context, config Configuration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.prefs.SetString(ctx, eventIdKey(config.WidgetId), config.EventId); err != nil {
		return err
	}
	if err := r.prefs.SetBool(ctx, daysOnlyKey(config.WidgetId), config.DaysOnly); err != nil {
		return err
	}

	ids, err := r.widgetIds(ctx)
	if err != nil {
		return err
	}
	if slices.Contains(ids, config.WidgetId) {
		return nil
	}
	return r.prefs.SetString(ctx, widgetIdsKey, strings.Join(append(ids, config.WidgetId), ","))
}

func (r *RepositoryImpl) Remove(ctx context.Context, widgetId string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.prefs.Remove(ctx, eventIdKey(widgetId)); err != nil {
		return err
	}
	if err := r.prefs.Remove(ctx, daysOnlyKey(widgetId)); err != nil {
		return err
	}

	ids, err := r.widgetIds(ctx)
	if err != nil {
		return err
	}
	ids = slices.DeleteFunc(ids, func(id string) bool { return id == widgetId })
	return r.prefs.SetString(ctx, widgetIdsKey, strings.Join(ids, ","))
}

func (r *RepositoryImpl) GetAll(ctx context.Context) ([]Configuration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids, err := r.widgetIds(ctx)
	if err != nil {
		return nil, err
	}
	configs := make([]Configuration, 0, len(ids))
	for _, id := range ids {
		config, err := r.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		configs = append(configs, config)
	}
	return configs, nil
}

func (r *RepositoryImpl) widgetIds(ctx context.Context) ([]string, error) {
	value, err := r.prefs.GetString(ctx, widgetIdsKey, "")
	if err != nil {
		return nil, err
	}
	if value == "" {
		return []string{}, nil
	}
	return strings.Split(value, ","), nil
}
