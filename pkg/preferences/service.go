package preferences

import (
	"context"
	"errors"

	"github.com/klokku/occasions/internal/event_bus"
	"github.com/klokku/occasions/pkg/event"
	log "github.com/sirupsen/logrus"
)

var ErrInvalidFontSize = errors.New("invalid font size")
var ErrInvalidSortOption = errors.New("invalid sort option")
var ErrInvalidHint = errors.New("invalid hint name")

type Service interface {
	IsHintSeen(ctx context.Context, hint string) (bool, error)
	MarkHintSeen(ctx context.Context, hint string, seen bool) error
	FontSize(ctx context.Context) (FontSize, error)
	SetFontSize(ctx context.Context, size FontSize) error
	SortOption(ctx context.Context) (event.SortOption, error)
	SetSortOption(ctx context.Context, option event.SortOption) error
}

type ServiceImpl struct {
	store Store
}

// NewService creates the preferences service. A manual reorder of the events switches the
// active sort option to custom so that the arranged order is shown as is.
func NewService(store Store, eventBus *event_bus.EventBus) *ServiceImpl {
	service := &ServiceImpl{store: store}
	event_bus.SubscribeTyped(
		eventBus,
		event_bus.EventsReorderedType,
		func(e event_bus.EventT[event_bus.EventsReordered]) error {
			log.Debugf("received events reordered event, switching to %s sort", event.SortCustom)
			if err := service.SetSortOption(e.Context(), event.SortCustom); err != nil {
				log.Errorf("failed to switch to custom sort: %v", err)
				return err
			}
			return nil
		},
	)
	return service
}

func (s *ServiceImpl) IsHintSeen(ctx context.Context, hint string) (bool, error) {
	if !hintNamePattern.MatchString(hint) {
		return false, ErrInvalidHint
	}
	return s.store.GetBool(ctx, hintKey(hint), false)
}

func (s *ServiceImpl) MarkHintSeen(ctx context.Context, hint string, seen bool) error {
	if !hintNamePattern.MatchString(hint) {
		return ErrInvalidHint
	}
	return s.store.SetBool(ctx, hintKey(hint), seen)
}

// FontSize returns the chosen font size. Unknown stored values fall back to DefaultFontSize.
func (s *ServiceImpl) FontSize(ctx context.Context) (FontSize, error) {
	value, err := s.store.GetString(ctx, fontSizeKey, string(DefaultFontSize))
	if err != nil {
		return DefaultFontSize, err
	}
	size, ok := ParseFontSize(value)
	if !ok {
		log.Warnf("stored font size %q is not valid, using %s", value, DefaultFontSize)
	}
	return size, nil
}

func (s *ServiceImpl) SetFontSize(ctx context.Context, size FontSize) error {
	if _, ok := ParseFontSize(string(size)); !ok {
		return ErrInvalidFontSize
	}
	return s.store.SetString(ctx, fontSizeKey, string(size))
}

func (s *ServiceImpl) SortOption(ctx context.Context) (event.SortOption, error) {
	value, err := s.store.GetString(ctx, sortOptionKey, string(event.DefaultSortOption))
	if err != nil {
		return event.DefaultSortOption, err
	}
	return event.ParseSortOption(value), nil
}

func (s *ServiceImpl) SetSortOption(ctx context.Context, option event.SortOption) error {
	if event.ParseSortOption(string(option)) != option {
		return ErrInvalidSortOption
	}
	return s.store.SetString(ctx, sortOptionKey, string(option))
}

// ActiveSortOption is the sort option used to present the event list, falling back to the
// default when preferences cannot be read.
func (s *ServiceImpl) ActiveSortOption(ctx context.Context) event.SortOption {
	option, err := s.SortOption(ctx)
	if err != nil {
		return event.DefaultSortOption
	}
	return option
}
