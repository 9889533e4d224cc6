package event

import (
	"context"
	"fmt"

	"github.com/klokku/occasions/pkg/kv_store"
	log "github.com/sirupsen/logrus"
)

// EventsKey is the key under which the whole collection is stored.
const EventsKey = "events"

type Repository interface {
	LoadAll(ctx context.Context) ([]Event, error)
	SaveAll(ctx context.Context, events []Event) error
}

type RepositoryImpl struct {
	store kv_store.Store
}

func NewRepository(store kv_store.Store) *RepositoryImpl {
	return &RepositoryImpl{store: store}
}

// LoadAll reads the stored collection. Missing or malformed data is treated as an empty collection.
// A collection that decodes to something other than what is stored (legacy shapes, generated ids,
// more than MaxEvents events) is written back in its canonical form, so ids stay stable across loads.
func (r *RepositoryImpl) LoadAll(ctx context.Context) ([]Event, error) {
	text, found, err := r.store.Get(ctx, EventsKey)
	if err != nil {
		return nil, fmt.Errorf("could not load events: %w", err)
	}
	if !found {
		return []Event{}, nil
	}

	events, err := Decode(text)
	if err != nil {
		log.Warnf("stored events could not be decoded, treating as empty: %v", err)
		return []Event{}, nil
	}

	if len(events) > MaxEvents {
		log.Infof("stored collection holds %d events, truncating to %d", len(events), MaxEvents)
		events = events[:MaxEvents]
	}

	canonical, err := Encode(events)
	if err != nil {
		log.Error(err)
		return nil, err
	}
	if canonical != text {
		log.Debug("stored events are not in canonical form, rewriting them")
		if err := r.store.Set(ctx, EventsKey, canonical); err != nil {
			return nil, fmt.Errorf("could not save events: %w", err)
		}
	}
	return events, nil
}

// SaveAll replaces the whole stored collection.
func (r *RepositoryImpl) SaveAll(ctx context.Context, events []Event) error {
	text, err := Encode(events)
	if err != nil {
		log.Error(err)
		return err
	}
	if err := r.store.Set(ctx, EventsKey, text); err != nil {
		return fmt.Errorf("could not save events: %w", err)
	}
	return nil
}
