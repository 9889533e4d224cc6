package event_bus

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBus_Publish(t *testing.T) {
	t.Run("should run handlers in subscription order", func(t *testing.T) {
		// given
		bus := NewEventBus()
		var calls []int
		for i := 0; i < 5; i++ {
			bus.Subscribe(EventRemovedType, func(Event) error {
				calls = append(calls, i)
				return nil
			})
		}

		// when
		err := bus.Publish(NewEvent(context.Background(), EventRemovedType, EventRemoved{Id: "a"}))

		// then
		require.NoError(t, err)
		assert.Equal(t, []int{0, 1, 2, 3, 4}, calls)
	})

	t.Run("should deliver typed payloads only to matching handlers", func(t *testing.T) {
		// given
		bus := NewEventBus()
		var removed []string
		SubscribeTyped(bus, EventRemovedType, func(e EventT[EventRemoved]) error {
			removed = append(removed, e.Data.Id)
			return nil
		})

		// when
		require.NoError(t, bus.Publish(NewEvent(context.Background(), EventRemovedType, EventRemoved{Id: "a"})))
		require.NoError(t, bus.Publish(NewEvent(context.Background(), EventRemovedType, "not a payload")))
		require.NoError(t, bus.Publish(NewEvent(context.Background(), EventRemovedType, nil)))

		// then
		assert.Equal(t, []string{"a"}, removed)
	})

	t.Run("should keep running handlers after a failure", func(t *testing.T) {
		// given
		bus := NewEventBus()
		failure := errors.New("failed")
		called := false
		bus.Subscribe(EventsImportedType, func(Event) error { return failure })
		bus.Subscribe(EventsImportedType, func(Event) error { panic("boom") })
		bus.Subscribe(EventsImportedType, func(Event) error {
			called = true
			return nil
		})

		// when
		err := bus.Publish(NewEvent(context.Background(), EventsImportedType, EventsImported{}))

		// then
		assert.ErrorIs(t, err, failure)
		assert.ErrorContains(t, err, "boom")
		assert.True(t, called)
	})

	t.Run("should not run handlers after unsubscribe", func(t *testing.T) {
		// given
		bus := NewEventBus()
		called := false
		unsubscribe := bus.Subscribe(EventsReorderedType, func(Event) error {
			called = true
			return nil
		})
		unsubscribe()

		// when
		err := bus.Publish(NewEvent(context.Background(), EventsReorderedType, EventsReordered{}))

		// then
		require.NoError(t, err)
		assert.False(t, called)
	})

	t.Run("should not publish with a cancelled context", func(t *testing.T) {
		// given
		bus := NewEventBus()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		// when
		err := bus.Publish(NewEvent(ctx, EventRemovedType, EventRemoved{}))

		// then
		assert.ErrorIs(t, err, context.Canceled)
	})
}
