package preferences

import (
	"context"
	"errors"
	"testing"

	"github.com/klokku/occasions/internal/event_bus"
	"github.com/klokku/occasions/pkg/event"
	"github.com/klokku/occasions/pkg/kv_store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

var kv = kv_store.NewMemoryStore()

var bus *event_bus.EventBus

var service *ServiceImpl

func setup(t *testing.T) func() {
	bus = event_bus.NewEventBus()
	service = NewService(NewStore(kv), bus)
	return func() {
		t.Log("Teardown after test")
		kv.Reset()
	}
}

func TestServiceImpl_Hints(t *testing.T) {
	t.Run("should report hints as unseen by default", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		seen, err := service.IsHintSeen(ctx, "swipe_to_delete")

		require.NoError(t, err)
		assert.False(t, seen)
	})

	t.Run("should remember seen hints", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		require.NoError(t, service.MarkHintSeen(ctx, "swipe_to_delete", true))

		// then
		seen, err := service.IsHintSeen(ctx, "swipe_to_delete")
		require.NoError(t, err)
		assert.True(t, seen)
		value, _, _ := kv.Get(ctx, "hint.swipe_to_delete.seen")
		assert.Equal(t, "true", value)
	})

	t.Run("should reject invalid hint names", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		_, err := service.IsHintSeen(ctx, "../font_size")
		assert.ErrorIs(t, err, ErrInvalidHint)
		assert.ErrorIs(t, service.MarkHintSeen(ctx, "", true), ErrInvalidHint)
	})

	t.Run("should treat a corrupted flag as unseen", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		require.NoError(t, kv.Set(ctx, "hint.reorder.seen", "maybe"))

		seen, err := service.IsHintSeen(ctx, "reorder")

		require.NoError(t, err)
		assert.False(t, seen)
	})
}

func TestServiceImpl_FontSize(t *testing.T) {
	tests := []struct {
		name     string
		stored   *string
		expected FontSize
	}{
		{"default when unset", nil, FontSizeMedium},
		{"small", ptr("SMALL"), FontSizeSmall},
		{"large", ptr("LARGE"), FontSizeLarge},
		{"fallback for lower case", ptr("large"), FontSizeMedium},
		{"fallback for unknown", ptr("HUGE"), FontSizeMedium},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			teardown := setup(t)
			defer teardown()

			// given
			if tt.stored != nil {
				require.NoError(t, kv.Set(ctx, "font_size", *tt.stored))
			}

			// when
			size, err := service.FontSize(ctx)

			// then
			require.NoError(t, err)
			assert.Equal(t, tt.expected, size)
		})
	}

	t.Run("should store valid sizes only", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		require.NoError(t, service.SetFontSize(ctx, FontSizeSmall))
		assert.ErrorIs(t, service.SetFontSize(ctx, "TINY"), ErrInvalidFontSize)

		size, err := service.FontSize(ctx)
		require.NoError(t, err)
		assert.Equal(t, FontSizeSmall, size)
	})
}

func TestServiceImpl_SortOption(t *testing.T) {
	t.Run("should default to newest first", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		assert.Equal(t, event.SortByDateDescending, service.ActiveSortOption(ctx))
	})

	t.Run("should store the option", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		require.NoError(t, service.SetSortOption(ctx, event.SortAlphabetically))
		assert.ErrorIs(t, service.SetSortOption(ctx, "random"), ErrInvalidSortOption)

		option, err := service.SortOption(ctx)
		require.NoError(t, err)
		assert.Equal(t, event.SortAlphabetically, option)
	})

	t.Run("should switch to custom after a reorder", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		require.NoError(t, service.SetSortOption(ctx, event.SortByDateAscending))

		// when
		err := bus.Publish(event_bus.NewEvent(ctx, event_bus.EventsReorderedType, event_bus.EventsReordered{Ids: []string{"a"}}))

		// then
		require.NoError(t, err)
		assert.Equal(t, event.SortCustom, service.ActiveSortOption(ctx))
	})

	t.Run("should fall back to the default when the store fails", func(t *testing.T) {
		failing := NewService(NewStore(failingKV{}), event_bus.NewEventBus())

		assert.Equal(t, event.DefaultSortOption, failing.ActiveSortOption(ctx))
		_, err := failing.FontSize(ctx)
		assert.Error(t, err)
	})
}

var errStore = errors.New("store unavailable")

type failingKV struct{}

func (failingKV) Get(ctx context.Context, key string) (string, bool, error) {
	return "", false, errStore
}

func (failingKV) Set(ctx context.Context, key string, value string) error {
	return errStore
}

func (failingKV) Delete(ctx context.Context, key string) error {
	return errStore
}

func ptr(s string) *string {
	return &s
}
