package event

import (
	"testing"

	"github.com/klokku/occasions/pkg/date"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dailyInstances returns count instances on consecutive days starting at from.
func dailyInstances(from date.Date, count int) []Instance {
	instances := make([]Instance, 0, count)
	for i := 0; i < count; i++ {
		instances = append(instances, Instance{Date: from.AddDays(i)})
	}
	return instances
}

func oldestDate(instances []Instance) date.Date {
	return instances[oldestIndexOf(instances)].Date
}

func TestEvent_WithInstance(t *testing.T) {
	jan1 := date.New(2023, 1, 1)
	dec31 := date.New(2023, 12, 31)

	t.Run("should replace the oldest instance when the event is full", func(t *testing.T) {
		// given
		e := Event{Id: "1", Name: "Dentist", Instances: dailyInstances(jan1, MaxInstances)}
		require.Equal(t, date.New(2023, 2, 19), e.Instances[MaxInstances-1].Date)
		newInstance := Instance{Date: dec31, Note: "late"}

		// when
		result := e.WithInstance(newInstance)

		// then
		assert.Len(t, result.Instances, MaxInstances)
		assert.Contains(t, result.Instances, newInstance)
		assert.False(t, result.HasDate(jan1))
		assert.Equal(t, date.New(2023, 1, 2), oldestDate(result.Instances))
		assert.Equal(t, newInstance, result.Instances[0], "replacement happens in place")
	})

	t.Run("should append when the event has room", func(t *testing.T) {
		// given
		e := Event{Id: "1", Name: "Dentist", Instances: dailyInstances(jan1, MaxInstances-1)}
		require.Equal(t, date.New(2023, 2, 18), e.Instances[MaxInstances-2].Date)
		newInstance := Instance{Date: dec31}

		// when
		result := e.WithInstance(newInstance)

		// then
		assert.Len(t, result.Instances, MaxInstances)
		assert.Contains(t, result.Instances, newInstance)
		assert.True(t, result.HasDate(jan1))
		assert.Equal(t, newInstance, result.Instances[MaxInstances-1])
	})

	t.Run("should ignore an instance with an existing date", func(t *testing.T) {
		// given
		e := Event{Id: "1", Name: "Dentist", Instances: []Instance{{Date: jan1, Note: "first"}}}

		// when
		result := e.WithInstance(Instance{Date: jan1, Note: "second"})

		// then
		assert.Equal(t, []Instance{{Date: jan1, Note: "first"}}, result.Instances)
	})

	t.Run("should not modify the original event", func(t *testing.T) {
		// given
		e := Event{Id: "1", Name: "Dentist", Instances: dailyInstances(jan1, MaxInstances)}

		// when
		_ = e.WithInstance(Instance{Date: dec31})

		// then
		assert.Equal(t, jan1, e.Instances[0].Date)
	})

	t.Run("should drop blank notes", func(t *testing.T) {
		// when
		result := Event{Id: "1"}.WithInstance(Instance{Date: jan1, Note: "  \t"})

		// then
		assert.Equal(t, "", result.Instances[0].Note)
	})
}

func TestEvent_LatestDate(t *testing.T) {
	t.Run("should return the most recent date regardless of order", func(t *testing.T) {
		e := Event{Instances: []Instance{
			{Date: date.New(2023, 5, 1)},
			{Date: date.New(2024, 1, 1)},
			{Date: date.New(2022, 1, 1)},
		}}
		assert.Equal(t, date.New(2024, 1, 1), e.LatestDate())
	})

	t.Run("should return the minimum date without instances", func(t *testing.T) {
		assert.True(t, Event{}.LatestDate().IsZero())
	})
}

func TestEvent_WithoutInstance(t *testing.T) {
	// given
	e := Event{Instances: dailyInstances(date.New(2023, 1, 1), 3)}

	// when
	result := e.WithoutInstance(date.New(2023, 1, 2))

	// then
	assert.Equal(t, []date.Date{date.New(2023, 1, 1), date.New(2023, 1, 3)}, result.Dates())
	assert.Len(t, e.Instances, 3)
}

func TestEvent_WithNote(t *testing.T) {
	jan1 := date.New(2023, 1, 1)
	e := Event{Instances: []Instance{{Date: jan1, Note: "old"}}}

	t.Run("should replace the note", func(t *testing.T) {
		assert.Equal(t, "new", e.WithNote(jan1, "new").Instances[0].Note)
	})

	t.Run("should clear the note with a blank one", func(t *testing.T) {
		assert.Equal(t, "", e.WithNote(jan1, "   ").Instances[0].Note)
	})

	t.Run("should ignore unknown dates", func(t *testing.T) {
		assert.Equal(t, e, e.WithNote(date.New(2023, 1, 2), "new"))
	})
}

func TestNewEvent(t *testing.T) {
	e := NewEvent("  Birthday  ", Instance{Date: date.New(2023, 1, 1)}, Instance{Date: date.New(2023, 1, 1)})

	assert.NotEmpty(t, e.Id)
	assert.Equal(t, "Birthday", e.Name)
	assert.Len(t, e.Instances, 1)
}
