package event

import (
	"testing"

	"github.com/klokku/occasions/pkg/date"
	"github.com/klokku/occasions/pkg/relative_date"
	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	today := date.New(2023, 3, 1)

	t.Run("should describe the latest instance", func(t *testing.T) {
		// given
		e := Event{Id: "e", Name: "visit_grand-MA", Instances: []Instance{
			{Date: date.New(2023, 1, 1)},
			{Date: date.New(2023, 1, 10)},
			{Date: date.New(2023, 1, 5)},
		}}

		// when
		summary := Summarize(e, today, relative_date.Standard)

		// then
		assert.Equal(t, "Visit Grand Ma", summary.DisplayName)
		assert.Equal(t, date.New(2023, 1, 10), summary.LatestDate)
		assert.Equal(t, "1 month 20 days ago", summary.Label)
		assert.Equal(t, 50, summary.DaysCount)
		assert.False(t, summary.IsToday)
		assert.True(t, summary.AtLeastOneMonth)
		assert.True(t, summary.HasFrequency)
		assert.InDelta(t, 4.5, summary.AverageFrequency, 0.0001)
	})

	t.Run("should use the day count variant", func(t *testing.T) {
		e := Event{Instances: []Instance{{Date: today.AddDays(3)}}}

		summary := Summarize(e, today, relative_date.WithDayCount)

		assert.Equal(t, "in 3 days (3 days)", summary.Label)
		assert.False(t, summary.AtLeastOneMonth)
		assert.False(t, summary.HasFrequency)
	})

	t.Run("should report today", func(t *testing.T) {
		e := Event{Instances: []Instance{{Date: today}}}

		summary := Summarize(e, today, relative_date.WithDayCount)

		assert.Equal(t, relative_date.Today, summary.Label)
		assert.True(t, summary.IsToday)
		assert.Equal(t, 0, summary.DaysCount)
	})

	t.Run("should leave the label empty without instances", func(t *testing.T) {
		summary := Summarize(Event{Name: "nothing yet"}, today, relative_date.Standard)

		assert.Equal(t, "Nothing Yet", summary.DisplayName)
		assert.Empty(t, summary.Label)
		assert.True(t, summary.LatestDate.IsZero())
	})
}
